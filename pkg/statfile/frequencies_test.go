package statfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawTable builds a frequency stream byte by byte, independent of WriteFrequencies.
func rawTable(lang string, order int32, alphabet string, freqs []float32) []byte {
	var b bytes.Buffer
	b.WriteString("CTLS")
	b.WriteByte(byte(len(lang)))
	b.WriteString(lang)
	binary.Write(&b, binary.LittleEndian, order)
	b.WriteByte(byte(len(alphabet)))
	b.WriteString(alphabet)
	for _, f := range freqs {
		binary.Write(&b, binary.LittleEndian, math.Float32bits(f))
	}
	return b.Bytes()
}

func TestReadFrequencies(t *testing.T) {
	data := rawTable("en", 2, "AB", []float32{1, 2, 3, 4})

	table, err := ReadFrequencies(bytes.NewReader(data), 2)
	require.NoError(t, err)
	assert.Equal(t, "en", table.LanguageCode)
	assert.Equal(t, "AB", table.Alphabet)
	assert.Equal(t, 2, table.Order)
	assert.Equal(t, 2, table.Dimension)
	assert.Equal(t, []float32{1, 2, 3, 4}, table.Frequencies)
}

func TestReadFrequenciesDoesNotAliasInput(t *testing.T) {
	data := rawTable("en", 1, "AB", []float32{1, 2})
	table, err := ReadFrequencies(bytes.NewReader(data), 1)
	require.NoError(t, err)

	table.Frequencies[0] = 42
	again, err := ReadFrequencies(bytes.NewReader(data), 1)
	require.NoError(t, err)
	assert.Equal(t, float32(1), again.Frequencies[0])
}

func TestReadFrequenciesErrors(t *testing.T) {
	valid := rawTable("en", 2, "AB", []float32{1, 2, 3, 4})

	tests := []struct {
		name  string
		data  []byte
		order int
		want  error
	}{
		{"bad magic", append([]byte("XTLS"), valid[4:]...), 2, ErrBadMagic},
		{"order mismatch", valid, 3, ErrOrderMismatch},
		{"empty", nil, 2, ErrTruncated},
		{"short header", valid[:7], 2, ErrTruncated},
		{"short table", valid[:len(valid)-1], 2, ErrTruncated},
		{"bad alphabet", rawTable("en", 1, "\xff", []float32{1}), 1, ErrInvalidEncoding},
		// The header alone must not commit memory for the declared table.
		{"oversized header", rawTable("en", 4, strings.Repeat("A", 255), nil), 4, ErrTooLarge},
		{"large table without data", rawTable("en", 4, strings.Repeat("A", 100), nil), 4, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadFrequencies(bytes.NewReader(tt.data), tt.order)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, tt.want)

			var fe *FormatError
			assert.True(t, errors.As(err, &fe))
		})
	}
}

func TestWriteFrequenciesRoundTrip(t *testing.T) {
	in := &FrequencyTable{
		LanguageCode: "de",
		Order:        3,
		Alphabet:     "ABC",
		Frequencies:  make([]float32, 27),
	}
	for i := range in.Frequencies {
		in.Frequencies[i] = float32(i) / 4
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFrequencies(&buf, in))
	assert.Equal(t, rawTable("de", 3, "ABC", in.Frequencies), buf.Bytes())
}

func TestWriteFrequenciesRejectsWrongSize(t *testing.T) {
	err := WriteFrequencies(&bytes.Buffer{}, &FrequencyTable{Order: 2, Alphabet: "AB", Frequencies: []float32{1}})
	assert.Error(t, err)
}

func TestLoadFrequencies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en-1gram-nocs.gz")
	require.NoError(t, SaveFrequencies(path, &FrequencyTable{
		LanguageCode: "en", Order: 1, Alphabet: "XYZ", Frequencies: []float32{0.5, 0.25, 0.25},
	}))

	table, err := LoadFrequencies(path, 1)
	require.NoError(t, err)
	assert.Equal(t, "XYZ", table.Alphabet)

	_, err = LoadFrequencies(path, 2)
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, path, fe.Path)

	_, err = LoadFrequencies(filepath.Join(dir, "missing.gz"), 1)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpenGzipRejectsPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.gz")
	require.NoError(t, os.WriteFile(path, []byte("CTLS not compressed"), 0o644))

	_, err := OpenGzip(path)
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestEntries(t *testing.T) {
	n, ok := Entries(26, 6)
	assert.True(t, ok)
	assert.Equal(t, 308915776, n)

	n, ok = Entries(36, 6)
	assert.True(t, ok)
	assert.EqualValues(t, int64(2176782336), n)

	_, ok = Entries(37, 6)
	assert.False(t, ok)
	_, ok = Entries(255, 4)
	assert.False(t, ok)
}
