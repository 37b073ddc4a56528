// Package statfile reads and writes the binary files that carry language
// statistics: gzip wrapped n-gram frequency tables ("CTLS") and word tree
// dictionaries ("CT2DIC").
package statfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// FrequencyMagic starts every n-gram frequency file.
const FrequencyMagic = "CTLS"

// maxEntries bounds the table size accepted from a file header: a hexagram
// table over a 36 symbol alphabet.
const maxEntries int64 = 36 * 36 * 36 * 36 * 36 * 36

// initialChunks caps the capacity reserved before any frequency is read. The
// table grows past it only as data actually arrives.
const initialChunks = 64

// readChunk is the number of floats decoded per read.
const readChunk = 1 << 14

// FrequencyTable is the decoded content of a frequency file.
type FrequencyTable struct {
	LanguageCode string
	Order        int
	Alphabet     string
	// Dimension is the declared alphabet length in bytes. The table holds
	// Dimension^Order entries in row-major order.
	Dimension   int
	Frequencies []float32
}

// Entries returns dimension^order, or false if it exceeds maxEntries.
func Entries(dimension, order int) (int, bool) {
	if dimension < 0 || order < 0 {
		return 0, false
	}
	n := int64(1)
	for i := 0; i < order; i++ {
		n *= int64(dimension)
		if n > maxEntries || n > math.MaxInt {
			return 0, false
		}
	}
	return int(n), true
}

func frequencyErr(err error) error {
	return &FormatError{Format: FrequencyMagic, Err: err}
}

// readFailure converts a short read into ErrTruncated.
func readFailure(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w while reading %s", ErrTruncated, what)
	}
	return fmt.Errorf("reading %s: %w", what, err)
}

// ReadFrequencies decodes an uncompressed frequency stream whose declared
// gram length must equal order. The returned table owns its frequency slice.
func ReadFrequencies(r io.Reader, order int) (*FrequencyTable, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(FrequencyMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, frequencyErr(readFailure(err, "magic number"))
	}
	if string(magic) != FrequencyMagic {
		return nil, frequencyErr(fmt.Errorf("%w: got %q", ErrBadMagic, magic))
	}

	languageCode, err := readShortString(br, "language code")
	if err != nil {
		return nil, frequencyErr(err)
	}

	var gramLength int32
	if err := binary.Read(br, binary.LittleEndian, &gramLength); err != nil {
		return nil, frequencyErr(readFailure(err, "gram length"))
	}
	if int(gramLength) != order {
		return nil, frequencyErr(fmt.Errorf("%w: file has %d, want %d", ErrOrderMismatch, gramLength, order))
	}

	alphabetLength, err := br.ReadByte()
	if err != nil {
		return nil, frequencyErr(readFailure(err, "alphabet length"))
	}
	alphabet := make([]byte, alphabetLength)
	if _, err := io.ReadFull(br, alphabet); err != nil {
		return nil, frequencyErr(readFailure(err, "alphabet"))
	}
	if !utf8.Valid(alphabet) {
		return nil, frequencyErr(fmt.Errorf("%w in alphabet", ErrInvalidEncoding))
	}

	entries, ok := Entries(int(alphabetLength), order)
	if !ok {
		return nil, frequencyErr(fmt.Errorf("%w: %d^%d entries", ErrTooLarge, alphabetLength, order))
	}
	frequencies := make([]float32, 0, min(entries, initialChunks*readChunk))
	buf := make([]byte, 4*readChunk)
	for len(frequencies) < entries {
		n := min(readChunk, entries-len(frequencies))
		if _, err := io.ReadFull(br, buf[:4*n]); err != nil {
			return nil, frequencyErr(readFailure(err, fmt.Sprintf("frequencies (%d of %d read)", len(frequencies), entries)))
		}
		for i := 0; i < n; i++ {
			frequencies = append(frequencies, math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:])))
		}
	}

	log.Debugf("Decoded %s frequency table: lang=%s order=%d alphabet=%q entries=%d",
		FrequencyMagic, languageCode, order, alphabet, entries)

	return &FrequencyTable{
		LanguageCode: languageCode,
		Order:        order,
		Alphabet:     string(alphabet),
		Dimension:    int(alphabetLength),
		Frequencies:  frequencies,
	}, nil
}

// LoadFrequencies opens the gzip file at path and decodes it.
func LoadFrequencies(path string, order int) (*FrequencyTable, error) {
	rc, err := OpenGzip(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	table, err := ReadFrequencies(rc, order)
	if err != nil {
		return nil, WithPath(err, path)
	}
	return table, nil
}

func readShortString(br *bufio.Reader, what string) (string, error) {
	n, err := br.ReadByte()
	if err != nil {
		return "", readFailure(err, what+" length")
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(br, b); err != nil {
		return "", readFailure(err, what)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w in %s", ErrInvalidEncoding, what)
	}
	return string(b), nil
}

// WriteFrequencies encodes t in the uncompressed frequency format. The
// alphabet byte length is used as the table dimension.
func WriteFrequencies(w io.Writer, t *FrequencyTable) error {
	if len(t.LanguageCode) > math.MaxUint8 {
		return fmt.Errorf("language code %q is longer than %d bytes", t.LanguageCode, math.MaxUint8)
	}
	if len(t.Alphabet) > math.MaxUint8 {
		return fmt.Errorf("alphabet is longer than %d bytes", math.MaxUint8)
	}
	entries, ok := Entries(len(t.Alphabet), t.Order)
	if !ok || entries != len(t.Frequencies) {
		return fmt.Errorf("table has %d entries, alphabet of %d bytes at order %d needs %d",
			len(t.Frequencies), len(t.Alphabet), t.Order, entries)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(FrequencyMagic)
	bw.WriteByte(byte(len(t.LanguageCode)))
	bw.WriteString(t.LanguageCode)
	binary.Write(bw, binary.LittleEndian, int32(t.Order))
	bw.WriteByte(byte(len(t.Alphabet)))
	bw.WriteString(t.Alphabet)
	var b [4]byte
	for _, f := range t.Frequencies {
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
		if _, err := bw.Write(b[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveFrequencies writes t gzip compressed to path.
func SaveFrequencies(path string, t *FrequencyTable) error {
	wc, err := CreateGzip(path)
	if err != nil {
		return err
	}
	if err := WriteFrequencies(wc, t); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
