package grams

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/bastiangx/langstats/pkg/statfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, order Order, alphabet string, freqs []float32) *Model {
	t.Helper()
	m, err := New(&statfile.FrequencyTable{
		LanguageCode: "en",
		Order:        int(order),
		Alphabet:     alphabet,
		Dimension:    len(alphabet),
		Frequencies:  freqs,
	})
	require.NoError(t, err)
	return m
}

func uniform(n int, v float32) []float32 {
	freqs := make([]float32, n)
	for i := range freqs {
		freqs[i] = v
	}
	return freqs
}

func TestCostShorterThanOrderIsZero(t *testing.T) {
	for o := Unigrams; o <= MaxOrder; o++ {
		entries, _ := statfile.Entries(2, int(o))
		m := newModel(t, o, "AB", uniform(entries, 1))
		for n := 0; n < int(o); n++ {
			assert.Zero(t, m.Cost(make([]int, n)), "order %d, length %d", o, n)
		}
	}
}

func TestCostBigrams(t *testing.T) {
	m := newModel(t, Bigrams, "AB", []float32{1, 2, 3, 4})

	// AB=2, BB=4, BA=3
	assert.Equal(t, 3.0, m.Cost([]int{0, 1, 1, 0}))
}

func TestCostSkipsOutOfRangeWindows(t *testing.T) {
	m := newModel(t, Bigrams, "AB", []float32{1, 2, 3, 4})

	// both windows touch index 5; the divisor is still 2
	assert.Equal(t, 0.0, m.Cost([]int{0, 5, 1}))
	// AB counts, (B,-1) does not
	assert.Equal(t, 1.0, m.Cost([]int{0, 1, -1}))
}

func TestCostHigherOrders(t *testing.T) {
	entries, _ := statfile.Entries(3, 5)
	freqs := make([]float32, entries)
	for i := range freqs {
		freqs[i] = float32(i)
	}
	m := newModel(t, Pentagrams, "ABC", freqs)

	// offset of (2,1,0,1,2) with strides 81,27,9,3,1
	want := float32(2*81 + 1*27 + 0*9 + 1*3 + 2)
	got, ok := m.Frequency(2, 1, 0, 1, 2)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, float64(want), m.Cost([]int{2, 1, 0, 1, 2}))
}

func TestNormalizeUniformTable(t *testing.T) {
	m := newModel(t, Trigrams, "ABC", uniform(27, 0.25))

	require.NoError(t, m.Normalize(1e6))
	assert.True(t, m.IsNormalized())
	for i := 0; i < 27; i++ {
		assert.Equal(t, float32(1e6), m.frequencies[i])
	}
	assert.Equal(t, 1e6, m.MaxValue())
}

func TestNormalizeIsReciprocal(t *testing.T) {
	m := newModel(t, Bigrams, "AB", []float32{1, 2, 4, 8})

	require.NoError(t, m.Normalize(1))
	assert.Equal(t, []float32{8, 4, 2, 1}, m.frequencies)
	assert.Equal(t, 8.0, m.MaxValue())
}

func TestNormalizeMultiByteKeepsPadding(t *testing.T) {
	// "AÄ" is 3 bytes, so the table is 3x3 while only the 2x2 symbol block
	// at offsets 0, 1, 3, 4 is addressed by text.
	freqs := []float32{2, 2, 50, 2, 2, 50, 50, 50, 50}
	m, err := New(&statfile.FrequencyTable{Order: 2, Alphabet: "AÄ", Dimension: 3, Frequencies: freqs})
	require.NoError(t, err)

	require.NoError(t, m.Normalize(1))
	assert.Equal(t, []float32{25, 25, 50, 25, 25, 50, 50, 50, 50}, m.frequencies)
	assert.Equal(t, 50.0, m.MaxValue())
	assert.Equal(t, 25.0, m.Cost([]int{0, 1, 1}))
}

func TestNormalizeTwiceFails(t *testing.T) {
	m := newModel(t, Unigrams, "AB", []float32{1, 2})

	require.NoError(t, m.Normalize(10))
	assert.ErrorIs(t, m.Normalize(10), ErrAlreadyNormalized)
	assert.ErrorIs(t, m.Normalize(10), ErrAlreadyNormalized)
}

func TestNormalizeZeroEntryBecomesInf(t *testing.T) {
	m := newModel(t, Unigrams, "AB", []float32{0, 2})

	require.NoError(t, m.Normalize(1))
	assert.True(t, math.IsInf(float64(m.frequencies[0]), 1))
	assert.True(t, math.IsInf(m.MaxValue(), 1))
}

func TestReduceAlphabet(t *testing.T) {
	m := newModel(t, Unigrams, "ABC", []float32{1, 2, 3})

	// X is missing from the table alphabet, so every position shifts by one
	m.ReduceAlphabet("XA")
	assert.Equal(t, []int{1, 1}, m.remap)
	assert.Equal(t, 2.5, m.Cost([]int{0, 1}))

	m.ReduceAlphabet("CBA")
	assert.Nil(t, m.remap)
	assert.Equal(t, 1.5, m.Cost([]int{0, 1}))
}

func TestReduceAlphabetCumulative(t *testing.T) {
	m := newModel(t, Unigrams, "ABD", []float32{1, 2, 3})

	m.ReduceAlphabet("ABCDE")
	assert.Equal(t, []int{0, 0, 1, 1, 2}, m.remap)
}

func TestNewRejectsBadTables(t *testing.T) {
	_, err := New(&statfile.FrequencyTable{Order: 2, Alphabet: "AB", Dimension: 2, Frequencies: []float32{1, 2, 3}})
	assert.ErrorIs(t, err, statfile.ErrTruncated)

	_, err = New(&statfile.FrequencyTable{Order: 7, Alphabet: "A", Dimension: 1, Frequencies: []float32{1}})
	var uoe *UnsupportedOrderError
	assert.True(t, errors.As(err, &uoe))
}

func TestEmptyTableMaxValue(t *testing.T) {
	m := newModel(t, Unigrams, "", nil)
	assert.True(t, math.IsInf(m.MaxValue(), -1))
	assert.Zero(t, m.Cost([]int{0, 1}))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "en-3gram-nocs.gz", FileName("en", Trigrams, false))
	assert.Equal(t, "de-5gram-nocs-sp.gz", FileName("de", Pentagrams, true))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, statfile.SaveFrequencies(filepath.Join(dir, FileName("en", Bigrams, true)), &statfile.FrequencyTable{
		LanguageCode: "en", Order: 2, Alphabet: "AB ", Frequencies: uniform(9, 0.5),
	}))
	// a unigram table stored under a bigram name
	require.NoError(t, statfile.SaveFrequencies(filepath.Join(dir, FileName("xx", Bigrams, false)), &statfile.FrequencyTable{
		LanguageCode: "xx", Order: 1, Alphabet: "AB", Frequencies: uniform(2, 0.5),
	}))

	m, err := Open("en", Bigrams, dir, true)
	require.NoError(t, err)
	assert.Equal(t, Bigrams, m.Order())
	assert.Equal(t, "AB ", m.Alphabet())
	assert.Equal(t, "en", m.LanguageCode())
	assert.Equal(t, 9, m.Len())

	_, err = Open("en", Bigrams, dir, false)
	var missing *statfile.MissingResourceError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "en", missing.Language)
	assert.Equal(t, 2, missing.Order)
	assert.False(t, missing.UseSpaces)
	assert.Contains(t, err.Error(), "use_spaces=false")

	_, err = Open("xx", Bigrams, dir, false)
	assert.ErrorIs(t, err, statfile.ErrOrderMismatch)

	_, err = Open("en", Order(9), dir, false)
	var uoe *UnsupportedOrderError
	assert.True(t, errors.As(err, &uoe))
}
