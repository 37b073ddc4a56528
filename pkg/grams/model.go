// Package grams holds n-gram frequency models of order 1 to 6 and the cost
// function used to score candidate plaintexts.
//
// A Model is loaded once, optionally normalized once, and is read-only after
// that. Concurrent Cost calls are safe only once loading and normalization
// have completed; Normalize must not run concurrently with anything else on
// the same Model.
package grams

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"slices"
	"time"

	"github.com/bastiangx/langstats/pkg/statfile"
	"github.com/charmbracelet/log"
)

// ErrAlreadyNormalized is returned by a second Normalize call.
var ErrAlreadyNormalized = errors.New("grams: model has already been normalized")

// Model is an n-gram frequency table of a fixed order over one alphabet.
type Model struct {
	order        Order
	languageCode string
	alphabet     []rune
	// size is the number of symbols in the alphabet, dimension the number of
	// table positions per coordinate. They only differ for multi-byte alphabets.
	size        int
	dimension   int
	strides     []int
	frequencies []float32
	maxValue    float64
	normalized  bool
	remap       []int
}

// FileName returns the statistics file name for a language and order.
func FileName(language string, order Order, useSpaces bool) string {
	suffix := ""
	if useSpaces {
		suffix = "-sp"
	}
	return fmt.Sprintf("%s-%dgram-nocs%s.gz", language, int(order), suffix)
}

// Open loads the statistics file for language and order from dir.
func Open(language string, order Order, dir string, useSpaces bool) (*Model, error) {
	if !order.Valid() {
		return nil, &UnsupportedOrderError{Order: int(order)}
	}
	path := filepath.Join(dir, FileName(language, order, useSpaces))

	start := time.Now()
	table, err := statfile.LoadFrequencies(path, int(order))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &statfile.MissingResourceError{
				Kind:      statfile.KindStatistics,
				Language:  language,
				Order:     int(order),
				UseSpaces: useSpaces,
				Path:      path,
				Err:       err,
			}
		}
		return nil, err
	}

	m, err := New(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Loaded %s for %s in %v (%d entries)", order, language, time.Since(start), len(m.frequencies))
	return m, nil
}

// New builds a model from a decoded table. The model takes ownership of the
// table's frequency slice.
func New(table *statfile.FrequencyTable) (*Model, error) {
	order := Order(table.Order)
	if !order.Valid() {
		return nil, &UnsupportedOrderError{Order: table.Order}
	}
	entries, ok := statfile.Entries(table.Dimension, table.Order)
	if !ok || entries != len(table.Frequencies) {
		return nil, &statfile.FormatError{
			Format: statfile.FrequencyMagic,
			Err: fmt.Errorf("%w: %d entries for dimension %d at order %d",
				statfile.ErrTruncated, len(table.Frequencies), table.Dimension, table.Order),
		}
	}
	alphabet := []rune(table.Alphabet)
	if len(alphabet) > table.Dimension {
		return nil, fmt.Errorf("alphabet has %d symbols but the table dimension is %d", len(alphabet), table.Dimension)
	}

	strides := make([]int, order)
	stride := 1
	for i := int(order) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= table.Dimension
	}

	return &Model{
		order:        order,
		languageCode: table.LanguageCode,
		alphabet:     alphabet,
		size:         len(alphabet),
		dimension:    table.Dimension,
		strides:      strides,
		frequencies:  table.Frequencies,
		maxValue:     maxOf(table.Frequencies),
	}, nil
}

func maxOf(values []float32) float64 {
	if len(values) == 0 {
		return math.Inf(-1)
	}
	peak := float64(values[0])
	for _, v := range values[1:] {
		if float64(v) > peak {
			peak = float64(v)
		}
	}
	return peak
}

// Order returns the gram order of the model.
func (m *Model) Order() Order { return m.order }

// LanguageCode returns the language code recorded in the statistics file.
func (m *Model) LanguageCode() string { return m.languageCode }

// Alphabet returns the table alphabet; a symbol's position is its index.
func (m *Model) Alphabet() string { return string(m.alphabet) }

// MaxValue returns the current largest table entry, or -Inf for an empty table.
func (m *Model) MaxValue() float64 { return m.maxValue }

// IsNormalized reports whether Normalize has been applied.
func (m *Model) IsNormalized() bool { return m.normalized }

// Len returns the number of table entries.
func (m *Model) Len() int { return len(m.frequencies) }

// Frequency returns the table entry at the given coordinates.
func (m *Model) Frequency(indices ...int) (float32, bool) {
	if len(indices) != int(m.order) {
		return 0, false
	}
	off := 0
	for j, idx := range indices {
		if idx < 0 || idx >= m.dimension {
			return 0, false
		}
		off += idx * m.strides[j]
	}
	return m.frequencies[off], true
}

// shift applies the alphabet reduction offset to a symbol index.
func (m *Model) shift(idx int) int {
	if idx >= 0 && idx < len(m.remap) {
		return idx + m.remap[idx]
	}
	return idx
}

// Cost returns the average table value over every window of Order()
// consecutive indices. Windows containing an index outside the alphabet add
// nothing but still count towards the divisor. Sequences shorter than the
// order cost 0.
func (m *Model) Cost(indices []int) float64 {
	n := int(m.order)
	if len(indices) < n {
		return 0
	}
	windows := len(indices) - n + 1

	var sum float64
	for i := 0; i < windows; i++ {
		off := 0
		inRange := true
		for j := 0; j < n; j++ {
			idx := m.shift(indices[i+j])
			if idx < 0 || idx >= m.size {
				inRange = false
				break
			}
			off += idx * m.strides[j]
		}
		if inRange {
			sum += float64(m.frequencies[off])
		}
	}
	return sum / float64(windows)
}

// Normalize replaces every entry f addressed by alphabet symbols with
// (peak*targetMax)/f, where peak is the maximum before the call, and records
// the new maximum over the whole table. Zero entries become +Inf. Padding
// cells of multi-byte alphabets keep their raw values. It may be called once
// per model.
func (m *Model) Normalize(targetMax float64) error {
	if m.normalized {
		return ErrAlreadyNormalized
	}
	m.normalized = true

	adjust := m.maxValue * targetMax
	if m.size == m.dimension {
		for i, f := range m.frequencies {
			m.frequencies[i] = float32(adjust / float64(f))
		}
	} else {
		m.eachSymbolCell(func(off int) {
			m.frequencies[off] = float32(adjust / float64(m.frequencies[off]))
		})
	}
	m.maxValue = maxOf(m.frequencies)
	log.Debugf("Normalized %s to target %g, new max %g", m.order, targetMax, m.maxValue)
	return nil
}

// eachSymbolCell calls fn with the offset of every cell whose coordinates
// are all below the alphabet size.
func (m *Model) eachSymbolCell(fn func(off int)) {
	if m.size == 0 {
		return
	}
	n := int(m.order)
	coords := make([]int, n)
	for {
		off := 0
		for j, c := range coords {
			off += c * m.strides[j]
		}
		fn(off)

		j := n - 1
		for ; j >= 0; j-- {
			coords[j]++
			if coords[j] < m.size {
				break
			}
			coords[j] = 0
		}
		if j < 0 {
			return
		}
	}
}

// ReduceAlphabet prepares index shifting for callers that number symbols in
// newAlphabet instead of the table alphabet. An alphabet of the same length
// clears any previous reduction. Otherwise the offset for position i is the
// number of letters in newAlphabet[:i+1] that the table alphabet lacks.
func (m *Model) ReduceAlphabet(newAlphabet string) {
	letters := []rune(newAlphabet)
	if len(letters) == len(m.alphabet) {
		m.remap = nil
		return
	}

	remap := make([]int, len(letters))
	add := 0
	for i, letter := range letters {
		if !slices.Contains(m.alphabet, letter) {
			add++
		}
		remap[i] = add
	}
	m.remap = remap
}
