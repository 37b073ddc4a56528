package langstats

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownSymbolHandling selects what mapping does with symbols outside the
// alphabet.
type UnknownSymbolHandling int

const (
	// Remove drops unknown symbols.
	Remove UnknownSymbolHandling = iota
	// Replace substitutes a placeholder number or rune.
	Replace
)

func (h UnknownSymbolHandling) String() string {
	switch h {
	case Remove:
		return "remove"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("handling(%d)", int(h))
	}
}

// ErrInvalidHandling is returned for an UnknownSymbolHandling that is neither
// Remove nor Replace.
var ErrInvalidHandling = errors.New("invalid handling of unknown symbols")

// Default placeholders used by Replace.
const (
	DefaultReplaceNumber = -1
	DefaultReplaceRune   = '?'
)

// Mapper translates between text and alphabet indices. Symbol positions are
// counted in runes, so multi-byte alphabets map one index per letter.
type Mapper struct {
	Handling      UnknownSymbolHandling
	ReplaceNumber int
	ReplaceRune   rune
}

// NewMapper returns a Mapper with the default placeholders.
func NewMapper(handling UnknownSymbolHandling) (*Mapper, error) {
	if handling != Remove && handling != Replace {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandling, handling)
	}
	return &Mapper{
		Handling:      handling,
		ReplaceNumber: DefaultReplaceNumber,
		ReplaceRune:   DefaultReplaceRune,
	}, nil
}

func runeIndex(alphabet []rune) map[rune]int {
	index := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		// the first occurrence wins
		if _, ok := index[r]; !ok {
			index[r] = i
		}
	}
	return index
}

// TextToNumbers maps each rune of text to its position in alphabet. Text is
// matched as given; callers upper-case it first where the alphabet requires.
func (m *Mapper) TextToNumbers(text, alphabet string) ([]int, error) {
	if m.Handling != Remove && m.Handling != Replace {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandling, m.Handling)
	}
	index := runeIndex([]rune(alphabet))
	numbers := make([]int, 0, len(text))
	for _, r := range text {
		if i, ok := index[r]; ok {
			numbers = append(numbers, i)
		} else if m.Handling == Replace {
			numbers = append(numbers, m.ReplaceNumber)
		}
	}
	return numbers, nil
}

// NumbersToText maps alphabet positions back to text.
func (m *Mapper) NumbersToText(numbers []int, alphabet string) (string, error) {
	if m.Handling != Remove && m.Handling != Replace {
		return "", fmt.Errorf("%w: %s", ErrInvalidHandling, m.Handling)
	}
	symbols := []rune(alphabet)
	var sb strings.Builder
	sb.Grow(len(numbers))
	for _, n := range numbers {
		if n >= 0 && n < len(symbols) {
			sb.WriteRune(symbols[n])
		} else if m.Handling == Replace {
			sb.WriteRune(m.ReplaceRune)
		}
	}
	return sb.String(), nil
}

var removeMapper = &Mapper{Handling: Remove}

// MapTextToNumbers maps text into alphabet positions, dropping unknown symbols.
func MapTextToNumbers(text, alphabet string) []int {
	numbers, _ := removeMapper.TextToNumbers(text, alphabet)
	return numbers
}

// MapNumbersToText maps alphabet positions to text, dropping out of range
// numbers.
func MapNumbersToText(numbers []int, alphabet string) string {
	text, _ := removeMapper.NumbersToText(numbers, alphabet)
	return text
}
