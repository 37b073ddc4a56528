// Package suggest completes word prefixes against a loaded dictionary.
package suggest

// Completer is implemented by completion engines.
type Completer interface {
	// Complete returns at most limit words starting with prefix, best first.
	Complete(prefix string, limit int) []Suggestion

	// Len returns the number of indexed words.
	Len() int
}

// Suggestion is one completion. Rank is the position of the word in
// dictionary order; lower ranks come first.
type Suggestion struct {
	Word string `msgpack:"w" json:"word"`
	Rank int    `msgpack:"r" json:"rank"`
}
