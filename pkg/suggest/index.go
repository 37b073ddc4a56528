package suggest

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/bastiangx/langstats/pkg/wordtree"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Index is a radix tree over the complete words of a dictionary. It is
// read-only after NewIndex and safe for concurrent use.
type Index struct {
	trie  *patricia.Trie
	words int
}

var _ Completer = (*Index)(nil)

// NewIndex indexes every word of tree.
func NewIndex(tree *wordtree.Tree) *Index {
	start := time.Now()
	idx := &Index{trie: patricia.NewTrie()}
	for rank, word := range tree.ToList() {
		if idx.trie.Insert(patricia.Prefix(word), rank) {
			idx.words++
		}
	}
	log.Debugf("Indexed %d %s words in %v", idx.words, tree.LanguageCode, time.Since(start))
	return idx
}

// Len returns the number of indexed words.
func (idx *Index) Len() int { return idx.words }

// Complete returns words that extend prefix, in dictionary order. The prefix
// itself is never suggested. A limit below 1 returns every match. Matching
// ignores case; an all lower case prefix gets lower case suggestions.
func (idx *Index) Complete(prefix string, limit int) []Suggestion {
	upper := strings.ToUpper(prefix)

	var suggestions []Suggestion
	visit := func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == upper {
			return nil
		}
		rank, ok := item.(int)
		if !ok {
			log.Errorf("Unexpected item type %T for word %s", item, word)
			return nil
		}
		suggestions = append(suggestions, Suggestion{Word: word, Rank: rank})
		return nil
	}

	var err error
	if upper == "" {
		err = idx.trie.Visit(visit)
	} else {
		err = idx.trie.VisitSubtree(patricia.Prefix(upper), visit)
	}
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	slices.SortFunc(suggestions, func(a, b Suggestion) int { return a.Rank - b.Rank })
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	if isLower(prefix) {
		for i := range suggestions {
			suggestions[i].Word = strings.ToLower(suggestions[i].Word)
		}
	}
	return suggestions
}

// isLower reports whether s has letters and none of them is upper case.
func isLower(s string) bool {
	letters := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters = true
		}
	}
	return letters
}
