package suggest

import (
	"testing"

	"github.com/bastiangx/langstats/pkg/wordtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndex(t *testing.T, words ...string) *Index {
	t.Helper()
	tree := wordtree.New("en", "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	for _, w := range words {
		_, err := tree.AddWord(w)
		require.NoError(t, err)
	}
	return NewIndex(tree)
}

func words(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, sg := range s {
		out[i] = sg.Word
	}
	return out
}

func TestCompleteDictionaryOrder(t *testing.T) {
	idx := newIndex(t, "HELP", "HELLO", "HELLOWORLD", "WORLD", "HE")
	assert.Equal(t, 5, idx.Len())

	got := idx.Complete("HE", 0)
	// ToList walks depth first in insertion order
	assert.Equal(t, []string{"HELP", "HELLO", "HELLOWORLD"}, words(got))
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Rank, got[i].Rank)
	}
}

func TestCompleteExcludesPrefixAndLimits(t *testing.T) {
	idx := newIndex(t, "CAT", "CATS", "CATALOG", "CAR")

	got := idx.Complete("CAT", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "CATS", got[0].Word)

	assert.Empty(t, idx.Complete("DOG", 5))
}

func TestCompleteMatchesCase(t *testing.T) {
	idx := newIndex(t, "CAT", "CATS")

	assert.Equal(t, []string{"cats"}, words(idx.Complete("cat", 5)))
	assert.Equal(t, []string{"CATS"}, words(idx.Complete("Cat", 5)))
}

func TestCompleteEmptyPrefix(t *testing.T) {
	idx := newIndex(t, "B", "A")
	assert.Equal(t, []string{"B", "A"}, words(idx.Complete("", 0)))
}
