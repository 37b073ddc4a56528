package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/langstats/pkg/grams"
	"github.com/bastiangx/langstats/pkg/langstats"
	"github.com/bastiangx/langstats/pkg/statfile"
	"github.com/bastiangx/langstats/pkg/wordtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *langstats.Cache {
	t.Helper()
	dir := t.TempDir()
	alphabet, _ := langstats.Alphabet("en", false)

	freqs := make([]float32, len(alphabet))
	for i := range freqs {
		freqs[i] = 0.25
	}
	require.NoError(t, statfile.SaveFrequencies(filepath.Join(dir, grams.FileName("en", grams.Unigrams, false)),
		&statfile.FrequencyTable{LanguageCode: "en", Order: 1, Alphabet: alphabet, Frequencies: freqs}))

	tree := wordtree.New("en", alphabet)
	for _, w := range []string{"ATTACK", "AT", "DAWN"} {
		_, err := tree.AddWord(w)
		require.NoError(t, err)
	}
	require.NoError(t, tree.Save(filepath.Join(dir, langstats.DictionaryFileName("en"))))

	cache, err := langstats.NewCache(dir, 2, 0)
	require.NoError(t, err)
	return cache
}

func runPrompt(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	h := NewInputHandler(newCache(t), Options{
		Language:      "en",
		Order:         grams.Unigrams,
		ShowWords:     true,
		DictEnabled:   true,
		CompleteLimit: 5,
	}, strings.NewReader(input), &out)
	require.NoError(t, h.Start())
	return out.String()
}

func TestScoreLine(t *testing.T) {
	out := runPrompt(t, "attack at dusk\n")

	assert.Contains(t, out, "unigrams:")
	assert.Contains(t, out, "0.2500")
	assert.Contains(t, out, "symbols:")
	assert.Contains(t, out, "attack")
	assert.Contains(t, out, "dusk")
}

func TestCommands(t *testing.T) {
	out := runPrompt(t, ":order 9\n:order 2\n:lang xx\n:lang DE\n:complete at\n:nope")

	assert.Contains(t, out, "unsupported gram order 9")
	assert.Contains(t, out, "bigrams")
	assert.Contains(t, out, "unknown language")
	assert.Contains(t, out, "German")
	assert.Contains(t, out, "unknown command")
}

func TestCompleteCommand(t *testing.T) {
	out := runPrompt(t, ":complete AT\n:complete zz\n")

	assert.Contains(t, out, "1. ATTACK")
	assert.Contains(t, out, `no completions for "zz"`)
}

func TestMissingModel(t *testing.T) {
	out := runPrompt(t, ":order 3\nhello\n")
	assert.Contains(t, out, "did not find the language statistics file")
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "999", formatWithCommas(999))
	assert.Equal(t, "1,000", formatWithCommas(1000))
	assert.Equal(t, "1,234,567", formatWithCommas(1234567))
	assert.Equal(t, "-12,345", formatWithCommas(-12345))
}
