package langstats

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bastiangx/langstats/pkg/grams"
	"github.com/bastiangx/langstats/pkg/statfile"
	"github.com/bastiangx/langstats/pkg/wordtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStats(t *testing.T, dir, lang string, order grams.Order, useSpaces bool, alphabet string, value float32) {
	t.Helper()
	entries, ok := statfile.Entries(len(alphabet), int(order))
	require.True(t, ok)
	freqs := make([]float32, entries)
	for i := range freqs {
		freqs[i] = value
	}
	path := filepath.Join(dir, grams.FileName(lang, order, useSpaces))
	require.NoError(t, statfile.SaveFrequencies(path, &statfile.FrequencyTable{
		LanguageCode: lang,
		Order:        int(order),
		Alphabet:     alphabet,
		Frequencies:  freqs,
	}))
}

func writeDict(t *testing.T, dir, lang string, words ...string) {
	t.Helper()
	alphabet, _ := Alphabet(lang, false)
	tree := wordtree.New(lang, alphabet)
	for _, w := range words {
		_, err := tree.AddWord(w)
		require.NoError(t, err)
	}
	require.NoError(t, tree.Save(filepath.Join(dir, DictionaryFileName(lang))))
}

func TestCreateGrams(t *testing.T) {
	dir := t.TempDir()
	writeStats(t, dir, "en", grams.Trigrams, false, "ABC", 0.25)

	m, err := CreateGrams("en", dir, grams.Trigrams, false)
	require.NoError(t, err)
	assert.Equal(t, grams.Trigrams, m.Order())
	assert.Equal(t, 27, m.Len())

	m, err = CreateGramsBySize(3, "en", dir, false)
	require.NoError(t, err)
	assert.Equal(t, grams.Trigrams, m.Order())

	_, err = CreateGramsBySize(7, "en", dir, false)
	var uoe *grams.UnsupportedOrderError
	require.True(t, errors.As(err, &uoe))
	assert.Equal(t, 7, uoe.Order)

	_, err = CreateGrams("en", dir, grams.Undefined, false)
	assert.True(t, errors.As(err, &uoe))

	_, err = CreateGrams("en", dir, grams.Trigrams, true)
	var missing *statfile.MissingResourceError
	require.True(t, errors.As(err, &missing))
	assert.True(t, missing.UseSpaces)
}

func TestLoadWordTree(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "en", "HELLO", "WORLD", "HELLOWORLD")

	tree, err := LoadWordTree("en", dir)
	require.NoError(t, err)
	assert.True(t, tree.ContainsWord("hello"))
	assert.True(t, tree.ContainsWord("world"))
	assert.True(t, tree.ContainsWord("hellow"))
	assert.False(t, tree.ContainsWord("xyz"))
}

func TestLoadWordTreeMissing(t *testing.T) {
	_, err := LoadWordTree("de", t.TempDir())

	var missing *statfile.MissingResourceError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, statfile.KindDictionary, missing.Kind)
	assert.Equal(t, "de", missing.Language)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "Dictionary_de.dic")
}

func TestCacheNormalizesOnce(t *testing.T) {
	dir := t.TempDir()
	writeStats(t, dir, "en", grams.Bigrams, false, "AB", 0.5)

	c, err := NewCache(dir, 4, 1e6)
	require.NoError(t, err)

	m, err := c.Grams("en", grams.Bigrams, false)
	require.NoError(t, err)
	assert.True(t, m.IsNormalized())
	assert.InDelta(t, 1e6, m.MaxValue(), 1e-6)

	again, err := c.Grams("en", grams.Bigrams, false)
	require.NoError(t, err)
	assert.Same(t, m, again)
	assert.Equal(t, 1, c.Len())
}

func TestCacheConcurrentLoadsShareModel(t *testing.T) {
	dir := t.TempDir()
	writeStats(t, dir, "en", grams.Tetragrams, false, "ABCD", 0.1)

	c, err := NewCache(dir, 0, 1e6)
	require.NoError(t, err)

	const workers = 16
	models := make([]*grams.Model, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := c.Grams("en", grams.Tetragrams, false)
			assert.NoError(t, err)
			models[i] = m
		}(i)
	}
	wg.Wait()

	for _, m := range models {
		assert.Same(t, models[0], m)
	}
}

func TestCachePreload(t *testing.T) {
	dir := t.TempDir()
	writeStats(t, dir, "en", grams.Unigrams, true, "AB", 0.5)
	writeStats(t, dir, "en", grams.Bigrams, true, "AB", 0.5)
	writeStats(t, dir, "en", grams.Trigrams, true, "AB", 0.5)

	c, err := NewCache(dir, 8, 0)
	require.NoError(t, err)

	require.NoError(t, c.Preload(context.Background(), "en", true,
		[]grams.Order{grams.Unigrams, grams.Bigrams, grams.Trigrams}))
	assert.Equal(t, []grams.Order{grams.Unigrams, grams.Bigrams, grams.Trigrams}, c.Loaded("en", true))
	assert.Empty(t, c.Loaded("en", false))

	err = c.Preload(context.Background(), "en", true, []grams.Order{grams.Hexagrams})
	var missing *statfile.MissingResourceError
	assert.True(t, errors.As(err, &missing))
}

func TestCacheWordTree(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "en", "CAT", "CAR", "DOG")

	c, err := NewCache(dir, 2, 0)
	require.NoError(t, err)

	tree, err := c.WordTree("en")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CAT", "CAR", "DOG"}, tree.ToList())

	again, err := c.WordTree("en")
	require.NoError(t, err)
	assert.Same(t, tree, again)

	_, err = c.WordTree("fr")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestInventory(t *testing.T) {
	dir := t.TempDir()
	writeStats(t, dir, "en", grams.Unigrams, false, "AB", 1)
	writeStats(t, dir, "en", grams.Trigrams, false, "AB", 1)
	writeStats(t, dir, "en", grams.Bigrams, true, "AB ", 1)
	writeStats(t, dir, "de", grams.Tetragrams, false, "AB", 1)
	writeDict(t, dir, "en", "AB")

	en := Inventory(dir, "en")
	assert.Equal(t, "en", en.Language)
	assert.Equal(t, []grams.Order{grams.Unigrams, grams.Trigrams}, en.Orders)
	assert.Equal(t, []grams.Order{grams.Bigrams}, en.SpaceOrders)
	assert.True(t, en.Dictionary)

	de := Inventory(dir, "de")
	assert.Equal(t, []grams.Order{grams.Tetragrams}, de.Orders)
	assert.Empty(t, de.SpaceOrders)
	assert.False(t, de.Dictionary)

	assert.Empty(t, Inventory(filepath.Join(dir, "missing"), "en").Orders)
}
