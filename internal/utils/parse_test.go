package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableGetters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[stats]
language = "de"
orders = [3, 4]
mixed = [3, "x"]
normalize_max = 1000
cache_size = "big"
use_spaces = true
`), 0o644))

	table, err := ReadTOMLTable(path)
	require.NoError(t, err)
	stats, ok := table.Section("stats")
	require.True(t, ok)

	lang, ok := stats.Str("language")
	assert.True(t, ok)
	assert.Equal(t, "de", lang)

	orders, ok := stats.Ints("orders")
	assert.True(t, ok)
	assert.Equal(t, []int{3, 4}, orders)

	_, ok = stats.Ints("mixed")
	assert.False(t, ok)

	normMax, ok := stats.Float("normalize_max")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, normMax)

	_, ok = stats.Int("cache_size")
	assert.False(t, ok, "wrong type")

	spaces, ok := stats.Bool("use_spaces")
	assert.True(t, ok)
	assert.True(t, spaces)

	_, ok = table.Section("dict")
	assert.False(t, ok)
}
