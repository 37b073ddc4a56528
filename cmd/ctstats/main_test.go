package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/langstats/internal/utils"
	"github.com/bastiangx/langstats/pkg/grams"
	"github.com/bastiangx/langstats/pkg/langstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintDiagnostics(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		grams.FileName("de", grams.Trigrams, false),
		grams.FileName("de", grams.Bigrams, true),
		langstats.DictionaryFileName("de"),
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	pr, err := utils.NewPathResolver("")
	require.NoError(t, err)

	var buf bytes.Buffer
	printDiagnostics(&buf, pr.DiagnosePathIssues(dir), "de", "")
	out := buf.String()

	assert.Contains(t, out, "builtin defaults")
	assert.Contains(t, out, "(found: true)")
	assert.Contains(t, out, "orders:    [trigrams]")
	assert.Contains(t, out, "space:     [bigrams]")
	assert.Contains(t, out, "dictionary: true")
}
