package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile(t *testing.T) {
	for path, want := range map[string]string{
		"main.go":       "go",
		"src/APP.PY":    "python",
		"lib.rs":        "rust",
		"component.tsx": "typescript",
		"legacy.cc":     "cpp",
	} {
		got, ok := ForFile(path)
		require.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}

	_, ok := ForFile("notes.txt")
	assert.False(t, ok)
}

func TestGrammar(t *testing.T) {
	for _, name := range Supported() {
		g, ok := Grammar(name)
		require.True(t, ok, name)
		assert.NotNil(t, g, name)
	}

	_, ok := Grammar("cobol")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	tree, err := Parse(context.Background(), []byte("package p\n\nvar x = 1\n"), "go")
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, "source_file", tree.RootNode().Type())
}

func TestParse_UnsupportedLanguage(t *testing.T) {
	_, err := Parse(context.Background(), []byte("x"), "cobol")
	require.Error(t, err)
}
