package main

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talw/scopeline/internal/textbuf"
)

func TestTermAnnotator_CreateDestroy(t *testing.T) {
	a := newTermAnnotator()

	h1, err := a.Create(10, "  ¤ func f() {")
	require.NoError(t, err)
	h2, err := a.Create(20, "  ¤ if x {")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.Len(t, a.anns, 2)

	a.Destroy(h1)
	assert.Len(t, a.anns, 1)

	// Destroying a released handle is harmless.
	a.Destroy(h1)
	assert.Len(t, a.anns, 1)
}

func TestRenderAnnotated_SplicesAtLineEnds(t *testing.T) {
	src := "func f() {\n\tbody\n}\n"
	buf := textbuf.New([]byte(src))
	a := newTermAnnotator()
	_, err := a.Create(buf.LineEndOffset(3), "  ¤ func f() {")
	require.NoError(t, err)

	out := renderAnnotated(buf, a, lipgloss.NewStyle())
	assert.Equal(t, "func f() {\n\tbody\n}  ¤ func f() {\n", out)
}

func TestRenderAnnotated_NoAnnotationsEchoesSource(t *testing.T) {
	src := "a\nb\nc"
	buf := textbuf.New([]byte(src))
	out := renderAnnotated(buf, newTermAnnotator(), lipgloss.NewStyle())
	assert.Equal(t, src, out)
}
