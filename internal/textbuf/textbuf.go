// Package textbuf provides an offset/line index over an in-memory source
// buffer. It backs the position-mapping primitives the annotation engine
// expects from a host document.
package textbuf

import (
	"sort"
	"strings"
)

// Buffer holds source bytes plus a line-start index. The index is rebuilt
// whenever the source is replaced; offsets are byte offsets, lines 1-based.
type Buffer struct {
	src        []byte
	lineStarts []uint32
}

// New returns a Buffer over src.
func New(src []byte) *Buffer {
	b := &Buffer{}
	b.SetSource(src)
	return b
}

// SetSource replaces the buffer contents and rebuilds the line index.
func (b *Buffer) SetSource(src []byte) {
	b.src = src
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i, c := range src {
		if c == '\n' {
			b.lineStarts = append(b.lineStarts, uint32(i+1))
		}
	}
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() uint32 {
	return uint32(len(b.src))
}

// Source returns the underlying bytes. Callers must not mutate them.
func (b *Buffer) Source() []byte {
	return b.src
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// LineAt returns the 1-based line containing offset. Offsets at or past the
// end of the buffer map to the last line; a newline belongs to the line it
// terminates.
func (b *Buffer) LineAt(offset uint32) int {
	if offset >= b.Len() {
		return len(b.lineStarts)
	}
	// First line whose start is past offset; offset lives on the one before.
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	})
	return i
}

// ColumnAt returns the 0-based byte column of offset within its line.
func (b *Buffer) ColumnAt(offset uint32) int {
	if offset > b.Len() {
		offset = b.Len()
	}
	line := b.LineAt(offset)
	return int(offset - b.lineStarts[line-1])
}

// OffsetAt is the inverse of LineAt/ColumnAt: the byte offset of the given
// 1-based line and 0-based column, clamped to the line's extent.
func (b *Buffer) OffsetAt(line, column int) uint32 {
	start := b.LineStartOffset(line)
	end := b.LineEndOffset(line)
	off := start + uint32(column)
	if off > end {
		return end
	}
	return off
}

// LineStartOffset returns the offset of the first byte of the 1-based line,
// clamped to the valid line range.
func (b *Buffer) LineStartOffset(line int) uint32 {
	if line < 1 {
		line = 1
	}
	if line > len(b.lineStarts) {
		line = len(b.lineStarts)
	}
	return b.lineStarts[line-1]
}

// LineEndOffset returns the offset just past the last content byte of the
// 1-based line: the position of its newline, or the buffer end for the last
// line. This is where a trailing annotation anchors.
func (b *Buffer) LineEndOffset(line int) uint32 {
	if line < 1 {
		line = 1
	}
	if line >= len(b.lineStarts) {
		return b.Len()
	}
	return b.lineStarts[line] - 1
}

// LineText returns the text of the 1-based line without its newline.
func (b *Buffer) LineText(line int) string {
	start := b.LineStartOffset(line)
	end := b.LineEndOffset(line)
	return string(b.src[start:end])
}

// TrimmedLine returns the line's text with surrounding whitespace removed.
func (b *Buffer) TrimmedLine(line int) string {
	return strings.TrimSpace(b.LineText(line))
}
