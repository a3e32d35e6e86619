package scopeline

// Record is one pending annotation produced by extraction. Anchor is the
// byte offset of the end of the scope's closing line; Label is the trimmed
// text of the scope's opening line. Records are ephemeral: built fresh each
// recompute cycle and discarded after installation.
type Record struct {
	Anchor uint32
	Label  string
}

// Handle identifies a rendered annotation resource owned by the host.
type Handle int64

// Annotator is the host rendering primitive: it draws text at a buffer
// offset and releases it on demand. Implementations own the visual
// resource; the renderer owns its lifecycle.
type Annotator interface {
	Create(offset uint32, text string) (Handle, error)
	Destroy(handle Handle)
}

// Document exposes the host's position-mapping primitives over a source
// buffer. Lines are 1-based; offsets are byte offsets. The engine treats
// documents as read-only; the host mutates them between events.
type Document interface {
	Len() uint32
	// LineAt returns the 1-based line containing offset. Offsets at or past
	// the buffer end map to the last line.
	LineAt(offset uint32) int
	// LineEndOffset returns the offset just past the last content byte of
	// the line, before its newline.
	LineEndOffset(line int) uint32
	LineText(line int) string
}

// Logger receives diagnostics for conditions the engine swallows, such as
// query construction failures. A nil Logger discards them.
type Logger interface {
	Printf(format string, args ...any)
}
