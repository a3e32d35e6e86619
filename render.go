package scopeline

// DefaultPrefix is the glyph drawn before every annotation label.
const DefaultPrefix = "  ¤ "

// Tracked is the live set of annotation handles for one document. It is
// exclusively owned by the document's renderer state; one instance exists
// per enabled document and is emptied at the start of every recompute cycle.
type Tracked struct {
	annotator Annotator
	handles   []Handle
}

// NewTracked returns an empty tracked set bound to the host annotator that
// will render and release its annotations.
func NewTracked(annotator Annotator) *Tracked {
	return &Tracked{annotator: annotator}
}

// Len returns the number of live annotations.
func (t *Tracked) Len() int {
	return len(t.handles)
}

// Renderer installs and clears annotations through a host Annotator,
// prefixing every label with a fixed glyph string.
type Renderer struct {
	prefix string
	log    Logger
}

// NewRenderer returns a Renderer using prefix before each label. An empty
// prefix selects DefaultPrefix.
func NewRenderer(prefix string, log Logger) *Renderer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Renderer{prefix: prefix, log: log}
}

// ClearAll destroys every annotation in the tracked set and empties it.
// Idempotent: clearing an empty set is a no-op.
func (r *Renderer) ClearAll(t *Tracked) {
	for _, h := range t.handles {
		t.annotator.Destroy(h)
	}
	t.handles = t.handles[:0]
}

// Install renders each record at its anchor and tracks the resulting
// handles. Records sharing an anchor are collapsed to the first one seen;
// extraction emits inner scopes first, so the innermost label wins a shared
// closing line. A failed Create skips that record and continues.
func (r *Renderer) Install(t *Tracked, records []Record) {
	seen := make(map[uint32]bool, len(records))
	for _, rec := range records {
		if seen[rec.Anchor] {
			continue
		}
		seen[rec.Anchor] = true

		h, err := t.annotator.Create(rec.Anchor, r.prefix+rec.Label)
		if err != nil {
			if r.log != nil {
				r.log.Printf("scopeline: annotation at %d: %v", rec.Anchor, err)
			}
			continue
		}
		t.handles = append(t.handles, h)
	}
}
