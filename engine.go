package scopeline

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Engine ties the target table, extractor, and renderer together and keeps
// per-document annotation state. The host drives it with two events per
// document — DocumentReady after the first parse and DocumentChanged after
// every reparse — and both run a full clear-extract-install cycle.
//
// Documents are independent; the host serializes events per document. The
// engine's own map is guarded only so Enable/Disable for different
// documents may run from different goroutines.
type Engine struct {
	minLines  int
	prefix    string
	targets   TargetTable
	log       Logger
	extractor *Extractor
	renderer  *Renderer

	mu   sync.Mutex
	docs map[string]*docState
}

// docState is the engine's bookkeeping for one enabled document.
type docState struct {
	doc      Document
	language string
	tracked  *Tracked
}

// DefaultMinLines is the span a scope must strictly exceed to be annotated.
const DefaultMinLines = 5

// Option configures an Engine.
type Option func(*Engine)

// WithMinLines sets the minimum line span. A scope is annotated only when
// its end line minus its start line is strictly greater than n.
func WithMinLines(n int) Option {
	return func(e *Engine) {
		e.minLines = n
	}
}

// WithPrefix sets the string drawn before every annotation label.
func WithPrefix(prefix string) Option {
	return func(e *Engine) {
		e.prefix = prefix
	}
}

// WithTargets overlays a user target table onto the built-in defaults.
// Languages present in the table replace their default kind lists.
func WithTargets(targets TargetTable) Option {
	return func(e *Engine) {
		e.targets.Merge(targets)
	}
}

// WithLogger routes swallowed diagnostics to log.
func WithLogger(log Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine with the default target table, threshold, and
// prefix, then applies opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		minLines: DefaultMinLines,
		targets:  DefaultTargets(),
		docs:     make(map[string]*docState),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.extractor = NewExtractor(e.targets, e.log)
	e.renderer = NewRenderer(e.prefix, e.log)
	return e
}

// MinLines returns the configured threshold.
func (e *Engine) MinLines() int {
	return e.minLines
}

// Enable starts annotating the document identified by id. Subsequent
// DocumentReady/DocumentChanged events for id will recompute annotations
// through annotator. Enabling an already-enabled id clears its annotations
// and rebinds it.
func (e *Engine) Enable(id string, doc Document, language string, annotator Annotator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prev, ok := e.docs[id]; ok {
		e.renderer.ClearAll(prev.tracked)
	}
	e.docs[id] = &docState{
		doc:      doc,
		language: language,
		tracked:  NewTracked(annotator),
	}
}

// Disable clears the document's annotations and forgets it. Disabling an
// unknown id is a no-op.
func (e *Engine) Disable(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	state, ok := e.docs[id]
	if !ok {
		return
	}
	e.renderer.ClearAll(state.tracked)
	delete(e.docs, id)
}

// Enabled reports whether id is currently annotated.
func (e *Engine) Enabled(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.docs[id]
	return ok
}

// AnnotationCount returns the number of live annotations for id.
func (e *Engine) AnnotationCount(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	state, ok := e.docs[id]
	if !ok {
		return 0
	}
	return state.tracked.Len()
}

// DocumentReady runs the first recompute cycle for id against tree.
// Events for ids that are not enabled are ignored.
func (e *Engine) DocumentReady(id string, tree *sitter.Tree) {
	e.recompute(id, tree)
}

// DocumentChanged reruns the recompute cycle for id against the reparsed
// tree. This is a full replace, not a diff: old annotations are destroyed
// before the new set is installed.
func (e *Engine) DocumentChanged(id string, tree *sitter.Tree) {
	e.recompute(id, tree)
}

func (e *Engine) recompute(id string, tree *sitter.Tree) {
	e.mu.Lock()
	state, ok := e.docs[id]
	e.mu.Unlock()
	if !ok || tree == nil {
		return
	}
	e.renderer.ClearAll(state.tracked)
	records := e.extractor.Extract(tree, state.doc, state.language, e.minLines)
	e.renderer.Install(state.tracked, records)
}
