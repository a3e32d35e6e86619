package scopeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goNestedSrc = `package p

func outer() {
	if true {
		_ = 1
		_ = 2
		_ = 3
		_ = 4
		_ = 5
		_ = 6
	}
	_ = 7
	_ = 8
}
`

func TestNew_Defaults(t *testing.T) {
	e := New()
	assert.Equal(t, DefaultMinLines, e.MinLines())
	assert.NotNil(t, e.extractor)
	assert.NotNil(t, e.renderer)
}

func TestWithMinLines(t *testing.T) {
	e := New(WithMinLines(10))
	assert.Equal(t, 10, e.MinLines())
}

func TestEngine_EnableDisable(t *testing.T) {
	e := New()
	fake := newFakeAnnotator()
	tree, buf := parseSource(t, goNestedSrc, "go")

	e.Enable("a.go", buf, "go", fake)
	assert.True(t, e.Enabled("a.go"))

	e.DocumentReady("a.go", tree)
	require.Equal(t, 2, e.AnnotationCount("a.go"))
	require.Len(t, fake.live, 2)

	e.Disable("a.go")
	assert.False(t, e.Enabled("a.go"))
	assert.Zero(t, e.AnnotationCount("a.go"))
	assert.Empty(t, fake.live, "disable must release every annotation")

	// Disabling again is a no-op.
	e.Disable("a.go")
}

func TestEngine_EventsForUnknownDocumentIgnored(t *testing.T) {
	e := New()
	tree, _ := parseSource(t, goNestedSrc, "go")

	e.DocumentReady("never-enabled.go", tree)
	e.DocumentChanged("never-enabled.go", tree)
	assert.Zero(t, e.AnnotationCount("never-enabled.go"))
}

func TestEngine_NilTreeIgnored(t *testing.T) {
	e := New()
	fake := newFakeAnnotator()
	_, buf := parseSource(t, goNestedSrc, "go")

	e.Enable("a.go", buf, "go", fake)
	e.DocumentChanged("a.go", nil)
	assert.Zero(t, e.AnnotationCount("a.go"))
}

func TestEngine_RecomputeIdempotent(t *testing.T) {
	e := New()
	fake := newFakeAnnotator()
	tree, buf := parseSource(t, goNestedSrc, "go")

	e.Enable("a.go", buf, "go", fake)
	e.DocumentReady("a.go", tree)
	first := fake.liveAnns()

	e.DocumentChanged("a.go", tree)
	second := fake.liveAnns()

	// Same (anchor, label) pairs both cycles; handles may differ.
	assert.Equal(t, first, second)
	assert.Equal(t, len(first), e.AnnotationCount("a.go"))
}

func TestEngine_ChangedDocumentReplacesAnnotations(t *testing.T) {
	e := New()
	fake := newFakeAnnotator()

	tree, buf := parseSource(t, goNestedSrc, "go")
	e.Enable("a.go", buf, "go", fake)
	e.DocumentReady("a.go", tree)
	require.Equal(t, 2, e.AnnotationCount("a.go"))

	// Shrink the document below the threshold and reparse.
	shrunk := "package p\n\nfunc small() {\n\t_ = 1\n}\n"
	buf.SetSource([]byte(shrunk))
	tree2, _ := parseSource(t, shrunk, "go")
	e.DocumentChanged("a.go", tree2)

	assert.Zero(t, e.AnnotationCount("a.go"))
	assert.Empty(t, fake.live, "stale annotations must not survive a cycle")
}

func TestEngine_ReenableMatchesFreshEnable(t *testing.T) {
	tree, buf := parseSource(t, goNestedSrc, "go")

	fresh := newFakeAnnotator()
	e1 := New()
	e1.Enable("a.go", buf, "go", fresh)
	e1.DocumentReady("a.go", tree)

	toggled := newFakeAnnotator()
	e2 := New()
	e2.Enable("a.go", buf, "go", toggled)
	e2.DocumentReady("a.go", tree)
	e2.Disable("a.go")
	require.Empty(t, toggled.live)
	e2.Enable("a.go", buf, "go", toggled)
	e2.DocumentReady("a.go", tree)

	assert.Equal(t, fresh.liveAnns(), toggled.liveAnns())
}

func TestEngine_InstallOrderIsBottomUpFromMatchOrder(t *testing.T) {
	e := New()
	fake := newFakeAnnotator()
	tree, buf := parseSource(t, goNestedSrc, "go")

	e.Enable("a.go", buf, "go", fake)
	e.DocumentReady("a.go", tree)

	// The inner if (matched after the outer func) is installed first.
	require.Len(t, fake.createLog, 2)
	assert.Contains(t, fake.createLog[0].text, "if true {")
	assert.Contains(t, fake.createLog[1].text, "func outer() {")
}

func TestEngine_WithPrefix(t *testing.T) {
	e := New(WithPrefix(" » "))
	fake := newFakeAnnotator()
	tree, buf := parseSource(t, goNestedSrc, "go")

	e.Enable("a.go", buf, "go", fake)
	e.DocumentReady("a.go", tree)

	require.NotEmpty(t, fake.createLog)
	assert.Contains(t, fake.createLog[0].text, " » if true {")
}

func TestEngine_WithTargetsOverlaysDefaults(t *testing.T) {
	// Restrict Go to functions only; the long if must not annotate.
	e := New(WithTargets(TargetTable{"go": {"function_declaration"}}))
	fake := newFakeAnnotator()
	tree, buf := parseSource(t, goNestedSrc, "go")

	e.Enable("a.go", buf, "go", fake)
	e.DocumentReady("a.go", tree)

	require.Equal(t, 1, e.AnnotationCount("a.go"))
	assert.Contains(t, fake.liveAnns()[0].text, "func outer() {")
}

func TestEngine_UnsupportedLanguageYieldsNoAnnotations(t *testing.T) {
	e := New()
	fake := newFakeAnnotator()
	tree, buf := parseSource(t, goNestedSrc, "go")

	e.Enable("a.txt", buf, "plaintext", fake)
	e.DocumentReady("a.txt", tree)
	assert.Zero(t, e.AnnotationCount("a.txt"))
}

func TestEngine_DocumentsAreIndependent(t *testing.T) {
	e := New()
	fakeA := newFakeAnnotator()
	fakeB := newFakeAnnotator()
	tree, buf := parseSource(t, goNestedSrc, "go")

	e.Enable("a.go", buf, "go", fakeA)
	e.Enable("b.go", buf, "go", fakeB)
	e.DocumentReady("a.go", tree)
	e.DocumentReady("b.go", tree)

	e.Disable("a.go")
	assert.Empty(t, fakeA.live)
	assert.Len(t, fakeB.live, 2, "disabling one document must not touch another")
}
