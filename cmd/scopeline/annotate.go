package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/talw/scopeline"
	"github.com/talw/scopeline/internal/lang"
	"github.com/talw/scopeline/internal/textbuf"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <file>",
	Short: "Print a file with scope annotations on closing lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotate,
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List bundled languages",
	Run: func(cmd *cobra.Command, args []string) {
		names := lang.Supported()
		sort.Strings(names)
		fmt.Println(strings.Join(names, "\n"))
	},
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	path := args[0]
	language, ok := lang.ForFile(path)
	if !ok {
		return fmt.Errorf("unsupported file type: %s", path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	engine, err := buildEngine()
	if err != nil {
		return err
	}

	buf := textbuf.New(src)
	annot := newTermAnnotator()
	engine.Enable(path, buf, language, annot)

	tree, err := lang.Parse(cmd.Context(), src, language)
	if err != nil {
		return err
	}
	engine.DocumentReady(path, tree)

	fmt.Fprint(cmd.OutOrStdout(), renderAnnotated(buf, annot, annotationStyle()))
	return nil
}

// annotationStyle returns the comment-like style for annotation text.
func annotationStyle() lipgloss.Style {
	if flagNoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(flagColor)).Italic(true)
}

// termAnnotator implements scopeline.Annotator by collecting annotations in
// memory; renderAnnotated splices them into the printed buffer afterwards.
type termAnnotator struct {
	next Handle
	anns map[Handle]annotation
}

// Handle aliases the engine's handle type for brevity.
type Handle = scopeline.Handle

type annotation struct {
	offset uint32
	text   string
}

func newTermAnnotator() *termAnnotator {
	return &termAnnotator{anns: make(map[Handle]annotation)}
}

func (a *termAnnotator) Create(offset uint32, text string) (Handle, error) {
	a.next++
	a.anns[a.next] = annotation{offset: offset, text: text}
	return a.next, nil
}

func (a *termAnnotator) Destroy(h Handle) {
	delete(a.anns, h)
}

// byOffset groups live annotation text by anchor offset.
func (a *termAnnotator) byOffset() map[uint32][]string {
	out := make(map[uint32][]string, len(a.anns))
	for _, ann := range a.anns {
		out[ann.offset] = append(out[ann.offset], ann.text)
	}
	return out
}

// renderAnnotated writes the buffer line by line, appending styled
// annotation text at each line end that carries one.
func renderAnnotated(buf *textbuf.Buffer, annot *termAnnotator, style lipgloss.Style) string {
	anns := annot.byOffset()
	var b strings.Builder
	for line := 1; line <= buf.LineCount(); line++ {
		b.WriteString(buf.LineText(line))
		for _, text := range anns[buf.LineEndOffset(line)] {
			b.WriteString(style.Render(text))
		}
		if line < buf.LineCount() {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
