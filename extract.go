package scopeline

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/talw/scopeline/internal/lang"
)

// Extractor computes annotation records from a syntax tree. It resolves
// scope node kinds through a TargetTable and matches all kinds in a single
// compiled query, so matches across kinds arrive in document order.
type Extractor struct {
	targets TargetTable
	log     Logger
}

// NewExtractor returns an Extractor over the given target table. A nil
// logger discards diagnostics.
func NewExtractor(targets TargetTable, log Logger) *Extractor {
	return &Extractor{targets: targets, log: log}
}

// scopePattern builds one query source matching every kind, e.g.
//
//	(function_declaration) @scope
//	(if_statement) @scope
func scopePattern(kinds []string) string {
	var b strings.Builder
	for _, kind := range kinds {
		b.WriteString("(")
		b.WriteString(kind)
		b.WriteString(") @scope\n")
	}
	return b.String()
}

// Extract returns one Record per scope node whose line span strictly
// exceeds minLines. A node spanning exactly minLines lines is excluded.
//
// Records come out in reverse of match order, i.e. bottom-of-document
// first. Installing in that order means an annotation never shifts the
// anchors of annotations still waiting to be installed.
//
// An unknown language key or a query that fails to compile yields an empty
// result; extraction never fails a recompute cycle.
func (x *Extractor) Extract(tree *sitter.Tree, doc Document, language string, minLines int) []Record {
	kinds := x.targets.For(language)
	if len(kinds) == 0 {
		return nil
	}
	grammar, ok := lang.Grammar(language)
	if !ok {
		return nil
	}

	q, err := sitter.NewQuery([]byte(scopePattern(kinds)), grammar)
	if err != nil {
		x.logf("scopeline: scope query for %s: %v", language, err)
		return nil
	}
	defer q.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q, tree.RootNode())

	var nodes []*sitter.Node
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range m.Captures {
			nodes = append(nodes, capture.Node)
		}
	}

	records := make([]Record, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		node := nodes[i]
		startLine := doc.LineAt(node.StartByte())
		endLine := doc.LineAt(node.EndByte())
		if endLine-startLine <= minLines {
			continue
		}
		records = append(records, Record{
			Anchor: doc.LineEndOffset(endLine),
			Label:  strings.TrimSpace(doc.LineText(startLine)),
		})
	}
	return records
}

func (x *Extractor) logf(format string, args ...any) {
	if x.log != nil {
		x.log.Printf(format, args...)
	}
}
