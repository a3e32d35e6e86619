// Package scopeline annotates source buffers with an inline scope echo:
// when a structural block (function, loop, conditional, mapping entry)
// spans more than a configured number of lines, the block's first line is
// redisplayed as a trailing annotation on its closing line. A reader
// scrolled past a block's opening can still see what scope they are in
// without scrolling up.
//
// Scopes are identified by tree-sitter node kind. Ten grammars are bundled:
// Go, TypeScript, JavaScript, Python, Rust, C, C++, Java, PHP, and Ruby.
// Which kinds count as scopes per language lives in a [TargetTable]; adding
// a language is a data addition, not code.
//
// # Recompute cycle
//
// The engine is event-driven and synchronous. On every "document ready" or
// "document changed" event it clears the document's previous annotations,
// runs one combined query for all registered kinds over the current tree,
// filters matches by line span, and installs the survivors bottom-up. This
// is a full replace each cycle, not an incremental diff — tree queries are
// cheap relative to edit frequency.
//
// # Usage
//
// The host supplies three collaborators: a parsed tree, a [Document] for
// position mapping, and an [Annotator] that draws text at an offset.
//
//	e := scopeline.New(scopeline.WithMinLines(5))
//	e.Enable("main.go", doc, "go", annotator)
//	e.DocumentReady("main.go", tree)
//	...
//	e.DocumentChanged("main.go", reparsed)
//	...
//	e.Disable("main.go")
//
// internal/textbuf provides a ready-made Document over a byte slice, and
// cmd/scopeline is a terminal host that annotates files on disk.
package scopeline
