package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/talw/scopeline/internal/lang"
	"github.com/talw/scopeline/internal/textbuf"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-annotate a file every time it is written",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	language, ok := lang.ForFile(path)
	if !ok {
		return fmt.Errorf("unsupported file type: %s", path)
	}

	engine, err := buildEngine()
	if err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	buf := textbuf.New(src)
	annot := newTermAnnotator()
	engine.Enable(path, buf, language, annot)

	tree, err := lang.Parse(cmd.Context(), src, language)
	if err != nil {
		return err
	}
	engine.DocumentReady(path, tree)
	printCycle(cmd, path, buf, annot)

	// Watch the directory, not the file: editors that save atomically
	// replace the file, which drops a watch registered on the file itself.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	for {
		select {
		case <-cmd.Context().Done():
			engine.Disable(path)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Give the editor a moment to finish the write.
			time.Sleep(20 * time.Millisecond)

			src, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "scopeline: rereading %s: %v\n", path, err)
				continue
			}
			buf.SetSource(src)
			tree, err := lang.Parse(cmd.Context(), src, language)
			if err != nil {
				fmt.Fprintf(os.Stderr, "scopeline: reparsing %s: %v\n", path, err)
				continue
			}
			engine.DocumentChanged(path, tree)
			printCycle(cmd, path, buf, annot)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "scopeline: watcher: %v\n", err)
		}
	}
}

func printCycle(cmd *cobra.Command, path string, buf *textbuf.Buffer, annot *termAnnotator) {
	fmt.Fprintf(os.Stderr, "-- %s %s\n", path, time.Now().Format("15:04:05"))
	fmt.Fprintln(cmd.OutOrStdout(), renderAnnotated(buf, annot, annotationStyle()))
}
