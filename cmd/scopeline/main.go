package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talw/scopeline"
)

var (
	flagMinLines int
	flagPrefix   string
	flagTargets  string
	flagColor    string
	flagNoColor  bool
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "scopeline",
	Short:         "Inline scope echo for source files",
	Long:          "Scopeline parses source files with tree-sitter and echoes the first line of every long block as a trailing annotation on the block's closing line.",
	SilenceErrors: true,
	SilenceUsage:  true,
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagMinLines, "min-lines", scopeline.DefaultMinLines, "annotate blocks spanning strictly more than this many lines")
	rootCmd.PersistentFlags().StringVar(&flagPrefix, "prefix", scopeline.DefaultPrefix, "string drawn before each annotation label")
	rootCmd.PersistentFlags().StringVar(&flagTargets, "targets", "", "YAML file overlaying the per-language scope node kinds")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "245", "annotation color (ANSI 256 index or hex)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "print annotations without styling")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log swallowed diagnostics to stderr")

	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(languagesCmd)
}

// buildEngine assembles an Engine from the persistent flags.
func buildEngine() (*scopeline.Engine, error) {
	opts := []scopeline.Option{
		scopeline.WithMinLines(flagMinLines),
		scopeline.WithPrefix(flagPrefix),
	}
	if flagTargets != "" {
		targets, err := scopeline.LoadTargets(flagTargets)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scopeline.WithTargets(targets))
	}
	if flagVerbose {
		opts = append(opts, scopeline.WithLogger(stderrLogger{}))
	}
	return scopeline.New(opts...), nil
}

// stderrLogger satisfies scopeline.Logger for --verbose.
type stderrLogger struct{}

func (stderrLogger) Printf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
