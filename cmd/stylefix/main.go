package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jsrustad/stylefix/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stylefix",
	Short: "Style checker and auto-fixer for C# sources",
	Long:  "stylefix scans C# sources for layout violations and can rewrite them in place, preserving every token and comment.",
}

// errViolationsFound signals a clean run that still found violations, so
// main can exit nonzero without printing a redundant error.
var errViolationsFound = errors.New("violations found")

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("ui", "auto", "interactive progress display (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "path to stylefix.toml (default: walk up from the working directory)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 256, "maximum number of diagnostics to show per file")

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errViolationsFound) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "stylefix:", err)
		os.Exit(2)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
