package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/diagfmt"
	"github.com/jsrustad/stylefix/internal/engine"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path ...]",
	Short: "Scan sources for style violations",
	Long:  "Scan files, directories, or glob patterns for style violations. With no arguments the whole project is scanned.",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = one per CPU)")
	checkCmd.Flags().Bool("no-cache", false, "disable the scan result cache")
}

type scanOutput struct {
	fileSet *source.FileSet
	results []engine.FileResult
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "sarif":
	default:
		return fmt.Errorf("invalid --format value %q (expected pretty|json|sarif)", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	colored, err := colorFromFlags(cmd)
	if err != nil {
		return err
	}
	quiet, err := persistentBool(cmd, "quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := persistentInt(cmd, "max-diagnostics")
	if err != nil {
		return err
	}
	uiValue, err := persistentString(cmd, "ui")
	if err != nil {
		return err
	}
	uiMode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	files, err := engine.Discover(cfg, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "no files to check")
		}
		return nil
	}

	opts := engine.ScanOptions{Jobs: jobs, MaxDiagnostics: maxDiagnostics}
	if !noCache {
		if cache, err := engine.Open("stylefix"); err == nil {
			opts.Cache = cache
		}
	}

	scan := func(sink engine.ProgressSink) (scanOutput, error) {
		opts.Progress = sink
		fileSet, results, err := engine.Scan(cmd.Context(), cfg, files, opts)
		return scanOutput{fileSet: fileSet, results: results}, err
	}

	var out scanOutput
	if format == "pretty" && !quiet && shouldUseTUI(uiMode) {
		out, err = runWithUI("checking "+cfg.Root, files, scan)
	} else {
		out, err = scan(nil)
	}
	if err != nil {
		return err
	}

	total := diag.NewBag(0)
	for _, r := range out.results {
		total.Merge(r.Bag)
	}
	total.Sort()
	total.Dedup()

	switch format {
	case "json":
		err = diagfmt.JSON(cmd.OutOrStdout(), total, out.fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	case "sarif":
		err = diagfmt.Sarif(cmd.OutOrStdout(), total, out.fileSet, diagfmt.SarifRunMeta{
			ToolVersion: version.Version,
		})
	default:
		if !quiet {
			diagfmt.Pretty(os.Stdout, total, out.fileSet, diagfmt.PrettyOpts{
				Color:     colored,
				PathMode:  diagfmt.PathModeRelative,
				ShowNotes: true,
			})
			diagfmt.Summary(os.Stdout, total, colored)
		}
	}
	if err != nil {
		return err
	}
	if total.Len() > 0 {
		return errViolationsFound
	}
	return nil
}

func colorFromFlags(cmd *cobra.Command) (bool, error) {
	value, err := persistentString(cmd, "color")
	if err != nil {
		return false, err
	}
	return readColorMode(value)
}
