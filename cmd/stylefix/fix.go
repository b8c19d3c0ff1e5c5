package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsrustad/stylefix/internal/engine"
	"github.com/jsrustad/stylefix/internal/rules"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [path ...]",
	Short: "Repair style violations in place",
	Long:  "Scan files and rewrite them with every available fix applied. Files are replaced atomically and keep their permission bits.",
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().StringSlice("rule", nil, "restrict fixing to these rule IDs (repeatable)")
	fixCmd.Flags().Int("jobs", 0, "parallel workers (0 = one per CPU)")
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	ruleIDs, err := cmd.Flags().GetStringSlice("rule")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
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

	for _, id := range ruleIDs {
		if _, ok := rules.ByID(id); !ok {
			return fmt.Errorf("unknown rule %q", id)
		}
	}

	files, err := engine.Discover(cfg, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "no files to fix")
		}
		return nil
	}

	opts := engine.FixOptions{
		Jobs:           jobs,
		Rules:          ruleIDs,
		DryRun:         dryRun,
		MaxDiagnostics: maxDiagnostics,
	}
	work := func(sink engine.ProgressSink) (*engine.FixResult, error) {
		opts.Progress = sink
		return engine.FixFiles(cmd.Context(), cfg, files, opts)
	}

	var result *engine.FixResult
	if !quiet && shouldUseTUI(uiMode) {
		result, err = runWithUI("fixing "+cfg.Root, files, work)
	} else {
		result, err = work(nil)
	}
	if err != nil {
		return err
	}

	if !quiet {
		printFixResult(cmd, result, dryRun)
	}
	return nil
}

func printFixResult(cmd *cobra.Command, result *engine.FixResult, dryRun bool) {
	out := cmd.OutOrStdout()
	for _, file := range result.Files {
		for _, a := range file.Applied {
			fmt.Fprintf(out, "%s: %s: fixed %d violation(s)\n", file.Path, a.RuleID, a.Count)
		}
		for _, s := range file.Skipped {
			fmt.Fprintf(out, "%s: %s: skipped: %s\n", file.Path, s.RuleID, s.Reason)
		}
	}
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	fmt.Fprintf(out, "%s %d violation(s)\n", verb, result.TotalApplied)
}
