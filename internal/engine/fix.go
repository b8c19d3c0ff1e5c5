package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jsrustad/stylefix/internal/config"
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/parser"
	"github.com/jsrustad/stylefix/internal/rewrite"
	"github.com/jsrustad/stylefix/internal/rules"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// Fixing a violation can reveal another one (splitting declarators leaves
// statements sharing a line, for example), so the fixer iterates to a
// fixed point. The pass cap only guards against a non-converging fixer.
const maxFixPasses = 8

// FixOptions tunes a fix run.
type FixOptions struct {
	// Jobs caps parallelism; zero means GOMAXPROCS.
	Jobs int
	// Rules restricts fixing to these rule IDs; empty means every
	// enabled fixable rule.
	Rules []string
	// DryRun computes outcomes without touching the files.
	DryRun bool
	// MaxDiagnostics bounds each check pass; zero means 256.
	MaxDiagnostics int
	// Progress, when non-nil, receives per-file events.
	Progress ProgressSink
}

// AppliedFix counts repaired violations of one rule in one file.
type AppliedFix struct {
	RuleID string
	Count  int
}

// SkippedFix records why a rule's fixes were not applied to a file.
type SkippedFix struct {
	RuleID string
	Reason string
}

// FileOutcome summarizes fixing one file.
type FileOutcome struct {
	Path    string
	Applied []AppliedFix
	Skipped []SkippedFix
	Changed bool
}

// FixResult aggregates the outcomes of a fix run.
type FixResult struct {
	Files        []FileOutcome
	TotalApplied int
}

// FixFiles repairs every fixable violation in the given files. Each file
// is processed independently and in parallel; within a file, rules are
// applied one batch at a time against a fresh parse, so later rules see
// the text earlier rules produced.
func FixFiles(ctx context.Context, cfg *config.Config, paths []string, opts FixOptions) (*FixResult, error) {
	targets := fixableRules(cfg, opts.Rules)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	outcomes := make([]FileOutcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			publish(opts.Progress, Event{File: path, Stage: StageFix, Status: StatusWorking})
			out, err := fixFile(gctx, cfg, path, targets, opts)
			if err != nil {
				publish(opts.Progress, Event{File: path, Stage: StageFix, Status: StatusError})
				return fmt.Errorf("%s: %w", path, err)
			}
			outcomes[i] = out
			publish(opts.Progress, fixDone(out))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &FixResult{Files: outcomes}
	for _, out := range outcomes {
		for _, a := range out.Applied {
			result.TotalApplied += a.Count
		}
	}
	return result, nil
}

func fixDone(out FileOutcome) Event {
	fixed := 0
	for _, a := range out.Applied {
		fixed += a.Count
	}
	status := StatusClean
	if fixed > 0 {
		status = StatusFixed
	}
	return Event{File: out.Path, Stage: StageFix, Status: status, Violations: fixed}
}

// fixableRules resolves the rule subset for a fix run. Unknown IDs are
// ignored here; the CLI validates them before calling in.
func fixableRules(cfg *config.Config, only []string) []rules.Fixable {
	wanted := map[string]bool{}
	for _, id := range only {
		wanted[id] = true
	}
	var out []rules.Fixable
	for _, r := range rules.All() {
		f, ok := r.(rules.Fixable)
		if !ok || !cfg.RuleEnabled(r.ID()) {
			continue
		}
		if len(only) > 0 && !wanted[r.ID()] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func fixFile(ctx context.Context, cfg *config.Config, path string, targets []rules.Fixable, opts FixOptions) (FileOutcome, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from discovery
	if err != nil {
		return FileOutcome{}, err
	}
	settings := cfg.SettingsFor(path)
	out := FileOutcome{Path: path}

	before := map[string]int{}
	skipped := map[string]bool{}
	for pass := 0; pass < maxFixPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return FileOutcome{}, err
		}
		changedThisPass := false
		for _, rule := range targets {
			if skipped[rule.ID()] {
				continue
			}
			tree, file, diags := checkOnce(path, content, rule, opts)
			if pass == 0 {
				before[rule.ID()] = len(diags)
			}
			if len(diags) == 0 {
				continue
			}
			fixed, err := rewrite.ApplyBatch(ctx, tree, file, diags, rule.Fixer(), settings)
			if err != nil {
				var conflict *rewrite.ConflictError
				if errors.As(err, &conflict) {
					skipped[rule.ID()] = true
					out.Skipped = append(out.Skipped, SkippedFix{
						RuleID: rule.ID(),
						Reason: "conflicting fixes in one batch",
					})
					continue
				}
				return FileOutcome{}, err
			}
			if fixed == tree {
				continue
			}
			content = []byte(fixed.Text())
			changedThisPass = true
		}
		if !changedThisPass {
			break
		}
		out.Changed = true
	}

	// Applied counts are the violations that disappeared, which stays
	// honest when a fixer declines some of its diagnostics.
	for _, rule := range targets {
		if before[rule.ID()] == 0 {
			continue
		}
		_, _, remaining := checkOnce(path, content, rule, opts)
		if n := before[rule.ID()] - len(remaining); n > 0 {
			out.Applied = append(out.Applied, AppliedFix{RuleID: rule.ID(), Count: n})
		}
	}

	if out.Changed && !opts.DryRun {
		if err := writeFileAtomic(path, content); err != nil {
			return FileOutcome{}, err
		}
	}
	return out, nil
}

// checkOnce parses content and runs a single rule over it.
func checkOnce(path string, content []byte, rule rules.Rule, opts FixOptions) (tree *syntax.Tree, file *source.File, diags []diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.Add(path, content, 0)
	file = fs.Get(id)
	t := parser.ParseFile(file, parser.Options{})
	bag := diag.NewBag(fixMaxDiagnostics(opts))
	rule.Check(t, file, diag.BagReporter{Bag: bag})
	bag.Sort()
	return t, file, bag.Items()
}

func fixMaxDiagnostics(opts FixOptions) int {
	if opts.MaxDiagnostics > 0 {
		return opts.MaxDiagnostics
	}
	return 256
}

// writeFileAtomic replaces path's content via a temp file and rename,
// keeping the original permission bits.
func writeFileAtomic(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".stylefix-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
