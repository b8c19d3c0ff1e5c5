package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jsrustad/stylefix/internal/config"
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/parser"
	"github.com/jsrustad/stylefix/internal/rules"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// ScanOptions tunes a project scan.
type ScanOptions struct {
	// Jobs caps scan parallelism; zero means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics bounds the per-file bag; zero means 256.
	MaxDiagnostics int
	// Cache, when non-nil, lets unchanged files skip re-checking.
	Cache *Cache
	// Progress, when non-nil, receives per-file events.
	Progress ProgressSink
}

func (o ScanOptions) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func (o ScanOptions) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return 256
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Tree      *syntax.Tree
	Bag       *diag.Bag
	FromCache bool
}

// enabledRules filters the registry through the manifest.
func enabledRules(cfg *config.Config) []rules.Rule {
	all := rules.All()
	out := make([]rules.Rule, 0, len(all))
	for _, r := range all {
		if cfg.RuleEnabled(r.ID()) {
			out = append(out, r)
		}
	}
	return out
}

// Scan parses and checks every path in parallel. Results are indexed by
// input position, so the output order matches paths regardless of which
// goroutine finishes first. Unreadable files produce an IOLoadFile
// diagnostic instead of failing the whole scan.
func Scan(ctx context.Context, cfg *config.Config, paths []string, opts ScanOptions) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSetWithBase(cfg.Root)
	checked := enabledRules(cfg)
	fingerprint := runFingerprint(cfg, checked)

	// The FileSet is not safe for concurrent mutation; load up front.
	fileIDs := make(map[string]source.FileID, len(paths))
	loadErrors := make(map[string]error, len(paths))
	for _, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), max(len(paths), 1)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			publish(opts.Progress, Event{File: path, Stage: StageScan, Status: StatusWorking})
			bag := diag.NewBag(opts.maxDiagnostics())
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.NewError(diag.IOLoadFile, source.Span{}, loadErr.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				publish(opts.Progress, Event{File: path, Stage: StageScan, Status: StatusError})
				return nil
			}

			file := fileSet.Get(fileIDs[path])
			key := fileKey(file.Hash, fingerprint)
			if diags, hit := opts.Cache.lookup(key, file.ID); hit {
				for _, d := range diags {
					bag.Add(d)
				}
				results[i] = FileResult{Path: path, FileID: file.ID, Bag: bag, FromCache: true}
				publish(opts.Progress, scanDone(path, bag.Len()))
				return nil
			}

			rep := diag.BagReporter{Bag: bag}
			tree := parser.ParseFile(file, parser.Options{Reporter: rep})
			for _, rule := range checked {
				rule.Check(tree, file, rep)
			}
			bag.Sort()
			opts.Cache.store(key, bag.Items())
			results[i] = FileResult{Path: path, FileID: file.ID, Tree: tree, Bag: bag}
			publish(opts.Progress, scanDone(path, bag.Len()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

func scanDone(path string, violations int) Event {
	status := StatusClean
	if violations > 0 {
		status = StatusDirty
	}
	return Event{File: path, Stage: StageScan, Status: status, Violations: violations}
}
