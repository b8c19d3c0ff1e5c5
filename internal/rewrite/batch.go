package rewrite

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// ComputeBatch fixes every diagnostic of one rule against one document
// snapshot. Each diagnostic's span is resolved to its covering node and
// handed to fixer independently; the fixer runs are pure, so they execute
// in parallel. The per-fix maps are then unioned. The union is commutative
// over disjoint keys, which makes the result independent of diagnostic
// order; overlapping keys fail the whole document with a ConflictError
// rather than silently dropping one fix.
//
// Cancellation is checked per fix and per merge step. On any failure the
// returned map is nil: a document batch is all or nothing.
func ComputeBatch(ctx context.Context, tree *syntax.Tree, file *source.File,
	diags []diag.Diagnostic, fixer Fixer, s Settings) (*ReplacementMap, error) {
	maps := make([]*ReplacementMap, len(diags))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), max(len(diags), 1)))
	for i, d := range diags {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			node := tree.NodeCovering(d.Primary)
			if !node.IsValid() {
				return nil
			}
			maps[i] = fixer(tree, file, Target{Node: node, Span: d.Primary}, s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewReplacementMap()
	for _, m := range maps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.Empty() {
			continue
		}
		if err := merged.Merge(m); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// ApplyBatch is the convenience form hosts use per document: compute the
// batch and materialize the new snapshot in one call.
func ApplyBatch(ctx context.Context, tree *syntax.Tree, file *source.File,
	diags []diag.Diagnostic, fixer Fixer, s Settings) (*syntax.Tree, error) {
	m, err := ComputeBatch(ctx, tree, file, diags, fixer, s)
	if err != nil {
		return nil, err
	}
	if m.Empty() {
		return tree, nil
	}
	return m.Apply(tree)
}
