package rewrite

import (
	"context"

	"github.com/jsrustad/stylefix/internal/symbols"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// InQuotedContext reports whether node sits inside a lambda or
// comprehension clause that converts to a quoted representation of the
// marker type instead of executable code. Rewrites that introduce
// statements are unsafe at such positions.
//
// The walk inspects node and every ancestor. A lambda matches when its
// converted type has the marker's unparameterized definition. A select
// clause or an orderby ordering matches when any candidate binding is a
// method whose first parameter has that definition; the remaining clause
// kinds check both their cast-conversion and operation bindings the same
// way. Every overload candidate is inspected, not just the primary one:
// an ambiguous position cannot be proven safe, so one matching candidate
// is enough.
//
// A zero marker always reads as not quoted. Cancellation is checked once
// per ancestor and aborts the walk.
func InQuotedContext(ctx context.Context, tree *syntax.Tree, node syntax.NodeID,
	marker symbols.Type, resolver symbols.Resolver) (bool, error) {
	if marker.IsZero() || resolver == nil {
		return false, nil
	}
	for cur := node; cur.IsValid(); cur = tree.Parent(cur) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		switch kind := tree.Kind(cur); {
		case kind == syntax.KindLambdaExpression:
			if resolver.ConvertedType(tree, cur).SameDefinition(marker) {
				return true, nil
			}
		case kind == syntax.KindSelectClause || kind == syntax.KindOrdering:
			if anyFirstParamIs(resolver.SymbolInfo(tree, cur), marker) {
				return true, nil
			}
		case kind.IsQueryClause():
			info := resolver.QueryClauseInfo(tree, cur)
			if anyFirstParamIs(info.Cast, marker) || anyFirstParamIs(info.Operation, marker) {
				return true, nil
			}
		}
	}
	return false, nil
}

func anyFirstParamIs(info symbols.Info, marker symbols.Type) bool {
	for _, m := range info.All() {
		if m.FirstParam().Unparameterized().SameDefinition(marker) {
			return true
		}
	}
	return false
}
