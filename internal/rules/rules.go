// Package rules holds the style conventions the scanner enforces. A rule
// is a pure predicate over one parsed file; rules that know how to repair
// their violations also expose a rewrite fixer.
package rules

import (
	"sort"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/rewrite"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// Rule checks one style convention over a parsed file and reports every
// violation it finds. Check must not retain tree or file references.
type Rule interface {
	Code() diag.Code
	ID() string
	Description() string
	Check(tree *syntax.Tree, file *source.File, r diag.Reporter)
}

// Fixable is implemented by rules whose violations have an automatic fix.
type Fixable interface {
	Rule
	Fixer() rewrite.Fixer
}

var registry = map[string]Rule{}

func register(r Rule) {
	registry[r.ID()] = r
}

// All returns every registered rule, ordered by ID.
func All() []Rule {
	out := make([]Rule, 0, len(registry))
	for _, r := range registry {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// ByID looks a rule up by its public identifier, e.g. "STY1001".
func ByID(id string) (Rule, bool) {
	r, ok := registry[id]
	return r, ok
}

// FixerFor returns the fixer of the rule owning the diagnostic code, or
// nil when the rule has none.
func FixerFor(code diag.Code) rewrite.Fixer {
	for _, r := range registry {
		if r.Code() != code {
			continue
		}
		if f, ok := r.(Fixable); ok {
			return f.Fixer()
		}
		return nil
	}
	return nil
}

// walkNodes visits every node in the tree in document order.
func walkNodes(tree *syntax.Tree, visit func(syntax.NodeID)) {
	var walk func(id syntax.NodeID)
	walk = func(id syntax.NodeID) {
		visit(id)
		for _, ch := range tree.Children(id) {
			if ch.Node.IsValid() {
				walk(ch.Node)
			}
		}
	}
	walk(tree.Root())
}
