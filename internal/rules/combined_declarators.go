package rules

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/rewrite"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

func init() {
	register(combinedDeclarators{})
}

// combinedDeclarators flags declarations that bind more than one name.
type combinedDeclarators struct{}

func (combinedDeclarators) Code() diag.Code { return diag.StyCombinedDeclarators }
func (combinedDeclarators) ID() string      { return diag.StyCombinedDeclarators.ID() }
func (combinedDeclarators) Description() string {
	return "do not combine several declarators in one declaration"
}

func (combinedDeclarators) Fixer() rewrite.Fixer { return rewrite.SplitDeclarators }

func (combinedDeclarators) Check(tree *syntax.Tree, _ *source.File, rep diag.Reporter) {
	walkNodes(tree, func(id syntax.NodeID) {
		switch tree.Kind(id) {
		case syntax.KindFieldDeclaration, syntax.KindEventFieldDeclaration,
			syntax.KindLocalDeclarationStatement:
		default:
			return
		}
		n := 0
		for _, ch := range tree.Children(id) {
			if ch.Node.IsValid() && tree.Kind(ch.Node) == syntax.KindVariableDeclarator {
				n++
			}
		}
		if n > 1 {
			rep.Report(diag.NewWarning(diag.StyCombinedDeclarators, tree.Span(id),
				"declaration binds several names; declare each on its own"))
		}
	})
}
