package rules

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/rewrite"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

func init() {
	register(statementsOnLine{})
}

// statementsOnLine flags statements that share a physical line with a
// preceding sibling statement.
type statementsOnLine struct{}

func (statementsOnLine) Code() diag.Code { return diag.StyStatementsOnLine }
func (statementsOnLine) ID() string      { return diag.StyStatementsOnLine.ID() }
func (statementsOnLine) Description() string {
	return "statements must begin on their own line"
}

func (statementsOnLine) Fixer() rewrite.Fixer { return rewrite.StatementOnOwnLine }

func (r statementsOnLine) Check(tree *syntax.Tree, _ *source.File, rep diag.Reporter) {
	walkNodes(tree, func(id syntax.NodeID) {
		if k := tree.Kind(id); k != syntax.KindBlock && k != syntax.KindSwitchSection {
			return
		}
		prev := syntax.NoNode
		for _, ch := range tree.Children(id) {
			if !ch.Node.IsValid() || !tree.Kind(ch.Node).IsStatement() {
				continue
			}
			if prev.IsValid() && sharesLine(tree, ch.Node) {
				rep.Report(diag.NewWarning(diag.StyStatementsOnLine, tree.Span(ch.Node),
					"statement must begin on its own line"))
			}
			prev = ch.Node
		}
	})
}

// sharesLine reports whether no line terminator separates the statement's
// first token from the token before it.
func sharesLine(tree *syntax.Tree, stmt syntax.NodeID) bool {
	first := tree.FirstToken(stmt)
	if !first.IsValid() {
		return false
	}
	if _, ok := tree.Token(first).Leading.LastEndOfLine(); ok {
		return false
	}
	prev := tree.PrevToken(first)
	if !prev.IsValid() {
		return false
	}
	_, ok := tree.Token(prev).Trailing.LastEndOfLine()
	return !ok
}
