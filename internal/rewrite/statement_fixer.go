package rewrite

import (
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// StatementOnOwnLine moves a statement that shares a physical line with a
// preceding sibling onto its own line: the preceding token loses trailing
// whitespace and the statement's first token gains an inferred terminator
// plus structural indentation. Not applicable when the target is not a
// statement, has no enclosing block or switch section, or is the first
// statement of its parent (a sole statement has no prior sibling to break
// after).
func StatementOnOwnLine(tree *syntax.Tree, file *source.File, target Target, s Settings) *ReplacementMap {
	node := target.Node
	if !node.IsValid() || !tree.Kind(node).IsStatement() {
		return nil
	}
	parent := tree.Parent(node)
	if !parent.IsValid() {
		return nil
	}
	if k := tree.Kind(parent); k != syntax.KindBlock && k != syntax.KindSwitchSection {
		return nil
	}
	if !hasPrecedingStatement(tree, parent, node) {
		return nil
	}
	first := tree.FirstToken(node)
	if !first.IsValid() {
		return nil
	}
	prev := tree.PrevToken(first)
	if !prev.IsValid() {
		return nil
	}

	m := NewReplacementMap()

	prevTok := tree.Token(prev)
	m.ReplaceToken(prev, tree.GreenCopyToken(prev).
		WithTrailing(prevTok.Trailing.WithoutTrailingWhitespace()))

	eol := InferEndOfLine(tree, first, file, s)
	lead := syntax.TriviaList{syntax.SynthesizedTrivia(syntax.TriviaEndOfLine, eol)}
	lead = append(lead, RenderIndent(IndentSteps(tree, first), s)...)
	lead = append(lead, tree.Token(first).Leading.WithoutLeadingWhitespace()...)
	m.ReplaceToken(first, tree.GreenCopyToken(first).WithLeading(lead))

	return m
}

func hasPrecedingStatement(tree *syntax.Tree, parent, node syntax.NodeID) bool {
	seen := false
	for _, ch := range tree.Children(parent) {
		if ch.Node == node {
			return seen
		}
		if ch.Node.IsValid() && tree.Kind(ch.Node).IsStatement() {
			seen = true
		}
	}
	return false
}
