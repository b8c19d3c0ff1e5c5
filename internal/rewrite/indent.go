package rewrite

import (
	"strings"

	"github.com/jsrustad/stylefix/internal/syntax"
)

// IndentSteps counts the indentation-introducing constructs enclosing tok.
// The count depends only on structural nesting: two tokens at the same
// depth always yield the same result no matter what whitespace currently
// precedes them. A construct indents only what sits strictly between its
// braces, so declaration headers and the braces themselves stay at the
// outer depth; switch sections indent their statements but not their own
// case labels.
func IndentSteps(tree *syntax.Tree, tok syntax.TokenID) int {
	steps := 0
	for node := tree.TokenParent(tok); node.IsValid(); node = tree.Parent(node) {
		if countsIndent(tree, node, tok) {
			steps++
		}
	}
	return steps
}

func countsIndent(tree *syntax.Tree, node syntax.NodeID, tok syntax.TokenID) bool {
	kind := tree.Kind(node)
	if !kind.IntroducesIndent() {
		return false
	}
	if kind == syntax.KindSwitchSection {
		// Labels sit at the section's own depth.
		for _, ch := range tree.Children(node) {
			if ch.Node.IsValid() && tree.Kind(ch.Node) == syntax.KindCaseLabel {
				if last := tree.LastToken(ch.Node); last.IsValid() && tok <= last {
					return false
				}
			}
		}
		return true
	}
	open, closing := braceTokens(tree, node)
	if !open.IsValid() || tok <= open {
		return false
	}
	if closing.IsValid() && tok >= closing {
		return false
	}
	return true
}

// braceTokens finds the construct's delimiting braces among its direct
// children. Token identity follows document order within one snapshot,
// so position tests reduce to id comparisons.
func braceTokens(tree *syntax.Tree, node syntax.NodeID) (open, closing syntax.TokenID) {
	open, closing = syntax.NoToken, syntax.NoToken
	for _, ch := range tree.Children(node) {
		if !ch.Token.IsValid() {
			continue
		}
		switch tree.Token(ch.Token).Kind {
		case syntax.TokLBrace:
			if !open.IsValid() {
				open = ch.Token
			}
		case syntax.TokRBrace:
			closing = ch.Token
		}
	}
	return open, closing
}

// RenderIndent emits synthesized whitespace for the given depth. Zero or
// negative steps yield no trivia at all rather than an empty whitespace
// entry.
func RenderIndent(steps int, s Settings) syntax.TriviaList {
	if steps <= 0 {
		return nil
	}
	var text string
	if s.UseTabs {
		text = strings.Repeat("\t", steps)
	} else {
		text = strings.Repeat(" ", steps*s.indentSize())
	}
	return syntax.TriviaList{syntax.SynthesizedTrivia(syntax.TriviaWhitespace, text)}
}
