package rewrite

import (
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// Target is one violation anchored in a tree: the node covering the
// diagnostic plus the diagnostic's exact span, for fixers that need to
// pick a single token out of the node.
type Target struct {
	Node syntax.NodeID
	Span source.Span
}

// Fixer computes the replacements resolving one violation. Implementations
// are pure functions of their arguments with no shared mutable state, so
// the coordinator may run them concurrently against one snapshot.
//
// A nil or empty map means the fixer does not apply: the target does not
// have the shape the fixer rewrites, or a required child is missing. That
// is a normal outcome, not an error; the host falls back to "no fix
// available" for that diagnostic.
type Fixer func(tree *syntax.Tree, file *source.File, target Target, s Settings) *ReplacementMap

// markSynthesized deep-copies a green element with every token flagged as
// synthesized and exempt from automatic formatting, and every trivia entry
// flagged as synthesized. Fixers use it when duplicating existing tokens
// into new positions.
func markSynthesized(el syntax.GreenElem) syntax.GreenElem {
	switch g := el.(type) {
	case *syntax.GreenToken:
		cp := *g
		cp.Flags |= syntax.TokenSynthesized | syntax.TokenFormatExempt
		cp.Leading = markTriviaSynthesized(cp.Leading)
		cp.Trailing = markTriviaSynthesized(cp.Trailing)
		return &cp
	case *syntax.GreenNode:
		children := make([]syntax.GreenElem, len(g.Children))
		for i, c := range g.Children {
			children[i] = markSynthesized(c)
		}
		return &syntax.GreenNode{Kind: g.Kind, Children: children}
	}
	return el
}

func markTriviaSynthesized(list syntax.TriviaList) syntax.TriviaList {
	if len(list) == 0 {
		return list
	}
	out := make(syntax.TriviaList, len(list))
	for i, t := range list {
		t.Flags |= syntax.TriviaSynthesized
		out[i] = t
	}
	return out
}

// withFirstTokenLeading rebuilds el so that its first token carries the
// given leading trivia. Nodes along the path are copied; everything else
// is shared.
func withFirstTokenLeading(el syntax.GreenElem, lead syntax.TriviaList) syntax.GreenElem {
	switch g := el.(type) {
	case *syntax.GreenToken:
		return g.WithLeading(lead)
	case *syntax.GreenNode:
		if len(g.Children) == 0 {
			return g
		}
		children := append([]syntax.GreenElem(nil), g.Children...)
		children[0] = withFirstTokenLeading(children[0], lead)
		return &syntax.GreenNode{Kind: g.Kind, Children: children}
	}
	return el
}
