package rewrite

import (
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// TrimTrailingWhitespace deletes the flagged whitespace run sitting at the
// end of a physical line. The run may live in a token's trailing trivia
// (code followed by spaces before the terminator) or in a leading list
// (blank lines made of spaces). Only trivia overlapping the diagnostic
// span is touched, so several violations in one file never collide on a
// token. Not applicable when the span does not land on whitespace trivia.
func TrimTrailingWhitespace(tree *syntax.Tree, _ *source.File, target Target, _ Settings) *ReplacementMap {
	if !target.Node.IsValid() {
		return nil
	}
	tok := tokenCoveringSpan(tree, target.Node, target.Span)
	if !tok.IsValid() {
		return nil
	}
	t := tree.Token(tok)
	lead, changedLead := dropFlaggedWhitespace(t.Leading, target.Span)
	trail, changedTrail := dropFlaggedWhitespace(t.Trailing, target.Span)
	if !changedLead && !changedTrail {
		return nil
	}
	m := NewReplacementMap()
	m.ReplaceToken(tok, tree.GreenCopyToken(tok).WithLeading(lead).WithTrailing(trail))
	return m
}

func tokenCoveringSpan(tree *syntax.Tree, node syntax.NodeID, span source.Span) syntax.TokenID {
	first := tree.FirstToken(node)
	last := tree.LastToken(node)
	if !first.IsValid() || !last.IsValid() {
		return syntax.NoToken
	}
	for id := first; id.IsValid() && id <= last; id = tree.NextToken(id) {
		if tree.Token(id).FullSpan.Contains(span) {
			return id
		}
	}
	return syntax.NoToken
}

func dropFlaggedWhitespace(list syntax.TriviaList, span source.Span) (syntax.TriviaList, bool) {
	changed := false
	out := make(syntax.TriviaList, 0, len(list))
	for _, t := range list {
		if t.IsWhitespace() && !t.Span.Empty() && t.Span.Overlaps(span) {
			changed = true
			continue
		}
		out = append(out, t)
	}
	if !changed {
		return list, false
	}
	return out, true
}
