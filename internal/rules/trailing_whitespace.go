package rules

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/rewrite"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

func init() {
	register(trailingWhitespace{})
}

// trailingWhitespace flags whitespace runs sitting at the end of a
// physical line, including lines made of whitespace only.
type trailingWhitespace struct{}

func (trailingWhitespace) Code() diag.Code { return diag.StyTrailingWhitespace }
func (trailingWhitespace) ID() string      { return diag.StyTrailingWhitespace.ID() }
func (trailingWhitespace) Description() string {
	return "no whitespace at the end of a line"
}

func (trailingWhitespace) Fixer() rewrite.Fixer { return rewrite.TrimTrailingWhitespace }

func (trailingWhitespace) Check(tree *syntax.Tree, _ *source.File, rep diag.Reporter) {
	last := syntax.TokenID(tree.TokenCount())
	for id := syntax.TokenID(1); id <= last; id++ {
		tok := tree.Token(id)
		reportRuns(tok.Leading, rep)
		reportRuns(tok.Trailing, rep)
	}

	// Whitespace closing the file has no terminator after it. It sits in
	// the end-of-file token's leading list, or in the previous token's
	// trailing list when no terminator separates the two.
	eof := tree.Token(last)
	if n := len(eof.Leading); n > 0 {
		if eof.Leading[n-1].IsWhitespace() {
			report(eof.Leading[n-1].Span, rep)
		}
	} else if last > 1 {
		prev := tree.Token(last - 1)
		if m := len(prev.Trailing); m > 0 && prev.Trailing[m-1].IsWhitespace() {
			report(prev.Trailing[m-1].Span, rep)
		}
	}
}

func reportRuns(list syntax.TriviaList, rep diag.Reporter) {
	for i, t := range list {
		if t.IsWhitespace() && i+1 < len(list) && list[i+1].IsEndOfLine() {
			report(t.Span, rep)
		}
	}
}

func report(span source.Span, rep diag.Reporter) {
	rep.Report(diag.NewWarning(diag.StyTrailingWhitespace, span, "trailing whitespace"))
}
