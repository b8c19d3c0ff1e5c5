package rewrite

import (
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// InferEndOfLine picks the terminator to use when inserting a line break
// before tok. Closest textual evidence wins over configuration, in this
// order:
//
//  1. the last end-of-line entry in the token's own leading trivia
//  2. the last end-of-line entry in the previous token's trailing trivia
//  3. the terminator of the physical line containing the token
//  4. the terminator of the previous physical line
//  5. the configured default
//
// The returned string is the exact byte sequence found, so CRLF, LF, and
// lone-CR documents each keep their own convention.
func InferEndOfLine(tree *syntax.Tree, tok syntax.TokenID, file *source.File, s Settings) string {
	t := tree.Token(tok)
	if eol, ok := t.Leading.LastEndOfLine(); ok {
		return eol.Text
	}
	if prev := tree.PrevToken(tok); prev.IsValid() {
		if eol, ok := tree.Token(prev).Trailing.LastEndOfLine(); ok {
			return eol.Text
		}
	}
	if file != nil && file.LineCount() > 0 {
		line := file.LineAt(t.Span.Start)
		if term := file.LineTerminator(line); term != "" {
			return term
		}
		if line > 0 {
			if term := file.LineTerminator(line - 1); term != "" {
				return term
			}
		}
	}
	return s.endOfLine()
}
