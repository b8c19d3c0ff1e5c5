package lexer

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// collectLeading gathers trivia before the next significant token:
// whitespace runs (spaces and tabs coalesced), line terminators (one trivia
// per terminator, exact bytes kept so CRLF and LF survive), comments, and
// a byte order mark at offset zero.
func (lx *Lexer) collectLeading() syntax.TriviaList {
	var hold syntax.TriviaList
	for !lx.cursor.EOF() {
		tr, ok := lx.scanOneTrivia()
		if !ok {
			break
		}
		hold = append(hold, tr)
	}
	return hold
}

// collectTrailing gathers trivia after a token up to and including the
// first line terminator. Anything past the terminator belongs to the next
// token's leading list. A block comment containing a terminator also ends
// the trailing list.
func (lx *Lexer) collectTrailing() syntax.TriviaList {
	var hold syntax.TriviaList
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			hold = append(hold, lx.scanEndOfLine())
			return hold
		}
		if b != ' ' && b != '\t' && b != '/' {
			return hold
		}
		mark := lx.cursor.Mark()
		tr, ok := lx.scanOneTrivia()
		if !ok {
			return hold
		}
		if tr.Kind == syntax.TriviaBlockComment && containsTerminator(tr.Text) {
			lx.cursor.Reset(mark)
			return hold
		}
		hold = append(hold, tr)
		if tr.Kind == syntax.TriviaEndOfLine {
			return hold
		}
	}
	return hold
}

// scanOneTrivia scans a single trivia entry at the cursor, or reports
// ok=false when the cursor sits on token text.
func (lx *Lexer) scanOneTrivia() (syntax.Trivia, bool) {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	if b == ' ' || b == '\t' {
		for {
			b2 := lx.cursor.Peek()
			if b2 != ' ' && b2 != '\t' {
				break
			}
			lx.cursor.Bump()
		}
		return syntax.Trivia{
			Kind: syntax.TriviaWhitespace,
			Span: lx.cursor.SpanFrom(start),
			Text: lx.cursor.TextFrom(start),
		}, true
	}

	if b == '\n' || b == '\r' {
		return lx.scanEndOfLine(), true
	}

	if b == '/' {
		if tr, ok := lx.scanComment(); ok {
			return tr, true
		}
		return syntax.Trivia{}, false
	}

	// UTF-8 BOM is preserved as "other" trivia so offsets stay on-disk.
	if lx.cursor.Off == 0 && b == 0xEF && len(lx.file.Content) >= 3 &&
		lx.file.Content[1] == 0xBB && lx.file.Content[2] == 0xBF {
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.cursor.Bump()
		return syntax.Trivia{
			Kind: syntax.TriviaOther,
			Span: lx.cursor.SpanFrom(start),
			Text: lx.cursor.TextFrom(start),
		}, true
	}

	return syntax.Trivia{}, false
}

// scanEndOfLine consumes exactly one terminator: "\r\n", "\n", or "\r".
func (lx *Lexer) scanEndOfLine() syntax.Trivia {
	start := lx.cursor.Mark()
	if lx.cursor.Eat('\r') {
		lx.cursor.Eat('\n')
	} else {
		lx.cursor.Eat('\n')
	}
	return syntax.Trivia{
		Kind: syntax.TriviaEndOfLine,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	}
}

func (lx *Lexer) scanComment() (syntax.Trivia, bool) {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return syntax.Trivia{}, false
	}
	switch b1 {
	case '/':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if b == '\n' || b == '\r' {
				break
			}
			lx.cursor.Bump()
		}
		return syntax.Trivia{
			Kind: syntax.TriviaLineComment,
			Span: lx.cursor.SpanFrom(start),
			Text: lx.cursor.TextFrom(start),
		}, true
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if p0, p1, ok2 := lx.cursor.Peek2(); ok2 && p0 == '*' && p1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.report(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		return syntax.Trivia{
			Kind: syntax.TriviaBlockComment,
			Span: sp,
			Text: lx.cursor.TextFrom(start),
		}, true
	default:
		return syntax.Trivia{}, false
	}
}

func containsTerminator(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return true
		}
	}
	return false
}
