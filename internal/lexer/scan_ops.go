package lexer

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// scanOperator scans punctuation and operators with longest-match-first.
func (lx *Lexer) scanOperator() Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	kind := syntax.TokInvalid

	switch b {
	case '{':
		kind = syntax.TokLBrace
	case '}':
		kind = syntax.TokRBrace
	case '(':
		kind = syntax.TokLParen
	case ')':
		kind = syntax.TokRParen
	case '[':
		kind = syntax.TokLBracket
	case ']':
		kind = syntax.TokRBracket
	case ';':
		kind = syntax.TokSemicolon
	case ',':
		kind = syntax.TokComma
	case '.':
		kind = syntax.TokDot
	case ':':
		kind = syntax.TokColon
	case '~':
		kind = syntax.TokTilde
	case '?':
		kind = syntax.TokQuestion
		if lx.cursor.Eat('?') {
			kind = syntax.TokQuestionQuestion
		}
	case '=':
		kind = syntax.TokAssign
		if lx.cursor.Eat('=') {
			kind = syntax.TokEqEq
		} else if lx.cursor.Eat('>') {
			kind = syntax.TokFatArrow
		}
	case '+':
		kind = syntax.TokPlus
		if lx.cursor.Eat('+') {
			kind = syntax.TokPlusPlus
		} else if lx.cursor.Eat('=') {
			kind = syntax.TokPlusAssign
		}
	case '-':
		kind = syntax.TokMinus
		if lx.cursor.Eat('-') {
			kind = syntax.TokMinusMinus
		} else if lx.cursor.Eat('=') {
			kind = syntax.TokMinusAssign
		}
	case '*':
		kind = syntax.TokStar
		if lx.cursor.Eat('=') {
			kind = syntax.TokStarAssign
		}
	case '/':
		kind = syntax.TokSlash
		if lx.cursor.Eat('=') {
			kind = syntax.TokSlashAssign
		}
	case '%':
		kind = syntax.TokPercent
		if lx.cursor.Eat('=') {
			kind = syntax.TokPercentAssign
		}
	case '!':
		kind = syntax.TokBang
		if lx.cursor.Eat('=') {
			kind = syntax.TokBangEq
		}
	case '<':
		kind = syntax.TokLt
		if lx.cursor.Eat('=') {
			kind = syntax.TokLtEq
		} else if lx.cursor.Eat('<') {
			kind = syntax.TokShl
		}
	case '>':
		kind = syntax.TokGt
		if lx.cursor.Eat('=') {
			kind = syntax.TokGtEq
		} else if lx.cursor.Eat('>') {
			kind = syntax.TokShr
		}
	case '&':
		kind = syntax.TokAmp
		if lx.cursor.Eat('&') {
			kind = syntax.TokAndAnd
		}
	case '|':
		kind = syntax.TokPipe
		if lx.cursor.Eat('|') {
			kind = syntax.TokOrOr
		}
	case '^':
		kind = syntax.TokCaret
	}

	span := lx.cursor.SpanFrom(start)
	if kind == syntax.TokInvalid {
		lx.report(diag.LexUnknownChar, span, "unexpected character")
	}
	return Token{
		Kind: kind,
		Text: lx.cursor.TextFrom(start),
		Span: span,
	}
}
