package lexer

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// Token is one lexed unit with its position and both trivia lists. The
// lexer is lossless: concatenating Leading + Text + Trailing over the whole
// token stream reproduces the input byte for byte.
type Token struct {
	Kind     syntax.TokenKind
	Text     string
	Span     source.Span
	Leading  syntax.TriviaList
	Trailing syntax.TriviaList
}

// Green converts the token into a detached green token for tree building.
func (t Token) Green() *syntax.GreenToken {
	return &syntax.GreenToken{
		Kind:     t.Kind,
		Text:     t.Text,
		Leading:  t.Leading,
		Trailing: t.Trailing,
	}
}

// Options configures a lexer instance.
type Options struct {
	Reporter diag.Reporter
}

// Lexer produces tokens from one file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *Token
}

// New creates a lexer over the file.
func New(file *source.File, opts Options) *Lexer {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize scans the whole file. The returned slice always ends with an
// EOF token that carries any trailing file trivia as its leading list.
func Tokenize(file *source.File, reporter diag.Reporter) []Token {
	lx := New(file, Options{Reporter: reporter})
	var tokens []Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == syntax.TokEOF {
			return tokens
		}
	}
}

// Next returns the next significant token with leading and trailing trivia
// attached. After end of input it always returns EOF.
func (lx *Lexer) Next() Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	leading := lx.collectLeading()

	if lx.cursor.EOF() {
		return Token{
			Kind:    syntax.TokEOF,
			Span:    lx.cursor.SpanFrom(lx.cursor.Mark()),
			Leading: leading,
		}
	}

	tok := lx.scanToken()
	tok.Leading = leading
	tok.Trailing = lx.collectTrailing()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scanToken() Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) scanIdentOrKeyword() Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.TextFrom(start)
	return Token{
		Kind: syntax.KeywordKind(text),
		Text: text,
		Span: lx.cursor.SpanFrom(start),
	}
}

func (lx *Lexer) scanNumber() Token {
	start := lx.cursor.Mark()
	kind := syntax.TokIntLit
	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDigit(b1) {
		kind = syntax.TokFloatLit
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	// Type suffixes (1L, 2.5f, 3m and friends).
	for !lx.cursor.EOF() && isNumberSuffix(lx.cursor.Peek()) {
		if lx.cursor.Peek() == 'f' || lx.cursor.Peek() == 'F' ||
			lx.cursor.Peek() == 'd' || lx.cursor.Peek() == 'D' ||
			lx.cursor.Peek() == 'm' || lx.cursor.Peek() == 'M' {
			kind = syntax.TokFloatLit
		}
		lx.cursor.Bump()
	}
	return Token{
		Kind: kind,
		Text: lx.cursor.TextFrom(start),
		Span: lx.cursor.SpanFrom(start),
	}
}

func (lx *Lexer) scanString() Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if b == '"' {
			closed = true
			break
		}
	}
	if !closed {
		lx.report(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
	}
	return Token{
		Kind: syntax.TokStringLit,
		Text: lx.cursor.TextFrom(start),
		Span: lx.cursor.SpanFrom(start),
	}
}

func (lx *Lexer) scanChar() Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if b == '\'' {
			closed = true
			break
		}
	}
	if !closed {
		lx.report(diag.LexUnterminatedChar, lx.cursor.SpanFrom(start), "unterminated character literal")
	}
	return Token{
		Kind: syntax.TokCharLit,
		Text: lx.cursor.TextFrom(start),
		Span: lx.cursor.SpanFrom(start),
	}
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	lx.opts.Reporter.Report(diag.NewError(code, span, msg))
}

func isIdentStart(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isNumberSuffix(b byte) bool {
	switch b {
	case 'l', 'L', 'u', 'U', 'f', 'F', 'd', 'D', 'm', 'M':
		return true
	default:
		return false
	}
}
