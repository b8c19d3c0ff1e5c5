// Package parser builds lossless syntax trees for the C#-flavored subset
// the style rules understand. Every token the lexer produces is attached to
// exactly one tree position, so reconstructing text from a freshly parsed
// tree reproduces the input byte for byte. Constructs outside the subset
// are preserved as skipped-token nodes rather than dropped.
package parser

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/lexer"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// Options configures a parse run.
type Options struct {
	Reporter diag.Reporter
}

// ParseFile lexes and parses one file into an immutable tree snapshot.
func ParseFile(file *source.File, opts Options) *syntax.Tree {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	tokens := lexer.Tokenize(file, opts.Reporter)
	p := &parser{
		tokens:   tokens,
		reporter: opts.Reporter,
		fileID:   file.ID,
	}
	root := p.parseCompilationUnit()
	return syntax.Build(file.ID, root)
}

type parser struct {
	tokens   []lexer.Token
	pos      int
	reporter diag.Reporter
	fileID   source.FileID
}

func (p *parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) kind() syntax.TokenKind {
	return p.tokens[p.pos].Kind
}

// kindAt peeks n tokens ahead without consuming.
func (p *parser) kindAt(n int) syntax.TokenKind {
	if p.pos+n >= len(p.tokens) {
		return syntax.TokEOF
	}
	return p.tokens[p.pos+n].Kind
}

func (p *parser) at(k syntax.TokenKind) bool {
	return p.kind() == k
}

func (p *parser) atEOF() bool {
	return p.kind() == syntax.TokEOF
}

// bump consumes the current token and returns it as a green token.
func (p *parser) bump() *syntax.GreenToken {
	tok := p.tokens[p.pos]
	if tok.Kind != syntax.TokEOF {
		p.pos++
	}
	return tok.Green()
}

// expect consumes a token of the given kind, or reports and fabricates a
// zero-width missing token so the tree stays well formed.
func (p *parser) expect(k syntax.TokenKind, code diag.Code) *syntax.GreenToken {
	if p.at(k) {
		return p.bump()
	}
	p.report(code, p.cur().Span, "expected '"+k.String()+"'")
	return &syntax.GreenToken{Kind: k, Flags: syntax.TokenMissing}
}

func (p *parser) report(code diag.Code, span source.Span, msg string) {
	p.reporter.Report(diag.NewError(code, span, msg))
}

// parseCompilationUnit is the entry production.
func (p *parser) parseCompilationUnit() *syntax.GreenNode {
	var children []syntax.GreenElem
	for !p.atEOF() {
		switch {
		case p.at(syntax.KwUsing):
			children = append(children, p.parseUsingDirective())
		case p.at(syntax.KwNamespace):
			children = append(children, p.parseNamespace())
		case p.atTypeDeclStart():
			children = append(children, p.parseTypeDecl())
		default:
			children = append(children, p.skipUnexpected(isTopLevelStart))
		}
	}
	children = append(children, p.bump()) // EOF with trailing file trivia
	return &syntax.GreenNode{Kind: syntax.KindCompilationUnit, Children: children}
}

func (p *parser) parseUsingDirective() *syntax.GreenNode {
	using := p.bump()
	name := p.parseQualifiedName()
	semi := p.expect(syntax.TokSemicolon, diag.SynMissingToken)
	return syntax.NewNode(syntax.KindUsingDirective, using, name, semi)
}

func (p *parser) parseNamespace() *syntax.GreenNode {
	ns := p.bump()
	name := p.parseQualifiedName()
	lbrace := p.expect(syntax.TokLBrace, diag.SynMissingToken)
	children := []syntax.GreenElem{ns, name, lbrace}
	for !p.atEOF() && !p.at(syntax.TokRBrace) {
		children = append(children, p.parseNamespaceMember())
	}
	children = append(children, p.expect(syntax.TokRBrace, diag.SynUnclosedBrace))
	return &syntax.GreenNode{Kind: syntax.KindNamespaceDeclaration, Children: children}
}

func (p *parser) parseNamespaceMember() syntax.GreenElem {
	switch {
	case p.at(syntax.KwUsing):
		return p.parseUsingDirective()
	case p.at(syntax.KwNamespace):
		return p.parseNamespace()
	case p.atTypeDeclStart():
		return p.parseTypeDecl()
	default:
		return p.skipUnexpected(func(k syntax.TokenKind) bool {
			return isTopLevelStart(k) || k == syntax.TokRBrace
		})
	}
}

// atTypeDeclStart looks past modifiers for a type keyword.
func (p *parser) atTypeDeclStart() bool {
	i := 0
	for p.kindAt(i).IsModifier() {
		i++
	}
	switch p.kindAt(i) {
	case syntax.KwClass, syntax.KwStruct, syntax.KwInterface, syntax.KwEnum:
		return true
	default:
		return false
	}
}

// parseQualifiedName parses ident ('.' ident)*. A single segment becomes an
// IdentifierName node.
func (p *parser) parseQualifiedName() *syntax.GreenNode {
	first := p.expect(syntax.TokIdent, diag.SynMissingToken)
	if !p.at(syntax.TokDot) {
		return syntax.NewNode(syntax.KindIdentifierName, first)
	}
	children := []syntax.GreenElem{first}
	for p.at(syntax.TokDot) {
		children = append(children, p.bump())
		children = append(children, p.expect(syntax.TokIdent, diag.SynMissingToken))
	}
	return &syntax.GreenNode{Kind: syntax.KindQualifiedName, Children: children}
}

// skipUnexpected reports the current token and consumes tokens until a
// recovery point, wrapping them in a Skipped node.
func (p *parser) skipUnexpected(isRecovery func(syntax.TokenKind) bool) *syntax.GreenNode {
	p.report(diag.SynUnexpectedToken, p.cur().Span, "unexpected token '"+p.cur().Text+"'")
	var children []syntax.GreenElem
	children = append(children, p.bump())
	for !p.atEOF() && !isRecovery(p.kind()) {
		children = append(children, p.bump())
	}
	return &syntax.GreenNode{Kind: syntax.KindSkipped, Children: children}
}

func isTopLevelStart(k syntax.TokenKind) bool {
	switch k {
	case syntax.KwUsing, syntax.KwNamespace, syntax.KwClass, syntax.KwStruct,
		syntax.KwInterface, syntax.KwEnum:
		return true
	default:
		return k.IsModifier()
	}
}
