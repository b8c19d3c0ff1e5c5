package parser

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/syntax"
)

func (p *parser) parseBlock() *syntax.GreenNode {
	children := []syntax.GreenElem{p.expect(syntax.TokLBrace, diag.SynMissingToken)}
	for !p.atEOF() && !p.at(syntax.TokRBrace) {
		children = append(children, p.parseStatement())
	}
	children = append(children, p.expect(syntax.TokRBrace, diag.SynUnclosedBrace))
	return &syntax.GreenNode{Kind: syntax.KindBlock, Children: children}
}

func (p *parser) parseStatement() syntax.GreenElem {
	switch p.kind() {
	case syntax.TokLBrace:
		return p.parseBlock()
	case syntax.TokSemicolon:
		return syntax.NewNode(syntax.KindEmptyStatement, p.bump())
	case syntax.KwIf:
		return p.parseIf()
	case syntax.KwWhile:
		return p.parseWhile()
	case syntax.KwForeach:
		return p.parseForeach()
	case syntax.KwSwitch:
		return p.parseSwitch()
	case syntax.KwReturn:
		return p.parseReturn()
	case syntax.KwBreak:
		return syntax.NewNode(syntax.KindBreakStatement, p.bump(),
			p.expect(syntax.TokSemicolon, diag.SynMissingToken))
	case syntax.KwContinue:
		return syntax.NewNode(syntax.KindContinueStatement, p.bump(),
			p.expect(syntax.TokSemicolon, diag.SynMissingToken))
	}

	if p.atLocalDeclaration() {
		return p.parseLocalDeclaration()
	}
	if p.canStartExpression() {
		expr := p.parseExpr()
		semi := p.expect(syntax.TokSemicolon, diag.SynMissingToken)
		return syntax.NewNode(syntax.KindExpressionStatement, expr, semi)
	}
	return p.skipUnexpected(func(k syntax.TokenKind) bool {
		return k == syntax.TokSemicolon || k == syntax.TokRBrace
	})
}

// atLocalDeclaration decides between a local declaration and an expression
// statement by scanning the shape "type ident" ahead of the cursor.
func (p *parser) atLocalDeclaration() bool {
	if p.kind().IsPredefinedType() || p.at(syntax.KwVar) {
		return p.kindAt(1) == syntax.TokIdent
	}
	if !p.at(syntax.TokIdent) {
		return false
	}
	// ident ('.' ident)* ('<' type-args '>')? ident
	i := 1
	for p.kindAt(i) == syntax.TokDot && p.kindAt(i+1) == syntax.TokIdent {
		i += 2
	}
	if p.kindAt(i) == syntax.TokLt {
		depth := 0
		for ; ; i++ {
			switch k := p.kindAt(i); {
			case k == syntax.TokLt:
				depth++
			case k == syntax.TokGt:
				depth--
			case k == syntax.TokIdent || k == syntax.TokComma || k == syntax.TokDot ||
				k.IsPredefinedType():
				// type-shaped
			default:
				return false
			}
			if depth == 0 {
				i++
				break
			}
		}
	}
	return p.kindAt(i) == syntax.TokIdent
}

// parseLocalDeclaration parses: type declarator (',' declarator)* ';'.
// The children layout mirrors field declarations so the same splitting
// rewriter logic can walk both.
func (p *parser) parseLocalDeclaration() *syntax.GreenNode {
	children := []syntax.GreenElem{p.parseTypeName()}
	children = append(children, p.parseDeclarator())
	for p.at(syntax.TokComma) {
		children = append(children, p.bump())
		children = append(children, p.parseDeclarator())
	}
	children = append(children, p.expect(syntax.TokSemicolon, diag.SynMissingToken))
	return &syntax.GreenNode{Kind: syntax.KindLocalDeclarationStatement, Children: children}
}

func (p *parser) parseIf() *syntax.GreenNode {
	children := []syntax.GreenElem{
		p.bump(),
		p.expect(syntax.TokLParen, diag.SynMissingToken),
		p.parseExpr(),
		p.expect(syntax.TokRParen, diag.SynUnclosedParen),
		p.parseStatement(),
	}
	if p.at(syntax.KwElse) {
		children = append(children,
			syntax.NewNode(syntax.KindElseClause, p.bump(), p.parseStatement()))
	}
	return &syntax.GreenNode{Kind: syntax.KindIfStatement, Children: children}
}

func (p *parser) parseWhile() *syntax.GreenNode {
	return syntax.NewNode(syntax.KindWhileStatement,
		p.bump(),
		p.expect(syntax.TokLParen, diag.SynMissingToken),
		p.parseExpr(),
		p.expect(syntax.TokRParen, diag.SynUnclosedParen),
		p.parseStatement())
}

func (p *parser) parseForeach() *syntax.GreenNode {
	return syntax.NewNode(syntax.KindForeachStatement,
		p.bump(),
		p.expect(syntax.TokLParen, diag.SynMissingToken),
		p.parseTypeName(),
		p.expect(syntax.TokIdent, diag.SynMissingToken),
		p.expect(syntax.KwIn, diag.SynMissingToken),
		p.parseExpr(),
		p.expect(syntax.TokRParen, diag.SynUnclosedParen),
		p.parseStatement())
}

func (p *parser) parseReturn() *syntax.GreenNode {
	ret := p.bump()
	if p.at(syntax.TokSemicolon) {
		return syntax.NewNode(syntax.KindReturnStatement, ret, p.bump())
	}
	return syntax.NewNode(syntax.KindReturnStatement,
		ret, p.parseExpr(), p.expect(syntax.TokSemicolon, diag.SynMissingToken))
}

func (p *parser) parseSwitch() *syntax.GreenNode {
	children := []syntax.GreenElem{
		p.bump(),
		p.expect(syntax.TokLParen, diag.SynMissingToken),
		p.parseExpr(),
		p.expect(syntax.TokRParen, diag.SynUnclosedParen),
		p.expect(syntax.TokLBrace, diag.SynMissingToken),
	}
	for !p.atEOF() && !p.at(syntax.TokRBrace) {
		children = append(children, p.parseSwitchSection())
	}
	children = append(children, p.expect(syntax.TokRBrace, diag.SynUnclosedBrace))
	return &syntax.GreenNode{Kind: syntax.KindSwitchStatement, Children: children}
}

func (p *parser) parseSwitchSection() *syntax.GreenNode {
	var children []syntax.GreenElem
	for p.at(syntax.KwCase) || p.at(syntax.KwDefault) {
		keyword := p.kind()
		label := []syntax.GreenElem{p.bump()}
		if keyword == syntax.KwCase {
			label = append(label, p.parseExpr())
		}
		label = append(label, p.expect(syntax.TokColon, diag.SynMissingToken))
		children = append(children, &syntax.GreenNode{Kind: syntax.KindCaseLabel, Children: label})
	}
	if len(children) == 0 {
		// Not on a label at all; recover.
		return p.skipUnexpected(func(k syntax.TokenKind) bool {
			return k == syntax.KwCase || k == syntax.KwDefault || k == syntax.TokRBrace
		})
	}
	for !p.atEOF() && !p.at(syntax.TokRBrace) &&
		!p.at(syntax.KwCase) && !p.at(syntax.KwDefault) {
		children = append(children, p.parseStatement())
	}
	return &syntax.GreenNode{Kind: syntax.KindSwitchSection, Children: children}
}

func (p *parser) canStartExpression() bool {
	k := p.kind()
	switch {
	case k == syntax.TokIdent, k.IsLiteral(), k == syntax.TokLParen,
		k == syntax.KwNew, k == syntax.KwThis, k == syntax.KwFrom,
		k == syntax.TokBang, k == syntax.TokMinus, k == syntax.TokPlus,
		k == syntax.TokTilde, k == syntax.TokPlusPlus, k == syntax.TokMinusMinus:
		return true
	default:
		return k.IsPredefinedType()
	}
}
