package parser

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// binaryPrec returns the binding power of a binary operator, or 0 when the
// token is not a binary operator. Higher binds tighter.
func binaryPrec(k syntax.TokenKind) int {
	switch k {
	case syntax.TokQuestionQuestion:
		return 1
	case syntax.TokOrOr:
		return 2
	case syntax.TokAndAnd:
		return 3
	case syntax.TokPipe:
		return 4
	case syntax.TokCaret:
		return 5
	case syntax.TokAmp:
		return 6
	case syntax.TokEqEq, syntax.TokBangEq:
		return 7
	case syntax.TokLt, syntax.TokGt, syntax.TokLtEq, syntax.TokGtEq:
		return 8
	case syntax.TokShl, syntax.TokShr:
		return 9
	case syntax.TokPlus, syntax.TokMinus:
		return 10
	case syntax.TokStar, syntax.TokSlash, syntax.TokPercent:
		return 11
	default:
		return 0
	}
}

func isAssignmentOp(k syntax.TokenKind) bool {
	switch k {
	case syntax.TokAssign, syntax.TokPlusAssign, syntax.TokMinusAssign,
		syntax.TokStarAssign, syntax.TokSlashAssign, syntax.TokPercentAssign:
		return true
	default:
		return false
	}
}

func (p *parser) parseExpr() syntax.GreenElem {
	if p.atLambdaStart() {
		return p.parseLambda()
	}
	if p.at(syntax.KwFrom) && p.atQueryStart() {
		return p.parseQueryExpression()
	}
	return p.parseAssignment()
}

// parseAssignment parses right-associative assignments above the
// conditional level.
func (p *parser) parseAssignment() syntax.GreenElem {
	left := p.parseConditional()
	if !isAssignmentOp(p.kind()) {
		return left
	}
	op := p.bump()
	right := p.parseExpr()
	return syntax.NewNode(syntax.KindAssignmentExpression, left, op, right)
}

func (p *parser) parseConditional() syntax.GreenElem {
	cond := p.parseBinary(1)
	if !p.at(syntax.TokQuestion) {
		return cond
	}
	question := p.bump()
	whenTrue := p.parseExpr()
	colon := p.expect(syntax.TokColon, diag.SynMissingToken)
	whenFalse := p.parseExpr()
	return syntax.NewNode(syntax.KindConditionalExpression,
		cond, question, whenTrue, colon, whenFalse)
}

func (p *parser) parseBinary(minPrec int) syntax.GreenElem {
	left := p.parseUnary()
	for {
		prec := binaryPrec(p.kind())
		if prec < minPrec {
			return left
		}
		op := p.bump()
		right := p.parseBinary(prec + 1)
		left = syntax.NewNode(syntax.KindBinaryExpression, left, op, right)
	}
}

func (p *parser) parseUnary() syntax.GreenElem {
	switch p.kind() {
	case syntax.TokBang, syntax.TokMinus, syntax.TokPlus, syntax.TokTilde,
		syntax.TokPlusPlus, syntax.TokMinusMinus:
		op := p.bump()
		return syntax.NewNode(syntax.KindPrefixUnaryExpression, op, p.parseUnary())
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() syntax.GreenElem {
	expr := p.parsePrimary()
	for {
		switch p.kind() {
		case syntax.TokDot:
			dot := p.bump()
			name := p.parseSimpleName()
			expr = syntax.NewNode(syntax.KindMemberAccessExpression, expr, dot, name)
		case syntax.TokLParen:
			expr = syntax.NewNode(syntax.KindInvocationExpression, expr, p.parseArgumentList())
		case syntax.TokLBracket:
			open := p.bump()
			index := p.parseExpr()
			closing := p.expect(syntax.TokRBracket, diag.SynMissingToken)
			expr = syntax.NewNode(syntax.KindElementAccessExpression, expr, open, index, closing)
		case syntax.TokPlusPlus, syntax.TokMinusMinus:
			expr = syntax.NewNode(syntax.KindPostfixUnaryExpression, expr, p.bump())
		default:
			return expr
		}
	}
}

func (p *parser) parsePrimary() syntax.GreenElem {
	switch {
	case p.kind().IsLiteral():
		return syntax.NewNode(syntax.KindLiteralExpression, p.bump())
	case p.at(syntax.KwThis):
		return syntax.NewNode(syntax.KindIdentifierName, p.bump())
	case p.at(syntax.KwNew):
		return p.parseObjectCreation()
	case p.at(syntax.TokLParen):
		open := p.bump()
		inner := p.parseExpr()
		closing := p.expect(syntax.TokRParen, diag.SynUnclosedParen)
		return syntax.NewNode(syntax.KindParenthesizedExpression, open, inner, closing)
	case p.at(syntax.TokIdent), p.kind().IsPredefinedType():
		return p.parseSimpleName()
	}
	p.report(diag.SynUnexpectedToken, p.cur().Span,
		"expected expression, found '"+p.cur().Text+"'")
	return &syntax.GreenToken{Kind: syntax.TokIdent, Flags: syntax.TokenMissing}
}

// parseSimpleName parses an identifier or predefined type, plus type
// arguments when the lookahead confirms them.
func (p *parser) parseSimpleName() syntax.GreenElem {
	if p.kind().IsPredefinedType() {
		return syntax.NewNode(syntax.KindPredefinedType, p.bump())
	}
	ident := p.expect(syntax.TokIdent, diag.SynMissingToken)
	name := syntax.NewNode(syntax.KindIdentifierName, ident)
	if p.at(syntax.TokLt) && p.looksLikeTypeArguments() {
		args := []syntax.GreenElem{p.bump()}
		for !p.atEOF() && !p.at(syntax.TokGt) {
			args = append(args, p.parseTypeName())
			if p.at(syntax.TokComma) {
				args = append(args, p.bump())
			} else {
				break
			}
		}
		args = append(args, p.expect(syntax.TokGt, diag.SynMissingToken))
		list := &syntax.GreenNode{Kind: syntax.KindTypeArgumentList, Children: args}
		return syntax.NewNode(syntax.KindGenericName, name, list)
	}
	return name
}

func (p *parser) parseObjectCreation() *syntax.GreenNode {
	kw := p.bump()
	typ := p.parseTypeName()
	var args syntax.GreenElem
	if p.at(syntax.TokLParen) {
		args = p.parseArgumentList()
	}
	return syntax.NewNode(syntax.KindObjectCreationExpression, kw, typ, args)
}

func (p *parser) parseArgumentList() *syntax.GreenNode {
	children := []syntax.GreenElem{p.expect(syntax.TokLParen, diag.SynMissingToken)}
	for !p.atEOF() && !p.at(syntax.TokRParen) {
		arg := syntax.NewNode(syntax.KindArgument, p.parseExpr())
		children = append(children, arg)
		if p.at(syntax.TokComma) {
			children = append(children, p.bump())
		} else {
			break
		}
	}
	children = append(children, p.expect(syntax.TokRParen, diag.SynUnclosedParen))
	return &syntax.GreenNode{Kind: syntax.KindArgumentList, Children: children}
}

// atLambdaStart detects "x =>" and "(x, y) =>" without consuming tokens.
func (p *parser) atLambdaStart() bool {
	if p.at(syntax.TokIdent) && p.kindAt(1) == syntax.TokFatArrow {
		return true
	}
	if !p.at(syntax.TokLParen) {
		return false
	}
	depth := 0
	for i := 0; ; i++ {
		switch k := p.kindAt(i); k {
		case syntax.TokLParen:
			depth++
		case syntax.TokRParen:
			depth--
			if depth == 0 {
				return p.kindAt(i+1) == syntax.TokFatArrow
			}
		case syntax.TokEOF, syntax.TokSemicolon, syntax.TokLBrace:
			return false
		}
	}
}

// parseLambda parses simple and parenthesized lambdas. Parameter lists may
// name parameter types; bodies are expressions or blocks.
func (p *parser) parseLambda() *syntax.GreenNode {
	var children []syntax.GreenElem
	if p.at(syntax.TokIdent) {
		param := syntax.NewNode(syntax.KindParameter, p.bump())
		children = append(children, param)
	} else {
		children = append(children, p.parseLambdaParameterList())
	}
	children = append(children, p.expect(syntax.TokFatArrow, diag.SynMissingToken))
	if p.at(syntax.TokLBrace) {
		children = append(children, p.parseBlock())
	} else {
		children = append(children, p.parseExpr())
	}
	return &syntax.GreenNode{Kind: syntax.KindLambdaExpression, Children: children}
}

func (p *parser) parseLambdaParameterList() *syntax.GreenNode {
	children := []syntax.GreenElem{p.expect(syntax.TokLParen, diag.SynMissingToken)}
	for !p.atEOF() && !p.at(syntax.TokRParen) {
		children = append(children, p.parseLambdaParameter())
		if p.at(syntax.TokComma) {
			children = append(children, p.bump())
		} else {
			break
		}
	}
	children = append(children, p.expect(syntax.TokRParen, diag.SynUnclosedParen))
	return &syntax.GreenNode{Kind: syntax.KindParameterList, Children: children}
}

func (p *parser) parseLambdaParameter() *syntax.GreenNode {
	// "(int x)" names a type, "(x)" does not.
	if (p.kind().IsPredefinedType() || p.at(syntax.TokIdent)) && p.kindAt(1) == syntax.TokIdent {
		typ := p.parseTypeName()
		name := p.expect(syntax.TokIdent, diag.SynMissingToken)
		return syntax.NewNode(syntax.KindParameter, typ, name)
	}
	return syntax.NewNode(syntax.KindParameter,
		p.expect(syntax.TokIdent, diag.SynMissingToken))
}
