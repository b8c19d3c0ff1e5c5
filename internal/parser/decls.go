package parser

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// parseTypeDecl parses class/struct/interface/enum declarations including
// leading modifiers and an optional base list.
func (p *parser) parseTypeDecl() *syntax.GreenNode {
	var children []syntax.GreenElem
	for p.kind().IsModifier() {
		children = append(children, p.bump())
	}
	isEnum := p.at(syntax.KwEnum)
	children = append(children, p.bump()) // class/struct/interface/enum
	children = append(children, p.expect(syntax.TokIdent, diag.SynMissingToken))

	if p.at(syntax.TokColon) {
		base := []syntax.GreenElem{p.bump()}
		base = append(base, p.parseTypeName())
		for p.at(syntax.TokComma) {
			base = append(base, p.bump())
			base = append(base, p.parseTypeName())
		}
		children = append(children, &syntax.GreenNode{Kind: syntax.KindBaseList, Children: base})
	}

	children = append(children, p.expect(syntax.TokLBrace, diag.SynMissingToken))
	if isEnum {
		children = append(children, p.parseEnumMembers()...)
	} else {
		for !p.atEOF() && !p.at(syntax.TokRBrace) {
			children = append(children, p.parseMember())
		}
	}
	children = append(children, p.expect(syntax.TokRBrace, diag.SynUnclosedBrace))
	return &syntax.GreenNode{Kind: syntax.KindTypeDeclaration, Children: children}
}

// parseEnumMembers parses ident (= expr)? pairs separated by commas.
func (p *parser) parseEnumMembers() []syntax.GreenElem {
	var out []syntax.GreenElem
	for !p.atEOF() && !p.at(syntax.TokRBrace) {
		if !p.at(syntax.TokIdent) {
			out = append(out, p.skipUnexpected(func(k syntax.TokenKind) bool {
				return k == syntax.TokIdent || k == syntax.TokRBrace
			}))
			continue
		}
		out = append(out, p.parseDeclarator())
		if p.at(syntax.TokComma) {
			out = append(out, p.bump())
		}
	}
	return out
}

// parseMember parses one member of a class/struct/interface body.
func (p *parser) parseMember() syntax.GreenElem {
	if p.atTypeDeclStart() {
		return p.parseTypeDecl()
	}

	var mods []syntax.GreenElem
	for p.kind().IsModifier() {
		mods = append(mods, p.bump())
	}

	if p.at(syntax.KwEvent) {
		return p.parseEventField(mods)
	}

	if !p.atTypeName() {
		return p.skipUnexpected(func(k syntax.TokenKind) bool {
			return isTopLevelStart(k) || k == syntax.TokRBrace || k == syntax.TokSemicolon
		})
	}

	typ := p.parseTypeName()
	name := p.expect(syntax.TokIdent, diag.SynMissingToken)

	if p.at(syntax.TokLParen) {
		return p.parseMethodRest(mods, typ, name)
	}
	return p.parseFieldRest(syntax.KindFieldDeclaration, mods, nil, typ, name)
}

// parseEventField parses: modifiers 'event' type declarators ';'.
func (p *parser) parseEventField(mods []syntax.GreenElem) *syntax.GreenNode {
	event := p.bump()
	typ := p.parseTypeName()
	name := p.expect(syntax.TokIdent, diag.SynMissingToken)
	return p.parseFieldRest(syntax.KindEventFieldDeclaration, mods, event, typ, name)
}

// parseFieldRest finishes a field declaration after its type and first
// declarator name. Declarators and the comma separators between them are
// direct children, in source order, so a rewriter sees pairs.
func (p *parser) parseFieldRest(kind syntax.NodeKind, mods []syntax.GreenElem, event *syntax.GreenToken, typ *syntax.GreenNode, name *syntax.GreenToken) *syntax.GreenNode {
	children := append([]syntax.GreenElem{}, mods...)
	if event != nil {
		children = append(children, event)
	}
	children = append(children, typ)
	children = append(children, p.parseDeclaratorRest(name))
	for p.at(syntax.TokComma) {
		children = append(children, p.bump())
		children = append(children, p.parseDeclarator())
	}
	children = append(children, p.expect(syntax.TokSemicolon, diag.SynMissingToken))
	return &syntax.GreenNode{Kind: kind, Children: children}
}

// parseDeclarator parses: ident ('=' expr)?.
func (p *parser) parseDeclarator() *syntax.GreenNode {
	name := p.expect(syntax.TokIdent, diag.SynMissingToken)
	return p.parseDeclaratorRest(name)
}

func (p *parser) parseDeclaratorRest(name *syntax.GreenToken) *syntax.GreenNode {
	if !p.at(syntax.TokAssign) {
		return syntax.NewNode(syntax.KindVariableDeclarator, name)
	}
	eq := p.bump()
	value := p.parseExpr()
	initializer := syntax.NewNode(syntax.KindEqualsValueClause, eq, value)
	return syntax.NewNode(syntax.KindVariableDeclarator, name, initializer)
}

// parseMethodRest finishes a method after its return type and name.
func (p *parser) parseMethodRest(mods []syntax.GreenElem, typ *syntax.GreenNode, name *syntax.GreenToken) *syntax.GreenNode {
	children := append([]syntax.GreenElem{}, mods...)
	children = append(children, typ, name, p.parseParameterList())
	switch {
	case p.at(syntax.TokLBrace):
		children = append(children, p.parseBlock())
	case p.at(syntax.TokFatArrow):
		// Expression body: => expr ;
		children = append(children, p.bump(), p.parseExpr(),
			p.expect(syntax.TokSemicolon, diag.SynMissingToken))
	default:
		children = append(children, p.expect(syntax.TokSemicolon, diag.SynMissingToken))
	}
	return &syntax.GreenNode{Kind: syntax.KindMethodDeclaration, Children: children}
}

func (p *parser) parseParameterList() *syntax.GreenNode {
	children := []syntax.GreenElem{p.expect(syntax.TokLParen, diag.SynMissingToken)}
	for !p.atEOF() && !p.at(syntax.TokRParen) {
		children = append(children, p.parseParameter())
		if p.at(syntax.TokComma) {
			children = append(children, p.bump())
		} else {
			break
		}
	}
	children = append(children, p.expect(syntax.TokRParen, diag.SynUnclosedParen))
	return &syntax.GreenNode{Kind: syntax.KindParameterList, Children: children}
}

func (p *parser) parseParameter() *syntax.GreenNode {
	typ := p.parseTypeName()
	name := p.expect(syntax.TokIdent, diag.SynMissingToken)
	return syntax.NewNode(syntax.KindParameter, typ, name)
}

// atTypeName reports whether the current token can start a type name.
func (p *parser) atTypeName() bool {
	return p.kind().IsPredefinedType() || p.at(syntax.TokIdent) || p.at(syntax.KwVar)
}

// parseTypeName parses predefined types, var, qualified names, and generic
// names like List<int>.
func (p *parser) parseTypeName() *syntax.GreenNode {
	if p.kind().IsPredefinedType() {
		return syntax.NewNode(syntax.KindPredefinedType, p.bump())
	}
	if p.at(syntax.KwVar) {
		return syntax.NewNode(syntax.KindIdentifierName, p.bump())
	}
	name := p.parseQualifiedName()
	if !p.at(syntax.TokLt) || !p.looksLikeTypeArguments() {
		return name
	}
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

// looksLikeTypeArguments scans ahead from a '<' for a matching '>' reached
// through type-shaped tokens only.
func (p *parser) looksLikeTypeArguments() bool {
	depth := 0
	for i := 0; ; i++ {
		switch k := p.kindAt(i); {
		case k == syntax.TokLt:
			depth++
		case k == syntax.TokGt:
			depth--
			if depth == 0 {
				return true
			}
		case k == syntax.TokIdent || k == syntax.TokComma || k == syntax.TokDot ||
			k.IsPredefinedType() || k == syntax.TokLBracket || k == syntax.TokRBracket:
			// still type-shaped
		default:
			return false
		}
	}
}
