package parser

import (
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// atQueryStart distinguishes a comprehension from an identifier named
// "from": the keyword must be followed by a range variable (possibly
// typed) and eventually "in".
func (p *parser) atQueryStart() bool {
	if !p.at(syntax.KwFrom) {
		return false
	}
	// from ident in ...  |  from type ident in ...
	if p.kindAt(1) == syntax.TokIdent && p.kindAt(2) == syntax.KwIn {
		return true
	}
	if (p.kindAt(1) == syntax.TokIdent || p.kindAt(1).IsPredefinedType()) &&
		p.kindAt(2) == syntax.TokIdent && p.kindAt(3) == syntax.KwIn {
		return true
	}
	return false
}

func (p *parser) parseQueryExpression() *syntax.GreenNode {
	children := []syntax.GreenElem{p.parseFromClause()}
	children = append(children, p.parseQueryBody()...)
	return &syntax.GreenNode{Kind: syntax.KindQueryExpression, Children: children}
}

// parseQueryBody parses clauses up to and including the final select or
// group clause, plus an optional into continuation.
func (p *parser) parseQueryBody() []syntax.GreenElem {
	var body []syntax.GreenElem
loop:
	for {
		switch p.kind() {
		case syntax.KwFrom:
			body = append(body, p.parseFromClause())
		case syntax.KwLet:
			body = append(body, p.parseLetClause())
		case syntax.KwWhere:
			body = append(body, p.parseWhereClause())
		case syntax.KwJoin:
			body = append(body, p.parseJoinClause())
		case syntax.KwOrderBy:
			body = append(body, p.parseOrderByClause())
		case syntax.KwSelect:
			body = append(body, syntax.NewNode(syntax.KindSelectClause,
				p.bump(), p.parseExpr()))
			break loop
		case syntax.KwGroup:
			body = append(body, p.parseGroupClause())
			break loop
		default:
			p.report(diag.SynUnexpectedToken, p.cur().Span,
				"expected query clause, found '"+p.cur().Text+"'")
			break loop
		}
	}
	if p.at(syntax.KwInto) {
		cont := []syntax.GreenElem{
			p.bump(),
			p.expect(syntax.TokIdent, diag.SynMissingToken),
		}
		cont = append(cont, p.parseQueryBody()...)
		body = append(body, &syntax.GreenNode{Kind: syntax.KindQueryContinuation, Children: cont})
	}
	return body
}

func (p *parser) parseFromClause() *syntax.GreenNode {
	children := []syntax.GreenElem{p.bump()}
	// Optional range variable type.
	if p.kindAt(1) != syntax.KwIn {
		children = append(children, p.parseTypeName())
	}
	children = append(children,
		p.expect(syntax.TokIdent, diag.SynMissingToken),
		p.expect(syntax.KwIn, diag.SynMissingToken),
		p.parseExpr())
	return &syntax.GreenNode{Kind: syntax.KindFromClause, Children: children}
}

func (p *parser) parseLetClause() *syntax.GreenNode {
	return syntax.NewNode(syntax.KindLetClause,
		p.bump(),
		p.expect(syntax.TokIdent, diag.SynMissingToken),
		p.expect(syntax.TokAssign, diag.SynMissingToken),
		p.parseExpr())
}

func (p *parser) parseWhereClause() *syntax.GreenNode {
	return syntax.NewNode(syntax.KindWhereClause, p.bump(), p.parseExpr())
}

func (p *parser) parseJoinClause() *syntax.GreenNode {
	children := []syntax.GreenElem{p.bump()}
	if p.kindAt(1) != syntax.KwIn {
		children = append(children, p.parseTypeName())
	}
	children = append(children,
		p.expect(syntax.TokIdent, diag.SynMissingToken),
		p.expect(syntax.KwIn, diag.SynMissingToken),
		p.parseExpr(),
		p.expect(syntax.KwOn, diag.SynMissingToken),
		p.parseExpr(),
		p.expect(syntax.KwEquals, diag.SynMissingToken),
		p.parseExpr())
	if p.at(syntax.KwInto) {
		children = append(children, p.bump(),
			p.expect(syntax.TokIdent, diag.SynMissingToken))
	}
	return &syntax.GreenNode{Kind: syntax.KindJoinClause, Children: children}
}

func (p *parser) parseOrderByClause() *syntax.GreenNode {
	children := []syntax.GreenElem{p.bump(), p.parseOrdering()}
	for p.at(syntax.TokComma) {
		children = append(children, p.bump(), p.parseOrdering())
	}
	return &syntax.GreenNode{Kind: syntax.KindOrderByClause, Children: children}
}

func (p *parser) parseOrdering() *syntax.GreenNode {
	children := []syntax.GreenElem{p.parseExpr()}
	if p.at(syntax.KwAscending) || p.at(syntax.KwDescending) {
		children = append(children, p.bump())
	}
	return &syntax.GreenNode{Kind: syntax.KindOrdering, Children: children}
}

func (p *parser) parseGroupClause() *syntax.GreenNode {
	return syntax.NewNode(syntax.KindGroupClause,
		p.bump(),
		p.parseExpr(),
		p.expect(syntax.KwBy, diag.SynMissingToken),
		p.parseExpr())
}
