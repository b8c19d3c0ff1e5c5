package rewrite

import (
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// SplitDeclarators rewrites a declaration binding several names into one
// declaration per name. The shared modifiers and type are duplicated in
// front of every declarator; the duplicates are marked synthesized so a
// later formatting pass leaves them alone.
//
// Trivia placement: the first declaration keeps the original leading
// trivia, stripped of blank lines at its head, with one blank line put
// back when the stripped head starts with a comment. Every subsequent
// declaration starts with an inferred terminator plus structural
// indentation. The last declaration carries the trivia that trailed the
// whole combined declaration; comments riding on the dropped separators
// move onto the synthesized semicolons. Not applicable unless the target
// is a field, event field, or local declaration with at least two
// declarators.
func SplitDeclarators(tree *syntax.Tree, file *source.File, target Target, s Settings) *ReplacementMap {
	node := target.Node
	if !node.IsValid() {
		return nil
	}
	kind := tree.Kind(node)
	switch kind {
	case syntax.KindFieldDeclaration, syntax.KindEventFieldDeclaration,
		syntax.KindLocalDeclarationStatement:
	default:
		return nil
	}

	prefix, decls, commas, semi := partitionDeclaration(tree, node)
	if len(decls) < 2 || len(commas) != len(decls)-1 || !semi.IsValid() {
		return nil
	}

	first := tree.FirstToken(node)
	if !first.IsValid() {
		return nil
	}
	eol := InferEndOfLine(tree, first, file, s)
	indent := RenderIndent(IndentSteps(tree, first), s)

	greens := make([]syntax.GreenElem, 0, len(decls))
	for i, decl := range decls {
		children := make([]syntax.GreenElem, 0, len(prefix)+2)
		for _, ch := range prefix {
			children = append(children, copyChild(tree, ch))
		}
		if i > 0 {
			for j := range children {
				children[j] = markSynthesized(children[j])
			}
		}

		switch {
		case i == 0:
			lead := firstDeclarationLeading(tree.Token(first).Leading, eol)
			children[0] = withFirstTokenLeading(children[0], lead)
		default:
			lead := syntax.TriviaList{syntax.SynthesizedTrivia(syntax.TriviaEndOfLine, eol)}
			lead = append(lead, indent...)
			children[0] = withFirstTokenLeading(children[0], lead)
		}

		children = append(children, tree.GreenCopy(decl))

		if i == len(decls)-1 {
			children = append(children, tree.GreenCopyToken(semi))
		} else {
			semiTok := syntax.Synthesized(syntax.TokSemicolon, ";").
				WithTrailing(commentsOf(tree.Token(commas[i])))
			children = append(children, semiTok)
		}

		greens = append(greens, &syntax.GreenNode{Kind: kind, Children: children})
	}

	m := NewReplacementMap()
	m.ReplaceNode(node, greens...)
	return m
}

// partitionDeclaration splits a declaration's direct children into the
// shared prefix (modifiers, event keyword, type), the declarators, the
// separating commas, and the terminating semicolon.
func partitionDeclaration(tree *syntax.Tree, node syntax.NodeID) (prefix []syntax.Child, decls []syntax.NodeID, commas []syntax.TokenID, semi syntax.TokenID) {
	semi = syntax.NoToken
	for _, ch := range tree.Children(node) {
		switch {
		case ch.Node.IsValid():
			if tree.Kind(ch.Node) == syntax.KindVariableDeclarator {
				decls = append(decls, ch.Node)
			} else if len(decls) == 0 {
				prefix = append(prefix, ch)
			} else {
				return nil, nil, nil, syntax.NoToken
			}
		case ch.Token.IsValid():
			switch k := tree.Token(ch.Token).Kind; {
			case k == syntax.TokComma && len(decls) > 0:
				commas = append(commas, ch.Token)
			case k == syntax.TokSemicolon:
				semi = ch.Token
			case len(decls) == 0:
				prefix = append(prefix, ch)
			default:
				return nil, nil, nil, syntax.NoToken
			}
		}
	}
	return prefix, decls, commas, semi
}

func copyChild(tree *syntax.Tree, ch syntax.Child) syntax.GreenElem {
	if ch.Node.IsValid() {
		return tree.GreenCopy(ch.Node)
	}
	return tree.GreenCopyToken(ch.Token)
}

// firstDeclarationLeading strips blank-line runs from the head of the
// original leading trivia. When the surviving head begins with a comment
// the declaration would otherwise glue the comment to whatever precedes
// it, so exactly one blank line is put back in front.
func firstDeclarationLeading(lead syntax.TriviaList, eol string) syntax.TriviaList {
	stripped := lead.WithoutLeadingBlankLines()
	for _, t := range stripped {
		if t.IsWhitespace() {
			continue
		}
		if t.IsComment() {
			out := syntax.TriviaList{syntax.SynthesizedTrivia(syntax.TriviaEndOfLine, eol)}
			return append(out, stripped...)
		}
		break
	}
	return stripped
}

// commentsOf keeps only the comment entries riding on a dropped separator.
func commentsOf(tok *syntax.Token) syntax.TriviaList {
	var out syntax.TriviaList
	for _, t := range tok.Leading {
		if t.IsComment() {
			out = append(out, t)
		}
	}
	for _, t := range tok.Trailing {
		if t.IsComment() {
			out = append(out, t)
		}
	}
	return out
}
