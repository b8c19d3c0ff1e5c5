package syntax

import (
	"testing"

	"github.com/jsrustad/stylefix/internal/source"
)

func ws(text string) Trivia  { return Trivia{Kind: TriviaWhitespace, Text: text} }
func eol(text string) Trivia { return Trivia{Kind: TriviaEndOfLine, Text: text} }

// int x = 1;
func declGreen() *GreenNode {
	return NewNode(KindCompilationUnit,
		NewNode(KindFieldDeclaration,
			NewNode(KindPredefinedType,
				NewToken(KwInt, "int").WithTrailing(TriviaList{ws(" ")})),
			NewNode(KindVariableDeclarator,
				NewToken(TokIdent, "x").WithTrailing(TriviaList{ws(" ")}),
				NewNode(KindEqualsValueClause,
					NewToken(TokAssign, "=").WithTrailing(TriviaList{ws(" ")}),
					NewNode(KindLiteralExpression, NewToken(TokIntLit, "1")))),
			NewToken(TokSemicolon, ";").WithTrailing(TriviaList{eol("\r\n")})),
		NewToken(TokEOF, ""))
}

func TestBuildRoundTrip(t *testing.T) {
	tree := Build(source.FileID(0), declGreen())
	if got := tree.Text(); got != "int x = 1;\r\n" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestBuildSpans(t *testing.T) {
	tree := Build(source.FileID(0), declGreen())

	first := tree.FirstToken(tree.Root())
	tok := tree.Token(first)
	if tok.Kind != KwInt {
		t.Fatalf("first token = %v", tok.Kind)
	}
	if tok.Span.Start != 0 || tok.Span.End != 3 {
		t.Errorf("int span = %v", tok.Span)
	}
	if tok.FullSpan.End != 4 {
		t.Errorf("int full span = %v", tok.FullSpan)
	}

	// Token IDs ascend in document order.
	var texts []string
	for id := first; id.IsValid(); id = tree.NextToken(id) {
		texts = append(texts, tree.Token(id).Text)
	}
	want := []string{"int", "x", "=", "1", ";", ""}
	if len(texts) != len(want) {
		t.Fatalf("token texts = %q", texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestNavigation(t *testing.T) {
	tree := Build(source.FileID(0), declGreen())
	root := tree.Root()

	var field NodeID
	for _, c := range tree.Children(root) {
		if tree.Kind(c.Node) == KindFieldDeclaration {
			field = c.Node
		}
	}
	if !field.IsValid() {
		t.Fatal("field declaration not found")
	}
	if tree.Parent(field) != root {
		t.Error("field parent is not root")
	}

	last := tree.LastToken(field)
	if tree.Token(last).Kind != TokSemicolon {
		t.Errorf("last token = %v", tree.Token(last).Kind)
	}
	if tree.TokenParent(last) != field {
		t.Error("semicolon parent is not the field declaration")
	}
	if tree.Token(tree.PrevToken(last)).Text != "1" {
		t.Errorf("prev token = %q", tree.Token(tree.PrevToken(last)).Text)
	}
}

func TestNodeCovering(t *testing.T) {
	tree := Build(source.FileID(0), declGreen())

	// Offset of "x" is 4.
	id := tree.NodeCovering(source.Span{Start: 4, End: 5})
	if tree.Kind(id) != KindVariableDeclarator {
		t.Errorf("covering node = %v", tree.Kind(id))
	}
}

func TestApplyReplacesToken(t *testing.T) {
	tree := Build(source.FileID(0), declGreen())

	var semi TokenID
	for id := TokenID(1); int(id) <= tree.TokenCount(); id++ {
		if tree.Token(id).Kind == TokSemicolon {
			semi = id
		}
	}
	r := NewReplacements()
	r.Tokens[semi] = []GreenElem{
		Synthesized(TokSemicolon, ";").WithTrailing(TriviaList{eol("\n")}),
	}
	next, err := tree.Apply(r)
	if err != nil {
		t.Fatal(err)
	}
	if got := next.Text(); got != "int x = 1;\n" {
		t.Errorf("Text() after apply = %q", got)
	}
	// Original snapshot is untouched.
	if got := tree.Text(); got != "int x = 1;\r\n" {
		t.Errorf("original mutated: %q", got)
	}
	// Spans are recomputed for the new snapshot.
	last := next.LastToken(next.Root())
	eofTok := next.Token(last)
	if eofTok.Span.Start != 11 {
		t.Errorf("EOF offset = %d, want 11", eofTok.Span.Start)
	}
	// Synthesized flag survives the rebuild.
	for id := TokenID(1); int(id) <= next.TokenCount(); id++ {
		if next.Token(id).Kind == TokSemicolon {
			if next.Token(id).Flags&TokenFormatExempt == 0 {
				t.Error("replacement token lost TokenFormatExempt")
			}
		}
	}
}

func TestApplyRejectsForeignTarget(t *testing.T) {
	tree := Build(source.FileID(0), declGreen())
	r := NewReplacements()
	r.Tokens[TokenID(9999)] = []GreenElem{NewToken(TokSemicolon, ";")}
	if _, err := tree.Apply(r); err == nil {
		t.Fatal("expected error for target outside the snapshot")
	}
}

func TestTriviaListTransforms(t *testing.T) {
	list := TriviaList{
		ws("  "), eol("\n"), eol("\n"), ws("    "),
		{Kind: TriviaLineComment, Text: "// note"}, eol("\n"), ws("    "),
	}

	if _, ok := list.LastEndOfLine(); !ok {
		t.Error("LastEndOfLine found nothing")
	}

	trimmed := list.WithoutLeadingBlankLines()
	if len(trimmed) != 4 {
		t.Fatalf("WithoutLeadingBlankLines len = %d, want 4", len(trimmed))
	}
	if !trimmed[0].IsWhitespace() || trimmed[1].Kind != TriviaLineComment {
		t.Errorf("kept the wrong prefix: %v %v", trimmed[0].Kind, trimmed[1].Kind)
	}

	tail := list.WithoutTrailingWhitespace()
	if tail[len(tail)-1].Kind != TriviaEndOfLine {
		t.Errorf("WithoutTrailingWhitespace tail = %v", tail[len(tail)-1].Kind)
	}

	if !list.HasBlankLine() {
		t.Error("HasBlankLine = false, want true")
	}
	if (TriviaList{ws(" "), eol("\n"), ws(" ")}).HasBlankLine() {
		t.Error("single terminator reported as blank line")
	}
}
