package rewrite

import (
	"strings"
	"testing"

	"github.com/jsrustad/stylefix/internal/parser"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

func parseDoc(t *testing.T, src string) (*syntax.Tree, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.cs", []byte(src))
	file := fs.Get(id)
	return parser.ParseFile(file, parser.Options{}), file
}

// tokenWithText locates the first token whose text matches.
func tokenWithText(t *testing.T, tree *syntax.Tree, text string) syntax.TokenID {
	t.Helper()
	for id := syntax.TokenID(1); int(id) <= tree.TokenCount(); id++ {
		if tree.Token(id).Text == text {
			return id
		}
	}
	t.Fatalf("no token %q", text)
	return syntax.NoToken
}

func spanOf(t *testing.T, file *source.File, substr string) source.Span {
	t.Helper()
	idx := strings.Index(string(file.Content), substr)
	if idx < 0 {
		t.Fatalf("substring %q not in document", substr)
	}
	return source.Span{File: file.ID, Start: uint32(idx), End: uint32(idx + len(substr))}
}

func TestInferEndOfLineFromLeadingTrivia(t *testing.T) {
	// Blank line above y puts an EOL into y's leading trivia.
	tree, file := parseDoc(t, "class C { }\n\nclass D { }\n")
	tok := tokenWithText(t, tree, "D")
	// The class keyword of D owns the blank line.
	tok = tree.PrevToken(tok)
	got := InferEndOfLine(tree, tok, file, Settings{DefaultEOL: "\r\n"})
	if got != "\n" {
		t.Fatalf("InferEndOfLine = %q, want LF from leading trivia", got)
	}
}

func TestInferEndOfLineFromPreviousTrailing(t *testing.T) {
	tree, file := parseDoc(t, "class C { }\r\nclass D { }")
	tok := tokenWithText(t, tree, "D")
	tok = tree.PrevToken(tok) // class keyword of D: leading empty, prev trailing CRLF
	got := InferEndOfLine(tree, tok, file, Settings{DefaultEOL: "\n"})
	if got != "\r\n" {
		t.Fatalf("InferEndOfLine = %q, want CRLF from previous token trailing", got)
	}
}

func TestInferEndOfLineFromPhysicalLine(t *testing.T) {
	// Mid-line token: no EOL in its leading, none in the space trailing the
	// previous token, so the line's own terminator decides.
	tree, file := parseDoc(t, "class C { }\r\n")
	tok := tokenWithText(t, tree, "C")
	got := InferEndOfLine(tree, tok, file, Settings{DefaultEOL: "\n"})
	if got != "\r\n" {
		t.Fatalf("InferEndOfLine = %q, want CRLF from physical line", got)
	}
}

func TestInferEndOfLineFromPreviousPhysicalLine(t *testing.T) {
	// Tokens built without trivia force the text-based fallback; the
	// token's own line is unterminated so the previous line decides.
	fs := source.NewFileSet()
	id := fs.AddVirtual("raw.cs", []byte("zz\raabb"))
	file := fs.Get(id)
	root := syntax.NewNode(syntax.KindCompilationUnit,
		syntax.NewToken(syntax.TokIdent, "zz\r"),
		syntax.NewToken(syntax.TokIdent, "aabb"),
		syntax.NewToken(syntax.TokEOF, ""))
	tree := syntax.Build(file.ID, root)
	tok := tokenWithText(t, tree, "aabb")
	got := InferEndOfLine(tree, tok, file, Settings{DefaultEOL: "\n"})
	if got != "\r" {
		t.Fatalf("InferEndOfLine = %q, want lone CR from previous line", got)
	}
}

func TestInferEndOfLineDefault(t *testing.T) {
	tree, file := parseDoc(t, "class C { }")
	tok := tokenWithText(t, tree, "C")
	if got := InferEndOfLine(tree, tok, file, Settings{}); got != "\r\n" {
		t.Fatalf("InferEndOfLine = %q, want built-in CRLF default", got)
	}
	if got := InferEndOfLine(tree, tok, file, Settings{DefaultEOL: "\n"}); got != "\n" {
		t.Fatalf("InferEndOfLine = %q, want configured LF", got)
	}
}

func TestIndentSteps(t *testing.T) {
	src := "namespace N\n{\n    class C\n    {\n        void M()\n        {\n            int x = 1;\n        }\n    }\n}\n"
	tree, _ := parseDoc(t, src)

	if got := IndentSteps(tree, tokenWithText(t, tree, "x")); got != 3 {
		t.Fatalf("statement depth = %d, want 3", got)
	}
	if got := IndentSteps(tree, tokenWithText(t, tree, "class")); got != 1 {
		t.Fatalf("type keyword depth = %d, want 1", got)
	}
	if got := IndentSteps(tree, tokenWithText(t, tree, "namespace")); got != 0 {
		t.Fatalf("namespace keyword depth = %d, want 0", got)
	}

	// Braces sit at the depth of their construct's parent.
	lbrace := tree.FirstToken(findKind(tree, syntax.KindBlock))
	if got := IndentSteps(tree, lbrace); got != 2 {
		t.Fatalf("block open brace depth = %d, want 2", got)
	}
}

func TestIndentStepsSwitch(t *testing.T) {
	src := "class C\n{\n    void M(int a)\n    {\n        switch (a)\n        {\n            case 1:\n                break;\n        }\n    }\n}\n"
	tree, _ := parseDoc(t, src)
	if got := IndentSteps(tree, tokenWithText(t, tree, "case")); got != 3 {
		t.Fatalf("case label depth = %d, want 3", got)
	}
	if got := IndentSteps(tree, tokenWithText(t, tree, "break")); got != 4 {
		t.Fatalf("section statement depth = %d, want 4", got)
	}
}

func TestIndentStepsIgnoresExistingWhitespace(t *testing.T) {
	flat, _ := parseDoc(t, "namespace N\n{\nclass C\n{\nvoid M()\n{\nint x = 1;\n}\n}\n}\n")
	deep, _ := parseDoc(t, "namespace N\n{\n        class C\n        {\n                void M()\n                {\n                        int x = 1;\n                }\n        }\n}\n")
	a := IndentSteps(flat, tokenWithText(t, flat, "x"))
	b := IndentSteps(deep, tokenWithText(t, deep, "x"))
	if a != b || a != 3 {
		t.Fatalf("structural depth differs with layout: flat=%d deep=%d", a, b)
	}
}

func TestRenderIndent(t *testing.T) {
	if got := RenderIndent(0, DefaultSettings()); got != nil {
		t.Fatalf("zero steps rendered %v, want no trivia", got)
	}
	spaces := RenderIndent(2, Settings{IndentSize: 4})
	if len(spaces) != 1 || spaces[0].Text != "        " {
		t.Fatalf("RenderIndent spaces = %v", spaces)
	}
	tabs := RenderIndent(3, Settings{IndentSize: 4, UseTabs: true})
	if len(tabs) != 1 || tabs[0].Text != "\t\t\t" {
		t.Fatalf("RenderIndent tabs = %v", tabs)
	}
	if spaces[0].Flags&syntax.TriviaSynthesized == 0 {
		t.Fatal("rendered indentation not marked synthesized")
	}
}

func findKind(tree *syntax.Tree, kind syntax.NodeKind) syntax.NodeID {
	var walk func(id syntax.NodeID) syntax.NodeID
	walk = func(id syntax.NodeID) syntax.NodeID {
		if tree.Kind(id) == kind {
			return id
		}
		for _, ch := range tree.Children(id) {
			if ch.Node.IsValid() {
				if found := walk(ch.Node); found.IsValid() {
					return found
				}
			}
		}
		return syntax.NoNode
	}
	return walk(tree.Root())
}
