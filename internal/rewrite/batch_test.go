package rewrite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/syntax"
)

func violationAt(tree *syntax.Tree, node syntax.NodeID) diag.Diagnostic {
	return diag.NewWarning(diag.StyStatementsOnLine, tree.Span(node), "statement must begin on its own line")
}

func TestComputeBatchFixesAllStatements(t *testing.T) {
	src := "class C\n{\n    void M()\n    {\n        int i = 0; i++; j();\n    }\n}\n"
	tree, file := parseDoc(t, src)
	diags := []diag.Diagnostic{
		violationAt(tree, statementNamed(t, tree, "i++;")),
		violationAt(tree, statementNamed(t, tree, "j();")),
	}

	fixed, err := ApplyBatch(context.Background(), tree, file, diags, StatementOnOwnLine, DefaultSettings())
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	want := strings.Replace(src, "int i = 0; i++; j();",
		"int i = 0;\n        i++;\n        j();", 1)
	if fixed.Text() != want {
		t.Fatalf("batch text:\n%q\nwant:\n%q", fixed.Text(), want)
	}
}

func TestComputeBatchIsOrderIndependent(t *testing.T) {
	src := "class C\n{\n    void M()\n    {\n        a(); b(); c(); d();\n    }\n}\n"
	tree, file := parseDoc(t, src)
	base := []diag.Diagnostic{
		violationAt(tree, statementNamed(t, tree, "b();")),
		violationAt(tree, statementNamed(t, tree, "c();")),
		violationAt(tree, statementNamed(t, tree, "d();")),
	}
	perms := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}, {2, 0, 1}, {0, 2, 1}, {1, 0, 2}}

	var first string
	for i, p := range perms {
		diags := []diag.Diagnostic{base[p[0]], base[p[1]], base[p[2]]}
		fixed, err := ApplyBatch(context.Background(), tree, file, diags, StatementOnOwnLine, DefaultSettings())
		if err != nil {
			t.Fatalf("permutation %v: %v", p, err)
		}
		if i == 0 {
			first = fixed.Text()
			continue
		}
		if fixed.Text() != first {
			t.Fatalf("permutation %v produced a different document", p)
		}
	}
}

func TestComputeBatchConflict(t *testing.T) {
	src := "class C\n{\n    void M()\n    {\n        a(); b();\n    }\n}\n"
	tree, file := parseDoc(t, src)
	d := violationAt(tree, statementNamed(t, tree, "b();"))

	// The same violation twice: both maps claim the same tokens.
	m, err := ComputeBatch(context.Background(), tree, file,
		[]diag.Diagnostic{d, d}, StatementOnOwnLine, DefaultSettings())
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if m != nil {
		t.Fatal("conflicting batch must not return a partial map")
	}
}

func TestComputeBatchCancellation(t *testing.T) {
	src := "class C\n{\n    void M()\n    {\n        a(); b();\n    }\n}\n"
	tree, file := parseDoc(t, src)
	d := violationAt(tree, statementNamed(t, tree, "b();"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, err := ComputeBatch(ctx, tree, file, []diag.Diagnostic{d}, StatementOnOwnLine, DefaultSettings())
	if err == nil || m != nil {
		t.Fatalf("cancelled batch returned %v, %v", m, err)
	}
}

func TestComputeBatchSkipsNotApplicable(t *testing.T) {
	src := "class C\n{\n    void M()\n    {\n        a(); b();\n    }\n}\n"
	tree, file := parseDoc(t, src)
	diags := []diag.Diagnostic{
		violationAt(tree, statementNamed(t, tree, "a();")), // first on line: not applicable
		violationAt(tree, statementNamed(t, tree, "b();")),
	}

	fixed, err := ApplyBatch(context.Background(), tree, file, diags, StatementOnOwnLine, DefaultSettings())
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if !strings.Contains(fixed.Text(), "a();\n        b();") {
		t.Fatalf("text = %q", fixed.Text())
	}
}

func TestComputeBatchTrimsWhitespaceViolations(t *testing.T) {
	src := "class C\n{\n    void M()\n    {\n        a();  \n        b(); \n    }\n}\n"
	tree, file := parseDoc(t, src)
	firstWS := spanOf(t, file, "  \n")
	firstWS.End -= 1
	secondWS := spanOf(t, file, " \n    }")
	secondWS.End = secondWS.Start + 1

	diags := []diag.Diagnostic{
		diag.NewWarning(diag.StyTrailingWhitespace, firstWS, "trailing whitespace"),
		diag.NewWarning(diag.StyTrailingWhitespace, secondWS, "trailing whitespace"),
	}
	fixed, err := ApplyBatch(context.Background(), tree, file, diags, TrimTrailingWhitespace, DefaultSettings())
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	want := strings.Replace(src, "a();  \n", "a();\n", 1)
	want = strings.Replace(want, "b(); \n", "b();\n", 1)
	if fixed.Text() != want {
		t.Fatalf("trim batch:\n%q\nwant:\n%q", fixed.Text(), want)
	}
}

func TestReplacementMapMerge(t *testing.T) {
	tree, _ := parseDoc(t, "class C { }")
	classTok := tokenWithText(t, tree, "class")
	nameTok := tokenWithText(t, tree, "C")

	a := NewReplacementMap()
	a.ReplaceToken(classTok, tree.GreenCopyToken(classTok))
	b := NewReplacementMap()
	b.ReplaceToken(nameTok, tree.GreenCopyToken(nameTok))
	if err := a.Merge(b); err != nil {
		t.Fatalf("disjoint merge: %v", err)
	}
	if a.Len() != 2 {
		t.Fatalf("merged len = %d", a.Len())
	}

	c := NewReplacementMap()
	c.ReplaceToken(nameTok, tree.GreenCopyToken(nameTok))
	err := a.Merge(c)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if a.Len() != 2 {
		t.Fatal("failed merge must leave the target untouched")
	}
}

func TestReplacementMapRejectsForeignTargets(t *testing.T) {
	tree, _ := parseDoc(t, "class C { }")

	m := NewReplacementMap()
	m.ReplaceToken(syntax.TokenID(tree.TokenCount()+50), syntax.NewToken(syntax.TokIdent, "x"))
	if _, err := m.Apply(tree); err == nil {
		t.Fatal("foreign token target must fail to apply")
	}
}
