package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/parser"
	"github.com/jsrustad/stylefix/internal/rewrite"
	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

func checkSrc(t *testing.T, rule Rule, src string) (*syntax.Tree, *source.File, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.cs", []byte(src))
	file := fs.Get(id)
	tree := parser.ParseFile(file, parser.Options{})
	bag := diag.NewBag(64)
	rule.Check(tree, file, diag.BagReporter{Bag: bag})
	return tree, file, bag.Items()
}

func TestRegistry(t *testing.T) {
	all := All()
	if len(all) != 3 {
		t.Fatalf("registered rules = %d, want 3", len(all))
	}
	want := []string{"STY1001", "STY1002", "STY1003"}
	for i, r := range all {
		if r.ID() != want[i] {
			t.Fatalf("rule %d = %s, want %s", i, r.ID(), want[i])
		}
		if _, ok := ByID(r.ID()); !ok {
			t.Fatalf("ByID(%s) missing", r.ID())
		}
		if FixerFor(r.Code()) == nil {
			t.Fatalf("rule %s has no fixer", r.ID())
		}
	}
}

func TestStatementsOnLine(t *testing.T) {
	rule, _ := ByID("STY1001")
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"two on one line", "class C { void M() { int i = 0; i++;\n} }", 1},
		{"three on one line", "class C\n{\n    void M()\n    {\n        a(); b(); c();\n    }\n}\n", 2},
		{"each on own line", "class C\n{\n    void M()\n    {\n        a();\n        b();\n    }\n}\n", 0},
		{"sole statement", "class C { void M() {\n        a();\n} }", 0},
		{"switch section", "class C\n{\n    void M(int a)\n    {\n        switch (a)\n        {\n            case 1:\n                b(); c();\n                break;\n        }\n    }\n}\n", 1},
		{"comment between keeps line", "class C\n{\n    void M()\n    {\n        a(); /* x */ b();\n    }\n}\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, diags := checkSrc(t, rule, tc.src)
			if len(diags) != tc.want {
				t.Fatalf("violations = %d, want %d", len(diags), tc.want)
			}
		})
	}
}

func TestCombinedDeclarators(t *testing.T) {
	rule, _ := ByID("STY1002")
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"local", "class C { void M() { int j = 6, k = 3;\n} }", 1},
		{"field", "class C { int a, b, c; }", 1},
		{"event field", "class C { event Handler A, B; }", 1},
		{"single declarators", "class C { int a; void M() { var x = 1;\n} }", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, diags := checkSrc(t, rule, tc.src)
			if len(diags) != tc.want {
				t.Fatalf("violations = %d, want %d", len(diags), tc.want)
			}
		})
	}
}

func TestTrailingWhitespace(t *testing.T) {
	rule, _ := ByID("STY1003")
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"after statement", "class C { void M() { a();   \n} }", 1},
		{"whitespace-only line", "class C {\n   \n}", 1},
		{"at end of file", "class C { }   ", 1},
		{"clean", "class C\n{\n    void M() { }\n}\n", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, diags := checkSrc(t, rule, tc.src)
			if len(diags) != tc.want {
				t.Fatalf("violations = %d, want %d", len(diags), tc.want)
			}
		})
	}
}

// Fixing every violation a rule reports and re-checking must come up
// clean; this ties the rule predicates to their fixers.
func TestRulesFixedPoint(t *testing.T) {
	cases := []struct {
		name string
		id   string
		src  string
	}{
		{"statements", "STY1001", "class C\n{\n    void M()\n    {\n        int i = 0; i++; j();\n    }\n}\n"},
		{"declarators", "STY1002", "class C\n{\n    int a, b;\n    void M()\n    {\n        int j = 6, k = 3;\n    }\n}\n"},
		{"whitespace", "STY1003", "class C\n{\n    void M()\n    {\n        a();  \n    }\n}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule, _ := ByID(tc.id)
			tree, file, diags := checkSrc(t, rule, tc.src)
			if len(diags) == 0 {
				t.Fatal("expected violations before fixing")
			}
			fixed, err := rewrite.ApplyBatch(context.Background(), tree, file, diags,
				FixerFor(rule.Code()), rewrite.DefaultSettings())
			if err != nil {
				t.Fatalf("batch: %v", err)
			}

			fs := source.NewFileSet()
			id := fs.AddVirtual("fixed.cs", []byte(fixed.Text()))
			refile := fs.Get(id)
			retree := parser.ParseFile(refile, parser.Options{})
			bag := diag.NewBag(64)
			rule.Check(retree, refile, diag.BagReporter{Bag: bag})
			if bag.Len() != 0 {
				t.Fatalf("still %d violations after fix:\n%q", bag.Len(), fixed.Text())
			}
			if !strings.Contains(fixed.Text(), "class C") {
				t.Fatal("fixed document lost its content")
			}
		})
	}
}
