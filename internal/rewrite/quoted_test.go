package rewrite

import (
	"context"
	"testing"

	"github.com/jsrustad/stylefix/internal/symbols"
	"github.com/jsrustad/stylefix/internal/syntax"
)

var exprMarker = symbols.Type{Name: "System.Linq.Expressions.Expression"}

func expressionMethod(name string) symbols.Method {
	return symbols.Method{
		Name:   name,
		Params: []symbols.Type{{Name: exprMarker.Name, Args: []symbols.Type{{Name: "System.Func"}}}},
	}
}

func TestInQuotedContextLambda(t *testing.T) {
	tree, _ := parseDoc(t, "class C { void M() { Use(x => F(x)); } }")
	lambda := findKind(tree, syntax.KindLambdaExpression)
	// The inner call, not the enclosing Use(...) invocation: only nodes
	// below the lambda read as quoted.
	body := findKindText(tree, syntax.KindInvocationExpression, "F(x)")
	if !body.IsValid() {
		t.Fatal("no invocation inside the lambda body")
	}

	table := symbols.NewTable()
	table.Converted[lambda] = symbols.Type{
		Name: exprMarker.Name,
		Args: []symbols.Type{{Name: "System.Func"}},
	}

	// Any position inside the lambda body reads as quoted; the converted
	// type is compared by unparameterized definition.
	got, err := InQuotedContext(context.Background(), tree, body, exprMarker, table)
	if err != nil || !got {
		t.Fatalf("InQuotedContext = %v, %v; want true", got, err)
	}

	// An executable delegate conversion does not match.
	table.Converted[lambda] = symbols.Type{Name: "System.Func"}
	got, err = InQuotedContext(context.Background(), tree, body, exprMarker, table)
	if err != nil || got {
		t.Fatalf("delegate-typed lambda reported quoted")
	}
}

// findKindText returns the first node of the kind whose span text matches
// exactly, for picking one node out of several of the same kind.
func findKindText(tree *syntax.Tree, kind syntax.NodeKind, text string) syntax.NodeID {
	var walk func(id syntax.NodeID) syntax.NodeID
	walk = func(id syntax.NodeID) syntax.NodeID {
		if tree.Kind(id) == kind && tree.NodeText(id) == text {
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

func TestInQuotedContextZeroMarker(t *testing.T) {
	tree, _ := parseDoc(t, "class C { void M() { Use(x => F(x)); } }")
	body := findKind(tree, syntax.KindInvocationExpression)
	got, err := InQuotedContext(context.Background(), tree, body, symbols.Type{}, symbols.NopResolver{})
	if err != nil || got {
		t.Fatalf("zero marker must read as not quoted")
	}
}

func TestInQuotedContextSelectClause(t *testing.T) {
	tree, _ := parseDoc(t, "class C { object M() { return from x in xs select x.N; } }")
	sel := findKind(tree, syntax.KindSelectClause)
	inner := findKind(tree, syntax.KindMemberAccessExpression)

	table := symbols.NewTable()
	table.Infos[sel] = symbols.Info{Method: expressionMethod("Select")}
	got, err := InQuotedContext(context.Background(), tree, inner, exprMarker, table)
	if err != nil || !got {
		t.Fatalf("position inside translated select not reported quoted")
	}

	// In-memory sequences bind the first parameter to the sequence type.
	table.Infos[sel] = symbols.Info{Method: symbols.Method{
		Name:   "Select",
		Params: []symbols.Type{{Name: "System.Collections.Generic.IEnumerable"}},
	}}
	got, err = InQuotedContext(context.Background(), tree, inner, exprMarker, table)
	if err != nil || got {
		t.Fatalf("enumerable select reported quoted")
	}
}

func TestInQuotedContextChecksEveryCandidate(t *testing.T) {
	tree, _ := parseDoc(t, "class C { object M() { return from x in xs orderby x.N select x; } }")
	ordering := findKind(tree, syntax.KindOrdering)
	inner := findKind(tree, syntax.KindMemberAccessExpression)

	// Primary resolution failed; one of the ambiguous candidates matches.
	table := symbols.NewTable()
	table.Infos[ordering] = symbols.Info{
		Candidates: []symbols.Method{
			{Name: "OrderBy", Params: []symbols.Type{{Name: "System.Collections.Generic.IEnumerable"}}},
			expressionMethod("OrderBy"),
		},
	}
	got, err := InQuotedContext(context.Background(), tree, inner, exprMarker, table)
	if err != nil || !got {
		t.Fatalf("matching overload candidate must be enough to report quoted")
	}
}

func TestInQuotedContextOtherClauses(t *testing.T) {
	tree, _ := parseDoc(t, "class C { object M() { return from x in xs where x.N > 0 select x; } }")
	where := findKind(tree, syntax.KindWhereClause)
	inner := findKind(tree, syntax.KindMemberAccessExpression)

	table := symbols.NewTable()
	table.Clauses[where] = symbols.ClauseInfo{Operation: symbols.Info{Method: expressionMethod("Where")}}
	got, err := InQuotedContext(context.Background(), tree, inner, exprMarker, table)
	if err != nil || !got {
		t.Fatalf("where clause operation binding not honored")
	}

	// The cast-conversion side alone must also match.
	table.Clauses[where] = symbols.ClauseInfo{Cast: symbols.Info{Method: expressionMethod("Cast")}}
	got, err = InQuotedContext(context.Background(), tree, inner, exprMarker, table)
	if err != nil || !got {
		t.Fatalf("where clause cast binding not honored")
	}
}

func TestInQuotedContextCancellation(t *testing.T) {
	tree, _ := parseDoc(t, "class C { void M() { Use(x => F(x)); } }")
	body := findKind(tree, syntax.KindInvocationExpression)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := InQuotedContext(ctx, tree, body, exprMarker, symbols.NopResolver{})
	if err == nil {
		t.Fatal("cancelled walk must return the context error")
	}
}
