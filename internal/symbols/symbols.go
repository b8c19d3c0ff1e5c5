// Package symbols is the name-resolution boundary of the rewrite engine.
// The engine never resolves names itself: it asks a Resolver what a lambda
// converts to or what method a comprehension clause binds to, and compares
// the answers against a marker type. Hosts plug in a real binder; tests and
// the standalone CLI use the table implementation below.
package symbols

import "github.com/jsrustad/stylefix/internal/syntax"

// Type names a type, optionally parameterized. Name is the full metadata
// name, e.g. "System.Linq.Expressions.Expression".
type Type struct {
	Name string
	Args []Type
}

// IsZero reports whether the type carries no name at all.
func (t Type) IsZero() bool {
	return t.Name == ""
}

// Unparameterized strips type arguments, keeping only the definition name.
func (t Type) Unparameterized() Type {
	return Type{Name: t.Name}
}

// SameDefinition compares two types by unparameterized definition.
// Expression<Func<int>> and Expression<Func<string,bool>> agree here.
func (t Type) SameDefinition(other Type) bool {
	return !t.IsZero() && t.Name == other.Name
}

// Method describes one callable binding with its parameter types in
// declaration order. Extension-style query operators carry the receiver
// sequence as the first parameter.
type Method struct {
	Name   string
	Params []Type
}

// IsZero reports whether the method is an absent binding.
func (m Method) IsZero() bool {
	return m.Name == "" && len(m.Params) == 0
}

// FirstParam returns the first parameter type, or the zero Type.
func (m Method) FirstParam() Type {
	if len(m.Params) == 0 {
		return Type{}
	}
	return m.Params[0]
}

// Info is one resolution result: the primary binding plus every other
// candidate when overload resolution was ambiguous.
type Info struct {
	Method     Method
	Candidates []Method
}

// All yields the primary binding followed by the remaining candidates,
// skipping absent entries. Callers must inspect every returned method:
// an ambiguous position is unsafe as soon as any one candidate matches.
func (in Info) All() []Method {
	out := make([]Method, 0, 1+len(in.Candidates))
	if !in.Method.IsZero() {
		out = append(out, in.Method)
	}
	for _, c := range in.Candidates {
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return out
}

// ClauseInfo pairs the two resolution results a comprehension clause
// carries: how the range variable is cast into the clause, and what
// operation the clause itself invokes.
type ClauseInfo struct {
	Cast      Info
	Operation Info
}

// Resolver answers the three questions the quoted-context walk asks.
// Implementations must be safe for concurrent use; the engine fixes
// violations in parallel against a shared tree snapshot.
type Resolver interface {
	// ConvertedType reports the type a lambda expression converts to at
	// its use site, or the zero Type when unknown.
	ConvertedType(tree *syntax.Tree, node syntax.NodeID) Type

	// SymbolInfo reports the binding of a select clause or an orderby
	// ordering.
	SymbolInfo(tree *syntax.Tree, node syntax.NodeID) Info

	// QueryClauseInfo reports both resolution results for the remaining
	// comprehension clauses (from, let, where, join, group).
	QueryClauseInfo(tree *syntax.Tree, node syntax.NodeID) ClauseInfo
}

// NopResolver resolves nothing. Scanning plain source without a binder
// uses it, which makes every position read as not quoted.
type NopResolver struct{}

func (NopResolver) ConvertedType(*syntax.Tree, syntax.NodeID) Type       { return Type{} }
func (NopResolver) SymbolInfo(*syntax.Tree, syntax.NodeID) Info          { return Info{} }
func (NopResolver) QueryClauseInfo(*syntax.Tree, syntax.NodeID) ClauseInfo {
	return ClauseInfo{}
}
