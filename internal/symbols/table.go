package symbols

import "github.com/jsrustad/stylefix/internal/syntax"

// Table is a map-backed Resolver keyed by node identity within one tree
// snapshot. It is how hosts hand pre-resolved bindings to the engine and
// how the walker tests pin down exact resolution scenarios.
//
// The maps are written up front and only read afterwards, so concurrent
// lookups during a parallel fix pass are safe.
type Table struct {
	Converted map[syntax.NodeID]Type
	Infos     map[syntax.NodeID]Info
	Clauses   map[syntax.NodeID]ClauseInfo
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		Converted: make(map[syntax.NodeID]Type),
		Infos:     make(map[syntax.NodeID]Info),
		Clauses:   make(map[syntax.NodeID]ClauseInfo),
	}
}

func (t *Table) ConvertedType(_ *syntax.Tree, node syntax.NodeID) Type {
	return t.Converted[node]
}

func (t *Table) SymbolInfo(_ *syntax.Tree, node syntax.NodeID) Info {
	return t.Infos[node]
}

func (t *Table) QueryClauseInfo(_ *syntax.Tree, node syntax.NodeID) ClauseInfo {
	return t.Clauses[node]
}
