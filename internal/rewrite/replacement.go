package rewrite

import (
	"fmt"

	"github.com/jsrustad/stylefix/internal/syntax"
)

// ReplacementMap accumulates green replacements keyed by node and token
// identity within one tree snapshot. Two maps computed against the same
// snapshot merge iff their key sets are disjoint.
type ReplacementMap struct {
	repl syntax.Replacements
}

// NewReplacementMap returns an empty map.
func NewReplacementMap() *ReplacementMap {
	return &ReplacementMap{repl: syntax.NewReplacements()}
}

// ReplaceNode records a replacement for one node. An empty with sequence
// deletes the node.
func (m *ReplacementMap) ReplaceNode(id syntax.NodeID, with ...syntax.GreenElem) {
	m.repl.Nodes[id] = with
}

// ReplaceToken records a replacement for one token.
func (m *ReplacementMap) ReplaceToken(id syntax.TokenID, with ...syntax.GreenElem) {
	m.repl.Tokens[id] = with
}

// Len returns the number of keyed replacements.
func (m *ReplacementMap) Len() int {
	if m == nil {
		return 0
	}
	return m.repl.Len()
}

// Empty reports whether the map carries no replacements. A nil map is
// empty; fixers return it to signal "not applicable".
func (m *ReplacementMap) Empty() bool {
	return m.Len() == 0
}

// Merge folds other into m. When any key is present on both sides the
// merge fails with a ConflictError and m is left untouched, so a failed
// batch never half-applies.
func (m *ReplacementMap) Merge(other *ReplacementMap) error {
	if other == nil {
		return nil
	}
	for id := range other.repl.Nodes {
		if _, ok := m.repl.Nodes[id]; ok {
			return &ConflictError{Node: id}
		}
	}
	for id := range other.repl.Tokens {
		if _, ok := m.repl.Tokens[id]; ok {
			return &ConflictError{Token: id}
		}
	}
	for id, with := range other.repl.Nodes {
		m.repl.Nodes[id] = with
	}
	for id, with := range other.repl.Tokens {
		m.repl.Tokens[id] = with
	}
	return nil
}

// Apply rebuilds the tree with every recorded replacement substituted in.
// The input tree is not modified.
func (m *ReplacementMap) Apply(tree *syntax.Tree) (*syntax.Tree, error) {
	return tree.Apply(m.repl)
}

// ConflictError reports that two independently computed fixes target the
// same tree position. Callers surface it as "fix-all could not be applied
// to this file"; silently dropping one side would leave the document
// inconsistent with its diagnostics.
type ConflictError struct {
	Node  syntax.NodeID
	Token syntax.TokenID
}

func (e *ConflictError) Error() string {
	if e.Node.IsValid() {
		return fmt.Sprintf("conflicting edits target node %d", e.Node)
	}
	return fmt.Sprintf("conflicting edits target token %d", e.Token)
}
