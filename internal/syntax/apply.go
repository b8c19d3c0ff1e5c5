package syntax

import (
	"fmt"

	"github.com/jsrustad/stylefix/internal/source"
)

// Replacements maps node and token identities of one snapshot to the green
// sequences that replace them. An empty (non-nil) sequence deletes the
// target. Identity is the arena ID, so a Replacements value is only
// meaningful against the snapshot it was computed from.
type Replacements struct {
	Nodes  map[NodeID][]GreenElem
	Tokens map[TokenID][]GreenElem
}

// NewReplacements returns an empty replacement set.
func NewReplacements() Replacements {
	return Replacements{
		Nodes:  make(map[NodeID][]GreenElem),
		Tokens: make(map[TokenID][]GreenElem),
	}
}

// Len returns the total number of replacement targets.
func (r Replacements) Len() int {
	return len(r.Nodes) + len(r.Tokens)
}

// Empty reports whether the set carries no edits.
func (r Replacements) Empty() bool {
	return r.Len() == 0
}

// Apply produces a new snapshot with every target substituted by its green
// replacement, in a single transformation. The receiver is left untouched.
// Targets that do not exist in the snapshot are an error: a stale
// Replacements value must never be applied silently.
func (t *Tree) Apply(r Replacements) (*Tree, error) {
	for id := range r.Nodes {
		if !id.IsValid() || int(id) >= len(t.nodes) {
			return nil, fmt.Errorf("syntax: node %d is not part of this snapshot", id)
		}
	}
	for id := range r.Tokens {
		if !id.IsValid() || int(id) >= len(t.tokens) {
			return nil, fmt.Errorf("syntax: token %d is not part of this snapshot", id)
		}
	}

	if repl, ok := r.Nodes[t.root]; ok {
		if len(repl) != 1 {
			return nil, fmt.Errorf("syntax: root must be replaced by exactly one node, got %d elements", len(repl))
		}
		g, ok := repl[0].(*GreenNode)
		if !ok {
			return nil, fmt.Errorf("syntax: root replacement must be a node")
		}
		return Build(t.fileID, g), nil
	}

	green := t.greenNode(t.root, r)
	return Build(t.fileID, green), nil
}

func (t *Tree) greenNode(id NodeID, r Replacements) *GreenNode {
	n := t.nodes[id]
	children := make([]GreenElem, 0, len(n.Children))
	for _, c := range n.Children {
		switch {
		case c.Node.IsValid():
			if repl, ok := r.Nodes[c.Node]; ok {
				children = append(children, repl...)
			} else {
				children = append(children, t.greenNode(c.Node, r))
			}
		case c.Token.IsValid():
			if repl, ok := r.Tokens[c.Token]; ok {
				children = append(children, repl...)
			} else {
				children = append(children, t.greenToken(c.Token))
			}
		}
	}
	return &GreenNode{Kind: n.Kind, Children: children}
}

func (t *Tree) greenToken(id TokenID) *GreenToken {
	tok := t.tokens[id]
	return &GreenToken{
		Kind:     tok.Kind,
		Text:     tok.Text,
		Leading:  stripSpans(tok.Leading),
		Trailing: stripSpans(tok.Trailing),
		Flags:    tok.Flags,
	}
}

// GreenCopy detaches the node into a green tree, ready for re-use as a
// replacement elsewhere.
func (t *Tree) GreenCopy(id NodeID) *GreenNode {
	return t.greenNode(id, Replacements{})
}

// GreenCopyToken detaches one token.
func (t *Tree) GreenCopyToken(id TokenID) *GreenToken {
	return t.greenToken(id)
}

func stripSpans(list TriviaList) TriviaList {
	if len(list) == 0 {
		return nil
	}
	out := make(TriviaList, len(list))
	for i, tr := range list {
		tr.Span = source.Span{}
		out[i] = tr
	}
	return out
}
