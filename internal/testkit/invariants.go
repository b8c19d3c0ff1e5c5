// Package testkit holds structural checks shared by parser and fixer tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/jsrustad/stylefix/internal/source"
	"github.com/jsrustad/stylefix/internal/syntax"
)

// CheckTreeInvariants runs the structural invariants every parsed snapshot
// must satisfy:
//  1. the full span of the root covers the whole file content
//  2. every node's span is contained in its full span, and every child's
//     full span is contained in the parent's
//  3. tokens appear in source order with non-overlapping full spans
//  4. reprinting the tree reproduces the file byte for byte
func CheckTreeInvariants(tree *syntax.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("file too large: %w", err)
	}

	root := tree.Root()
	full := tree.FullSpan(root)
	if full.Start != 0 || full.End != size {
		return fmt.Errorf("root full span %v does not cover file [0,%d)", full, size)
	}

	if err := checkNode(tree, root); err != nil {
		return err
	}

	var prevEnd uint32
	for id := syntax.TokenID(1); int(id) <= tree.TokenCount(); id++ {
		tok := tree.Token(id)
		if tok.FullSpan.Start != prevEnd {
			return fmt.Errorf("token %d full span %v leaves a gap after offset %d",
				id, tok.FullSpan, prevEnd)
		}
		if tok.Span.Start < tok.FullSpan.Start || tok.Span.End > tok.FullSpan.End {
			return fmt.Errorf("token %d span %v escapes full span %v", id, tok.Span, tok.FullSpan)
		}
		prevEnd = tok.FullSpan.End
	}
	if prevEnd != size {
		return fmt.Errorf("token stream ends at %d, file has %d bytes", prevEnd, size)
	}

	if got := tree.Text(); got != string(sf.Content) {
		return fmt.Errorf("tree text diverges from file content: %d bytes vs %d",
			len(got), len(sf.Content))
	}
	return nil
}

func checkNode(tree *syntax.Tree, id syntax.NodeID) error {
	full := tree.FullSpan(id)
	span := tree.Span(id)
	if !span.Empty() && (span.Start < full.Start || span.End > full.End) {
		return fmt.Errorf("node %d span %v escapes full span %v", id, span, full)
	}
	for _, c := range tree.Children(id) {
		switch {
		case c.Node.IsValid():
			child := tree.FullSpan(c.Node)
			if !child.Empty() && (child.Start < full.Start || child.End > full.End) {
				return fmt.Errorf("node %d full span %v escapes parent %d full span %v",
					c.Node, child, id, full)
			}
			if err := checkNode(tree, c.Node); err != nil {
				return err
			}
		case c.Token.IsValid():
			tok := tree.Token(c.Token)
			if !tok.FullSpan.Empty() && (tok.FullSpan.Start < full.Start || tok.FullSpan.End > full.End) {
				return fmt.Errorf("token %d full span %v escapes parent %d full span %v",
					c.Token, tok.FullSpan, id, full)
			}
		}
	}
	return nil
}
