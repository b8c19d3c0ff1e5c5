package syntax

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/jsrustad/stylefix/internal/source"
)

type (
	// NodeID addresses a node within one Tree snapshot. Zero is "no node".
	NodeID uint32
	// TokenID addresses a token within one Tree snapshot. Token IDs ascend
	// in document order. Zero is "no token".
	TokenID uint32
)

// NoNode and NoToken are the invalid zero IDs.
const (
	NoNode  NodeID  = 0
	NoToken TokenID = 0
)

// IsValid reports whether the ID refers to a node.
func (id NodeID) IsValid() bool { return id != NoNode }

// IsValid reports whether the ID refers to a token.
func (id TokenID) IsValid() bool { return id != NoToken }

// TokenFlags mark properties of a stored token.
type TokenFlags uint8

const (
	// TokenSynthesized marks tokens produced by a rewriter, not the lexer.
	TokenSynthesized TokenFlags = 1 << iota
	// TokenFormatExempt tells any downstream formatting pass to leave the
	// token and its trivia exactly as written.
	TokenFormatExempt
	// TokenMissing marks a zero-width token inserted during error recovery.
	TokenMissing
)

// Child is one slot in a node's ordered child sequence: exactly one of
// Node or Token is set.
type Child struct {
	Node  NodeID
	Token TokenID
}

// Node is an interior tree node. Children are ordered; the slice belongs to
// the snapshot and must not be mutated.
type Node struct {
	Kind     NodeKind
	Children []Child
}

// Token is a lexical unit with its leading and trailing trivia. Span covers
// the token text only; FullSpan additionally covers both trivia lists.
type Token struct {
	Kind     TokenKind
	Text     string
	Span     source.Span
	FullSpan source.Span
	Leading  TriviaList
	Trailing TriviaList
	Flags    TokenFlags
}

// Tree is an immutable syntax snapshot. Nodes and tokens live in arenas
// addressed by 1-based IDs; parent links are side tables, so snapshots share
// nothing mutable and may be read from any number of goroutines. Any edit
// goes through Apply, which produces a brand-new Tree.
type Tree struct {
	fileID      source.FileID
	nodes       []Node
	tokens      []Token
	nodeParent  []NodeID
	tokenParent []NodeID
	nodeSpan    []source.Span
	nodeFull    []source.Span
	root        NodeID
}

// Build materializes a green tree into a snapshot for the given file.
// Token and trivia spans are computed from scratch by walking the green
// tree in document order, so the same green tree always yields the same
// offsets regardless of where its parts came from.
func Build(file source.FileID, root *GreenNode) *Tree {
	t := &Tree{
		fileID:      file,
		nodes:       make([]Node, 1),
		tokens:      make([]Token, 1),
		nodeParent:  make([]NodeID, 1),
		tokenParent: make([]NodeID, 1),
		nodeSpan:    make([]source.Span, 1),
		nodeFull:    make([]source.Span, 1),
	}
	b := &treeBuilder{t: t}
	t.root = b.node(root, NoNode)
	return t
}

type treeBuilder struct {
	t   *Tree
	off uint32
}

func (b *treeBuilder) node(g *GreenNode, parent NodeID) NodeID {
	t := b.t
	raw, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		panic(fmt.Errorf("node arena overflow: %w", err))
	}
	id := NodeID(raw)
	t.nodes = append(t.nodes, Node{Kind: g.Kind})
	t.nodeParent = append(t.nodeParent, parent)
	t.nodeSpan = append(t.nodeSpan, source.Span{})
	t.nodeFull = append(t.nodeFull, source.Span{})

	fullStart := b.off
	children := make([]Child, 0, len(g.Children))
	textSpan := source.Span{File: t.fileID, Start: b.off, End: b.off}
	haveText := false

	for _, c := range g.Children {
		switch v := c.(type) {
		case *GreenNode:
			cid := b.node(v, id)
			children = append(children, Child{Node: cid})
			cs := t.nodeSpan[cid]
			if !cs.Empty() || t.hasTokens(cid) {
				if !haveText {
					textSpan = cs
					haveText = true
				} else {
					textSpan = textSpan.Cover(cs)
				}
			}
		case *GreenToken:
			tid := b.token(v, id)
			children = append(children, Child{Token: tid})
			ts := t.tokens[tid].Span
			if !haveText {
				textSpan = ts
				haveText = true
			} else {
				textSpan = textSpan.Cover(ts)
			}
		}
	}

	t.nodes[id].Children = children
	if !haveText {
		textSpan = source.Span{File: t.fileID, Start: b.off, End: b.off}
	}
	t.nodeSpan[id] = textSpan
	t.nodeFull[id] = source.Span{File: t.fileID, Start: fullStart, End: b.off}
	return id
}

func (b *treeBuilder) token(g *GreenToken, parent NodeID) TokenID {
	t := b.t
	raw, err := safecast.Conv[uint32](len(t.tokens))
	if err != nil {
		panic(fmt.Errorf("token arena overflow: %w", err))
	}
	id := TokenID(raw)

	fullStart := b.off
	leading := b.placeTrivia(g.Leading)
	textLen, err := safecast.Conv[uint32](len(g.Text))
	if err != nil {
		panic(fmt.Errorf("token text overflow: %w", err))
	}
	span := source.Span{File: t.fileID, Start: b.off, End: b.off + textLen}
	b.off += textLen
	trailing := b.placeTrivia(g.Trailing)

	t.tokens = append(t.tokens, Token{
		Kind:     g.Kind,
		Text:     g.Text,
		Span:     span,
		FullSpan: source.Span{File: t.fileID, Start: fullStart, End: b.off},
		Leading:  leading,
		Trailing: trailing,
		Flags:    g.Flags,
	})
	t.tokenParent = append(t.tokenParent, parent)
	return id
}

func (b *treeBuilder) placeTrivia(list TriviaList) TriviaList {
	if len(list) == 0 {
		return nil
	}
	out := make(TriviaList, len(list))
	for i, tr := range list {
		n, err := safecast.Conv[uint32](len(tr.Text))
		if err != nil {
			panic(fmt.Errorf("trivia text overflow: %w", err))
		}
		tr.Span = source.Span{File: b.t.fileID, Start: b.off, End: b.off + n}
		b.off += n
		out[i] = tr
	}
	return out
}

func (t *Tree) hasTokens(id NodeID) bool {
	for _, c := range t.nodes[id].Children {
		if c.Token.IsValid() {
			return true
		}
		if c.Node.IsValid() && t.hasTokens(c.Node) {
			return true
		}
	}
	return false
}

// FileID returns the source file this snapshot was built for.
func (t *Tree) FileID() source.FileID { return t.fileID }

// Root returns the root node ID.
func (t *Tree) Root() NodeID { return t.root }

// NodeCount returns the number of nodes in the snapshot.
func (t *Tree) NodeCount() int { return len(t.nodes) - 1 }

// TokenCount returns the number of tokens in the snapshot.
func (t *Tree) TokenCount() int { return len(t.tokens) - 1 }

// Kind returns the node kind, or KindInvalid for NoNode.
func (t *Tree) Kind(id NodeID) NodeKind {
	if !id.IsValid() || int(id) >= len(t.nodes) {
		return KindInvalid
	}
	return t.nodes[id].Kind
}

// Children returns the ordered child slots of a node. The slice belongs to
// the snapshot; callers must not modify it.
func (t *Tree) Children(id NodeID) []Child {
	if !id.IsValid() || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id].Children
}

// Token returns the stored token. The pointer addresses snapshot memory;
// callers must not modify it.
func (t *Tree) Token(id TokenID) *Token {
	if !id.IsValid() || int(id) >= len(t.tokens) {
		return nil
	}
	return &t.tokens[id]
}

// Parent returns the parent node, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if !id.IsValid() || int(id) >= len(t.nodeParent) {
		return NoNode
	}
	return t.nodeParent[id]
}

// TokenParent returns the node that directly holds the token.
func (t *Tree) TokenParent(id TokenID) NodeID {
	if !id.IsValid() || int(id) >= len(t.tokenParent) {
		return NoNode
	}
	return t.tokenParent[id]
}

// Span returns the node's text span: first token start to last token end,
// trivia excluded.
func (t *Tree) Span(id NodeID) source.Span {
	if !id.IsValid() || int(id) >= len(t.nodeSpan) {
		return source.Span{}
	}
	return t.nodeSpan[id]
}

// FullSpan returns the node's span including all attached trivia.
func (t *Tree) FullSpan(id NodeID) source.Span {
	if !id.IsValid() || int(id) >= len(t.nodeFull) {
		return source.Span{}
	}
	return t.nodeFull[id]
}

// FirstToken returns the first token under the node in document order.
func (t *Tree) FirstToken(id NodeID) TokenID {
	if !id.IsValid() || int(id) >= len(t.nodes) {
		return NoToken
	}
	for _, c := range t.nodes[id].Children {
		if c.Token.IsValid() {
			return c.Token
		}
		if tok := t.FirstToken(c.Node); tok.IsValid() {
			return tok
		}
	}
	return NoToken
}

// LastToken returns the last token under the node in document order.
func (t *Tree) LastToken(id NodeID) TokenID {
	if !id.IsValid() || int(id) >= len(t.nodes) {
		return NoToken
	}
	children := t.nodes[id].Children
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if c.Token.IsValid() {
			return c.Token
		}
		if tok := t.LastToken(c.Node); tok.IsValid() {
			return tok
		}
	}
	return NoToken
}

// PrevToken returns the token immediately preceding id in document order.
func (t *Tree) PrevToken(id TokenID) TokenID {
	if id <= 1 || int(id) >= len(t.tokens) {
		return NoToken
	}
	return id - 1
}

// NextToken returns the token immediately following id in document order.
func (t *Tree) NextToken(id TokenID) TokenID {
	if !id.IsValid() || int(id)+1 >= len(t.tokens) {
		return NoToken
	}
	return id + 1
}

// NodeCovering returns the deepest node whose full span contains the given
// span, or the root when nothing narrower does.
func (t *Tree) NodeCovering(span source.Span) NodeID {
	cur := t.root
	for {
		descended := false
		for _, c := range t.nodes[cur].Children {
			if c.Node.IsValid() && t.nodeFull[c.Node].Contains(span) {
				cur = c.Node
				descended = true
				break
			}
		}
		if !descended {
			return cur
		}
	}
}

// Ancestors calls fn for each ancestor of the node, nearest first, stopping
// early when fn returns false.
func (t *Tree) Ancestors(id NodeID, fn func(NodeID) bool) {
	for p := t.Parent(id); p.IsValid(); p = t.Parent(p) {
		if !fn(p) {
			return
		}
	}
}

// Text reconstructs the full document text of the snapshot.
func (t *Tree) Text() string {
	var sb strings.Builder
	for i := 1; i < len(t.tokens); i++ {
		writeTokenFull(&sb, &t.tokens[i])
	}
	return sb.String()
}

// NodeText reconstructs the text of one node including interior trivia but
// excluding the leading trivia of its first token and the trailing trivia
// of its last token.
func (t *Tree) NodeText(id NodeID) string {
	first, last := t.FirstToken(id), t.LastToken(id)
	if !first.IsValid() {
		return ""
	}
	var sb strings.Builder
	for tok := first; tok.IsValid() && tok <= last; tok = t.NextToken(tok) {
		tt := &t.tokens[tok]
		if tok != first {
			sb.WriteString(tt.Leading.Text())
		}
		sb.WriteString(tt.Text)
		if tok != last {
			sb.WriteString(tt.Trailing.Text())
		}
	}
	return sb.String()
}

func writeTokenFull(sb *strings.Builder, tok *Token) {
	sb.WriteString(tok.Leading.Text())
	sb.WriteString(tok.Text)
	sb.WriteString(tok.Trailing.Text())
}
