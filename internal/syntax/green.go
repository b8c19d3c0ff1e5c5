package syntax

// Green nodes and tokens are detached, position-free building blocks.
// Parsers and rewriters assemble green trees; Build materializes them into
// an immutable Tree snapshot with computed spans. The same green value may
// be built into any number of trees.

// GreenElem is either a *GreenNode or a *GreenToken.
type GreenElem interface {
	greenElem()
}

// GreenNode is a detached interior node.
type GreenNode struct {
	Kind     NodeKind
	Children []GreenElem
}

func (*GreenNode) greenElem() {}

// GreenToken is a detached token with its trivia.
type GreenToken struct {
	Kind     TokenKind
	Text     string
	Leading  TriviaList
	Trailing TriviaList
	Flags    TokenFlags
}

func (*GreenToken) greenElem() {}

// NewNode builds a green node from children. Nil children are skipped so
// callers can splice optional parts without filtering.
func NewNode(kind NodeKind, children ...GreenElem) *GreenNode {
	out := make([]GreenElem, 0, len(children))
	for _, c := range children {
		switch v := c.(type) {
		case *GreenNode:
			if v != nil {
				out = append(out, v)
			}
		case *GreenToken:
			if v != nil {
				out = append(out, v)
			}
		}
	}
	return &GreenNode{Kind: kind, Children: out}
}

// NewToken builds a bare green token with canonical text for fixed-text
// kinds.
func NewToken(kind TokenKind, text string) *GreenToken {
	return &GreenToken{Kind: kind, Text: text}
}

// Synthesized builds a green token marked as rewriter output. Synthesized
// tokens and their trivia are exempt from downstream formatting.
func Synthesized(kind TokenKind, text string) *GreenToken {
	return &GreenToken{
		Kind:  kind,
		Text:  text,
		Flags: TokenSynthesized | TokenFormatExempt,
	}
}

// WithLeading returns a copy of the token with the given leading trivia.
func (t *GreenToken) WithLeading(trivia TriviaList) *GreenToken {
	cp := *t
	cp.Leading = trivia
	return &cp
}

// WithTrailing returns a copy of the token with the given trailing trivia.
func (t *GreenToken) WithTrailing(trivia TriviaList) *GreenToken {
	cp := *t
	cp.Trailing = trivia
	return &cp
}

// AppendLeading returns a copy with extra trivia appended after the
// existing leading list.
func (t *GreenToken) AppendLeading(trivia ...Trivia) *GreenToken {
	cp := *t
	cp.Leading = append(append(TriviaList(nil), t.Leading...), trivia...)
	return &cp
}

// SynthesizedTrivia builds one trivia entry marked as rewriter output.
func SynthesizedTrivia(kind TriviaKind, text string) Trivia {
	return Trivia{Kind: kind, Text: text, Flags: TriviaSynthesized}
}
