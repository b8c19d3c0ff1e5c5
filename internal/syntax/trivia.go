package syntax

import (
	"strings"

	"github.com/jsrustad/stylefix/internal/source"
)

// TriviaKind classifies non-semantic text attached to a token.
type TriviaKind uint8

const (
	// TriviaWhitespace is a run of spaces and tabs within one line.
	TriviaWhitespace TriviaKind = iota
	// TriviaEndOfLine is exactly one line terminator; Text carries the
	// literal bytes so LF and CRLF survive a round trip.
	TriviaEndOfLine
	// TriviaLineComment is a // comment up to but not including the terminator.
	TriviaLineComment
	// TriviaBlockComment is a /* */ comment, possibly spanning lines.
	TriviaBlockComment
	// TriviaStructured carries a nested subtree (directives and the like).
	TriviaStructured
	// TriviaOther is anything else the lexer preserves verbatim (BOM,
	// stray control bytes).
	TriviaOther
)

var triviaKindNames = [...]string{
	TriviaWhitespace:   "Whitespace",
	TriviaEndOfLine:    "EndOfLine",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
	TriviaStructured:   "Structured",
	TriviaOther:        "Other",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaKindNames) {
		return triviaKindNames[k]
	}
	return "TriviaKind(?)"
}

// TriviaFlags mark properties of a single trivia entry.
type TriviaFlags uint8

const (
	// TriviaSynthesized marks trivia produced by a rewriter rather than the
	// lexer. A downstream formatting pass must leave it untouched.
	TriviaSynthesized TriviaFlags = 1 << iota
)

// Trivia is one piece of non-semantic text. Span is zero for synthesized
// trivia until the owning tree is rebuilt.
type Trivia struct {
	Kind  TriviaKind
	Span  source.Span
	Text  string
	Flags TriviaFlags
}

// IsWhitespace reports whether the trivia is intra-line whitespace.
func (t Trivia) IsWhitespace() bool { return t.Kind == TriviaWhitespace }

// IsEndOfLine reports whether the trivia is a line terminator.
func (t Trivia) IsEndOfLine() bool { return t.Kind == TriviaEndOfLine }

// IsComment reports whether the trivia is a line or block comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment
}

// TriviaList is an ordered sequence of trivia. All transforms return new
// slices; a list belonging to a tree snapshot is never mutated.
type TriviaList []Trivia

// Text concatenates the literal text of every entry.
func (l TriviaList) Text() string {
	var sb strings.Builder
	for _, t := range l {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// LastEndOfLine scans the list from the end backwards and returns the first
// EndOfLine entry found.
func (l TriviaList) LastEndOfLine() (Trivia, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].IsEndOfLine() {
			return l[i], true
		}
	}
	return Trivia{}, false
}

// WithoutTrailingWhitespace drops whitespace entries from the tail.
func (l TriviaList) WithoutTrailingWhitespace() TriviaList {
	end := len(l)
	for end > 0 && l[end-1].IsWhitespace() {
		end--
	}
	return append(TriviaList(nil), l[:end]...)
}

// WithoutLeadingWhitespace drops whitespace entries from the head.
func (l TriviaList) WithoutLeadingWhitespace() TriviaList {
	start := 0
	for start < len(l) && l[start].IsWhitespace() {
		start++
	}
	return append(TriviaList(nil), l[start:]...)
}

// WithoutLeadingBlankLines drops whitespace and line terminators from the
// head until the first entry that begins meaningful content (a comment or
// nothing at all). The indentation whitespace directly preceding that entry
// on its own line is kept.
func (l TriviaList) WithoutLeadingBlankLines() TriviaList {
	// Index of the first entry that is neither whitespace nor a terminator.
	first := len(l)
	for i, t := range l {
		if !t.IsWhitespace() && !t.IsEndOfLine() {
			first = i
			break
		}
	}
	if first == len(l) {
		// Only whitespace and terminators: keep the final run as the
		// current line's indentation.
		if n := len(l); n > 0 && l[n-1].IsWhitespace() {
			return TriviaList{l[n-1]}
		}
		return TriviaList{}
	}
	// Keep intra-line whitespace that indents the first kept entry.
	start := first
	if first > 0 && l[first-1].IsWhitespace() {
		start = first - 1
	}
	return append(TriviaList(nil), l[start:]...)
}

// HasBlankLine reports whether the list contains two consecutive line
// terminators separated only by whitespace.
func (l TriviaList) HasBlankLine() bool {
	sawEOL := false
	for _, t := range l {
		switch {
		case t.IsEndOfLine():
			if sawEOL {
				return true
			}
			sawEOL = true
		case t.IsWhitespace():
			// whitespace does not break a blank-line run
		default:
			sawEOL = false
		}
	}
	return false
}
