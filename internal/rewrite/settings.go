// Package rewrite turns style diagnostics into tree edits. A fixer is a
// pure function from one violation to a ReplacementMap against a fixed
// tree snapshot; the batch coordinator computes fixers in parallel, unions
// their maps, and applies the union in a single transformation. Synthesized
// text follows the document's own conventions: line terminators are
// inferred from nearby trivia and indentation is derived from structural
// nesting, never copied from existing whitespace.
package rewrite

// Settings carries the whitespace conventions used when synthesizing text.
type Settings struct {
	// IndentSize is the number of spaces per indentation step.
	IndentSize int
	// UseTabs emits one tab per step instead of spaces.
	UseTabs bool
	// DefaultEOL is the terminator of last resort, used only when a
	// document offers no evidence of its own.
	DefaultEOL string
}

// DefaultSettings matches the common convention for the language the rules
// target: four spaces, CRLF when nothing else is known.
func DefaultSettings() Settings {
	return Settings{IndentSize: 4, DefaultEOL: "\r\n"}
}

func (s Settings) endOfLine() string {
	if s.DefaultEOL == "" {
		return "\r\n"
	}
	return s.DefaultEOL
}

func (s Settings) indentSize() int {
	if s.IndentSize <= 0 {
		return 4
	}
	return s.IndentSize
}
