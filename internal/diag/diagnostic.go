package diag

import (
	"github.com/jsrustad/stylefix/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is an immutable record of one finding. It is produced by the
// lexer, the parser, or a style rule, and consumed read-only by formatters
// and the fix engine.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	// Args carries optional structured arguments a fix provider may need
	// beyond the span (rule specific, may be nil).
	Args []string
}

// New constructs a diagnostic without notes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewError is a shortcut for SevError diagnostics.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewWarning is a shortcut for SevWarning diagnostics.
func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// WithNote returns a copy with an extra note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithArgs returns a copy carrying structured arguments.
func (d Diagnostic) WithArgs(args ...string) Diagnostic {
	d.Args = append(d.Args, args...)
	return d
}
