package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsrustad/stylefix/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders a bag into a stable one-line-per-entry
// form suitable for golden files and test expectations: sorted by path,
// position, severity, code, and message, with newlines in messages
// collapsed to spaces. Spans that do not resolve to a loaded file are
// dropped rather than guessed at.
func FormatGoldenDiagnostics(bag *Bag, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || bag.Len() == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		rendered = appendGolden(rendered, d, fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendGolden(out []goldenDiagnostic, d Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	if path, line, col, ok := resolveGolden(fs, d.Primary); ok {
		out = append(out, goldenDiagnostic{
			Severity: strings.ToLower(d.Severity.String()),
			Code:     d.Code.ID(),
			Path:     path,
			Line:     line,
			Column:   col,
			Message:  sanitizeMessage(d.Message),
		})
	}
	if includeNotes {
		for _, note := range d.Notes {
			path, line, col, ok := resolveGolden(fs, note.Span)
			if !ok {
				continue
			}
			out = append(out, goldenDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     path,
				Line:     line,
				Column:   col,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func resolveGolden(fs *source.FileSet, span source.Span) (path string, line, col uint32, ok bool) {
	if int(span.File) >= fs.Len() {
		return "", 0, 0, false
	}
	start, _ := fs.Resolve(span)
	file := fs.Get(span.File)
	return file.FormatPath("relative", fs.BaseDir()), start.Line, start.Col, true
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
