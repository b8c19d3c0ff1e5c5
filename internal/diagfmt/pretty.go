package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
	gutterColor  = color.New(color.FgBlue)
)

// Pretty renders diagnostics for a terminal. The bag is expected to be
// sorted. Each diagnostic prints as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed by the source line with a caret underline covering the span,
// then notes in the same layout.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d, opts)
		writeExcerpt(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				start, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
					formatPath(fs, n.Span.File, opts.PathMode),
					start.Line, start.Col,
					paint(noteColor, "note", opts.Color), n.Msg)
				writeExcerpt(w, fs, n.Span, opts)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(fs, d.Primary.File, opts.PathMode),
		start.Line, start.Col,
		severityLabel(d.Severity, opts.Color),
		paint(codeColor, d.Code.ID(), opts.Color),
		d.Message)
}

// writeExcerpt prints the first line the span touches with a gutter and a
// caret underline. Underlines are measured in display cells so wide runes
// in the excerpt do not skew the carets.
func writeExcerpt(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	file := fs.Get(span.File)
	if len(file.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	text := file.LineText(start.Line)

	// Tabs render at unpredictable widths; normalize for the underline.
	display := strings.ReplaceAll(text, "\t", "    ")
	if opts.Width > 0 {
		display = runewidth.Truncate(display, opts.Width, "...")
	}

	gutter := fmt.Sprintf("%5d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", paint(gutterColor, gutter, opts.Color), display)

	head := text[:min(int(start.Col)-1, len(text))]
	lead := runewidth.StringWidth(strings.ReplaceAll(head, "\t", "    "))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		covered := text[min(int(start.Col)-1, len(text)):min(int(end.Col)-1, len(text))]
		width = max(runewidth.StringWidth(covered), 1)
	}
	underline := strings.Repeat(" ", lead) + "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s%s\n",
		paint(gutterColor, strings.Repeat(" ", 5)+" | ", opts.Color),
		paint(caretColor, underline, opts.Color))
}

func severityLabel(sev diag.Severity, colored bool) string {
	switch sev {
	case diag.SevError:
		return paint(errorColor, "error", colored)
	case diag.SevWarning:
		return paint(warningColor, "warning", colored)
	default:
		return paint(noteColor, "note", colored)
	}
}

func paint(c *color.Color, s string, colored bool) string {
	if !colored {
		return s
	}
	return c.Sprint(s)
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}

// Summary prints the closing count line, matching the severity coloring
// of the diagnostics above it.
func Summary(w io.Writer, bag *diag.Bag, colored bool) {
	if bag.Len() == 0 {
		fmt.Fprintln(w, "no style violations found")
		return
	}
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			errs++
		} else {
			warns++
		}
	}
	parts := make([]string, 0, 2)
	if errs > 0 {
		parts = append(parts, paint(errorColor, fmt.Sprintf("%d error(s)", errs), colored))
	}
	if warns > 0 {
		parts = append(parts, paint(warningColor, fmt.Sprintf("%d violation(s)", warns), colored))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
