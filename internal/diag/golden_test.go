package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsrustad/stylefix/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	fileA := fs.Add("/workspace/src/Sample.cs", []byte("a\nb\n"), 0)
	fileB := fs.Add("/workspace/src/Other.cs", []byte("x\n"), 0)

	bag := NewBag(8)
	bag.Add(Diagnostic{
		Severity: SevError,
		Code:     SynUnexpectedToken,
		Message:  "first line\nsecond",
		Primary:  source.Span{File: fileA, Start: 0, End: 1},
		Notes: []Note{
			{Span: source.Span{File: fileA, Start: 2, End: 3}, Msg: "note line"},
		},
	})
	bag.Add(NewWarning(StyTrailingWhitespace, source.Span{File: fileB, Start: 0, End: 1}, "tail"))

	want := "warning STY1003 src/Other.cs:1:1 tail\n" +
		"error SFX2001 src/Sample.cs:1:1 first line second\n" +
		"note SFX2001 src/Sample.cs:2:1 note line"
	assert.Equal(t, want, FormatGoldenDiagnostics(bag, fs, true))

	// Without notes the note entry disappears.
	withoutNotes := FormatGoldenDiagnostics(bag, fs, false)
	assert.NotContains(t, withoutNotes, "note line")
}

func TestFormatGoldenDiagnosticsDropsUnresolvable(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	id := fs.Add("/workspace/src/Sample.cs", []byte("a\n"), 0)

	bag := NewBag(4)
	bag.Add(NewWarning(StyStatementsOnLine, source.Span{File: id, Start: 0, End: 1}, "kept"))
	bag.Add(NewError(IOLoadFile, source.Span{File: id + 1}, "dangling file id"))

	got := FormatGoldenDiagnostics(bag, fs, false)
	assert.Equal(t, "warning STY1001 src/Sample.cs:1:1 kept", got)
}

func TestFormatGoldenDiagnosticsEmpty(t *testing.T) {
	assert.Equal(t, "", FormatGoldenDiagnostics(NewBag(1), source.NewFileSet(), true))
}
