package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/parser"
	"github.com/jsrustad/stylefix/internal/rules"
	"github.com/jsrustad/stylefix/internal/source"
)

func scanSource(t *testing.T, src string) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("Sample.cs", []byte(src))
	file := fs.Get(id)
	tree := parser.ParseFile(file, parser.Options{})
	bag := diag.NewBag(64)
	for _, r := range rules.All() {
		r.Check(tree, file, diag.BagReporter{Bag: bag})
	}
	bag.Sort()
	return fs, bag
}

const dirtySource = "class C\n{\n    void M()\n    {\n        a(); b();\n    }\n}\n"

func TestPretty(t *testing.T) {
	fs, bag := scanSource(t, dirtySource)
	if bag.Len() != 1 {
		t.Fatalf("diags = %d", bag.Len())
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := buf.String()

	if !strings.Contains(out, "Sample.cs:5:14: warning STY1001:") {
		t.Errorf("heading missing or wrong:\n%s", out)
	}
	if !strings.Contains(out, "a(); b();") {
		t.Errorf("source excerpt missing:\n%s", out)
	}
	caretLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "^") {
			caretLine = line
		}
	}
	if caretLine == "" {
		t.Fatalf("no caret underline:\n%s", out)
	}
	if !strings.Contains(caretLine, "^~~~") {
		t.Errorf("underline should cover the statement: %q", caretLine)
	}
}

func TestPrettyNoColorByDefault(t *testing.T) {
	fs, bag := scanSource(t, dirtySource)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("escape sequences present without Color")
	}
}

func TestSummary(t *testing.T) {
	_, bag := scanSource(t, dirtySource)
	var buf bytes.Buffer
	Summary(&buf, bag, false)
	if got := strings.TrimSpace(buf.String()); got != "1 violation(s)" {
		t.Errorf("summary = %q", got)
	}

	buf.Reset()
	Summary(&buf, diag.NewBag(1), false)
	if !strings.Contains(buf.String(), "no style violations") {
		t.Errorf("clean summary = %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	fs, bag := scanSource(t, "class C\n{\n    int a, b;\n    int c, d;\n}\n")
	if bag.Len() != 2 {
		t.Fatalf("diags = %d", bag.Len())
	}

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		Max:              1,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Errorf("count = %d, want full bag size", out.Count)
	}
	if len(out.Diagnostics) != 1 {
		t.Fatalf("listed = %d, want truncation to 1", len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "STY1002" || d.Severity != "warning" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.File != "Sample.cs" || d.Location.StartLine != 3 {
		t.Errorf("location = %+v", d.Location)
	}
}

func TestSarif(t *testing.T) {
	fs, bag := scanSource(t, dirtySource)

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolVersion: "1.2.3"}); err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"stylefix"`,
		`"1.2.3"`,
		`"STY1001"`,
		`"warning"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in SARIF output", want)
		}
	}
}

func TestTreeDump(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("T.cs", []byte("class C { int x; }"))
	file := fs.Get(id)
	tree := parser.ParseFile(file, parser.Options{})

	var buf bytes.Buffer
	Tree(&buf, tree, fs)
	out := buf.String()
	for _, want := range []string{"CompilationUnit", "TypeDeclaration", "FieldDeclaration", `"x"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %s:\n%s", want, out)
		}
	}
}
