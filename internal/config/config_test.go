package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[format]\nindent_size = 2\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	if path != filepath.Join(root, ManifestName) {
		t.Fatalf("path = %s", path)
	}

	empty := t.TempDir()
	if _, ok, err := FindManifest(empty); err != nil || ok {
		t.Fatalf("empty dir: ok=%v err=%v", ok, err)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestName)
	writeFile(t, path, `
[format]
indent_size = 2
use_tabs = false
end_of_line = "lf"

[rules]
disabled = ["sty1003"]

[files]
include = ["src/**/*.cs"]
exclude = ["**/gen/**"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	s := cfg.Settings()
	if s.IndentSize != 2 || s.UseTabs || s.DefaultEOL != "\n" {
		t.Fatalf("settings = %+v", s)
	}
	if cfg.RuleEnabled("STY1003") {
		t.Error("STY1003 should be disabled")
	}
	if !cfg.RuleEnabled("STY1001") {
		t.Error("STY1001 should stay enabled")
	}
	if cfg.Root != root {
		t.Errorf("root = %s, want %s", cfg.Root, root)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	root := t.TempDir()
	cases := []struct {
		name string
		body string
	}{
		{"negative indent", "[format]\nindent_size = -1\n"},
		{"unknown terminator", "[format]\nend_of_line = \"mixed\"\n"},
		{"blank rule id", "[rules]\ndisabled = [\"\"]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(root, tc.name+".toml")
			writeFile(t, path, tc.body)
			if _, err := Load(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	s := cfg.Settings()
	if s.IndentSize != 4 || s.UseTabs || s.DefaultEOL != "\r\n" {
		t.Fatalf("settings = %+v", s)
	}
	if !cfg.RuleEnabled("STY1001") {
		t.Error("rules default to enabled")
	}
}

func TestSelects(t *testing.T) {
	cfg := Default()
	cfg.Root = "/proj"
	cases := []struct {
		path string
		want bool
	}{
		{"/proj/Program.cs", true},
		{"/proj/src/deep/Widget.cs", true},
		{"/proj/notes.txt", false},
		{"/proj/bin/Debug/Gen.cs", false},
		{"/proj/src/obj/Temp.cs", false},
	}
	for _, tc := range cases {
		if got := cfg.Selects(tc.path); got != tc.want {
			t.Errorf("Selects(%s) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestSelectsCustomPatterns(t *testing.T) {
	cfg := Default()
	cfg.Root = "/proj"
	cfg.Files.Include = []string{"src/**/*.cs"}
	cfg.Files.Exclude = []string{"**/*.g.cs"}

	if !cfg.Selects("/proj/src/a/B.cs") {
		t.Error("include pattern should match nested source")
	}
	if cfg.Selects("/proj/tools/C.cs") {
		t.Error("path outside include set selected")
	}
	if cfg.Selects("/proj/src/a/B.g.cs") {
		t.Error("excluded generated file selected")
	}
}

func TestSettingsForEditorConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".editorconfig"), `
root = true

[*.cs]
indent_style = tab
indent_size = 8
end_of_line = lf
`)
	target := filepath.Join(root, "Program.cs")
	writeFile(t, target, "class C { }\n")

	cfg := Default()
	cfg.Root = root
	s := cfg.SettingsFor(target)
	if !s.UseTabs || s.IndentSize != 8 || s.DefaultEOL != "\n" {
		t.Fatalf("settings = %+v", s)
	}

	// Explicit manifest keys beat the editorconfig.
	manifest := filepath.Join(root, ManifestName)
	writeFile(t, manifest, "[format]\nindent_size = 2\nend_of_line = \"crlf\"\n")
	cfg, err := Load(manifest)
	if err != nil {
		t.Fatal(err)
	}
	s = cfg.SettingsFor(target)
	if s.IndentSize != 2 || s.DefaultEOL != "\r\n" {
		t.Fatalf("manifest should win: %+v", s)
	}
	if !s.UseTabs {
		t.Error("use_tabs gap should still come from the editorconfig")
	}
}
