package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsrustad/stylefix/internal/config"
	"github.com/jsrustad/stylefix/internal/diag"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func projectConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Root = root
	return cfg
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, filepath.Join(root, "A.cs"), "class A { }\n")
	b := writeFile(t, filepath.Join(root, "src", "B.cs"), "class B { }\n")
	writeFile(t, filepath.Join(root, "bin", "Gen.cs"), "class G { }\n")
	notes := writeFile(t, filepath.Join(root, "notes.txt"), "hi\n")

	cfg := projectConfig(root)
	files, err := Discover(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[0] != a || files[1] != b {
		t.Fatalf("files = %v", files)
	}

	// An explicitly named file skips the include set but not excludes.
	files, err = Discover(cfg, []string{notes})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != notes {
		t.Fatalf("explicit file: %v", files)
	}
	files, err = Discover(cfg, []string{filepath.Join(root, "bin", "Gen.cs")})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("excluded explicit file selected: %v", files)
	}
}

func TestDiscoverGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "A.cs"), "class A { }\n")
	writeFile(t, filepath.Join(root, "src", "B.cs"), "class B { }\n")
	writeFile(t, filepath.Join(root, "other", "C.cs"), "class C { }\n")

	cfg := projectConfig(root)
	files, err := Discover(cfg, []string{filepath.Join(root, "src", "*.cs")})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v", files)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	dirty := writeFile(t, filepath.Join(root, "Dirty.cs"),
		"class C\n{\n    void M()\n    {\n        a(); b();\n    }\n}\n")
	clean := writeFile(t, filepath.Join(root, "Clean.cs"),
		"class D\n{\n    void M()\n    {\n        a();\n    }\n}\n")

	cfg := projectConfig(root)
	_, results, err := Scan(context.Background(), cfg, []string{dirty, clean}, ScanOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].Path != dirty || results[1].Path != clean {
		t.Fatal("results out of input order")
	}
	if results[0].Bag.Len() != 1 {
		t.Fatalf("dirty file diagnostics = %d, want 1", results[0].Bag.Len())
	}
	if got := results[0].Bag.Items()[0].Code; got != diag.StyStatementsOnLine {
		t.Fatalf("code = %v", got)
	}
	if results[1].Bag.Len() != 0 {
		t.Fatalf("clean file diagnostics = %d", results[1].Bag.Len())
	}
}

func TestScanMissingFile(t *testing.T) {
	root := t.TempDir()
	cfg := projectConfig(root)
	_, results, err := Scan(context.Background(), cfg,
		[]string{filepath.Join(root, "gone.cs")}, ScanOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Bag.Len() != 1 || results[0].Bag.Items()[0].Code != diag.IOLoadFile {
		t.Fatalf("diags = %v", results[0].Bag.Items())
	}
}

func TestScanHonorsDisabledRules(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, "W.cs"),
		"class C\n{\n    void M() { }  \n}\n")

	manifest := writeFile(t, filepath.Join(root, config.ManifestName),
		"[rules]\ndisabled = [\"STY1003\"]\n")
	cfg, err := config.Load(manifest)
	if err != nil {
		t.Fatal(err)
	}

	_, results, err := Scan(context.Background(), cfg, []string{path}, ScanOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Bag.Len() != 0 {
		t.Fatalf("disabled rule still reported: %v", results[0].Bag.Items())
	}
}

func TestScanCache(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, "C.cs"),
		"class C\n{\n    int a, b;\n}\n")

	cache, err := OpenAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := projectConfig(root)
	opts := ScanOptions{Cache: cache}

	_, first, err := Scan(context.Background(), cfg, []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].FromCache {
		t.Fatal("first scan should miss the cache")
	}
	if first[0].Bag.Len() != 1 {
		t.Fatalf("diags = %d", first[0].Bag.Len())
	}

	_, second, err := Scan(context.Background(), cfg, []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].FromCache {
		t.Fatal("second scan should hit the cache")
	}
	if second[0].Bag.Len() != 1 {
		t.Fatalf("cached diags = %d", second[0].Bag.Len())
	}
	got, want := second[0].Bag.Items()[0], first[0].Bag.Items()[0]
	if got.Code != want.Code || got.Primary.Start != want.Primary.Start || got.Primary.End != want.Primary.End {
		t.Fatalf("cached diagnostic drifted: %+v vs %+v", got, want)
	}

	// Edits invalidate the entry.
	writeFile(t, path, "class C\n{\n    int a;\n}\n")
	_, third, err := Scan(context.Background(), cfg, []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].FromCache {
		t.Fatal("changed file should miss the cache")
	}
	if third[0].Bag.Len() != 0 {
		t.Fatalf("diags after edit = %d", third[0].Bag.Len())
	}
}

func TestFixFiles(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, "C.cs"),
		"class C\n{\n    int a, b;\n    void M()\n    {\n        int i = 0; i++;\n    }\n}\n")

	cfg := projectConfig(root)
	res, err := FixFiles(context.Background(), cfg, []string{path}, FixOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalApplied != 2 {
		t.Fatalf("applied = %d, want 2", res.TotalApplied)
	}
	if !res.Files[0].Changed {
		t.Fatal("file should be marked changed")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(content)
	if strings.Contains(text, "int a, b;") {
		t.Errorf("declarators not split:\n%s", text)
	}
	if strings.Contains(text, "int i = 0; i++;") {
		t.Errorf("statements not separated:\n%s", text)
	}

	// A fixed project scans clean.
	_, results, err := Scan(context.Background(), cfg, []string{path}, ScanOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Bag.Len() != 0 {
		t.Fatalf("still dirty after fixing: %v", results[0].Bag.Items())
	}
}

func TestFixFilesDryRun(t *testing.T) {
	root := t.TempDir()
	original := "class C\n{\n    int a, b;\n}\n"
	path := writeFile(t, filepath.Join(root, "C.cs"), original)

	cfg := projectConfig(root)
	res, err := FixFiles(context.Background(), cfg, []string{path}, FixOptions{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalApplied != 1 {
		t.Fatalf("applied = %d", res.TotalApplied)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != original {
		t.Fatal("dry run must not touch the file")
	}
}

func TestFixFilesRuleSubset(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, "C.cs"),
		"class C\n{\n    int a, b;\n    void M() { }  \n}\n")

	cfg := projectConfig(root)
	res, err := FixFiles(context.Background(), cfg, []string{path},
		FixOptions{Rules: []string{"STY1003"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files[0].Applied) != 1 || res.Files[0].Applied[0].RuleID != "STY1003" {
		t.Fatalf("applied = %+v", res.Files[0].Applied)
	}
	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "int a, b;") {
		t.Fatal("rule outside the subset was applied")
	}
}

func TestFixFilesKeepsPermissions(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, "C.cs"),
		"class C\n{\n    int a, b;\n}\n")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := projectConfig(root)
	if _, err := FixFiles(context.Background(), cfg, []string{path}, FixOptions{}); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}
