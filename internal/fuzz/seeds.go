package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addInlineSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".cs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func addInlineSeeds(f *testing.F) {
	seeds := []string{
		"",
		"class C { }\n",
		"class C\n{\n    int x;\n    void M() { a(); b(); }\n}\n",
		"class C { int a, b = 1; }\r\n",
		"\uFEFFnamespace N { class C { } }\n",
		"class C { void M() { if (x) { y(); } else z(); } }\n",
		"class C { string s = \"a \\\" b\"; char c = '\\n'; }\n",
		"class C { /* block */ void M() { } // line\n}\n",
		"class C { void M() { var q = from x in xs where x > 0 select x; } }\n",
		"class C { Action f = () => { a(); b(); }; }\n",
		"class C { void M() { switch (x) { case 1: a(); break; } } }\n",
		"class C { int x = ;;; }\n",
		"class C { void M() { { { { } } } }\n",
		"class\tC\t{\tint\tx;\t}\t\n",
		"class C { } \t \r\n\r\n",
		"class C { int x; }   ",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
