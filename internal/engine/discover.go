// Package engine drives whole-project scans: file discovery, parallel
// rule checking with a disk cache, and batch fix application.
package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jsrustad/stylefix/internal/config"
)

// Discover resolves the scan inputs to a deduplicated, sorted list of
// source files. Each input may be a file, a directory (walked
// recursively), or a doublestar glob pattern. The manifest's [files]
// include and exclude patterns filter every result; explicit file inputs
// bypass the include set but still honor excludes.
func Discover(cfg *config.Config, inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		inputs = []string{cfg.Root}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		files = append(files, abs)
	}

	for _, input := range inputs {
		if containsGlobChars(input) {
			matches, err := doublestar.FilepathGlob(input, doublestar.WithFilesOnly())
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				if cfg.Selects(m) {
					add(m)
				}
			}
			continue
		}

		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			// The user asked for this file by name; only excludes apply.
			if selectsExplicit(cfg, input) {
				add(input)
			}
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if cfg.Selects(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func selectsExplicit(cfg *config.Config, path string) bool {
	trimmed := *cfg
	trimmed.Files.Include = []string{"**"}
	return trimmed.Selects(path)
}

func containsGlobChars(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[', ']', '{', '}':
			return true
		}
	}
	return false
}
