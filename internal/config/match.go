package config

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Selects reports whether a file path passes the [files] include and
// exclude patterns. Paths and patterns are normalized to forward slashes;
// relative patterns are matched against the path, its basename, and the
// path relative to the manifest root, so "obj/**" excludes any obj tree
// regardless of where the scan was started from.
func (c *Config) Selects(path string) bool {
	if !matchesAny(c.Files.Include, c.relative(path)) {
		return false
	}
	return !matchesAny(c.Files.Exclude, c.relative(path))
}

func (c *Config) relative(path string) string {
	if c.Root != "" {
		if rel, err := filepath.Rel(c.Root, path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

func matchesAny(patterns []string, slashPath string) bool {
	base := filepath.ToSlash(filepath.Base(slashPath))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, slashPath); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
