// Package config loads stylefix.toml and resolves the effective format
// settings for each file. Manifest values win; gaps are filled from an
// .editorconfig when one applies, then built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jsrustad/stylefix/internal/rewrite"
)

// ManifestName is the project manifest file located by walking up from
// the working directory.
const ManifestName = "stylefix.toml"

// FormatSection mirrors [format] in stylefix.toml.
type FormatSection struct {
	IndentSize int    `toml:"indent_size"`
	UseTabs    bool   `toml:"use_tabs"`
	EndOfLine  string `toml:"end_of_line"`
}

// RulesSection mirrors [rules] in stylefix.toml.
type RulesSection struct {
	Disabled []string `toml:"disabled"`
}

// FilesSection mirrors [files] in stylefix.toml.
type FilesSection struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// Config is a parsed manifest plus the location it was loaded from.
type Config struct {
	Format FormatSection `toml:"format"`
	Rules  RulesSection  `toml:"rules"`
	Files  FilesSection  `toml:"files"`

	// Path is the manifest location, empty for built-in defaults.
	Path string `toml:"-"`

	// Root is the directory scans resolve relative paths against.
	Root string `toml:"-"`

	explicit explicitKeys
	disabled map[string]bool
}

// explicitKeys records which [format] keys the manifest actually set, so
// an .editorconfig only fills genuine gaps.
type explicitKeys struct {
	indentSize bool
	useTabs    bool
	endOfLine  bool
}

// Default returns the built-in configuration: four-space indentation,
// CRLF line endings, every rule enabled, *.cs files everywhere except
// bin/ and obj/ trees.
func Default() *Config {
	return &Config{
		Format: FormatSection{IndentSize: 4, EndOfLine: "crlf"},
		Files: FilesSection{
			Include: []string{"**/*.cs"},
			Exclude: []string{"**/bin/**", "**/obj/**"},
		},
		Root:     ".",
		disabled: map[string]bool{},
	}
}

// FindManifest walks up from startDir to locate stylefix.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a manifest file.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	cfg.explicit = explicitKeys{
		indentSize: meta.IsDefined("format", "indent_size"),
		useTabs:    meta.IsDefined("format", "use_tabs"),
		endOfLine:  meta.IsDefined("format", "end_of_line"),
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.disabled = make(map[string]bool, len(cfg.Rules.Disabled))
	for _, id := range cfg.Rules.Disabled {
		cfg.disabled[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	return cfg, nil
}

// LoadFromDir locates and parses the manifest governing startDir, falling
// back to Default when no manifest exists.
func LoadFromDir(startDir string) (*Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		cfg := Default()
		if abs, err := filepath.Abs(startDir); err == nil {
			cfg.Root = abs
		}
		return cfg, nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	if c.Format.IndentSize < 0 {
		return fmt.Errorf("invalid [format].indent_size %d: must not be negative", c.Format.IndentSize)
	}
	switch strings.ToLower(c.Format.EndOfLine) {
	case "", "crlf", "lf", "cr":
	default:
		return fmt.Errorf("invalid [format].end_of_line %q: want crlf, lf or cr", c.Format.EndOfLine)
	}
	for _, id := range c.Rules.Disabled {
		if strings.TrimSpace(id) == "" {
			return errors.New("invalid [rules].disabled: empty rule id")
		}
	}
	return nil
}

// RuleEnabled reports whether the rule identifier survives the manifest's
// disabled list.
func (c *Config) RuleEnabled(id string) bool {
	return !c.disabled[strings.ToUpper(id)]
}

// Settings converts the [format] section to rewriter settings.
func (c *Config) Settings() rewrite.Settings {
	return rewrite.Settings{
		IndentSize: c.Format.IndentSize,
		UseTabs:    c.Format.UseTabs,
		DefaultEOL: terminatorFor(c.Format.EndOfLine),
	}
}

func terminatorFor(name string) string {
	switch strings.ToLower(name) {
	case "lf":
		return "\n"
	case "cr":
		return "\r"
	default:
		return "\r\n"
	}
}
