package config

import (
	"strconv"
	"strings"

	"github.com/editorconfig/editorconfig-core-go/v2"

	"github.com/jsrustad/stylefix/internal/rewrite"
)

// SettingsFor resolves the effective format settings for one file.
// Manifest keys the user set explicitly always win; for the rest, an
// .editorconfig definition covering the file fills the gap before the
// built-in defaults apply.
func (c *Config) SettingsFor(path string) rewrite.Settings {
	s := c.Settings()
	def, err := editorconfig.GetDefinitionForFilename(path)
	if err != nil || def == nil {
		return s
	}

	if !c.explicit.useTabs && def.IndentStyle != "" {
		s.UseTabs = def.IndentStyle == editorconfig.IndentStyleTab
	}
	if !c.explicit.indentSize {
		if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 {
			s.IndentSize = n
		}
	}
	if !c.explicit.endOfLine {
		switch strings.ToLower(def.EndOfLine) {
		case editorconfig.EndOfLineLf:
			s.DefaultEOL = "\n"
		case editorconfig.EndOfLineCrLf:
			s.DefaultEOL = "\r\n"
		case editorconfig.EndOfLineCr:
			s.DefaultEOL = "\r"
		}
	}
	return s
}
