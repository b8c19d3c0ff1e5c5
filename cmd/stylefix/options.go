package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsrustad/stylefix/internal/config"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func readColorMode(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// loadConfig resolves the manifest for a run: --config wins, otherwise
// walk up from the working directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if explicit != "" {
		return config.Load(explicit)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadFromDir(wd)
}

func persistentBool(cmd *cobra.Command, name string) (bool, error) {
	return cmd.Root().PersistentFlags().GetBool(name)
}

func persistentString(cmd *cobra.Command, name string) (string, error) {
	return cmd.Root().PersistentFlags().GetString(name)
}

func persistentInt(cmd *cobra.Command, name string) (int, error) {
	return cmd.Root().PersistentFlags().GetInt(name)
}
