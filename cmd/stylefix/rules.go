package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsrustad/stylefix/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered style rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, r := range rules.All() {
			state := "enabled"
			if !cfg.RuleEnabled(r.ID()) {
				state = "disabled"
			}
			fixable := ""
			if _, ok := r.(rules.Fixable); ok {
				fixable = " [fixable]"
			}
			fmt.Fprintf(out, "%s  %-8s %s%s\n", r.ID(), state, r.Description(), fixable)
		}
		return nil
	},
}
