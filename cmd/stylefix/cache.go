package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsrustad/stylefix/internal/engine"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the scan result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached scan result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := engine.Open("stylefix")
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return err
		}
		quiet, err := persistentBool(cmd, "quiet")
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
