package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsrustad/stylefix/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show stylefix build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch strings.ToLower(versionFormat) {
		case "json":
			payload := versionPayload{
				Tool:      "stylefix",
				Version:   version.Version,
				GitCommit: version.GitCommit,
				BuildDate: version.BuildDate,
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		case "pretty":
			colored, err := colorFromFlags(cmd)
			if err != nil {
				return err
			}
			rendered := version.Version
			if colored {
				rendered = version.Pretty()
			}
			fmt.Fprintf(out, "stylefix %s\n", rendered)
			if version.GitCommit != "" {
				fmt.Fprintf(out, "commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(out, "built:  %s\n", version.BuildDate)
			}
			return nil
		default:
			return fmt.Errorf("invalid --format value %q (expected pretty|json)", versionFormat)
		}
	},
}
