package main

import (
	"sort"

	"github.com/spf13/cobra"

	"courseops/internal/api"
	"courseops/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show database and project info",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocalBackend(cfg, "info"); err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}
				resp.DBPath = cfg.DBPath

				if *jsonOutput {
					return writeJSON(resp)
				}

				_ = writePlain("db_path: %s\n", resp.DBPath)
				_ = writePlain("project_prefix: %s\n", resp.ProjectPrefix)
				_ = writePlain("schema_version: %d\n", resp.SchemaVersion)
				_ = writePlain("total_items: %d\n", resp.TotalItems)
				_ = writePlain("contributors: %d\n", resp.Contributors)

				states := make([]string, 0, len(resp.ItemCounts))
				for state := range resp.ItemCounts {
					states = append(states, state)
				}
				sort.Strings(states)
				for _, state := range states {
					_ = writePlain("  %s: %d\n", state, resp.ItemCounts[state])
				}
				return nil
			})
		},
	}
	return cmd
}
