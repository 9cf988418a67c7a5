package main

import (
	"github.com/spf13/cobra"

	"courseops/internal/api"
	"courseops/internal/config"
	"courseops/internal/tracker"
)

func newShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id> [<id>...]",
		Short: "Show item details",
		Args:  requireAtLeastOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocalBackend(cfg, "show"); err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				if len(args) == 1 {
					item, err := client.GetItem(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if *jsonOutput {
						return writeJSON(item)
					}
					return writeItemDetail(item)
				}

				items := make([]tracker.Item, 0, len(args))
				for _, id := range args {
					item, err := client.GetItem(cmd.Context(), id)
					if err != nil {
						return err
					}
					items = append(items, item)
				}
				if *jsonOutput {
					return writeJSON(items)
				}
				return writeItemList(items)
			})
		},
	}

	return cmd
}
