package main

import (
	"context"

	"github.com/spf13/cobra"

	"courseops/internal/api"
	"courseops/internal/config"
)

func newReopenCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reopen <id> [<id>...]",
		Short: "Reopen items",
		Args:  requireAtLeastOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocalBackend(cfg, "reopen"); err != nil {
				return err
			}
			return runIDsMutation(cmd.Context(), cfg, *jsonOutput, args,
				func(ctx context.Context, client *api.Client, ids []string) (any, error) {
					return client.ReopenItems(ctx, ids)
				},
			)
		},
	}

	return cmd
}
