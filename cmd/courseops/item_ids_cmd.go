package main

import (
	"context"

	"courseops/internal/api"
	"courseops/internal/config"
)

type idsMutationFunc func(ctx context.Context, client *api.Client, ids []string) (any, error)

func runIDsMutation(ctx context.Context, cfg *config.Config, jsonOutput bool, ids []string, mutate idsMutationFunc) error {
	return withClient(cfg, func(client *api.Client) error {
		resp, err := mutate(ctx, client, ids)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(resp)
		}
		return writePlain("%v\n", ids)
	})
}
