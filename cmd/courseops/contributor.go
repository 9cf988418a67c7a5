package main

import (
	"strings"

	"github.com/spf13/cobra"

	"courseops/internal/api"
	"courseops/internal/config"
	"courseops/internal/tracker"
)

func newContributorCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contributor",
		Short: "Manage contributors",
	}

	cmd.AddCommand(
		newContributorAddCmd(cfg, jsonOutput),
		newContributorListCmd(cfg, jsonOutput),
		newContributorRemoveCmd(cfg),
	)
	return cmd
}

func newContributorAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> [name...]",
		Short: "Register a contributor",
		Args:  requireAtLeastArgs(1, "contributor id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocalBackend(cfg, "contributor add"); err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				req := api.ContributorCreateRequest{
					ID:   args[0],
					Name: strings.Join(args[1:], " "),
				}
				contributor, err := client.CreateContributor(cmd.Context(), req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(contributor)
				}
				return writePlain("%s\n", formatContributorLine(contributor))
			})
		},
	}
}

func newContributorListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contributors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cfg, token, func(t tracker.Tracker) error {
				contributors, err := t.ListContributors(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(contributors)
				}
				for _, c := range contributors {
					if err := writePlain("%s\n", formatContributorLine(c)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "tracker API token override")
	return cmd
}

func newContributorRemoveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a contributor",
		Args:  requireExactlyArgs(1, "contributor id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocalBackend(cfg, "contributor remove"); err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				if err := client.DeleteContributor(cmd.Context(), args[0]); err != nil {
					return err
				}
				return writePlain("removed %s\n", args[0])
			})
		},
	}
}

func formatContributorLine(c tracker.Contributor) string {
	if c.Name == "" {
		return c.ID
	}
	return c.ID + " - " + c.Name
}
