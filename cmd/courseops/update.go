package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"courseops/internal/api"
	"courseops/internal/config"
)

func newUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		title     string
		body      string
		assignee  string
		milestone string
	)

	cmd := &cobra.Command{
		Use:   "update <id> [<id>...]",
		Short: "Update items",
		Args:  requireAtLeastOneID,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocalBackend(cfg, "update"); err != nil {
				return err
			}

			req := api.ItemUpdateRequest{}
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("body") {
				req.Body = &body
			}
			if cmd.Flags().Changed("assignee") {
				req.Assignee = &assignee
			}
			if cmd.Flags().Changed("milestone") {
				req.Milestone = &milestone
			}
			if req.Title == nil && req.Body == nil && req.Assignee == nil && req.Milestone == nil {
				return errors.New("no fields to update")
			}

			return withClient(cfg, func(client *api.Client) error {
				for _, id := range args {
					if _, err := client.UpdateItem(cmd.Context(), id, req); err != nil {
						return err
					}
				}
				if *jsonOutput {
					return writeJSON(args)
				}
				return writePlain("%s\n", strings.Join(args, ","))
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&body, "body", "", "new body")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee (empty clears)")
	cmd.Flags().StringVar(&milestone, "milestone", "", "milestone title (empty clears)")

	return cmd
}
