package main

import (
	"errors"

	"github.com/spf13/cobra"

	"courseops/internal/config"
	"courseops/internal/course"
	"courseops/internal/tracker"
)

func newLabelsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		bootstrap bool
		token     string
	)

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List or bootstrap the course label set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cfg, token, func(t tracker.Tracker) error {
				ls, ok := t.(tracker.LabelStore)
				if !ok {
					return errors.New("tracker does not support label definitions")
				}
				policy := cfg.RetryPolicy()

				if bootstrap {
					defs := course.BootstrapLabels()
					err := policy.Do(cmd.Context(), "ensure labels", func() error {
						return ls.EnsureLabels(cmd.Context(), defs)
					})
					if err != nil {
						return err
					}
				}

				var defs []tracker.LabelDef
				err := policy.Do(cmd.Context(), "list labels", func() error {
					var lerr error
					defs, lerr = ls.ListLabelDefs(cmd.Context())
					return lerr
				})
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(defs)
				}
				for _, def := range defs {
					line := def.Name
					if def.Color != "" {
						line += " [" + def.Color + "]"
					}
					if def.Description != "" {
						line += " - " + def.Description
					}
					if err := writePlain("%s\n", line); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&bootstrap, "bootstrap", false, "create any missing course labels first")
	cmd.Flags().StringVar(&token, "token", "", "tracker API token override")

	return cmd
}
