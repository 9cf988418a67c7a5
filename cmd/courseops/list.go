package main

import (
	"github.com/spf13/cobra"

	"courseops/internal/config"
	"courseops/internal/course"
	"courseops/internal/tracker"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		state      string
		week       int
		label      string
		unassigned bool
		token      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracker items",
		RunE: func(cmd *cobra.Command, args []string) error {
			stateFilter, err := tracker.ParseStateFilter(state)
			if err != nil {
				return err
			}
			labels := splitCommaList(label)
			if week > 0 {
				labels = append(labels, course.WeekLabel(week))
			}

			return withTracker(cfg, token, func(t tracker.Tracker) error {
				items, err := t.ListItems(cmd.Context(), tracker.ItemFilter{
					State:      stateFilter,
					Labels:     labels,
					Unassigned: unassigned,
				})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(items)
				}
				return writeItemList(items)
			})
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "state filter (open, closed, all)")
	cmd.Flags().IntVar(&week, "week", 0, "only items for this course week")
	cmd.Flags().StringVar(&label, "label", "", "label filter, comma separated")
	cmd.Flags().BoolVar(&unassigned, "unassigned", false, "only unassigned items")
	cmd.Flags().StringVar(&token, "token", "", "tracker API token override")

	return cmd
}
