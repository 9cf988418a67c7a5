package main

import (
	"strings"

	"github.com/spf13/cobra"

	"courseops/internal/config"
	"courseops/internal/course"
)

func newPlanCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		week     int
		taskType string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the tasks one week would generate",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := course.ParseTypeFilter(taskType)
			if err != nil {
				return err
			}
			descriptors, err := course.Generate(week, filter)
			if err != nil {
				return err
			}

			if *jsonOutput {
				return writeJSON(descriptors)
			}

			if err := writePlain("week %d: %d tasks\n", week, len(descriptors)); err != nil {
				return err
			}
			for _, d := range descriptors {
				if err := writePlain("  + %s [%s]\n", d.Title, strings.Join(d.Labels(), ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "course week number (required)")
	cmd.Flags().StringVar(&taskType, "type", "", "task type filter (all, lectures, workshops, assignments, documentation)")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}
