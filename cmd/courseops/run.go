package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"courseops/internal/assign"
	"courseops/internal/config"
	"courseops/internal/course"
	"courseops/internal/publish"
	"courseops/internal/report"
	"courseops/internal/tracker"
)

func newRunCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		week     int
		taskType string
		token    string
		suggest  bool
		max      int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate, publish, and assign one week's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := course.ParseTypeFilter(taskType)
			if err != nil {
				return err
			}
			descriptors, err := course.Generate(week, filter)
			if err != nil {
				return err
			}

			return withTracker(cfg, token, func(t tracker.Tracker) error {
				policy := cfg.RetryPolicy()
				logger := slog.Default()
				summary := report.New(week, len(descriptors))

				pub := publish.New(t, policy, logger.With("component", "publish"))
				result, err := pub.Publish(cmd.Context(), week, descriptors)
				if err != nil {
					return err
				}
				summary.RecordPublish(result)

				plan, err := buildAssignmentPlan(cmd.Context(), cfg, t, policy, week, max)
				if err != nil {
					return err
				}
				summary.RecordPlan(plan, suggest)
				if !suggest {
					applied := assign.Apply(cmd.Context(), t, plan, policy, logger.With("component", "assign"))
					summary.RecordApply(applied)
				}

				if *jsonOutput {
					return writeJSON(summary)
				}
				return summary.WriteText(os.Stdout)
			})
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "course week number (required)")
	cmd.Flags().StringVar(&taskType, "type", "", "task type filter (all, lectures, workshops, assignments, documentation)")
	cmd.Flags().StringVar(&token, "token", "", "tracker API token override")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "plan assignments without applying them")
	cmd.Flags().IntVar(&max, "max", 0, "max assignments this run (0 means use config)")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}
