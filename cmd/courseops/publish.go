package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"courseops/internal/config"
	"courseops/internal/course"
	"courseops/internal/publish"
	"courseops/internal/tracker"
)

func newPublishCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		week     int
		taskType string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Create one week's tasks in the tracker, skipping duplicates",
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
				pub := publish.New(t, cfg.RetryPolicy(), slog.Default().With("component", "publish"))
				result, err := pub.Publish(cmd.Context(), week, descriptors)
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(publishReport(result))
				}
				return writePublishResult(result)
			})
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "course week number (required)")
	cmd.Flags().StringVar(&taskType, "type", "", "task type filter (all, lectures, workshops, assignments, documentation)")
	cmd.Flags().StringVar(&token, "token", "", "tracker API token override")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}

type publishSummary struct {
	Created []tracker.Item `json:"created"`
	Skipped []string       `json:"skipped"`
	Failed  []failureLine  `json:"failed,omitempty"`
}

type failureLine struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

func publishReport(result publish.Result) publishSummary {
	out := publishSummary{Created: result.Created, Skipped: make([]string, 0, len(result.Skipped))}
	for _, d := range result.Skipped {
		out.Skipped = append(out.Skipped, d.Title)
	}
	for _, f := range result.Failed {
		out.Failed = append(out.Failed, failureLine{Title: f.Descriptor.Title, Error: f.Err.Error()})
	}
	return out
}

func writePublishResult(result publish.Result) error {
	if err := writePlain("created: %d\n", len(result.Created)); err != nil {
		return err
	}
	for _, item := range result.Created {
		if err := writePlain("  + %s %s\n", item.ID, item.Title); err != nil {
			return err
		}
	}
	if err := writePlain("skipped: %d\n", len(result.Skipped)); err != nil {
		return err
	}
	for _, d := range result.Skipped {
		if err := writePlain("  = %s\n", d.Title); err != nil {
			return err
		}
	}
	for _, f := range result.Failed {
		if err := writePlain("  ! %s: %v\n", f.Descriptor.Title, f.Err); err != nil {
			return err
		}
	}
	return nil
}
