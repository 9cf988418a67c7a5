package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"courseops/internal/assign"
	"courseops/internal/config"
	"courseops/internal/course"
	"courseops/internal/retry"
	"courseops/internal/roster"
	"courseops/internal/tracker"
)

func newAssignCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		week    int
		max     int
		suggest bool
		token   string
	)

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign open unassigned tasks to the least-loaded contributors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if week != 0 {
				if err := requireWeekFlag(week); err != nil {
					return err
				}
			}

			return withTracker(cfg, token, func(t tracker.Tracker) error {
				policy := cfg.RetryPolicy()
				plan, err := buildAssignmentPlan(cmd.Context(), cfg, t, policy, week, max)
				if err != nil {
					return err
				}

				if suggest {
					return writeAssignOutcome(*jsonOutput, plan, assign.ApplyResult{}, true)
				}

				applied := assign.Apply(cmd.Context(), t, plan, policy, slog.Default().With("component", "assign"))
				return writeAssignOutcome(*jsonOutput, plan, applied, false)
			})
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "only tasks for this course week")
	cmd.Flags().IntVar(&max, "max", 0, "max assignments this run (0 means use config)")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "print the plan without applying it")
	cmd.Flags().StringVar(&token, "token", "", "tracker API token override")

	return cmd
}

// buildAssignmentPlan gathers contributors and open work, then plans
// assignments. Contributors come from the roster file when one is
// configured, otherwise from the tracker.
func buildAssignmentPlan(ctx context.Context, cfg *config.Config, t tracker.Tracker, policy retry.Policy, week, max int) (assign.Plan, error) {
	var (
		contributors []tracker.Contributor
		ceilings     map[string]int
	)
	if cfg.RosterPath != "" {
		r, err := roster.Load(cfg.RosterPath)
		if err != nil {
			return assign.Plan{}, err
		}
		contributors = r.TrackerContributors()
		ceilings = r.Ceilings()
	} else {
		err := policy.Do(ctx, "list contributors", func() error {
			var lerr error
			contributors, lerr = t.ListContributors(ctx)
			return lerr
		})
		if err != nil {
			return assign.Plan{}, err
		}
	}

	var open []tracker.Item
	err := policy.Do(ctx, "list open items", func() error {
		var lerr error
		open, lerr = t.ListItems(ctx, tracker.ItemFilter{State: tracker.FilterOpen})
		return lerr
	})
	if err != nil {
		return assign.Plan{}, err
	}

	filter := tracker.ItemFilter{State: tracker.FilterOpen, Unassigned: true}
	if week > 0 {
		filter.Labels = []string{course.WeekLabel(week)}
	}
	var todo []tracker.Item
	err = policy.Do(ctx, "list unassigned items", func() error {
		var lerr error
		todo, lerr = t.ListItems(ctx, filter)
		return lerr
	})
	if err != nil {
		return assign.Plan{}, err
	}

	maxAssignments := cfg.MaxAssignments
	if max > 0 {
		maxAssignments = max
	}

	return assign.Balance(todo, contributors, assign.CountLoads(contributors, open), assign.Options{
		MaxLoad:        cfg.MaxLoad,
		ContributorMax: ceilings,
		MaxAssignments: maxAssignments,
	})
}

type assignReport struct {
	Suggested   bool                `json:"suggested,omitempty"`
	Assignments []assign.Assignment `json:"assignments"`
	Residual    []string            `json:"residual"`
	Loads       map[string]int      `json:"loads"`
	Failed      []failureLine       `json:"failed,omitempty"`
}

func writeAssignOutcome(jsonOutput bool, plan assign.Plan, applied assign.ApplyResult, suggested bool) error {
	if jsonOutput {
		out := assignReport{
			Suggested:   suggested,
			Assignments: plan.Assignments,
			Residual:    make([]string, 0, len(plan.Residual)),
			Loads:       plan.Loads,
		}
		if !suggested {
			out.Assignments = applied.Applied
		}
		for _, item := range plan.Residual {
			out.Residual = append(out.Residual, item.ID)
		}
		for _, f := range applied.Failed {
			out.Failed = append(out.Failed, failureLine{Title: f.Assignment.ItemID, Error: f.Err.Error()})
		}
		return writeJSON(out)
	}

	label := "assigned"
	rows := applied.Applied
	if suggested {
		label = "suggested"
		rows = plan.Assignments
	}
	if err := writePlain("%s: %d\n", label, len(rows)); err != nil {
		return err
	}
	for _, a := range rows {
		if err := writePlain("  > %s %s -> %s\n", a.ItemID, a.Title, a.Contributor); err != nil {
			return err
		}
	}
	for _, f := range applied.Failed {
		if err := writePlain("  ! %s -> %s: %v\n", f.Assignment.ItemID, f.Assignment.Contributor, f.Err); err != nil {
			return err
		}
	}
	if len(plan.Residual) > 0 {
		if err := writePlain("residual: %d\n", len(plan.Residual)); err != nil {
			return err
		}
		for _, item := range plan.Residual {
			if err := writePlain("  ? %s %s\n", item.ID, item.Title); err != nil {
				return err
			}
		}
	}
	return nil
}
