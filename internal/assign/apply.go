package assign

import (
	"context"
	"log/slog"

	"courseops/internal/retry"
	"courseops/internal/tracker"
)

// ApplyFailure records one assignment the tracker rejected.
type ApplyFailure struct {
	Assignment Assignment
	Err        error
}

// ApplyResult reports which planned assignments stuck.
type ApplyResult struct {
	Applied []Assignment
	Failed  []ApplyFailure
}

// Apply pushes a plan's assignments to the tracker. Each one is
// retried independently; a rejected assignment is recorded and the
// rest still go through.
func Apply(ctx context.Context, t tracker.Tracker, plan Plan, policy retry.Policy, logger *slog.Logger) ApplyResult {
	if logger == nil {
		logger = slog.Default()
	}
	var result ApplyResult
	for _, a := range plan.Assignments {
		err := policy.Do(ctx, "assign item", func() error {
			return t.AssignItem(ctx, a.ItemID, a.Contributor)
		})
		if err != nil {
			logger.Error("failed to assign task", "item", a.ItemID, "contributor", a.Contributor, "error", err)
			result.Failed = append(result.Failed, ApplyFailure{Assignment: a, Err: err})
			continue
		}
		logger.Info("assigned task", "item", a.ItemID, "title", a.Title, "contributor", a.Contributor)
		result.Applied = append(result.Applied, a)
	}
	return result
}
