package store

import (
	"context"
	"time"

	"courseops/internal/tracker"
)

// MilestoneStore is the optional milestone capability.
type MilestoneStore interface {
	EnsureMilestone(ctx context.Context, ms tracker.Milestone, now time.Time) (*tracker.Milestone, error)
	GetMilestoneByTitle(ctx context.Context, title string) (*tracker.Milestone, error)
	ListMilestones(ctx context.Context) ([]tracker.Milestone, error)
}

var _ MilestoneStore = (*Store)(nil)
