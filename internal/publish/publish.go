// Package publish creates generated course tasks in a tracker,
// skipping work that already exists so repeated runs are safe.
package publish

import (
	"context"
	"log/slog"
	"time"

	"courseops/internal/course"
	"courseops/internal/retry"
	"courseops/internal/tracker"
)

// Failure records one descriptor that could not be created.
type Failure struct {
	Descriptor course.TaskDescriptor
	Err        error
}

// Result summarizes one publish run.
type Result struct {
	Created []tracker.Item
	Skipped []course.TaskDescriptor
	Failed  []Failure
}

// Publisher pushes task descriptors into a tracker with retry and
// duplicate detection.
type Publisher struct {
	tracker tracker.Tracker
	policy  retry.Policy
	log     *slog.Logger
	now     func() time.Time
}

func New(t tracker.Tracker, policy retry.Policy, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{tracker: t, policy: policy, log: logger, now: time.Now}
}

// Publish creates the given descriptors for a week. Listing existing
// items must succeed so duplicates can be detected; after that each
// creation is attempted independently and failures are collected
// rather than aborting the batch.
func (p *Publisher) Publish(ctx context.Context, week int, descriptors []course.TaskDescriptor) (Result, error) {
	var result Result
	if len(descriptors) == 0 {
		return result, nil
	}

	var existing []tracker.Item
	err := p.policy.Do(ctx, "list items", func() error {
		var listErr error
		existing, listErr = p.tracker.ListItems(ctx, tracker.ItemFilter{
			State:  tracker.FilterAll,
			Labels: []string{course.WeekLabel(week)},
		})
		return listErr
	})
	if err != nil {
		return result, err
	}

	p.prepare(ctx, week)

	create, skipped := Partition(descriptors, existing)
	result.Skipped = skipped
	for _, d := range skipped {
		p.log.Info("skipping existing task", "title", d.Title, "week", d.Week)
	}

	for _, d := range create {
		draft := d.Draft()
		var item tracker.Item
		err := p.policy.Do(ctx, "create item", func() error {
			var createErr error
			item, createErr = p.tracker.CreateItem(ctx, draft)
			return createErr
		})
		if err != nil {
			p.log.Error("failed to create task", "title", d.Title, "error", err)
			result.Failed = append(result.Failed, Failure{Descriptor: d, Err: err})
			continue
		}
		p.log.Info("created task", "id", item.ID, "title", item.Title)
		result.Created = append(result.Created, item)
	}
	return result, nil
}

// prepare ensures labels and the week milestone exist where the
// tracker supports them. Both are best effort; task creation proceeds
// either way.
func (p *Publisher) prepare(ctx context.Context, week int) {
	if ls, ok := p.tracker.(tracker.LabelStore); ok {
		if err := ls.EnsureLabels(ctx, course.BootstrapLabels()); err != nil {
			p.log.Warn("could not ensure labels", "error", err)
		}
	}
	if ms, ok := p.tracker.(tracker.MilestoneStore); ok {
		if _, err := ms.EnsureMilestone(ctx, course.MilestoneForWeek(week, p.now())); err != nil {
			p.log.Warn("could not ensure milestone", "week", week, "error", err)
		}
	}
}
