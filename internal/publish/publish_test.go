package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"courseops/internal/course"
	"courseops/internal/retry"
	"courseops/internal/tracker"
)

type fakeTracker struct {
	items     []tracker.Item
	listErr   error
	createErr map[string]error
	listCalls int
	nextID    int
}

func (f *fakeTracker) ListItems(ctx context.Context, filter tracker.ItemFilter) ([]tracker.Item, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []tracker.Item
	for _, item := range f.items {
		if !filter.State.Matches(item.State) {
			continue
		}
		matched := true
		for _, label := range filter.Labels {
			if !item.HasLabel(label) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeTracker) CreateItem(ctx context.Context, draft tracker.Draft) (tracker.Item, error) {
	if err := f.createErr[draft.Title]; err != nil {
		return tracker.Item{}, err
	}
	f.nextID++
	item := tracker.Item{
		ID:        fmt.Sprintf("cw-%04d", f.nextID),
		Title:     draft.Title,
		Body:      draft.Body,
		State:     tracker.StateOpen,
		Milestone: draft.Milestone,
		Labels:    draft.Labels,
		CreatedAt: time.Now().UTC(),
	}
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeTracker) AssignItem(ctx context.Context, itemID, contributorID string) error {
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Assignee = contributorID
			return nil
		}
	}
	return tracker.ErrNotFound
}

func (f *fakeTracker) ListContributors(ctx context.Context) ([]tracker.Contributor, error) {
	return nil, nil
}

type fakeFullTracker struct {
	fakeTracker
	milestones []tracker.Milestone
	labelDefs  []tracker.LabelDef
}

func (f *fakeFullTracker) EnsureMilestone(ctx context.Context, ms tracker.Milestone) (tracker.Milestone, error) {
	for _, existing := range f.milestones {
		if existing.Title == ms.Title {
			return existing, nil
		}
	}
	ms.ID = fmt.Sprintf("ms-%d", len(f.milestones)+1)
	f.milestones = append(f.milestones, ms)
	return ms, nil
}

func (f *fakeFullTracker) ListMilestones(ctx context.Context) ([]tracker.Milestone, error) {
	return f.milestones, nil
}

func (f *fakeFullTracker) EnsureLabels(ctx context.Context, defs []tracker.LabelDef) error {
	f.labelDefs = defs
	return nil
}

func (f *fakeFullTracker) ListLabelDefs(ctx context.Context) ([]tracker.LabelDef, error) {
	return f.labelDefs, nil
}

func fastPolicy() retry.Policy {
	p := retry.Default()
	p.Sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return p
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func descriptorsForWeek(t *testing.T, week int) []course.TaskDescriptor {
	t.Helper()
	descriptors, err := course.Generate(week, course.FilterAll)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return descriptors
}

func TestPublishCreatesMissingTasks(t *testing.T) {
	ft := &fakeTracker{}
	p := New(ft, fastPolicy(), quietLogger())
	result, err := p.Publish(context.Background(), 3, descriptorsForWeek(t, 3))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected 2 created, got %d", len(result.Created))
	}
	if len(result.Skipped) != 0 || len(result.Failed) != 0 {
		t.Errorf("expected clean run, got skipped=%d failed=%d", len(result.Skipped), len(result.Failed))
	}
	if result.Created[0].Title != "Create Week 3 Lecture Materials" {
		t.Errorf("unexpected first created title %q", result.Created[0].Title)
	}
}

func TestPublishSkipsExistingCaseInsensitive(t *testing.T) {
	descriptors := []course.TaskDescriptor{
		{Title: "Create Week 3 Lecture Materials", Week: 3, Category: course.CategoryLecture, Priority: course.PriorityHigh},
		{Title: "Design Week 3 Workshop Exercises", Week: 3, Category: course.CategoryWorkshop, Priority: course.PriorityHigh},
		{Title: "Create Week 3 Assignment", Week: 3, Category: course.CategoryAssignment, Priority: course.PriorityMedium},
		{Title: "Update Week 3 Documentation", Week: 3, Category: course.CategoryDocumentation, Priority: course.PriorityLow},
		{Title: "Review Week 3 Feedback", Week: 3, Category: course.CategoryDocumentation, Priority: course.PriorityLow},
	}
	ft := &fakeTracker{items: []tracker.Item{
		{ID: "cw-0001", Title: "CREATE WEEK 3 LECTURE MATERIALS", State: tracker.StateOpen, Labels: []string{"lecture", "week-3"}},
		{ID: "cw-0002", Title: "design week 3 workshop exercises", State: tracker.StateClosed, Labels: []string{"workshop", "week-3"}},
	}}
	p := New(ft, fastPolicy(), quietLogger())
	result, err := p.Publish(context.Background(), 3, descriptors)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(result.Created) != 3 {
		t.Fatalf("expected 3 created, got %d", len(result.Created))
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skipped, got %d", len(result.Skipped))
	}
	for _, d := range result.Skipped {
		if !strings.Contains(d.Title, "Lecture") && !strings.Contains(d.Title, "Workshop") {
			t.Errorf("unexpected skipped descriptor %q", d.Title)
		}
	}
}

func TestPublishIdempotent(t *testing.T) {
	ft := &fakeTracker{}
	p := New(ft, fastPolicy(), quietLogger())
	ctx := context.Background()

	first, err := p.Publish(ctx, 1, descriptorsForWeek(t, 1))
	if err != nil {
		t.Fatalf("first publish failed: %v", err)
	}
	if len(first.Created) != 4 {
		t.Fatalf("expected 4 created, got %d", len(first.Created))
	}

	second, err := p.Publish(ctx, 1, descriptorsForWeek(t, 1))
	if err != nil {
		t.Fatalf("second publish failed: %v", err)
	}
	if len(second.Created) != 0 {
		t.Errorf("expected no new items on rerun, got %d", len(second.Created))
	}
	if len(second.Skipped) != 4 {
		t.Errorf("expected 4 skipped on rerun, got %d", len(second.Skipped))
	}
	if len(ft.items) != 4 {
		t.Errorf("expected 4 items in tracker, got %d", len(ft.items))
	}
}

func TestPublishListFailureIsFatal(t *testing.T) {
	ft := &fakeTracker{listErr: &tracker.StatusError{Status: 503, Message: "down"}}
	p := New(ft, fastPolicy(), quietLogger())
	_, err := p.Publish(context.Background(), 3, descriptorsForWeek(t, 3))
	var unavailable *tracker.UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if unavailable.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", unavailable.Attempts)
	}
	if ft.listCalls != 3 {
		t.Errorf("expected 3 list calls, got %d", ft.listCalls)
	}
}

func TestPublishContinuesAfterCreateFailure(t *testing.T) {
	ft := &fakeTracker{createErr: map[string]error{
		"Create Week 3 Lecture Materials": &tracker.StatusError{Status: 422, Code: "validation_failed"},
	}}
	p := New(ft, fastPolicy(), quietLogger())
	result, err := p.Publish(context.Background(), 3, descriptorsForWeek(t, 3))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failed))
	}
	if result.Failed[0].Descriptor.Title != "Create Week 3 Lecture Materials" {
		t.Errorf("unexpected failed descriptor %q", result.Failed[0].Descriptor.Title)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected remaining task created, got %d", len(result.Created))
	}
	if result.Created[0].Title != "Design Week 3 Workshop Exercises" {
		t.Errorf("unexpected created title %q", result.Created[0].Title)
	}
}

func TestPublishEnsuresMilestoneAndLabels(t *testing.T) {
	ft := &fakeFullTracker{}
	p := New(ft, fastPolicy(), quietLogger())
	_, err := p.Publish(context.Background(), 3, descriptorsForWeek(t, 3))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(ft.milestones) != 1 {
		t.Fatalf("expected 1 milestone, got %d", len(ft.milestones))
	}
	if ft.milestones[0].Title != "Week 3" {
		t.Errorf("expected milestone Week 3, got %q", ft.milestones[0].Title)
	}
	if ft.milestones[0].DueOn == nil {
		t.Errorf("expected milestone due date")
	}
	if len(ft.labelDefs) != 11 {
		t.Errorf("expected bootstrap labels ensured, got %d", len(ft.labelDefs))
	}
}

func TestPublishNothingToDo(t *testing.T) {
	ft := &fakeTracker{}
	p := New(ft, fastPolicy(), quietLogger())
	result, err := p.Publish(context.Background(), 9, nil)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(result.Created)+len(result.Skipped)+len(result.Failed) != 0 {
		t.Errorf("expected empty result")
	}
	if ft.listCalls != 0 {
		t.Errorf("expected no tracker calls for empty batch, got %d", ft.listCalls)
	}
}

func TestPartitionSkipsDuplicateWithinBatch(t *testing.T) {
	descriptors := []course.TaskDescriptor{
		{Title: "Create Week 2 Assignment", Week: 2},
		{Title: "create week 2 assignment", Week: 2},
	}
	create, skipped := Partition(descriptors, nil)
	if len(create) != 1 || len(skipped) != 1 {
		t.Fatalf("expected 1 create and 1 skip, got %d and %d", len(create), len(skipped))
	}
	if create[0].Title != "Create Week 2 Assignment" {
		t.Errorf("expected first occurrence kept, got %q", create[0].Title)
	}
}
