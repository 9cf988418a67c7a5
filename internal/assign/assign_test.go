package assign

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"courseops/internal/retry"
	"courseops/internal/tracker"
)

func contributors(ids ...string) []tracker.Contributor {
	out := make([]tracker.Contributor, len(ids))
	for i, id := range ids {
		out[i] = tracker.Contributor{ID: id}
	}
	return out
}

func openItems(n int) []tracker.Item {
	base := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	items := make([]tracker.Item, n)
	for i := range items {
		items[i] = tracker.Item{
			ID:        fmt.Sprintf("cw-%04d", i+1),
			Title:     fmt.Sprintf("Task %d", i+1),
			State:     tracker.StateOpen,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return items
}

func TestBalanceSpreadsLoadEvenly(t *testing.T) {
	plan, err := Balance(openItems(7), contributors("alice", "bob", "carol"), Loads{}, Options{})
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if len(plan.Assignments) != 7 {
		t.Fatalf("expected 7 assignments, got %d", len(plan.Assignments))
	}
	if len(plan.Residual) != 0 {
		t.Errorf("expected no residual, got %d", len(plan.Residual))
	}
	min, max := plan.Loads["alice"], plan.Loads["alice"]
	for _, load := range plan.Loads {
		if load < min {
			min = load
		}
		if load > max {
			max = load
		}
	}
	if max-min > 1 {
		t.Errorf("expected balanced loads, got %v", plan.Loads)
	}
}

func TestBalancePrefersLeastLoaded(t *testing.T) {
	loads := Loads{"c1": 0, "c2": 1, "c3": 1}
	plan, err := Balance(openItems(2), contributors("c1", "c2", "c3"), loads, Options{})
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if len(plan.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(plan.Assignments))
	}
	for i, a := range plan.Assignments {
		if a.Contributor != "c1" {
			t.Errorf("assignment %d: expected c1, got %s", i, a.Contributor)
		}
	}
	want := Loads{"c1": 2, "c2": 1, "c3": 1}
	for id, n := range want {
		if plan.Loads[id] != n {
			t.Errorf("load %s: expected %d, got %d", id, n, plan.Loads[id])
		}
	}
	if loads["c1"] != 0 {
		t.Errorf("input loads mutated: %v", loads)
	}
}

func TestBalanceTieBreaksOnID(t *testing.T) {
	plan, err := Balance(openItems(1), contributors("zoe", "amir"), Loads{"zoe": 2, "amir": 2}, Options{})
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if plan.Assignments[0].Contributor != "amir" {
		t.Errorf("expected tie broken by ID, got %s", plan.Assignments[0].Contributor)
	}
}

func TestBalanceOldestFirst(t *testing.T) {
	items := openItems(3)
	// Present newest first; the plan must still start with the oldest.
	reversed := []tracker.Item{items[2], items[1], items[0]}
	plan, err := Balance(reversed, contributors("solo"), Loads{}, Options{})
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if plan.Assignments[0].ItemID != "cw-0001" {
		t.Errorf("expected oldest item first, got %s", plan.Assignments[0].ItemID)
	}
	if plan.Assignments[2].ItemID != "cw-0003" {
		t.Errorf("expected newest item last, got %s", plan.Assignments[2].ItemID)
	}
}

func TestBalanceRespectsCeiling(t *testing.T) {
	plan, err := Balance(openItems(3), contributors("c1", "c2"), Loads{"c1": 2, "c2": 1}, Options{MaxLoad: 2})
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if len(plan.Assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(plan.Assignments))
	}
	if plan.Assignments[0].Contributor != "c2" {
		t.Errorf("expected c2, got %s", plan.Assignments[0].Contributor)
	}
	if len(plan.Residual) != 2 {
		t.Errorf("expected 2 residual items, got %d", len(plan.Residual))
	}
	if plan.Loads["c1"] != 2 || plan.Loads["c2"] != 2 {
		t.Errorf("unexpected final loads %v", plan.Loads)
	}
}

func TestBalancePerContributorCeiling(t *testing.T) {
	opts := Options{MaxLoad: 5, ContributorMax: map[string]int{"busy": 1}}
	plan, err := Balance(openItems(4), contributors("busy", "free"), Loads{}, opts)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if plan.Loads["busy"] != 1 {
		t.Errorf("expected busy capped at 1, got %d", plan.Loads["busy"])
	}
	if plan.Loads["free"] != 3 {
		t.Errorf("expected free to take the rest, got %d", plan.Loads["free"])
	}
}

func TestBalanceAssignmentCap(t *testing.T) {
	plan, err := Balance(openItems(5), contributors("c1", "c2"), Loads{}, Options{MaxAssignments: 3})
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if len(plan.Assignments) != 3 {
		t.Errorf("expected 3 assignments, got %d", len(plan.Assignments))
	}
	if len(plan.Residual) != 2 {
		t.Errorf("expected 2 residual items, got %d", len(plan.Residual))
	}
}

func TestBalanceNoContributors(t *testing.T) {
	_, err := Balance(openItems(1), nil, Loads{}, Options{})
	if !errors.Is(err, ErrNoContributors) {
		t.Fatalf("expected ErrNoContributors, got %v", err)
	}
}

func TestBalanceNoItems(t *testing.T) {
	plan, err := Balance(nil, contributors("c1"), Loads{}, Options{})
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if len(plan.Assignments) != 0 || len(plan.Residual) != 0 {
		t.Errorf("expected empty plan")
	}
	if plan.Loads["c1"] != 0 {
		t.Errorf("expected zero load entry for c1, got %v", plan.Loads)
	}
}

func TestCountLoads(t *testing.T) {
	items := []tracker.Item{
		{ID: "cw-0001", State: tracker.StateOpen, Assignee: "alice"},
		{ID: "cw-0002", State: tracker.StateOpen, Assignee: "alice"},
		{ID: "cw-0003", State: tracker.StateOpen, Assignee: "stranger"},
		{ID: "cw-0004", State: tracker.StateOpen},
	}
	loads := CountLoads(contributors("alice", "bob"), items)
	if loads["alice"] != 2 {
		t.Errorf("expected alice at 2, got %d", loads["alice"])
	}
	if loads["bob"] != 0 {
		t.Errorf("expected zero entry for bob, got %d", loads["bob"])
	}
	if _, ok := loads["stranger"]; ok {
		t.Errorf("unexpected load entry for unknown assignee")
	}
}

type assignRecorder struct {
	calls  []string
	reject map[string]error
}

func (r *assignRecorder) ListItems(ctx context.Context, filter tracker.ItemFilter) ([]tracker.Item, error) {
	return nil, nil
}

func (r *assignRecorder) CreateItem(ctx context.Context, draft tracker.Draft) (tracker.Item, error) {
	return tracker.Item{}, nil
}

func (r *assignRecorder) AssignItem(ctx context.Context, itemID, contributorID string) error {
	if err := r.reject[itemID]; err != nil {
		return err
	}
	r.calls = append(r.calls, itemID+"->"+contributorID)
	return nil
}

func (r *assignRecorder) ListContributors(ctx context.Context) ([]tracker.Contributor, error) {
	return nil, nil
}

func TestApplyContinuesAfterFailure(t *testing.T) {
	rec := &assignRecorder{reject: map[string]error{
		"cw-0002": &tracker.StatusError{Status: 404, Code: "not_found"},
	}}
	plan := Plan{Assignments: []Assignment{
		{ItemID: "cw-0001", Contributor: "alice"},
		{ItemID: "cw-0002", Contributor: "bob"},
		{ItemID: "cw-0003", Contributor: "alice"},
	}}
	policy := retry.Default()
	policy.Sleep = func(ctx context.Context, d time.Duration) error { return nil }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	result := Apply(context.Background(), rec, plan, policy, logger)
	if len(result.Applied) != 2 {
		t.Fatalf("expected 2 applied, got %d", len(result.Applied))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failed))
	}
	if result.Failed[0].Assignment.ItemID != "cw-0002" {
		t.Errorf("unexpected failed item %s", result.Failed[0].Assignment.ItemID)
	}
	if len(rec.calls) != 2 {
		t.Errorf("expected 2 tracker calls to land, got %v", rec.calls)
	}
}
