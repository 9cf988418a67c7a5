package store

import (
	"context"
	"testing"
	"time"

	"courseops/internal/tracker"
)

func TestStoreInfo(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	seedItems(t, s)

	if err := s.CreateContributor(ctx, tracker.Contributor{ID: "alice"}, time.Now().UTC()); err != nil {
		t.Fatalf("create contributor: %v", err)
	}

	info, err := s.StoreInfo(ctx)
	if err != nil {
		t.Fatalf("store info: %v", err)
	}

	plan, err := s.Plan()
	if err != nil {
		t.Fatalf("migration plan: %v", err)
	}
	if info.SchemaVersion != plan.CurrentVersion {
		t.Fatalf("expected schema version %d, got %d", plan.CurrentVersion, info.SchemaVersion)
	}
	if info.TotalItems != 4 {
		t.Fatalf("expected 4 items, got %d", info.TotalItems)
	}
	if info.ItemCounts["open"]+info.ItemCounts["closed"] != info.TotalItems {
		t.Fatalf("state counts %v do not sum to total %d", info.ItemCounts, info.TotalItems)
	}
	if info.Contributors != 1 {
		t.Fatalf("expected 1 contributor, got %d", info.Contributors)
	}
}

func TestStoreInfoEmpty(t *testing.T) {
	s := testStore(t)

	info, err := s.StoreInfo(context.Background())
	if err != nil {
		t.Fatalf("store info: %v", err)
	}
	if info.TotalItems != 0 || len(info.ItemCounts) != 0 || info.Contributors != 0 {
		t.Fatalf("expected empty info, got %+v", info)
	}
}
