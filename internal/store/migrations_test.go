package store

import (
	"path/filepath"
	"testing"
)

func TestMigrationsApplyOnOpen(t *testing.T) {
	st := testStore(t)

	status, err := st.Plan()
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if status.CurrentVersion != status.AvailableVersion {
		t.Fatalf("expected fully migrated, got current=%d available=%d",
			status.CurrentVersion, status.AvailableVersion)
	}
	if len(status.Pending) != 0 {
		t.Fatalf("expected no pending migrations, got %+v", status.Pending)
	}

	for _, table := range []string{"items", "item_labels", "contributors", "milestones", "boards", "board_columns", "board_cards", "api_tokens", "label_defs"} {
		var count int
		err := st.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("check table %s: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	firstStatus, err := st.Plan()
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	st.Close()

	st, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer st.Close()

	secondStatus, err := st.Plan()
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if secondStatus.CurrentVersion != firstStatus.CurrentVersion {
		t.Fatalf("expected stable version, got %d then %d",
			firstStatus.CurrentVersion, secondStatus.CurrentVersion)
	}

	var applied int
	if err := st.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != len(migrations) {
		t.Fatalf("expected %d applied migrations, got %d", len(migrations), applied)
	}
}

func TestMigrationVersionsAreOrderedAndUnique(t *testing.T) {
	seen := map[int]bool{}
	for _, m := range migrations {
		if m.Version <= 0 {
			t.Fatalf("migration %q has invalid version %d", m.Description, m.Version)
		}
		if seen[m.Version] {
			t.Fatalf("duplicate migration version %d", m.Version)
		}
		seen[m.Version] = true
	}
}
