package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"courseops/internal/course"
	"courseops/internal/retry"
	"courseops/internal/tracker"
)

type fakeBoardTracker struct {
	items         []tracker.Item
	boards        []tracker.Board
	cards         map[string][]tracker.BoardCard
	addErr        map[string]error
	createCalls   int
	listBoardsErr error
}

func (f *fakeBoardTracker) ListItems(ctx context.Context, filter tracker.ItemFilter) ([]tracker.Item, error) {
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

func (f *fakeBoardTracker) CreateItem(ctx context.Context, draft tracker.Draft) (tracker.Item, error) {
	return tracker.Item{}, errors.New("not used")
}

func (f *fakeBoardTracker) AssignItem(ctx context.Context, itemID, contributorID string) error {
	return errors.New("not used")
}

func (f *fakeBoardTracker) ListContributors(ctx context.Context) ([]tracker.Contributor, error) {
	return nil, nil
}

func (f *fakeBoardTracker) ListBoards(ctx context.Context) ([]tracker.Board, error) {
	if f.listBoardsErr != nil {
		return nil, f.listBoardsErr
	}
	return f.boards, nil
}

func (f *fakeBoardTracker) CreateBoard(ctx context.Context, name string, columns []string) (tracker.Board, error) {
	f.createCalls++
	board := tracker.Board{
		ID:      fmt.Sprintf("bd-%04d", len(f.boards)+1),
		Name:    name,
		Columns: columns,
	}
	f.boards = append(f.boards, board)
	return board, nil
}

func (f *fakeBoardTracker) ListCards(ctx context.Context, boardID string) ([]tracker.BoardCard, error) {
	return f.cards[boardID], nil
}

func (f *fakeBoardTracker) AddCard(ctx context.Context, boardID, column, itemID string) error {
	if err := f.addErr[itemID]; err != nil {
		return err
	}
	if f.cards == nil {
		f.cards = map[string][]tracker.BoardCard{}
	}
	f.cards[boardID] = append(f.cards[boardID], tracker.BoardCard{ItemID: itemID, Column: column})
	return nil
}

type cardlessTracker struct{}

func (cardlessTracker) ListItems(ctx context.Context, filter tracker.ItemFilter) ([]tracker.Item, error) {
	return nil, nil
}

func (cardlessTracker) CreateItem(ctx context.Context, draft tracker.Draft) (tracker.Item, error) {
	return tracker.Item{}, nil
}

func (cardlessTracker) AssignItem(ctx context.Context, itemID, contributorID string) error {
	return nil
}

func (cardlessTracker) ListContributors(ctx context.Context) ([]tracker.Contributor, error) {
	return nil, nil
}

func fastPolicy() retry.Policy {
	p := retry.Default()
	p.Sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return p
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRejectsCardlessTracker(t *testing.T) {
	if _, err := New(cardlessTracker{}, fastPolicy(), quietLogger()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestEnsureWeekCreatesBoard(t *testing.T) {
	ft := &fakeBoardTracker{items: []tracker.Item{
		{ID: "cw-0001", Title: "Create Week 2 Lecture Materials", State: tracker.StateOpen, Labels: []string{"lecture", "week-2"}},
		{ID: "cw-0002", Title: "Design Week 2 Workshop Exercises", State: tracker.StateOpen, Labels: []string{"workshop", "week-2"}},
		{ID: "cw-0003", Title: "Create Week 2 Assignment", State: tracker.StateClosed, Labels: []string{"assignment", "week-2"}},
		{ID: "cw-0004", Title: "Create Week 3 Lecture Materials", State: tracker.StateOpen, Labels: []string{"lecture", "week-3"}},
	}}
	m, err := New(ft, fastPolicy(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := m.EnsureWeek(context.Background(), 2)
	if err != nil {
		t.Fatalf("EnsureWeek failed: %v", err)
	}
	if !result.Created {
		t.Error("expected a new board")
	}
	if result.Board.Name != "Sprint: Week 2" {
		t.Errorf("unexpected board name %q", result.Board.Name)
	}
	if len(result.Board.Columns) != 5 || result.Board.Columns[0] != "Backlog" || result.Board.Columns[4] != "Done" {
		t.Errorf("unexpected columns %v", result.Board.Columns)
	}
	if len(result.Added) != 2 {
		t.Fatalf("expected 2 cards added, got %d", len(result.Added))
	}
	for _, card := range ft.cards[result.Board.ID] {
		if card.Column != "Backlog" {
			t.Errorf("expected cards in Backlog, got %q", card.Column)
		}
	}
}

func TestEnsureWeekReusesBoardByName(t *testing.T) {
	ft := &fakeBoardTracker{
		boards: []tracker.Board{{ID: "bd-0001", Name: "sprint: week 2", Columns: sprintColumns}},
		cards: map[string][]tracker.BoardCard{
			"bd-0001": {{ItemID: "cw-0001", Column: "In Progress"}},
		},
		items: []tracker.Item{
			{ID: "cw-0001", Title: "Create Week 2 Lecture Materials", State: tracker.StateOpen, Labels: []string{"week-2"}},
			{ID: "cw-0002", Title: "Design Week 2 Workshop Exercises", State: tracker.StateOpen, Labels: []string{"week-2"}},
		},
	}
	m, err := New(ft, fastPolicy(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := m.EnsureWeek(context.Background(), 2)
	if err != nil {
		t.Fatalf("EnsureWeek failed: %v", err)
	}
	if result.Created || ft.createCalls != 0 {
		t.Errorf("expected board reuse, created=%v calls=%d", result.Created, ft.createCalls)
	}
	if len(result.Added) != 1 || result.Added[0] != "cw-0002" {
		t.Errorf("expected only cw-0002 added, got %v", result.Added)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "cw-0001" {
		t.Errorf("expected cw-0001 skipped, got %v", result.Skipped)
	}
	if got := ft.cards["bd-0001"]; len(got) != 2 {
		t.Errorf("expected 2 cards on the board, got %d", len(got))
	}
}

func TestEnsureWeekRerunAddsNothing(t *testing.T) {
	ft := &fakeBoardTracker{items: []tracker.Item{
		{ID: "cw-0001", Title: "Create Week 1 Lecture Materials", State: tracker.StateOpen, Labels: []string{"week-1"}},
	}}
	m, err := New(ft, fastPolicy(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	first, err := m.EnsureWeek(ctx, 1)
	if err != nil {
		t.Fatalf("first EnsureWeek failed: %v", err)
	}
	if !first.Created || len(first.Added) != 1 {
		t.Fatalf("expected created board with 1 card, got created=%v added=%d", first.Created, len(first.Added))
	}

	second, err := m.EnsureWeek(ctx, 1)
	if err != nil {
		t.Fatalf("second EnsureWeek failed: %v", err)
	}
	if second.Created || len(second.Added) != 0 || len(second.Skipped) != 1 {
		t.Errorf("expected idempotent rerun, got created=%v added=%d skipped=%d",
			second.Created, len(second.Added), len(second.Skipped))
	}
	if len(ft.boards) != 1 {
		t.Errorf("expected 1 board, got %d", len(ft.boards))
	}
}

func TestEnsureWeekCollectsCardFailures(t *testing.T) {
	ft := &fakeBoardTracker{
		items: []tracker.Item{
			{ID: "cw-0001", State: tracker.StateOpen, Labels: []string{"week-4"}},
			{ID: "cw-0002", State: tracker.StateOpen, Labels: []string{"week-4"}},
		},
		addErr: map[string]error{
			"cw-0001": &tracker.StatusError{Status: 422, Message: "validation failed"},
		},
	}
	m, err := New(ft, fastPolicy(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := m.EnsureWeek(context.Background(), 4)
	if err != nil {
		t.Fatalf("EnsureWeek failed: %v", err)
	}
	if len(result.Failed) != 1 || result.Failed[0].ItemID != "cw-0001" {
		t.Fatalf("expected cw-0001 failure, got %v", result.Failed)
	}
	if len(result.Added) != 1 || result.Added[0] != "cw-0002" {
		t.Errorf("expected cw-0002 added, got %v", result.Added)
	}
}

func TestEnsureWeekInvalidWeek(t *testing.T) {
	m, err := New(&fakeBoardTracker{}, fastPolicy(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = m.EnsureWeek(context.Background(), 0)
	var invalid *course.InvalidWeekError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidWeekError, got %v", err)
	}
}

func TestEnsureWeekBoardListFailureIsFatal(t *testing.T) {
	ft := &fakeBoardTracker{listBoardsErr: &tracker.StatusError{Status: 503, Message: "down"}}
	m, err := New(ft, fastPolicy(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = m.EnsureWeek(context.Background(), 1)
	var unavailable *tracker.UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
}

func TestBoardsList(t *testing.T) {
	ft := &fakeBoardTracker{boards: []tracker.Board{
		{ID: "bd-0001", Name: "Sprint: Week 1"},
		{ID: "bd-0002", Name: "Sprint: Week 2"},
	}}
	m, err := New(ft, fastPolicy(), quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	boards, err := m.Boards(context.Background())
	if err != nil {
		t.Fatalf("Boards failed: %v", err)
	}
	if len(boards) != 2 || boards[1].Name != "Sprint: Week 2" {
		t.Fatalf("unexpected boards: %v", boards)
	}
}
