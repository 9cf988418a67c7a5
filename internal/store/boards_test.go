package store

import (
	"context"
	"testing"
	"time"
)

var sprintColumns = []string{"Backlog", "To Do", "In Progress", "Review", "Done"}

func TestCreateBoardWithColumns(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	board, err := st.CreateBoard(ctx, "Sprint: Week 3", sprintColumns, now)
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if board.ID == "" {
		t.Fatal("expected board id")
	}

	got, err := st.GetBoardByName(ctx, "Sprint: Week 3")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got == nil {
		t.Fatal("expected board")
	}
	if len(got.Columns) != 5 || got.Columns[0] != "Backlog" || got.Columns[4] != "Done" {
		t.Fatalf("expected ordered columns, got %v", got.Columns)
	}

	if _, err := st.CreateBoard(ctx, "Sprint: Week 3", sprintColumns, now); err == nil {
		t.Fatal("expected duplicate board name to fail")
	}
}

func TestBoardCards(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	seedItems(t, st)

	board, err := st.CreateBoard(ctx, "Sprint: Week 1", sprintColumns, now)
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	if err := st.AddCard(ctx, board.ID, "Backlog", "cw-a001", now); err != nil {
		t.Fatalf("add card: %v", err)
	}
	if err := st.AddCard(ctx, board.ID, "Backlog", "cw-a002", now.Add(time.Second)); err != nil {
		t.Fatalf("add card: %v", err)
	}
	// Re-adding keeps the existing placement.
	if err := st.AddCard(ctx, board.ID, "Done", "cw-a001", now); err != nil {
		t.Fatalf("re-add card: %v", err)
	}

	cards, err := st.ListCards(ctx, board.ID)
	if err != nil {
		t.Fatalf("list cards: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].ItemID != "cw-a001" || cards[0].Column != "Backlog" {
		t.Fatalf("unexpected first card %+v", cards[0])
	}

	moved, err := st.MoveCard(ctx, board.ID, "cw-a001", "In Progress")
	if err != nil {
		t.Fatalf("move card: %v", err)
	}
	if !moved {
		t.Fatal("expected card moved")
	}
	cards, _ = st.ListCards(ctx, board.ID)
	// Backlog position sorts before In Progress.
	if cards[0].ItemID != "cw-a002" || cards[1].Column != "In Progress" {
		t.Fatalf("unexpected cards after move %+v", cards)
	}

	if err := st.AddCard(ctx, board.ID, "Nowhere", "cw-a003", now); err == nil {
		t.Fatal("expected unknown column to fail")
	}
	moved, err = st.MoveCard(ctx, board.ID, "cw-zzzz", "Done")
	if err != nil {
		t.Fatalf("move missing card: %v", err)
	}
	if moved {
		t.Fatal("expected missing card to report false")
	}
}

func TestListBoards(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := st.CreateBoard(ctx, "Sprint: Week 2", sprintColumns, now); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.CreateBoard(ctx, "Sprint: Week 1", sprintColumns, now); err != nil {
		t.Fatalf("create: %v", err)
	}

	boards, err := st.ListBoards(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}
	if boards[0].Name != "Sprint: Week 1" {
		t.Fatalf("expected sorted boards, got %+v", boards)
	}

	if len(boards[0].Columns) != 5 {
		t.Fatalf("expected columns loaded, got %v", boards[0].Columns)
	}
}
