// Package board maintains weekly sprint boards: one board per course
// week, created on demand and filled with that week's open tasks.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"courseops/internal/course"
	"courseops/internal/retry"
	"courseops/internal/tracker"
)

// ErrUnsupported reports a tracker backend without board support.
var ErrUnsupported = errors.New("tracker does not support sprint boards")

// Columns of a fresh sprint board, in display order. The first column
// receives new cards.
var sprintColumns = []string{"Backlog", "To Do", "In Progress", "Review", "Done"}

// Name returns the board name for a course week.
func Name(week int) string {
	return fmt.Sprintf("Sprint: Week %d", week)
}

// Failure records one item that could not be added to the board.
type Failure struct {
	ItemID string
	Err    error
}

// Result summarizes one EnsureWeek run.
type Result struct {
	Board   tracker.Board
	Created bool
	Added   []string
	Skipped []string
	Failed  []Failure
}

// Manager keeps sprint boards in step with the tracker's items.
type Manager struct {
	tracker tracker.Tracker
	boards  tracker.BoardStore
	policy  retry.Policy
	log     *slog.Logger
}

// New returns a Manager for the tracker, or ErrUnsupported when the
// backend has no board capability.
func New(t tracker.Tracker, policy retry.Policy, logger *slog.Logger) (*Manager, error) {
	boards, ok := t.(tracker.BoardStore)
	if !ok {
		return nil, ErrUnsupported
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{tracker: t, boards: boards, policy: policy, log: logger}, nil
}

// Boards lists every board known to the tracker.
func (m *Manager) Boards(ctx context.Context) ([]tracker.Board, error) {
	var boards []tracker.Board
	err := m.policy.Do(ctx, "list boards", func() error {
		var listErr error
		boards, listErr = m.boards.ListBoards(ctx)
		return listErr
	})
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// EnsureWeek creates the week's sprint board if it is missing and adds
// the week's open items to its first column. Items already on the
// board keep whatever column they are in. Reruns are safe: the board
// is looked up by name before anything is created.
func (m *Manager) EnsureWeek(ctx context.Context, week int) (Result, error) {
	if week < 1 {
		return Result{}, &course.InvalidWeekError{Week: week}
	}

	var result Result
	board, created, err := m.ensureBoard(ctx, Name(week))
	if err != nil {
		return result, err
	}
	result.Board = board
	result.Created = created
	if created {
		m.log.Info("created sprint board", "board", board.Name, "id", board.ID)
	} else {
		m.log.Info("reusing sprint board", "board", board.Name, "id", board.ID)
	}

	var items []tracker.Item
	err = m.policy.Do(ctx, "list items", func() error {
		var listErr error
		items, listErr = m.tracker.ListItems(ctx, tracker.ItemFilter{
			State:  tracker.FilterOpen,
			Labels: []string{course.WeekLabel(week)},
		})
		return listErr
	})
	if err != nil {
		return result, err
	}

	var cards []tracker.BoardCard
	err = m.policy.Do(ctx, "list cards", func() error {
		var listErr error
		cards, listErr = m.boards.ListCards(ctx, board.ID)
		return listErr
	})
	if err != nil {
		return result, err
	}
	onBoard := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		onBoard[card.ItemID] = struct{}{}
	}

	for _, item := range items {
		if _, ok := onBoard[item.ID]; ok {
			result.Skipped = append(result.Skipped, item.ID)
			continue
		}
		err := m.policy.Do(ctx, "add card", func() error {
			return m.boards.AddCard(ctx, board.ID, sprintColumns[0], item.ID)
		})
		if err != nil {
			m.log.Error("failed to add card", "board", board.Name, "item", item.ID, "error", err)
			result.Failed = append(result.Failed, Failure{ItemID: item.ID, Err: err})
			continue
		}
		m.log.Info("added card", "board", board.Name, "item", item.ID, "column", sprintColumns[0])
		result.Added = append(result.Added, item.ID)
	}
	return result, nil
}

// ensureBoard finds a board by name or creates it. Matching is
// case-insensitive so reruns do not duplicate boards.
func (m *Manager) ensureBoard(ctx context.Context, name string) (tracker.Board, bool, error) {
	var boards []tracker.Board
	err := m.policy.Do(ctx, "list boards", func() error {
		var listErr error
		boards, listErr = m.boards.ListBoards(ctx)
		return listErr
	})
	if err != nil {
		return tracker.Board{}, false, err
	}
	for _, b := range boards {
		if strings.EqualFold(b.Name, name) {
			return b, false, nil
		}
	}

	var board tracker.Board
	err = m.policy.Do(ctx, "create board", func() error {
		var createErr error
		board, createErr = m.boards.CreateBoard(ctx, name, sprintColumns)
		return createErr
	})
	if err != nil {
		return tracker.Board{}, false, err
	}
	return board, true, nil
}
