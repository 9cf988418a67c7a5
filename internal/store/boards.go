package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"courseops/internal/tracker"
)

// CreateBoard inserts a board with its columns in declared order.
func (s *Store) CreateBoard(ctx context.Context, name string, columns []string, now time.Time) (*tracker.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("board name is required")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}

	id, err := GenerateBoardID(func(candidate string) (bool, error) {
		return s.boardIDExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO boards (id, name, created_at) VALUES (?, ?, ?)",
		id, name, formatTime(now))
	if err != nil {
		return nil, err
	}

	for i, column := range columns {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO board_columns (board_id, name, position) VALUES (?, ?, ?)",
			id, column, i)
		if err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &tracker.Board{ID: id, Name: name, Columns: columns, CreatedAt: now.UTC()}, nil
}

// GetBoardByName returns a board with its columns, or nil when absent.
func (s *Store) GetBoardByName(ctx context.Context, name string) (*tracker.Board, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM boards WHERE name = ?", name)
	return s.scanBoard(ctx, row)
}

// GetBoard returns a board by id with its columns, or nil when absent.
func (s *Store) GetBoard(ctx context.Context, id string) (*tracker.Board, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM boards WHERE id = ?", id)
	return s.scanBoard(ctx, row)
}

// ListBoards returns all boards with columns, sorted by name.
func (s *Store) ListBoards(ctx context.Context) ([]tracker.Board, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM boards ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []tracker.Board{}
	for rows.Next() {
		board, err := s.scanBoard(ctx, rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *board)
	}
	return boards, rows.Err()
}

// AddCard places an item on a board column. Re-adding an item that is
// already on the board is a no-op.
func (s *Store) AddCard(ctx context.Context, boardID, column, itemID string, now time.Time) error {
	ok, err := s.boardHasColumn(ctx, boardID, column)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("board %s has no column %q", boardID, column)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO board_cards (board_id, item_id, column_name, added_at)
		VALUES (?, ?, ?, ?)
	`, boardID, itemID, column, formatTime(now))
	return err
}

// MoveCard moves an existing card to another column. It reports
// whether the card existed.
func (s *Store) MoveCard(ctx context.Context, boardID, itemID, column string) (bool, error) {
	ok, err := s.boardHasColumn(ctx, boardID, column)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("board %s has no column %q", boardID, column)
	}
	result, err := s.db.ExecContext(ctx,
		"UPDATE board_cards SET column_name = ? WHERE board_id = ? AND item_id = ?",
		column, boardID, itemID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListCards returns a board's cards ordered by column position, then
// by when they were added.
func (s *Store) ListCards(ctx context.Context, boardID string) ([]tracker.BoardCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.item_id, c.column_name
		FROM board_cards c
		JOIN board_columns col ON col.board_id = c.board_id AND col.name = c.column_name
		WHERE c.board_id = ?
		ORDER BY col.position ASC, c.added_at ASC, c.item_id ASC
	`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []tracker.BoardCard{}
	for rows.Next() {
		var card tracker.BoardCard
		if err := rows.Scan(&card.ItemID, &card.Column); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (s *Store) boardIDExists(ctx context.Context, id string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM boards WHERE id = ? LIMIT 1", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) boardHasColumn(ctx context.Context, boardID, column string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM board_columns WHERE board_id = ? AND name = ? LIMIT 1",
		boardID, column).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) scanBoard(ctx context.Context, scanner interface {
	Scan(dest ...any) error
}) (*tracker.Board, error) {
	var board tracker.Board
	var createdAt string
	if err := scanner.Scan(&board.ID, &board.Name, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	board.CreatedAt = created

	columns, err := s.listColumns(ctx, board.ID)
	if err != nil {
		return nil, err
	}
	board.Columns = columns
	return &board, nil
}

func (s *Store) listColumns(ctx context.Context, boardID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM board_columns WHERE board_id = ? ORDER BY position ASC", boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}
