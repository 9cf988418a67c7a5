package store

import (
	"context"
	"time"

	"courseops/internal/tracker"
)

// BoardStore is the optional sprint board capability.
type BoardStore interface {
	CreateBoard(ctx context.Context, name string, columns []string, now time.Time) (*tracker.Board, error)
	GetBoard(ctx context.Context, id string) (*tracker.Board, error)
	GetBoardByName(ctx context.Context, name string) (*tracker.Board, error)
	ListBoards(ctx context.Context) ([]tracker.Board, error)
	AddCard(ctx context.Context, boardID, column, itemID string, now time.Time) error
	MoveCard(ctx context.Context, boardID, itemID, column string) (bool, error)
	ListCards(ctx context.Context, boardID string) ([]tracker.BoardCard, error)
}

var _ BoardStore = (*Store)(nil)
