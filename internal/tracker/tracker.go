package tracker

import "context"

// Tracker is the capability set this tool requires from an issue tracker.
// Implementations must treat ListItems+CreateItem as the only uniqueness
// discipline: callers query before creating and the tracker remains the
// source of truth.
type Tracker interface {
	ListItems(ctx context.Context, filter ItemFilter) ([]Item, error)
	CreateItem(ctx context.Context, draft Draft) (Item, error)
	AssignItem(ctx context.Context, itemID, contributorID string) error
	ListContributors(ctx context.Context) ([]Contributor, error)
}

// MilestoneStore is an optional backend capability for milestone upkeep.
type MilestoneStore interface {
	EnsureMilestone(ctx context.Context, milestone Milestone) (Milestone, error)
	ListMilestones(ctx context.Context) ([]Milestone, error)
}

// LabelStore is an optional backend capability for label bootstrap.
type LabelStore interface {
	EnsureLabels(ctx context.Context, defs []LabelDef) error
	ListLabelDefs(ctx context.Context) ([]LabelDef, error)
}

// BoardStore is an optional backend capability for sprint boards.
type BoardStore interface {
	ListBoards(ctx context.Context) ([]Board, error)
	CreateBoard(ctx context.Context, name string, columns []string) (Board, error)
	ListCards(ctx context.Context, boardID string) ([]BoardCard, error)
	AddCard(ctx context.Context, boardID, column, itemID string) error
}
