package store

import (
	"context"
	"time"

	"courseops/internal/tracker"
)

// ItemStore abstracts item and contributor storage backends.
type ItemStore interface {
	ItemExists(id string) (bool, error)
	CreateItem(ctx context.Context, item *tracker.Item, labels []string) error
	GetItem(ctx context.Context, id string) (*tracker.Item, error)
	UpdateItem(ctx context.Context, id string, update ItemUpdate) error
	ListItems(ctx context.Context, filter ListFilter) ([]tracker.Item, error)
	SetAssignee(ctx context.Context, id, assignee string, now time.Time) (bool, error)
	CloseItems(ctx context.Context, ids []string, closedAt time.Time) error
	ReopenItems(ctx context.Context, ids []string, reopenedAt time.Time) error
	AddLabels(ctx context.Context, id string, labels []string) error
	RemoveLabels(ctx context.Context, id string, labels []string) error
	ListLabels(ctx context.Context, id string) ([]string, error)
	ListLabelsForItems(ctx context.Context, ids []string) (map[string][]string, error)
	ListUsedLabels(ctx context.Context) ([]string, error)
	StoreInfo(ctx context.Context) (*Info, error)
	CreateContributor(ctx context.Context, c tracker.Contributor, now time.Time) error
	GetContributor(ctx context.Context, id string) (*tracker.Contributor, error)
	ListContributors(ctx context.Context) ([]tracker.Contributor, error)
	DeleteContributor(ctx context.Context, id string) (bool, error)
}

var _ ItemStore = (*Store)(nil)
