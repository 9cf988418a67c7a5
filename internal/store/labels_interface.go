package store

import (
	"context"
	"time"

	"courseops/internal/tracker"
)

// LabelDefStore is an optional capability for stores that keep label
// definitions (name, color, description) alongside item labels.
type LabelDefStore interface {
	EnsureLabelDefs(ctx context.Context, defs []tracker.LabelDef, now time.Time) error
	ListLabelDefs(ctx context.Context) ([]tracker.LabelDef, error)
}

var _ LabelDefStore = (*Store)(nil)
