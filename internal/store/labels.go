package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"courseops/internal/tracker"
)

// EnsureLabelDefs inserts label definitions that do not exist yet.
// Existing rows win, so repeated bootstrap runs leave colors untouched.
func (s *Store) EnsureLabelDefs(ctx context.Context, defs []tracker.LabelDef, now time.Time) error {
	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return fmt.Errorf("label name is required")
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO label_defs (name, color, description, created_at)
			VALUES (?, ?, ?, ?)`,
			name, nullIfEmpty(def.Color), nullIfEmpty(def.Description), formatTime(now),
		)
		if err != nil {
			return fmt.Errorf("ensure label %s: %w", name, err)
		}
	}
	return nil
}

// ListLabelDefs returns all label definitions ordered by name.
func (s *Store) ListLabelDefs(ctx context.Context) ([]tracker.LabelDef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COALESCE(color, ''), COALESCE(description, '')
		FROM label_defs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defs := []tracker.LabelDef{}
	for rows.Next() {
		var def tracker.LabelDef
		if err := rows.Scan(&def.Name, &def.Color, &def.Description); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// ListUsedLabels returns the distinct labels attached to any item.
func (s *Store) ListUsedLabels(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT label FROM item_labels ORDER BY label")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}
