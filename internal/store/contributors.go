package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"courseops/internal/tracker"
)

// CreateContributor registers a contributor. Existing rows win.
func (s *Store) CreateContributor(ctx context.Context, c tracker.Contributor, now time.Time) error {
	id := strings.TrimSpace(c.ID)
	if id == "" {
		return fmt.Errorf("contributor id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO contributors (id, name, created_at)
		VALUES (?, ?, ?)
	`, id, nullIfEmpty(c.Name), formatTime(now))
	return err
}

// GetContributor returns a contributor by id, or nil when absent.
func (s *Store) GetContributor(ctx context.Context, id string) (*tracker.Contributor, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name FROM contributors WHERE id = ?", id)
	var c tracker.Contributor
	var name sql.NullString
	if err := row.Scan(&c.ID, &name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.Name = name.String
	return &c, nil
}

// ListContributors returns all contributors sorted by id.
func (s *Store) ListContributors(ctx context.Context) ([]tracker.Contributor, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM contributors ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contributors := []tracker.Contributor{}
	for rows.Next() {
		var c tracker.Contributor
		var name sql.NullString
		if err := rows.Scan(&c.ID, &name); err != nil {
			return nil, err
		}
		c.Name = name.String
		contributors = append(contributors, c)
	}
	return contributors, rows.Err()
}

// DeleteContributor removes a contributor. It reports whether a row
// was deleted.
func (s *Store) DeleteContributor(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contributors WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
