package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"courseops/internal/tracker"
)

// EnsureMilestone creates a milestone if no milestone with the same
// title exists, and returns the stored row either way.
func (s *Store) EnsureMilestone(ctx context.Context, ms tracker.Milestone, now time.Time) (*tracker.Milestone, error) {
	title := strings.TrimSpace(ms.Title)
	if title == "" {
		return nil, fmt.Errorf("milestone title is required")
	}

	existing, err := s.GetMilestoneByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	id, err := GenerateMilestoneID(func(candidate string) (bool, error) {
		return s.milestoneIDExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO milestones (id, title, description, due_on, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, title, nullIfEmpty(ms.Description), nullTime(ms.DueOn), formatTime(now))
	if err != nil {
		return nil, err
	}

	ms.ID = id
	ms.Title = title
	return &ms, nil
}

// GetMilestoneByTitle returns a milestone by title, or nil when absent.
func (s *Store) GetMilestoneByTitle(ctx context.Context, title string) (*tracker.Milestone, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, due_on FROM milestones WHERE title = ?
	`, title)
	return scanMilestone(row)
}

// ListMilestones returns all milestones sorted by title.
func (s *Store) ListMilestones(ctx context.Context) ([]tracker.Milestone, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, due_on FROM milestones ORDER BY title ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	milestones := []tracker.Milestone{}
	for rows.Next() {
		ms, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, *ms)
	}
	return milestones, rows.Err()
}

func (s *Store) milestoneIDExists(ctx context.Context, id string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM milestones WHERE id = ? LIMIT 1", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanMilestone(scanner interface {
	Scan(dest ...any) error
}) (*tracker.Milestone, error) {
	var ms tracker.Milestone
	var description, dueOn sql.NullString
	if err := scanner.Scan(&ms.ID, &ms.Title, &description, &dueOn); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	ms.Description = description.String
	if dueOn.Valid {
		due, err := parseTime(dueOn.String)
		if err != nil {
			return nil, err
		}
		ms.DueOn = &due
	}
	return &ms, nil
}
