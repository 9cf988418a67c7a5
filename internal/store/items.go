package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"courseops/internal/tracker"
)

// ListFilter narrows item listings. Labels must all match; LabelsAny
// matches items carrying at least one.
type ListFilter struct {
	States     []string
	Labels     []string
	LabelsAny  []string
	Assignee   string
	Unassigned bool
	Milestone  string
	Limit      int
	Offset     int
}

// ItemUpdate describes fields to update.
type ItemUpdate struct {
	Title     *string
	Body      *string
	State     *string
	Assignee  *string
	Milestone *string
	ClosedAt  *time.Time
	UpdatedAt time.Time
}

// CreateItem inserts an item with optional labels.
func (s *Store) CreateItem(ctx context.Context, item *tracker.Item, labels []string) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO items (
			id, title, body, state, assignee, milestone, created_at, updated_at, closed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID,
		item.Title,
		nullIfEmpty(item.Body),
		string(item.State),
		nullIfEmpty(item.Assignee),
		nullIfEmpty(item.Milestone),
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
		nullTime(item.ClosedAt),
	)
	if err != nil {
		return err
	}

	if err = insertLabels(ctx, tx, item.ID, labels); err != nil {
		return err
	}

	return tx.Commit()
}

// GetItem returns an item by id, without labels.
func (s *Store) GetItem(ctx context.Context, id string) (*tracker.Item, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, body, state, assignee, milestone, created_at, updated_at, closed_at
		FROM items WHERE id = ?
	`, id)
	return scanItem(row)
}

// UpdateItem updates mutable fields on an item.
func (s *Store) UpdateItem(ctx context.Context, id string, update ItemUpdate) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}

	set := []string{}
	args := []any{}

	if update.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Body != nil {
		set = append(set, "body = ?")
		args = append(args, nullIfEmpty(*update.Body))
	}
	if update.State != nil {
		set = append(set, "state = ?")
		args = append(args, *update.State)
	}
	if update.Assignee != nil {
		set = append(set, "assignee = ?")
		args = append(args, nullIfEmpty(*update.Assignee))
	}
	if update.Milestone != nil {
		set = append(set, "milestone = ?")
		args = append(args, nullIfEmpty(*update.Milestone))
	}
	if update.ClosedAt != nil {
		set = append(set, "closed_at = ?")
		args = append(args, nullTime(update.ClosedAt))
	}

	set = append(set, "updated_at = ?")
	args = append(args, formatTime(update.UpdatedAt))

	args = append(args, id)
	query := fmt.Sprintf("UPDATE items SET %s WHERE id = ?", strings.Join(set, ", "))
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// ListItems returns items matching the filter, oldest first.
func (s *Store) ListItems(ctx context.Context, filter ListFilter) ([]tracker.Item, error) {
	query, args := buildListQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []tracker.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// SetAssignee sets or clears an item's assignee. It reports whether
// the item existed.
func (s *Store) SetAssignee(ctx context.Context, id, assignee string, now time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE items SET assignee = ?, updated_at = ? WHERE id = ?",
		nullIfEmpty(assignee), formatTime(now), id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CloseItems closes items and sets closed_at.
func (s *Store) CloseItems(ctx context.Context, ids []string, closedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	args := []any{formatTime(closedAt), formatTime(closedAt)}
	for _, id := range ids {
		args = append(args, id)
	}
	query := fmt.Sprintf("UPDATE items SET state = 'closed', closed_at = ?, updated_at = ? WHERE id IN (%s)", placeholders(len(ids)))
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// ReopenItems reopens items and clears closed_at.
func (s *Store) ReopenItems(ctx context.Context, ids []string, reopenedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	args := []any{formatTime(reopenedAt)}
	for _, id := range ids {
		args = append(args, id)
	}
	query := fmt.Sprintf("UPDATE items SET state = 'open', closed_at = NULL, updated_at = ? WHERE id IN (%s)", placeholders(len(ids)))
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// AddLabels adds labels to an item.
func (s *Store) AddLabels(ctx context.Context, id string, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO item_labels (item_id, label) VALUES "+labelValues(len(labels)), labelArgs(id, labels)...)
	return err
}

// RemoveLabels removes labels from an item.
func (s *Store) RemoveLabels(ctx context.Context, id string, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	args := []any{id}
	for _, label := range labels {
		args = append(args, label)
	}
	query := fmt.Sprintf("DELETE FROM item_labels WHERE item_id = ? AND label IN (%s)", placeholders(len(labels)))
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// ListLabels returns labels for an item.
func (s *Store) ListLabels(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT label FROM item_labels WHERE item_id = ? ORDER BY label ASC", id)
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

// ListLabelsForItems returns labels mapped by item id.
func (s *Store) ListLabelsForItems(ctx context.Context, ids []string) (map[string][]string, error) {
	labels := make(map[string][]string)
	if len(ids) == 0 {
		return labels, nil
	}

	query := fmt.Sprintf("SELECT item_id, label FROM item_labels WHERE item_id IN (%s)", placeholders(len(ids)))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, label string
		if err := rows.Scan(&itemID, &label); err != nil {
			return nil, err
		}
		labels[itemID] = append(labels[itemID], label)
	}

	for _, list := range labels {
		sort.Strings(list)
	}

	return labels, rows.Err()
}

func buildListQuery(filter ListFilter) (string, []any) {
	query := "SELECT id, title, body, state, assignee, milestone, created_at, updated_at, closed_at FROM items"
	where := []string{}
	args := []any{}

	if len(filter.States) > 0 {
		where = append(where, fmt.Sprintf("state IN (%s)", placeholders(len(filter.States))))
		for _, state := range filter.States {
			args = append(args, state)
		}
	}
	if filter.Assignee != "" {
		where = append(where, "assignee = ?")
		args = append(args, filter.Assignee)
	}
	if filter.Unassigned {
		where = append(where, "assignee IS NULL")
	}
	if filter.Milestone != "" {
		where = append(where, "milestone = ?")
		args = append(args, filter.Milestone)
	}
	if len(filter.Labels) > 0 {
		where = append(where, fmt.Sprintf("id IN (SELECT item_id FROM item_labels WHERE label IN (%s) GROUP BY item_id HAVING COUNT(DISTINCT label) = %d)", placeholders(len(filter.Labels)), len(filter.Labels)))
		for _, label := range filter.Labels {
			args = append(args, label)
		}
	}
	if len(filter.LabelsAny) > 0 {
		where = append(where, fmt.Sprintf("id IN (SELECT item_id FROM item_labels WHERE label IN (%s))", placeholders(len(filter.LabelsAny))))
		for _, label := range filter.LabelsAny {
			args = append(args, label)
		}
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	// Oldest first so assignment order is stable across runs.
	query += " ORDER BY created_at ASC, id ASC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	return query, args
}

func scanItem(scanner interface {
	Scan(dest ...any) error
}) (*tracker.Item, error) {
	var item tracker.Item
	var body, assignee, milestone sql.NullString
	var state, createdAt, updatedAt string
	var closedAt sql.NullString

	if err := scanner.Scan(
		&item.ID,
		&item.Title,
		&body,
		&state,
		&assignee,
		&milestone,
		&createdAt,
		&updatedAt,
		&closedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	item.Body = body.String
	item.State = tracker.ItemState(state)
	item.Assignee = assignee.String
	item.Milestone = milestone.String

	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = parsedCreated
	item.UpdatedAt = parsedUpdated
	if closedAt.Valid {
		parsedClosed, err := parseTime(closedAt.String)
		if err != nil {
			return nil, err
		}
		item.ClosedAt = &parsedClosed
	}

	return &item, nil
}

func labelValues(count int) string {
	values := make([]string, count)
	for i := 0; i < count; i++ {
		values[i] = "(?, ?)"
	}
	return strings.Join(values, ",")
}

func labelArgs(id string, labels []string) []any {
	args := make([]any, 0, len(labels)*2)
	for _, label := range labels {
		args = append(args, id, label)
	}
	return args
}

func insertLabels(ctx context.Context, tx *sql.Tx, id string, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO item_labels (item_id, label) VALUES "+labelValues(len(labels)), labelArgs(id, labels)...)
	return err
}
