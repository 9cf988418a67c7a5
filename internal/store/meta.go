package store

import "context"

// Info summarizes store contents for the info endpoint.
type Info struct {
	SchemaVersion int
	TotalItems    int
	ItemCounts    map[string]int
	Contributors  int
}

// StoreInfo returns schema and count information about the store.
func (s *Store) StoreInfo(ctx context.Context) (*Info, error) {
	version, err := currentVersion(s.db)
	if err != nil {
		return nil, err
	}

	info := &Info{
		SchemaVersion: version,
		ItemCounts:    map[string]int{},
	}

	rows, err := s.db.QueryContext(ctx, "SELECT state, COUNT(*) FROM items GROUP BY state")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		info.ItemCounts[state] = count
		info.TotalItems += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contributors").Scan(&info.Contributors); err != nil {
		return nil, err
	}

	return info, nil
}
