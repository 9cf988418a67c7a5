package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// APIToken is one stored bearer credential. Only the bcrypt hash of
// the secret is kept.
type APIToken struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	SecretHash string     `json:"-"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Active reports whether the token can still authenticate.
func (t APIToken) Active() bool {
	return t.RevokedAt == nil
}

// CreateAPIToken stores a named token hash.
func (s *Store) CreateAPIToken(ctx context.Context, id, name, secretHash string, now time.Time) (*APIToken, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return nil, fmt.Errorf("token id is required")
	}
	if name == "" {
		return nil, fmt.Errorf("token name is required")
	}
	if strings.TrimSpace(secretHash) == "" {
		return nil, fmt.Errorf("secret hash is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO api_tokens (id, name, secret_hash, revoked_at, created_at)
		VALUES (?, ?, ?, NULL, ?)
	`, id, name, secretHash, formatTime(now))
	if err != nil {
		return nil, err
	}

	return &APIToken{ID: id, Name: name, SecretHash: secretHash, CreatedAt: now.UTC()}, nil
}

// GetAPIToken returns a token by id, or nil when absent.
func (s *Store) GetAPIToken(ctx context.Context, id string) (*APIToken, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, secret_hash, revoked_at, created_at
		FROM api_tokens WHERE id = ?
	`, id)
	return scanAPIToken(row)
}

// ListAPITokens returns all tokens sorted by name.
func (s *Store) ListAPITokens(ctx context.Context) ([]APIToken, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, secret_hash, revoked_at, created_at
		FROM api_tokens ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []APIToken{}
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, *token)
	}
	return tokens, rows.Err()
}

// CountActiveAPITokens returns the number of tokens that can authenticate.
func (s *Store) CountActiveAPITokens(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM api_tokens WHERE revoked_at IS NULL").Scan(&count)
	return count, err
}

// RevokeAPIToken marks a token revoked by name. It reports whether an
// active token was revoked.
func (s *Store) RevokeAPIToken(ctx context.Context, name string, now time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE api_tokens SET revoked_at = ?
		WHERE name = ? AND revoked_at IS NULL
	`, formatTime(now), strings.TrimSpace(name))
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanAPIToken(scanner interface {
	Scan(dest ...any) error
}) (*APIToken, error) {
	var token APIToken
	var revokedAt sql.NullString
	var createdAt string
	if err := scanner.Scan(&token.ID, &token.Name, &token.SecretHash, &revokedAt, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if revokedAt.Valid {
		revoked, err := parseTime(revokedAt.String)
		if err != nil {
			return nil, err
		}
		token.RevokedAt = &revoked
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	token.CreatedAt = created
	return &token, nil
}
