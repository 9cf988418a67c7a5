package store

import (
	"context"
	"time"
)

// TokenStore is the optional stored-credential capability.
type TokenStore interface {
	CreateAPIToken(ctx context.Context, id, name, secretHash string, now time.Time) (*APIToken, error)
	GetAPIToken(ctx context.Context, id string) (*APIToken, error)
	ListAPITokens(ctx context.Context) ([]APIToken, error)
	CountActiveAPITokens(ctx context.Context) (int, error)
	RevokeAPIToken(ctx context.Context, name string, now time.Time) (bool, error)
}

var _ TokenStore = (*Store)(nil)
