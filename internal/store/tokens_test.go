package store

import (
	"context"
	"testing"
	"time"
)

func TestAPITokenLifecycle(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	created, err := st.CreateAPIToken(ctx, "ab12cd34", "weekly-run", "$2a$10$fakehash", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.Active() {
		t.Fatal("expected new token active")
	}

	got, err := st.GetAPIToken(ctx, "ab12cd34")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != "weekly-run" || got.SecretHash != "$2a$10$fakehash" {
		t.Fatalf("unexpected token %+v", got)
	}

	if _, err := st.CreateAPIToken(ctx, "ef56ab78", "weekly-run", "$2a$10$other", now); err == nil {
		t.Fatal("expected duplicate name to fail")
	}

	revoked, err := st.RevokeAPIToken(ctx, "weekly-run", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if !revoked {
		t.Fatal("expected token revoked")
	}
	got, _ = st.GetAPIToken(ctx, "ab12cd34")
	if got.Active() {
		t.Fatal("expected token inactive after revoke")
	}

	revoked, err = st.RevokeAPIToken(ctx, "weekly-run", now)
	if err != nil {
		t.Fatalf("revoke again: %v", err)
	}
	if revoked {
		t.Fatal("expected second revoke to report false")
	}
}

func TestListAPITokens(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := st.CreateAPIToken(ctx, "id1", "beta", "hash1", now); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.CreateAPIToken(ctx, "id2", "alpha", "hash2", now); err != nil {
		t.Fatalf("create: %v", err)
	}

	tokens, err := st.ListAPITokens(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Name != "alpha" {
		t.Fatalf("expected sorted by name, got %+v", tokens)
	}
}

func TestGetMissingAPIToken(t *testing.T) {
	st := testStore(t)
	got, err := st.GetAPIToken(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
