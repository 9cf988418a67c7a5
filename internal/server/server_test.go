package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"courseops/internal/api"
	"courseops/internal/auth"
	"courseops/internal/store"
	"courseops/internal/tracker"
)

func TestListenAddrRemoteGuard(t *testing.T) {
	t.Run("allows loopback", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		addr, err := ListenAddr("http://127.0.0.1:7180")
		if err != nil {
			t.Fatalf("expected loopback to be allowed, got error: %v", err)
		}
		if addr != "127.0.0.1:7180" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("blocks non-loopback by default", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		_, err := ListenAddr("http://0.0.0.0:7180")
		if err == nil {
			t.Fatal("expected error for non-loopback listen host")
		}
	})

	t.Run("allows non-loopback when explicitly enabled", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "true")
		addr, err := ListenAddr("http://0.0.0.0:7180")
		if err != nil {
			t.Fatalf("expected allow-remote to permit host, got error: %v", err)
		}
		if addr != "0.0.0.0:7180" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})
}

func TestWithAuth(t *testing.T) {
	t.Run("denies missing auth", func(t *testing.T) {
		srv := &Server{apiToken: "token"}
		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusNoContent)
		})
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/v1/items", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		if errResp.ErrorCode != ErrCodeUnauthorized {
			t.Fatalf("expected error_code %d, got %d", ErrCodeUnauthorized, errResp.ErrorCode)
		}
		if nextCalled {
			t.Fatal("next handler should not be called")
		}
	})

	t.Run("allows valid auth", func(t *testing.T) {
		srv := &Server{apiToken: "token"}
		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusNoContent)
		})
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/v1/items", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if !nextCalled {
			t.Fatal("next handler should be called")
		}
	})

	t.Run("open when nothing is configured", func(t *testing.T) {
		srv := &Server{}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/v1/items", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 for unconfigured server, got %d", w.Code)
		}
	})

	t.Run("admin routes require admin token when configured", func(t *testing.T) {
		srv := &Server{apiToken: "token", adminToken: "admintoken"}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/tokens", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		if errResp.ErrorCode != ErrCodeForbidden {
			t.Fatalf("expected error_code %d, got %d", ErrCodeForbidden, errResp.ErrorCode)
		}

		req = httptest.NewRequest(http.MethodPost, "/v1/admin/tokens", nil)
		req.Header.Set("Authorization", "Bearer token")
		req.Header.Set("X-Admin-Token", "admintoken")
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("admin token works without api token", func(t *testing.T) {
		srv := &Server{adminToken: "admintoken"}
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/tokens", nil)
		req.Header.Set("X-Admin-Token", "admintoken")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("stored token authenticates", func(t *testing.T) {
		srv := newTestServer(t)
		raw := mintTestToken(t, srv, "ci")

		req := httptest.NewRequest(http.MethodGet, "/v1/items", nil)
		w := httptest.NewRecorder()
		srv.routes().ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", w.Code)
		}

		req = httptest.NewRequest(http.MethodGet, "/v1/items", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w = httptest.NewRecorder()
		srv.routes().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 with stored token, got %d (%s)", w.Code, w.Body.String())
		}
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		srv := newTestServer(t)
		raw := mintTestToken(t, srv, "ci")
		mintTestToken(t, srv, "backup")

		if _, err := srv.tokens.RevokeAPIToken(context.Background(), "ci", time.Now().UTC()); err != nil {
			t.Fatalf("revoke token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/items", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		srv.routes().ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for revoked token, got %d", w.Code)
		}
	})
}

func TestHealthAndInfo(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", w.Code)
	}

	seedItem(t, srv, "cw-a001", "seed", nil)

	req = httptest.NewRequest(http.MethodGet, "/v1/info", nil)
	w = httptest.NewRecorder()
	srv.routes().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from info, got %d (%s)", w.Code, w.Body.String())
	}

	var info api.InfoResponse
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode info response: %v", err)
	}
	if info.ProjectPrefix != "cw" {
		t.Fatalf("expected prefix cw, got %q", info.ProjectPrefix)
	}
	if info.TotalItems != 1 {
		t.Fatalf("expected 1 item, got %d", info.TotalItems)
	}
	if info.SchemaVersion == 0 {
		t.Fatal("expected non-zero schema version")
	}
	if info.DBPath == "" {
		t.Fatal("expected db path in info response")
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv(apiTokenEnvKey, "")
	t.Setenv(adminTokenEnvKey, "")

	dbPath := filepath.Join(t.TempDir(), "courseops-test.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})

	return New("127.0.0.1:0", dbPath, st, "cw", nil)
}

func seedItem(t *testing.T, srv *Server, id, title string, labels []string) {
	t.Helper()
	now := time.Now().UTC()
	item := &tracker.Item{
		ID:        id,
		Title:     title,
		State:     tracker.StateOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := srv.store.CreateItem(context.Background(), item, labels); err != nil {
		t.Fatalf("seed item %s: %v", id, err)
	}
}

func seedContributor(t *testing.T, srv *Server, id, name string) {
	t.Helper()
	err := srv.store.CreateContributor(context.Background(), tracker.Contributor{ID: id, Name: name}, time.Now().UTC())
	if err != nil {
		t.Fatalf("seed contributor %s: %v", id, err)
	}
}

func mintTestToken(t *testing.T, srv *Server, name string) string {
	t.Helper()
	token, err := auth.NewToken()
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	hash, err := auth.HashSecret(token.Secret)
	if err != nil {
		t.Fatalf("hash token secret: %v", err)
	}
	if _, err := srv.tokens.CreateAPIToken(context.Background(), token.ID, name, hash, time.Now().UTC()); err != nil {
		t.Fatalf("store token %s: %v", name, err)
	}
	return token.Raw()
}
