package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"courseops/internal/auth"
)

// withAuth enforces bearer auth on API routes. Auth is required once an
// env token or at least one stored active token exists; a bare local
// server stays open. Admin routes always require the admin env token.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/v1/admin/") {
			if s.adminToken == "" {
				s.writeErrorReq(w, r, http.StatusForbidden, forbidden(fmt.Errorf("admin token is not configured")))
				return
			}
			if r.Header.Get("X-Admin-Token") != s.adminToken {
				s.writeErrorReq(w, r, http.StatusForbidden, forbidden(fmt.Errorf("admin token required")))
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		required, err := s.authRequired(r.Context())
		if err != nil {
			s.writeStoreError(w, r, err)
			return
		}
		if !required {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("missing bearer token")))
			return
		}
		ok, err := s.verifyToken(r.Context(), token)
		if err != nil {
			s.writeStoreError(w, r, err)
			return
		}
		if !ok {
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("invalid token")))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authRequired(ctx context.Context) (bool, error) {
	if s.apiToken != "" {
		return true, nil
	}
	if s.tokens == nil {
		return false, nil
	}
	count, err := s.tokens.CountActiveAPITokens(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// verifyToken accepts the configured env token or a stored token of the
// form co_<id>_<secret>. The embedded id locates the row, so each
// request costs a single bcrypt compare.
func (s *Server) verifyToken(ctx context.Context, token string) (bool, error) {
	if s.apiToken != "" && token == s.apiToken {
		return true, nil
	}
	if s.tokens == nil {
		return false, nil
	}

	id, secret, err := auth.Split(token)
	if err != nil {
		return false, nil
	}
	stored, err := s.tokens.GetAPIToken(ctx, id)
	if err != nil {
		return false, err
	}
	if stored == nil || !stored.Active() {
		return false, nil
	}
	return auth.VerifySecret(stored.SecretHash, secret), nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
