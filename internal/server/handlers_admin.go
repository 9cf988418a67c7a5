package server

import (
	"fmt"
	"net/http"
	"time"

	"courseops/internal/api"
	"courseops/internal/auth"
)

func (s *Server) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	if s.tokens == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("api tokens are not supported by this store")))
		return
	}

	var req api.TokenCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	name, err := auth.NormalizeTokenName(req.Name)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}

	token, err := auth.NewToken()
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, internalError(err))
		return
	}
	hash, err := auth.HashSecret(token.Secret)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, internalError(err))
		return
	}

	stored, err := s.tokens.CreateAPIToken(r.Context(), token.ID, name, hash, time.Now().UTC())
	if err != nil {
		if isUniqueConstraint(err) {
			s.writeErrorReq(w, r, http.StatusConflict, conflict(fmt.Errorf("token %q already exists", name)))
			return
		}
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, api.TokenCreateResponse{
		Name:      stored.Name,
		Token:     token.Raw(),
		CreatedAt: stored.CreatedAt,
	})
}

func (s *Server) handleListTokens(w http.ResponseWriter, r *http.Request) {
	if s.tokens == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("api tokens are not supported by this store")))
		return
	}

	stored, err := s.tokens.ListAPITokens(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	infos := make([]api.TokenInfo, 0, len(stored))
	for _, token := range stored {
		infos = append(infos, api.TokenInfo{
			Name:      token.Name,
			Active:    token.Active(),
			RevokedAt: token.RevokedAt,
			CreatedAt: token.CreatedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleRevokeToken(w http.ResponseWriter, r *http.Request) {
	if s.tokens == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("api tokens are not supported by this store")))
		return
	}

	name, err := auth.NormalizeTokenName(r.PathValue("name"))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}
	ok, err := s.tokens.RevokeAPIToken(r.Context(), name, time.Now().UTC())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !ok {
		s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(fmt.Errorf("no active token %q", name), ErrCodeTokenNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
