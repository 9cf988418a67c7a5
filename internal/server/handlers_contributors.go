package server

import (
	"fmt"
	"net/http"
	"time"

	"courseops/internal/api"
	"courseops/internal/auth"
	"courseops/internal/tracker"
)

func (s *Server) handleListContributors(w http.ResponseWriter, r *http.Request) {
	contributors, err := s.store.ListContributors(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, contributors)
}

func (s *Server) handleCreateContributor(w http.ResponseWriter, r *http.Request) {
	var req api.ContributorCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	id, err := auth.NormalizeContributorID(req.ID)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}

	contributor := tracker.Contributor{ID: id, Name: req.Name}
	if err := s.store.CreateContributor(r.Context(), contributor, time.Now().UTC()); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	// Registration is idempotent; return the stored row so repeat
	// calls see the original name.
	stored, err := s.store.GetContributor(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if stored == nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, internalError(fmt.Errorf("contributor %s not stored", id)))
		return
	}

	s.writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleDeleteContributor(w http.ResponseWriter, r *http.Request) {
	id, err := auth.NormalizeContributorID(r.PathValue("id"))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequest(err))
		return
	}

	ok, err := s.store.DeleteContributor(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !ok {
		s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(fmt.Errorf("contributor not found"), ErrCodeContributorNotFound))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
