package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"courseops/internal/api"
	"courseops/internal/tracker"
)

func (s *Server) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	if s.milestones == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("milestones are not supported by this store")))
		return
	}

	milestones, err := s.milestones.ListMilestones(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, milestones)
}

func (s *Server) handleEnsureMilestone(w http.ResponseWriter, r *http.Request) {
	if s.milestones == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("milestones are not supported by this store")))
		return
	}

	var req api.MilestoneEnsureRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("title is required"), ErrCodeMissingRequired))
		return
	}

	milestone := tracker.Milestone{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		DueOn:       req.DueOn,
	}
	ensured, err := s.milestones.EnsureMilestone(r.Context(), milestone, time.Now().UTC())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ensured)
}
