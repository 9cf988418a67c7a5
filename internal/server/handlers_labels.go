package server

import (
	"fmt"
	"net/http"
	"time"

	"courseops/internal/api"
	"courseops/internal/tracker"
)

// handleListLabels returns the distinct labels in use, or the stored
// label definitions when defs=true.
func (s *Server) handleListLabels(w http.ResponseWriter, r *http.Request) {
	wantDefs, err := queryBool(r, "defs")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	if wantDefs {
		if s.labelDefs == nil {
			s.writeServiceError(w, r, notImplemented(fmt.Errorf("label definitions are not supported by this store")))
			return
		}
		defs, err := s.labelDefs.ListLabelDefs(r.Context())
		if err != nil {
			s.writeStoreError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, defs)
		return
	}

	labels, err := s.store.ListUsedLabels(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, labels)
}

func (s *Server) handleEnsureLabels(w http.ResponseWriter, r *http.Request) {
	if s.labelDefs == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("label definitions are not supported by this store")))
		return
	}

	var req api.LabelEnsureRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if len(req.Labels) == 0 {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("labels are required"), ErrCodeMissingRequired))
		return
	}

	defs := make([]tracker.LabelDef, 0, len(req.Labels))
	for _, def := range req.Labels {
		name, err := normalizeLabel(def.Name)
		if err != nil {
			s.writeErrorReq(w, r, http.StatusBadRequest, err)
			return
		}
		def.Name = name
		defs = append(defs, def)
	}

	if err := s.labelDefs.EnsureLabelDefs(r.Context(), defs, time.Now().UTC()); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	stored, err := s.labelDefs.ListLabelDefs(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stored)
}
