package server

import (
	"net/http"

	"courseops/internal/api"
)

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req api.ItemCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	item, err := s.service.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	items, err := s.service.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	item, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var req api.ItemUpdateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	item, err := s.service.Update(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleSetAssignee(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	var req api.AssigneeRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	item, err := s.service.SetAssignee(r.Context(), id, req.Assignee)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCloseItems(w http.ResponseWriter, r *http.Request) {
	ids, ok := s.decodeIDsReq(w, r)
	if !ok {
		return
	}

	if err := s.service.Close(r.Context(), ids); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.ItemIDsResponse{IDs: ids})
}

func (s *Server) handleReopenItems(w http.ResponseWriter, r *http.Request) {
	ids, ok := s.decodeIDsReq(w, r)
	if !ok {
		return
	}

	if err := s.service.Reopen(r.Context(), ids); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.ItemIDsResponse{IDs: ids})
}
