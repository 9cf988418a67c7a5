package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"courseops/internal/api"
)

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	if s.boards == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("boards are not supported by this store")))
		return
	}
	boards, err := s.boards.ListBoards(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, boards)
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	if s.boards == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("boards are not supported by this store")))
		return
	}

	var req api.BoardCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("board name is required"), ErrCodeMissingRequired))
		return
	}
	columns := make([]string, 0, len(req.Columns))
	for _, column := range req.Columns {
		column = strings.TrimSpace(column)
		if column == "" {
			s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("column names must not be empty"), ErrCodeInvalidColumn))
			return
		}
		columns = append(columns, column)
	}
	if len(columns) == 0 {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("at least one column is required"), ErrCodeMissingRequired))
		return
	}

	board, err := s.boards.CreateBoard(r.Context(), name, columns, time.Now().UTC())
	if err != nil {
		if isUniqueConstraint(err) {
			s.writeErrorReq(w, r, http.StatusConflict, conflict(fmt.Errorf("board %q already exists", name)))
			return
		}
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, board)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	if s.boards == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("boards are not supported by this store")))
		return
	}
	boardID, ok := s.requireBoardID(w, r)
	if !ok {
		return
	}

	board, err := s.boards.GetBoard(r.Context(), boardID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if board == nil {
		s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(fmt.Errorf("board %s not found", boardID), ErrCodeBoardNotFound))
		return
	}

	cards, err := s.boards.ListCards(r.Context(), boardID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	if s.boards == nil {
		s.writeServiceError(w, r, notImplemented(fmt.Errorf("boards are not supported by this store")))
		return
	}
	boardID, ok := s.requireBoardID(w, r)
	if !ok {
		return
	}

	var req api.CardAddRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	itemID := strings.TrimSpace(req.ItemID)
	if !validateID(itemID) {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("invalid item id %q", req.ItemID), ErrCodeInvalidID))
		return
	}
	column := strings.TrimSpace(req.Column)
	if column == "" {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("column is required"), ErrCodeMissingRequired))
		return
	}

	board, err := s.boards.GetBoard(r.Context(), boardID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if board == nil {
		s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(fmt.Errorf("board %s not found", boardID), ErrCodeBoardNotFound))
		return
	}
	exists, err := s.store.ItemExists(itemID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if !exists {
		s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(fmt.Errorf("item %s not found", itemID), ErrCodeItemNotFound))
		return
	}

	if err := s.boards.AddCard(r.Context(), boardID, column, itemID, time.Now().UTC()); err != nil {
		if strings.Contains(err.Error(), "has no column") {
			s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(err, ErrCodeInvalidColumn))
			return
		}
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireBoardID(w http.ResponseWriter, r *http.Request) (string, bool) {
	boardID := r.PathValue("id")
	if !validateBoardID(boardID) {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("invalid board id %q", boardID), ErrCodeInvalidID))
		return "", false
	}
	return boardID, true
}
