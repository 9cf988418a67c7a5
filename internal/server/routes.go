package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Items collection.
	mux.HandleFunc("POST /v1/items", s.handleCreateItem)
	mux.HandleFunc("GET /v1/items", s.handleListItems)

	// Item batch operations.
	mux.HandleFunc("POST /v1/items/close", s.handleCloseItems)
	mux.HandleFunc("POST /v1/items/reopen", s.handleReopenItems)

	// Single item.
	mux.HandleFunc("GET /v1/items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /v1/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("PUT /v1/items/{id}/assignee", s.handleSetAssignee)

	// Contributors.
	mux.HandleFunc("GET /v1/contributors", s.handleListContributors)
	mux.HandleFunc("POST /v1/contributors", s.handleCreateContributor)
	mux.HandleFunc("DELETE /v1/contributors/{id}", s.handleDeleteContributor)

	// Milestones and labels.
	mux.HandleFunc("GET /v1/milestones", s.handleListMilestones)
	mux.HandleFunc("POST /v1/milestones", s.handleEnsureMilestone)
	mux.HandleFunc("GET /v1/labels", s.handleListLabels)
	mux.HandleFunc("PUT /v1/labels", s.handleEnsureLabels)

	// Sprint boards.
	mux.HandleFunc("GET /v1/boards", s.handleListBoards)
	mux.HandleFunc("POST /v1/boards", s.handleCreateBoard)
	mux.HandleFunc("GET /v1/boards/{id}/cards", s.handleListCards)
	mux.HandleFunc("POST /v1/boards/{id}/cards", s.handleAddCard)

	// Admin.
	mux.HandleFunc("POST /v1/admin/tokens", s.handleCreateToken)
	mux.HandleFunc("GET /v1/admin/tokens", s.handleListTokens)
	mux.HandleFunc("DELETE /v1/admin/tokens/{name}", s.handleRevokeToken)

	return s.withRequestLogging(s.withAuth(mux))
}
