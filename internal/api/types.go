package api

import (
	"time"

	"courseops/internal/tracker"
)

// ErrorResponse is the JSON error wrapper returned by the API.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// InfoResponse is the response from GET /v1/info.
type InfoResponse struct {
	DBPath        string         `json:"db_path,omitempty"`
	ProjectPrefix string         `json:"project_prefix"`
	SchemaVersion int            `json:"schema_version"`
	ItemCounts    map[string]int `json:"item_counts"`
	TotalItems    int            `json:"total_items"`
	Contributors  int            `json:"contributors"`
}

// ItemCreateRequest defines the payload for creating an item.
type ItemCreateRequest struct {
	ID        string   `json:"id,omitempty"`
	Title     string   `json:"title"`
	Body      *string  `json:"body,omitempty"`
	State     *string  `json:"state,omitempty"`
	Assignee  *string  `json:"assignee,omitempty"`
	Milestone *string  `json:"milestone,omitempty"`
	Labels    []string `json:"labels,omitempty"`
}

// ItemUpdateRequest defines the payload for updating an item.
type ItemUpdateRequest struct {
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	State     *string `json:"state,omitempty"`
	Assignee  *string `json:"assignee,omitempty"`
	Milestone *string `json:"milestone,omitempty"`
}

// AssigneeRequest sets or clears an item's assignee.
type AssigneeRequest struct {
	Assignee string `json:"assignee"`
}

// ItemIDsRequest carries item ids for batch close and reopen.
type ItemIDsRequest struct {
	IDs []string `json:"ids"`
}

// ItemIDsResponse echoes the ids a batch operation touched.
type ItemIDsResponse struct {
	IDs []string `json:"ids"`
}

// ContributorCreateRequest registers a contributor.
type ContributorCreateRequest struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// MilestoneEnsureRequest creates a milestone if it does not exist.
type MilestoneEnsureRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

// LabelEnsureRequest creates missing label definitions.
type LabelEnsureRequest struct {
	Labels []tracker.LabelDef `json:"labels"`
}

// BoardCreateRequest creates a board with ordered columns.
type BoardCreateRequest struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// CardAddRequest places an item on a board column.
type CardAddRequest struct {
	ItemID string `json:"item_id"`
	Column string `json:"column"`
}

// TokenCreateRequest mints a named API token.
type TokenCreateRequest struct {
	Name string `json:"name"`
}

// TokenCreateResponse returns the minted token. The raw token is shown
// exactly once; only its hash is stored.
type TokenCreateResponse struct {
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenInfo describes a stored API token without its secret.
type TokenInfo struct {
	Name      string     `json:"name"`
	Active    bool       `json:"active"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
