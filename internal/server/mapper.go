package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"courseops/internal/api"
	"courseops/internal/store"
	"courseops/internal/tracker"
)

// buildItemUpdate maps an API update request to a store patch model.
// Closing sets closed_at; any other state clears it.
func buildItemUpdate(ctx context.Context, s *ItemService, req api.ItemUpdateRequest, updatedAt time.Time) (store.ItemUpdate, error) {
	update := store.ItemUpdate{UpdatedAt: updatedAt}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return store.ItemUpdate{}, badRequestCode(fmt.Errorf("title cannot be empty"), ErrCodeMissingRequired)
		}
		update.Title = &trimmed
	}
	if req.Body != nil {
		update.Body = req.Body
	}
	if req.State != nil {
		state, err := normalizeState(*req.State)
		if err != nil {
			return store.ItemUpdate{}, err
		}
		update.State = &state
		if state == string(tracker.StateClosed) {
			closedAt := updatedAt
			update.ClosedAt = &closedAt
		} else {
			zero := time.Time{}
			update.ClosedAt = &zero
		}
	}
	if req.Assignee != nil {
		assignee := strings.TrimSpace(*req.Assignee)
		if assignee != "" {
			if err := s.requireContributor(ctx, assignee); err != nil {
				return store.ItemUpdate{}, err
			}
		}
		update.Assignee = &assignee
	}
	if req.Milestone != nil {
		milestone := strings.TrimSpace(*req.Milestone)
		update.Milestone = &milestone
	}

	return update, nil
}
