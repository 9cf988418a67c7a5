package api

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"courseops/internal/tracker"
)

// Remote adapts the HTTP client to the tracker interfaces so the rest
// of the tool can treat the local server like any other backend.
type Remote struct {
	client *Client
}

var (
	_ tracker.Tracker        = (*Remote)(nil)
	_ tracker.MilestoneStore = (*Remote)(nil)
	_ tracker.LabelStore     = (*Remote)(nil)
	_ tracker.BoardStore     = (*Remote)(nil)
)

// NewRemote wraps a client in the tracker boundary.
func NewRemote(client *Client) *Remote {
	return &Remote{client: client}
}

func (r *Remote) ListItems(ctx context.Context, filter tracker.ItemFilter) ([]tracker.Item, error) {
	query := url.Values{}
	state := filter.State
	if state == "" {
		state = tracker.FilterOpen
	}
	query.Set("state", string(state))
	if len(filter.Labels) > 0 {
		query.Set("labels", strings.Join(filter.Labels, ","))
	}
	if filter.Unassigned {
		query.Set("unassigned", "true")
	}

	items, err := r.client.ListItems(ctx, query)
	if err != nil {
		return nil, trackerError(err)
	}
	return items, nil
}

func (r *Remote) CreateItem(ctx context.Context, draft tracker.Draft) (tracker.Item, error) {
	req := ItemCreateRequest{Title: draft.Title, Labels: draft.Labels}
	if draft.Body != "" {
		body := draft.Body
		req.Body = &body
	}
	if draft.Milestone != "" {
		milestone := draft.Milestone
		req.Milestone = &milestone
	}

	item, err := r.client.CreateItem(ctx, req)
	if err != nil {
		return tracker.Item{}, trackerError(err)
	}
	return item, nil
}

func (r *Remote) AssignItem(ctx context.Context, itemID, contributorID string) error {
	if _, err := r.client.SetAssignee(ctx, itemID, contributorID); err != nil {
		return trackerError(err)
	}
	return nil
}

func (r *Remote) ListContributors(ctx context.Context) ([]tracker.Contributor, error) {
	contributors, err := r.client.ListContributors(ctx)
	if err != nil {
		return nil, trackerError(err)
	}
	return contributors, nil
}

func (r *Remote) EnsureMilestone(ctx context.Context, milestone tracker.Milestone) (tracker.Milestone, error) {
	req := MilestoneEnsureRequest{
		Title:       milestone.Title,
		Description: milestone.Description,
		DueOn:       milestone.DueOn,
	}
	out, err := r.client.EnsureMilestone(ctx, req)
	if err != nil {
		return tracker.Milestone{}, trackerError(err)
	}
	return out, nil
}

func (r *Remote) ListMilestones(ctx context.Context) ([]tracker.Milestone, error) {
	milestones, err := r.client.ListMilestones(ctx)
	if err != nil {
		return nil, trackerError(err)
	}
	return milestones, nil
}

func (r *Remote) EnsureLabels(ctx context.Context, defs []tracker.LabelDef) error {
	if _, err := r.client.EnsureLabels(ctx, defs); err != nil {
		return trackerError(err)
	}
	return nil
}

func (r *Remote) ListLabelDefs(ctx context.Context) ([]tracker.LabelDef, error) {
	defs, err := r.client.ListLabelDefs(ctx)
	if err != nil {
		return nil, trackerError(err)
	}
	return defs, nil
}

func (r *Remote) ListBoards(ctx context.Context) ([]tracker.Board, error) {
	boards, err := r.client.ListBoards(ctx)
	if err != nil {
		return nil, trackerError(err)
	}
	return boards, nil
}

func (r *Remote) CreateBoard(ctx context.Context, name string, columns []string) (tracker.Board, error) {
	board, err := r.client.CreateBoard(ctx, BoardCreateRequest{Name: name, Columns: columns})
	if err != nil {
		return tracker.Board{}, trackerError(err)
	}
	return board, nil
}

func (r *Remote) ListCards(ctx context.Context, boardID string) ([]tracker.BoardCard, error) {
	cards, err := r.client.ListCards(ctx, boardID)
	if err != nil {
		return nil, trackerError(err)
	}
	return cards, nil
}

func (r *Remote) AddCard(ctx context.Context, boardID, column, itemID string) error {
	if err := r.client.AddCard(ctx, boardID, CardAddRequest{ItemID: itemID, Column: column}); err != nil {
		return trackerError(err)
	}
	return nil
}

// trackerError converts API errors into the status form the retry
// policy classifies. Network errors pass through unchanged.
func trackerError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &tracker.StatusError{
			Status:  apiErr.Status,
			Code:    apiErr.Code,
			Message: apiErr.Message,
		}
	}
	return err
}
