package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"courseops/internal/tracker"
)

// EnsureMilestone returns the milestone carrying the draft's title,
// creating it when absent. An existing milestone wins; the draft's
// description and due date apply only on create.
func (c *Client) EnsureMilestone(ctx context.Context, draft tracker.Milestone) (tracker.Milestone, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return tracker.Milestone{}, fmt.Errorf("milestone title is required")
	}

	existing, err := c.listMilestones(ctx)
	if err != nil {
		return tracker.Milestone{}, err
	}
	for _, ms := range existing {
		if ms.Title == title {
			return milestoneFromWire(ms), nil
		}
	}

	req := milestoneCreateRequest{
		Title:       title,
		Description: draft.Description,
		DueOn:       draft.DueOn,
	}
	var created milestone
	if err := c.do(ctx, http.MethodPost, c.repoPath("milestones"), nil, req, &created); err != nil {
		return tracker.Milestone{}, err
	}
	return milestoneFromWire(created), nil
}

// ListMilestones returns all milestones regardless of state.
func (c *Client) ListMilestones(ctx context.Context) ([]tracker.Milestone, error) {
	wire, err := c.listMilestones(ctx)
	if err != nil {
		return nil, err
	}
	milestones := make([]tracker.Milestone, 0, len(wire))
	for _, ms := range wire {
		milestones = append(milestones, milestoneFromWire(ms))
	}
	return milestones, nil
}

// milestoneNumber resolves a title to a milestone number, or 0 when no
// milestone carries the title.
func (c *Client) milestoneNumber(ctx context.Context, title string) (int, error) {
	milestones, err := c.listMilestones(ctx)
	if err != nil {
		return 0, err
	}
	for _, ms := range milestones {
		if ms.Title == title {
			return ms.Number, nil
		}
	}
	return 0, nil
}

func (c *Client) listMilestones(ctx context.Context) ([]milestone, error) {
	query := url.Values{
		"state":    {"all"},
		"per_page": {strconv.Itoa(perPage)},
	}

	out := []milestone{}
	err := fetchAllPages(func(page int) (int, error) {
		query.Set("page", strconv.Itoa(page))
		var batch []milestone
		if err := c.do(ctx, http.MethodGet, c.repoPath("milestones"), query, nil, &batch); err != nil {
			return 0, err
		}
		out = append(out, batch...)
		return len(batch), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func milestoneFromWire(ms milestone) tracker.Milestone {
	return tracker.Milestone{
		ID:          strconv.Itoa(ms.Number),
		Title:       ms.Title,
		Description: ms.Description,
		DueOn:       ms.DueOn,
	}
}
