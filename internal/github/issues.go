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

// ListItems returns repository issues matching the filter. The issues
// endpoint also serves pull requests; those are skipped.
func (c *Client) ListItems(ctx context.Context, filter tracker.ItemFilter) ([]tracker.Item, error) {
	query := url.Values{
		"state":    {stateParam(filter.State)},
		"per_page": {strconv.Itoa(perPage)},
	}
	if len(filter.Labels) > 0 {
		query.Set("labels", strings.Join(filter.Labels, ","))
	}
	if filter.Unassigned {
		query.Set("assignee", "none")
	}

	items := []tracker.Item{}
	err := fetchAllPages(func(page int) (int, error) {
		query.Set("page", strconv.Itoa(page))
		var batch []issue
		if err := c.do(ctx, http.MethodGet, c.repoPath("issues"), query, nil, &batch); err != nil {
			return 0, err
		}
		for _, is := range batch {
			if is.PullRequest != nil {
				continue
			}
			items = append(items, itemFromIssue(is))
		}
		return len(batch), nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem opens a new issue. A milestone title that resolves to no
// existing milestone is dropped rather than failing the create.
func (c *Client) CreateItem(ctx context.Context, draft tracker.Draft) (tracker.Item, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return tracker.Item{}, fmt.Errorf("draft title is required")
	}

	req := issueCreateRequest{
		Title:  title,
		Body:   draft.Body,
		Labels: draft.Labels,
	}
	if draft.Milestone != "" {
		number, err := c.milestoneNumber(ctx, draft.Milestone)
		if err != nil {
			return tracker.Item{}, err
		}
		req.Milestone = number
	}

	var created issue
	if err := c.do(ctx, http.MethodPost, c.repoPath("issues"), nil, req, &created); err != nil {
		return tracker.Item{}, err
	}
	return itemFromIssue(created), nil
}

// AssignItem adds a contributor to an issue's assignees.
func (c *Client) AssignItem(ctx context.Context, itemID, contributorID string) error {
	number, err := issueNumber(itemID)
	if err != nil {
		return err
	}
	contributorID = strings.TrimSpace(contributorID)
	if contributorID == "" {
		return fmt.Errorf("contributor id is required")
	}

	return c.do(ctx, http.MethodPost, c.repoPath("issues", strconv.Itoa(number), "assignees"),
		nil, assigneesRequest{Assignees: []string{contributorID}}, nil)
}

// ListContributors returns the accounts that can be assigned issues in
// the repository.
func (c *Client) ListContributors(ctx context.Context) ([]tracker.Contributor, error) {
	query := url.Values{"per_page": {strconv.Itoa(perPage)}}

	contributors := []tracker.Contributor{}
	err := fetchAllPages(func(page int) (int, error) {
		query.Set("page", strconv.Itoa(page))
		var batch []account
		if err := c.do(ctx, http.MethodGet, c.repoPath("assignees"), query, nil, &batch); err != nil {
			return 0, err
		}
		for _, a := range batch {
			contributors = append(contributors, tracker.Contributor{ID: a.Login})
		}
		return len(batch), nil
	})
	if err != nil {
		return nil, err
	}
	return contributors, nil
}

func stateParam(filter tracker.StateFilter) string {
	switch filter {
	case tracker.FilterClosed:
		return "closed"
	case tracker.FilterAll:
		return "all"
	default:
		return "open"
	}
}

func issueNumber(itemID string) (int, error) {
	number, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(itemID), "#"))
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("invalid issue id %q", itemID)
	}
	return number, nil
}

func itemFromIssue(is issue) tracker.Item {
	item := tracker.Item{
		ID:        strconv.Itoa(is.Number),
		Number:    is.Number,
		Title:     is.Title,
		Body:      is.Body,
		State:     tracker.ItemState(is.State),
		Labels:    labelNames(is.Labels),
		CreatedAt: is.CreatedAt,
		UpdatedAt: is.UpdatedAt,
		ClosedAt:  is.ClosedAt,
	}
	if is.Assignee != nil {
		item.Assignee = is.Assignee.Login
	} else if len(is.Assignees) > 0 {
		item.Assignee = is.Assignees[0].Login
	}
	if is.Milestone != nil {
		item.Milestone = is.Milestone.Title
	}
	return item
}

func labelNames(labels []label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}
