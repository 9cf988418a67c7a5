package github

import "time"

// issue is the wire shape shared by the list and create endpoints.
// Pull requests arrive on the same endpoint and carry a pull_request
// stub.
type issue struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	State       string     `json:"state"`
	Labels      []label    `json:"labels"`
	Assignee    *account   `json:"assignee"`
	Assignees   []account  `json:"assignees"`
	Milestone   *milestone `json:"milestone"`
	PullRequest *struct{}  `json:"pull_request"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at"`
}

type label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type account struct {
	Login string `json:"login"`
}

type milestone struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	DueOn       *time.Time `json:"due_on"`
}

type issueCreateRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Milestone int      `json:"milestone,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
}

type assigneesRequest struct {
	Assignees []string `json:"assignees"`
}

type milestoneCreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

type labelCreateRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}
