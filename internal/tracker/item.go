package tracker

import (
	"strings"
	"time"
)

// Item is a unit of work recorded in an issue tracker. The ID is opaque to
// callers; Number is the tracker's human-facing issue number where one exists.
type Item struct {
	ID        string     `json:"id"`
	Number    int        `json:"number,omitempty"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	State     ItemState  `json:"state"`
	Assignee  string     `json:"assignee,omitempty"`
	Milestone string     `json:"milestone,omitempty"`
	Labels    []string   `json:"labels"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// HasLabel reports whether the item carries the label (case-insensitive).
func (i Item) HasLabel(label string) bool {
	for _, l := range i.Labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// Draft is a pre-publication item: everything needed to create an Item.
type Draft struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Milestone string   `json:"milestone,omitempty"`
	Labels    []string `json:"labels,omitempty"`
}

// ItemFilter narrows ListItems results. Zero value lists open items.
type ItemFilter struct {
	State      StateFilter
	Labels     []string
	Unassigned bool
}

// Contributor is a person eligible to receive item assignments.
type Contributor struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// LabelDef describes a label to ensure in the tracker.
type LabelDef struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Milestone groups items under a named deadline.
type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

// Board is a sprint board with ordered columns.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Columns   []string  `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
}

// BoardCard places an item in a board column.
type BoardCard struct {
	ItemID string `json:"item_id"`
	Column string `json:"column"`
}
