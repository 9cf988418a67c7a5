// Package report collects everything a weekly run did into one
// summary: what was generated, created, skipped, assigned, and what
// failed along the way.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"courseops/internal/assign"
	"courseops/internal/publish"
)

// Line identifies one tracked item in the summary.
type Line struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
}

// Failure is one item-level error, with the error flattened to text so
// the summary serializes cleanly.
type Failure struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

// AssignmentLine is one planned or applied assignment.
type AssignmentLine struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Contributor string `json:"contributor"`
}

// Summary is the full account of one run.
type Summary struct {
	Week           int              `json:"week"`
	Generated      int              `json:"generated"`
	Created        []Line           `json:"created"`
	Skipped        []Line           `json:"skipped"`
	CreateFailures []Failure        `json:"create_failures,omitempty"`
	Assigned       []AssignmentLine `json:"assigned"`
	AssignFailures []Failure        `json:"assign_failures,omitempty"`
	Residual       []Line           `json:"residual"`
	Loads          map[string]int   `json:"loads,omitempty"`
	Suggested      bool             `json:"suggested,omitempty"`
}

func New(week, generated int) *Summary {
	return &Summary{Week: week, Generated: generated}
}

// RecordPublish folds a publish result into the summary.
func (s *Summary) RecordPublish(result publish.Result) {
	for _, item := range result.Created {
		s.Created = append(s.Created, Line{ID: item.ID, Title: item.Title})
	}
	for _, d := range result.Skipped {
		s.Skipped = append(s.Skipped, Line{Title: d.Title})
	}
	for _, f := range result.Failed {
		s.CreateFailures = append(s.CreateFailures, Failure{Title: f.Descriptor.Title, Error: f.Err.Error()})
	}
}

// RecordPlan captures the balancer's residual items and final load
// table. When suggested is true the plan was not applied and its
// assignments are reported as proposals.
func (s *Summary) RecordPlan(plan assign.Plan, suggested bool) {
	for _, item := range plan.Residual {
		s.Residual = append(s.Residual, Line{ID: item.ID, Title: item.Title})
	}
	s.Loads = plan.Loads
	s.Suggested = suggested
	if suggested {
		for _, a := range plan.Assignments {
			s.Assigned = append(s.Assigned, AssignmentLine{ID: a.ItemID, Title: a.Title, Contributor: a.Contributor})
		}
	}
}

// RecordApply folds the applied assignments into the summary.
func (s *Summary) RecordApply(result assign.ApplyResult) {
	for _, a := range result.Applied {
		s.Assigned = append(s.Assigned, AssignmentLine{ID: a.ItemID, Title: a.Title, Contributor: a.Contributor})
	}
	for _, f := range result.Failed {
		s.AssignFailures = append(s.AssignFailures, Failure{Title: f.Assignment.Title, Error: f.Err.Error()})
	}
}

// HasFailures reports whether any item-level operation failed.
func (s *Summary) HasFailures() bool {
	return len(s.CreateFailures) > 0 || len(s.AssignFailures) > 0
}

// WriteText renders the summary as plain lines for terminal output.
func (s *Summary) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "week: %d\n", s.Week)
	fmt.Fprintf(&b, "generated: %d\n", s.Generated)

	writeLines(&b, "created", len(s.Created))
	for _, line := range s.Created {
		fmt.Fprintf(&b, "  + %s %s\n", line.ID, line.Title)
	}
	writeLines(&b, "skipped", len(s.Skipped))
	for _, line := range s.Skipped {
		fmt.Fprintf(&b, "  = %s\n", line.Title)
	}

	verb := "assigned"
	if s.Suggested {
		verb = "suggested"
	}
	writeLines(&b, verb, len(s.Assigned))
	for _, a := range s.Assigned {
		fmt.Fprintf(&b, "  > %s %s -> %s\n", a.ID, a.Title, a.Contributor)
	}
	writeLines(&b, "unassigned", len(s.Residual))
	for _, line := range s.Residual {
		fmt.Fprintf(&b, "  ? %s %s\n", line.ID, line.Title)
	}

	if len(s.Loads) > 0 {
		fmt.Fprintf(&b, "loads:\n")
		for _, id := range sortedKeys(s.Loads) {
			fmt.Fprintf(&b, "  %s: %d\n", id, s.Loads[id])
		}
	}
	if s.HasFailures() {
		fmt.Fprintf(&b, "failures: %d\n", len(s.CreateFailures)+len(s.AssignFailures))
		for _, f := range s.CreateFailures {
			fmt.Fprintf(&b, "  ! create %s: %s\n", f.Title, f.Error)
		}
		for _, f := range s.AssignFailures {
			fmt.Fprintf(&b, "  ! assign %s: %s\n", f.Title, f.Error)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeLines(b *strings.Builder, label string, n int) {
	fmt.Fprintf(b, "%s: %d\n", label, n)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
