package course

import (
	"fmt"
	"strings"
	"time"

	"courseops/internal/tracker"
)

// TaskDescriptor is one generated unit of course work, ready to be
// published to a tracker.
type TaskDescriptor struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Week     int      `json:"week"`
	Category Category `json:"category"`
	Priority Priority `json:"priority"`
}

// InvalidWeekError reports a week number outside the valid range.
type InvalidWeekError struct {
	Week int
}

func (e *InvalidWeekError) Error() string {
	return fmt.Sprintf("invalid week %d: week must be 1 or greater", e.Week)
}

var titleForms = map[Category]string{
	CategoryLecture:       "Create Week %d Lecture Materials",
	CategoryWorkshop:      "Design Week %d Workshop Exercises",
	CategoryAssignment:    "Create Week %d Assignment",
	CategoryDocumentation: "Update Week %d Documentation",
}

var bodyForms = map[Category]string{
	CategoryLecture:       "Develop lecture materials for Week %d (%s) covering:",
	CategoryWorkshop:      "Create workshop exercises for Week %d (%s):",
	CategoryAssignment:    "Design the Week %d assignment (%s):",
	CategoryDocumentation: "Update and improve Week %d documentation (%s):",
}

// Generate returns the task descriptors for one course week, filtered
// by type. Generation is pure: the same inputs always yield the same
// descriptors in the same order. Weeks before the course starts are an
// error; weeks past the plan simply have no tasks.
func Generate(week int, filter TypeFilter) ([]TaskDescriptor, error) {
	if week < 1 {
		return nil, &InvalidWeekError{Week: week}
	}
	tpl, ok := weekTemplates[week]
	if !ok {
		return []TaskDescriptor{}, nil
	}
	descriptors := make([]TaskDescriptor, 0, len(tpl.Tasks))
	for _, task := range tpl.Tasks {
		if !filter.Matches(task.Category) {
			continue
		}
		descriptors = append(descriptors, TaskDescriptor{
			Title:    fmt.Sprintf(titleForms[task.Category], week),
			Body:     renderBody(task, week, tpl.Topic),
			Week:     week,
			Category: task.Category,
			Priority: task.Priority,
		})
	}
	return descriptors, nil
}

func renderBody(task taskTemplate, week int, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, bodyForms[task.Category], week, topic)
	for _, point := range task.Points {
		b.WriteString("\n- ")
		b.WriteString(point)
	}
	return b.String()
}

// Labels returns the tracker labels for a descriptor: category, week,
// and priority.
func (d TaskDescriptor) Labels() []string {
	return []string{string(d.Category), WeekLabel(d.Week), d.Priority.Label()}
}

// Draft converts a descriptor into a tracker draft, attaching the
// week's milestone by title.
func (d TaskDescriptor) Draft() tracker.Draft {
	return tracker.Draft{
		Title:     d.Title,
		Body:      d.Body,
		Milestone: MilestoneTitle(d.Week),
		Labels:    d.Labels(),
	}
}

// MilestoneForWeek builds the milestone a week's tasks belong to, due
// that many weeks from now.
func MilestoneForWeek(week int, now time.Time) tracker.Milestone {
	due := now.AddDate(0, 0, week*7)
	return tracker.Milestone{
		Title:       MilestoneTitle(week),
		Description: fmt.Sprintf("Tasks for Week %d of the Generative AI course", week),
		DueOn:       &due,
	}
}
