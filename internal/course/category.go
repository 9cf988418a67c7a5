package course

import (
	"fmt"
	"strings"
)

// Category defines allowed task categories.
type Category string

const (
	CategoryLecture       Category = "lecture"
	CategoryWorkshop      Category = "workshop"
	CategoryAssignment    Category = "assignment"
	CategoryDocumentation Category = "documentation"
)

// categoryOrder fixes the declaration order used for generation output.
var categoryOrder = []Category{
	CategoryLecture,
	CategoryWorkshop,
	CategoryAssignment,
	CategoryDocumentation,
}

var validCategories = map[Category]struct{}{
	CategoryLecture:       {},
	CategoryWorkshop:      {},
	CategoryAssignment:    {},
	CategoryDocumentation: {},
}

// TypeFilter selects which categories to generate.
type TypeFilter string

const (
	FilterAll           TypeFilter = "all"
	FilterLectures      TypeFilter = "lectures"
	FilterWorkshops     TypeFilter = "workshops"
	FilterAssignments   TypeFilter = "assignments"
	FilterDocumentation TypeFilter = "documentation"
)

var filterCategories = map[TypeFilter]Category{
	FilterLectures:      CategoryLecture,
	FilterWorkshops:     CategoryWorkshop,
	FilterAssignments:   CategoryAssignment,
	FilterDocumentation: CategoryDocumentation,
}

// Priority defines the coarse priority attached to generated tasks.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func IsValidCategory(category Category) bool {
	_, ok := validCategories[category]
	return ok
}

func ParseCategory(raw string) (Category, error) {
	value := Category(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("category is required")
	}
	if !IsValidCategory(value) {
		return "", fmt.Errorf("invalid category: %s", value)
	}
	return value, nil
}

// ParseTypeFilter accepts the CLI filter values: all plus the plural
// category forms.
func ParseTypeFilter(raw string) (TypeFilter, error) {
	value := TypeFilter(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return FilterAll, nil
	}
	if value == FilterAll {
		return FilterAll, nil
	}
	if _, ok := filterCategories[value]; !ok {
		return "", fmt.Errorf("invalid task type: %s (expected all, lectures, workshops, assignments, or documentation)", value)
	}
	return value, nil
}

// Matches reports whether a category passes the filter.
func (f TypeFilter) Matches(category Category) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return filterCategories[f] == category
}

// Label returns the tracker label for a priority, e.g. "high-priority".
func (p Priority) Label() string {
	return string(p) + "-priority"
}

// WeekLabel returns the tracker label for a week, e.g. "week-3".
func WeekLabel(week int) string {
	return fmt.Sprintf("week-%d", week)
}

// MilestoneTitle returns the milestone name for a week, e.g. "Week 3".
func MilestoneTitle(week int) string {
	return fmt.Sprintf("Week %d", week)
}
