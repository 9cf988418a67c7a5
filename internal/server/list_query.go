package server

import (
	"net/http"
	"strings"

	"courseops/internal/store"
	"courseops/internal/tracker"
)

// parseListFilter builds a store filter from list query parameters.
// The default state filter is open, matching the tracker boundary.
func parseListFilter(r *http.Request) (store.ListFilter, error) {
	var filter store.ListFilter

	stateFilter, err := tracker.ParseStateFilter(r.URL.Query().Get("state"))
	if err != nil {
		return filter, badRequestCode(err, ErrCodeInvalidState)
	}
	switch stateFilter {
	case tracker.FilterOpen:
		filter.States = []string{string(tracker.StateOpen)}
	case tracker.FilterClosed:
		filter.States = []string{string(tracker.StateClosed)}
	}

	labels, err := normalizeLabels(splitCSV(r.URL.Query().Get("labels")))
	if err != nil {
		return filter, err
	}
	filter.Labels = labels

	labelsAny, err := normalizeLabels(splitCSV(r.URL.Query().Get("labels_any")))
	if err != nil {
		return filter, err
	}
	filter.LabelsAny = labelsAny

	filter.Assignee = strings.TrimSpace(r.URL.Query().Get("assignee"))
	filter.Milestone = strings.TrimSpace(r.URL.Query().Get("milestone"))

	unassigned, err := queryBool(r, "unassigned")
	if err != nil {
		return filter, err
	}
	filter.Unassigned = unassigned

	limit, err := queryInt(r, "limit")
	if err != nil {
		return filter, err
	}
	filter.Limit = limit

	offset, err := queryInt(r, "offset")
	if err != nil {
		return filter, err
	}
	filter.Offset = offset

	return filter, nil
}
