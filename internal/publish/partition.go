package publish

import (
	"strings"

	"courseops/internal/course"
	"courseops/internal/tracker"
)

// Partition splits descriptors into those that need creating and those
// already present in the tracker. An item counts as present when it
// carries the descriptor's week label and its title matches
// case-insensitively, regardless of item state. Duplicate descriptors
// within the batch are skipped the same way.
func Partition(descriptors []course.TaskDescriptor, existing []tracker.Item) (create, skipped []course.TaskDescriptor) {
	seen := make(map[string]bool)
	for _, item := range existing {
		for _, label := range item.Labels {
			if strings.HasPrefix(strings.ToLower(label), "week-") {
				seen[dedupeKey(label, item.Title)] = true
			}
		}
	}
	for _, d := range descriptors {
		key := dedupeKey(course.WeekLabel(d.Week), d.Title)
		if seen[key] {
			skipped = append(skipped, d)
			continue
		}
		seen[key] = true
		create = append(create, d)
	}
	return create, skipped
}

func dedupeKey(weekLabel, title string) string {
	return strings.ToLower(weekLabel) + "\x00" + strings.ToLower(strings.TrimSpace(title))
}
