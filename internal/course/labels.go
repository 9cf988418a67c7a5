package course

import "courseops/internal/tracker"

// BootstrapLabels returns the full label set a course tracker needs:
// category and priority labels used by generated tasks, plus the
// general-purpose labels contributors file under.
func BootstrapLabels() []tracker.LabelDef {
	return []tracker.LabelDef{
		{Name: "lecture", Color: "0366d6", Description: "Lecture materials"},
		{Name: "workshop", Color: "28a745", Description: "Workshop exercises"},
		{Name: "assignment", Color: "ffa500", Description: "Student assignments"},
		{Name: "documentation", Color: "0075ca", Description: "Documentation updates"},
		{Name: "high-priority", Color: "d73a4a", Description: "High priority tasks"},
		{Name: "medium-priority", Color: "fbca04", Description: "Medium priority tasks"},
		{Name: "low-priority", Color: "0e8a16", Description: "Low priority tasks"},
		{Name: "bug", Color: "d73a4a", Description: "Something isn't working"},
		{Name: "enhancement", Color: "a2eeef", Description: "New feature or request"},
		{Name: "good first issue", Color: "7057ff", Description: "Good for newcomers"},
		{Name: "help wanted", Color: "008672", Description: "Extra attention is needed"},
	}
}
