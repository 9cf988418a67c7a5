// Package assign distributes open unassigned course tasks across
// contributors so that nobody is overloaded.
package assign

import (
	"errors"
	"sort"

	"courseops/internal/tracker"
)

// ErrNoContributors is returned when a plan is requested but there is
// nobody to assign work to.
var ErrNoContributors = errors.New("no contributors available")

// Loads is the balancer's working state: open task count per
// contributor ID. Every known contributor has an entry, including
// those with zero open tasks.
type Loads map[string]int

// Options tunes a balancing run. Zero values mean no limit.
type Options struct {
	// MaxLoad caps how many open tasks any contributor may hold.
	MaxLoad int
	// ContributorMax overrides MaxLoad for individual contributors.
	ContributorMax map[string]int
	// MaxAssignments caps how many assignments one run may make.
	MaxAssignments int
}

// Assignment pairs one item with the contributor chosen for it.
type Assignment struct {
	ItemID      string `json:"item_id"`
	Title       string `json:"title"`
	Contributor string `json:"contributor"`
}

// Plan is the outcome of a balancing run: the assignments to make, the
// items that could not be placed, and the load table as it would look
// after applying the assignments.
type Plan struct {
	Assignments []Assignment   `json:"assignments"`
	Residual    []tracker.Item `json:"residual"`
	Loads       Loads          `json:"loads"`
}

// CountLoads builds the load table for a contributor set from the open
// items currently assigned to them.
func CountLoads(contributors []tracker.Contributor, open []tracker.Item) Loads {
	loads := make(Loads, len(contributors))
	for _, c := range contributors {
		loads[c.ID] = 0
	}
	for _, item := range open {
		if item.Assignee == "" {
			continue
		}
		if _, known := loads[item.Assignee]; known {
			loads[item.Assignee]++
		}
	}
	return loads
}

// Balance plans assignments for the given items. Items are considered
// oldest first; each goes to the least-loaded contributor, with ties
// broken by contributor ID. Contributors at their ceiling are skipped,
// and items nobody can take end up in the residual list. The input
// load table is not modified.
func Balance(items []tracker.Item, contributors []tracker.Contributor, loads Loads, opts Options) (Plan, error) {
	if len(contributors) == 0 {
		if len(items) == 0 {
			return Plan{Loads: Loads{}}, nil
		}
		return Plan{}, ErrNoContributors
	}

	ordered := make([]tracker.Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	ids := make([]string, len(contributors))
	for i, c := range contributors {
		ids[i] = c.ID
	}
	sort.Strings(ids)

	working := make(Loads, len(loads))
	for id, n := range loads {
		working[id] = n
	}
	for _, id := range ids {
		if _, ok := working[id]; !ok {
			working[id] = 0
		}
	}

	plan := Plan{Loads: working}
	for _, item := range ordered {
		if opts.MaxAssignments > 0 && len(plan.Assignments) >= opts.MaxAssignments {
			plan.Residual = append(plan.Residual, item)
			continue
		}
		chosen := pick(ids, working, opts)
		if chosen == "" {
			plan.Residual = append(plan.Residual, item)
			continue
		}
		plan.Assignments = append(plan.Assignments, Assignment{
			ItemID:      item.ID,
			Title:       item.Title,
			Contributor: chosen,
		})
		working[chosen]++
	}
	return plan, nil
}

// pick returns the least-loaded contributor below their ceiling, or ""
// when everyone is full. The ids slice is sorted, so the scan's strict
// comparison settles ties on the smaller ID.
func pick(ids []string, loads Loads, opts Options) string {
	chosen := ""
	best := -1
	for _, id := range ids {
		load := loads[id]
		if ceiling := ceilingFor(id, opts); ceiling > 0 && load >= ceiling {
			continue
		}
		if chosen == "" || load < best {
			chosen = id
			best = load
		}
	}
	return chosen
}

func ceilingFor(id string, opts Options) int {
	if n, ok := opts.ContributorMax[id]; ok {
		return n
	}
	return opts.MaxLoad
}
