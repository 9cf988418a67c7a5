// Package roster loads the contributor roster file: who can take
// course tasks and how many each person will carry.
package roster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"courseops/internal/tracker"
)

// Entry is one contributor in the roster file.
type Entry struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	MaxLoad int    `yaml:"max_load"`
}

// Roster is the parsed roster file.
type Roster struct {
	Contributors []Entry `yaml:"contributors"`
}

// Load reads and validates a roster file.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return Parse(data)
}

// Parse validates roster YAML: every entry needs an ID, IDs must be
// unique, and negative ceilings are rejected.
func Parse(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	seen := make(map[string]bool, len(r.Contributors))
	for i, entry := range r.Contributors {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, fmt.Errorf("roster entry %d: id is required", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("roster entry %d: duplicate id %q", i+1, id)
		}
		if entry.MaxLoad < 0 {
			return nil, fmt.Errorf("roster entry %q: max_load cannot be negative", id)
		}
		seen[id] = true
		r.Contributors[i].ID = id
	}
	return &r, nil
}

// TrackerContributors converts roster entries to the tracker's
// contributor type.
func (r *Roster) TrackerContributors() []tracker.Contributor {
	out := make([]tracker.Contributor, len(r.Contributors))
	for i, entry := range r.Contributors {
		out[i] = tracker.Contributor{ID: entry.ID, Name: entry.Name}
	}
	return out
}

// Ceilings returns the per-contributor load limits declared in the
// roster. Entries without a limit are absent.
func (r *Roster) Ceilings() map[string]int {
	out := make(map[string]int)
	for _, entry := range r.Contributors {
		if entry.MaxLoad > 0 {
			out[entry.ID] = entry.MaxLoad
		}
	}
	return out
}
