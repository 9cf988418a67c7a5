package tracker

import (
	"fmt"
	"strings"
)

// ItemState defines allowed lifecycle states for tracked items.
type ItemState string

const (
	StateOpen   ItemState = "open"
	StateClosed ItemState = "closed"
)

// StateFilter selects items by state when listing.
type StateFilter string

const (
	FilterOpen   StateFilter = "open"
	FilterClosed StateFilter = "closed"
	FilterAll    StateFilter = "all"
)

var validItemStates = map[ItemState]struct{}{
	StateOpen:   {},
	StateClosed: {},
}

var validStateFilters = map[StateFilter]struct{}{
	FilterOpen:   {},
	FilterClosed: {},
	FilterAll:    {},
}

func IsValidItemState(state ItemState) bool {
	_, ok := validItemStates[state]
	return ok
}

func ParseItemState(raw string) (ItemState, error) {
	value := ItemState(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("state is required")
	}
	if !IsValidItemState(value) {
		return "", fmt.Errorf("invalid state: %s", value)
	}
	return value, nil
}

func ParseStateFilter(raw string) (StateFilter, error) {
	value := StateFilter(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return FilterOpen, nil
	}
	if _, ok := validStateFilters[value]; !ok {
		return "", fmt.Errorf("invalid state filter: %s", value)
	}
	return value, nil
}

// Matches reports whether an item state passes the filter.
func (f StateFilter) Matches(state ItemState) bool {
	switch f {
	case FilterAll:
		return true
	case FilterClosed:
		return state == StateClosed
	default:
		return state == StateOpen
	}
}
