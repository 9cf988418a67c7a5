package main

import (
	"fmt"
	"strings"
)

func splitCommaList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func requireWeekFlag(week int) error {
	if week < 1 {
		return fmt.Errorf("--week must be 1 or greater, got %d", week)
	}
	return nil
}
