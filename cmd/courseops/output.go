package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"courseops/internal/format"
	"courseops/internal/tracker"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeItemList(items []tracker.Item) error {
	for _, item := range items {
		if err := writePlain("%s\n", formatItemLine(item)); err != nil {
			return err
		}
	}
	return nil
}

func formatItemLine(item tracker.Item) string {
	line := fmt.Sprintf("○ %s [%s] - %s", item.ID, item.State, item.Title)
	if item.Assignee != "" {
		line += " @" + item.Assignee
	}
	return line
}

func writeItemDetail(item tracker.Item) error {
	lines := []string{
		fmt.Sprintf("id: %s", item.ID),
		fmt.Sprintf("title: %s", item.Title),
		fmt.Sprintf("state: %s", item.State),
		fmt.Sprintf("created_at: %s", formatTime(item.CreatedAt)),
		fmt.Sprintf("updated_at: %s", formatTime(item.UpdatedAt)),
	}

	if item.Assignee != "" {
		lines = append(lines, fmt.Sprintf("assignee: %s", item.Assignee))
	}
	if item.Milestone != "" {
		lines = append(lines, fmt.Sprintf("milestone: %s", item.Milestone))
	}
	if item.ClosedAt != nil {
		lines = append(lines, fmt.Sprintf("closed_at: %s", formatTime(*item.ClosedAt)))
	}
	if len(item.Labels) > 0 {
		lines = append(lines, fmt.Sprintf("labels: %s", strings.Join(item.Labels, ", ")))
	}
	if item.Body != "" {
		lines = append(lines, fmt.Sprintf("body: %s", item.Body))
	}

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
