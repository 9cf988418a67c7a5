package main

import (
	"context"
	"errors"
	"net"
	"os"

	"courseops/internal/api"
	"courseops/internal/tracker"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "unauthorized", "forbidden":
			lines = append(lines, "hint: verify COURSEOPS_API_TOKEN and COURSEOPS_ADMIN_TOKEN configuration.")
		}
		if apiErr.Code == "" {
			lines = append(lines, "hint: verify COURSEOPS_API_URL points to a courseops server.")
		}
		if apiErr.Status >= 500 {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	var statusErr *tracker.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Status == 401 || statusErr.Status == 403:
			lines = append(lines, "hint: verify COURSEOPS_TOKEN (or GITHUB_TOKEN) grants access to the configured repo.")
		case statusErr.Status == 404:
			lines = append(lines, "hint: check the repo config key; the repository or resource was not found.")
		case statusErr.Status == 429 || statusErr.Status >= 500:
			lines = append(lines, "hint: the tracker is throttling or unavailable; retry shortly.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase COURSEOPS_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure a courseops server is running at COURSEOPS_API_URL.",
			"hint: start local server manually with: courseops srv",
			"hint: you can increase COURSEOPS_HTTP_TIMEOUT for slower environments.",
		)
		if snapHint := snapStartHint(); snapHint != "" {
			lines = append(lines, snapHint)
		}
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func snapStartHint() string {
	if os.Getenv("SNAP") == "" && os.Getenv("SNAP_NAME") == "" {
		return ""
	}
	return "hint: in snap installs, start the daemon with: snap start courseops.daemon"
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
