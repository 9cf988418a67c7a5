package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"courseops/internal/tracker"
)

const (
	defaultBaseURL     = "https://api.github.com"
	defaultHTTPTimeout = 15 * time.Second
	httpTimeoutEnvKey  = "COURSEOPS_HTTP_TIMEOUT"
	acceptHeader       = "application/vnd.github+json"
	perPage            = 100
)

// Client talks to the GitHub REST v3 API for a single repository.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	owner   string
	repo    string
}

var (
	_ tracker.Tracker        = (*Client)(nil)
	_ tracker.MilestoneStore = (*Client)(nil)
	_ tracker.LabelStore     = (*Client)(nil)
)

// NewClient creates a client for an owner/name repository. An empty
// baseURL selects api.github.com; set it for tests or GitHub
// Enterprise. An empty token sends unauthenticated requests.
func NewClient(baseURL, repo, token string) (*Client, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(repo), "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("repo must be owner/name, got %q", repo)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeoutFromEnv()},
		token:   strings.TrimSpace(token),
		owner:   owner,
		repo:    name,
	}, nil
}

// Repo returns the owner/name this client operates on.
func (c *Client) Repo() string {
	return c.owner + "/" + c.repo
}

func (c *Client) repoPath(parts ...string) string {
	path := "/repos/" + c.owner + "/" + c.repo
	for _, part := range parts {
		path += "/" + url.PathEscape(part)
	}
	return path
}

// fetchAllPages calls fetch with increasing page numbers until a page
// comes back short.
func fetchAllPages(fetch func(page int) (int, error)) error {
	for page := 1; ; page++ {
		n, err := fetch(page)
		if err != nil {
			return err
		}
		if n < perPage {
			return nil
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	statusErr := &tracker.StatusError{Status: resp.StatusCode}
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
		statusErr.Message = errResp.Message
	} else {
		statusErr.Message = resp.Status
	}
	return statusErr
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
