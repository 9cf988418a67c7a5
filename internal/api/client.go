package api

import (
	"bytes"
	"context"
	"encoding/json"
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
	defaultHTTPTimeout = 10 * time.Second
	httpTimeoutEnvKey  = "COURSEOPS_HTTP_TIMEOUT"
	apiTokenEnvKey     = "COURSEOPS_API_TOKEN"
	adminTokenEnvKey   = "COURSEOPS_ADMIN_TOKEN"
)

// Client is an HTTP client for the courseops local tracker API.
type Client struct {
	baseURL    string
	http       *http.Client
	authToken  string
	adminToken string
}

// NewClient creates a new API client. Tokens default from the
// environment and can be overridden with SetToken.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: httpTimeoutFromEnv()},
		authToken:  strings.TrimSpace(os.Getenv(apiTokenEnvKey)),
		adminToken: strings.TrimSpace(os.Getenv(adminTokenEnvKey)),
	}
}

// SetToken replaces the bearer token used for requests.
func (c *Client) SetToken(token string) {
	c.authToken = strings.TrimSpace(token)
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/v1/info", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateItem(ctx context.Context, req ItemCreateRequest) (tracker.Item, error) {
	var item tracker.Item
	err := c.do(ctx, http.MethodPost, "/v1/items", nil, req, &item)
	return item, err
}

func (c *Client) GetItem(ctx context.Context, id string) (tracker.Item, error) {
	var item tracker.Item
	err := c.do(ctx, http.MethodGet, "/v1/items/"+url.PathEscape(id), nil, nil, &item)
	return item, err
}

func (c *Client) UpdateItem(ctx context.Context, id string, req ItemUpdateRequest) (tracker.Item, error) {
	var item tracker.Item
	err := c.do(ctx, http.MethodPatch, "/v1/items/"+url.PathEscape(id), nil, req, &item)
	return item, err
}

func (c *Client) ListItems(ctx context.Context, query url.Values) ([]tracker.Item, error) {
	var items []tracker.Item
	err := c.do(ctx, http.MethodGet, "/v1/items", query, nil, &items)
	return items, err
}

func (c *Client) SetAssignee(ctx context.Context, id, assignee string) (tracker.Item, error) {
	var item tracker.Item
	err := c.do(ctx, http.MethodPut, "/v1/items/"+url.PathEscape(id)+"/assignee", nil, AssigneeRequest{Assignee: assignee}, &item)
	return item, err
}

func (c *Client) CloseItems(ctx context.Context, ids []string) ([]string, error) {
	var resp ItemIDsResponse
	err := c.do(ctx, http.MethodPost, "/v1/items/close", nil, ItemIDsRequest{IDs: ids}, &resp)
	return resp.IDs, err
}

func (c *Client) ReopenItems(ctx context.Context, ids []string) ([]string, error) {
	var resp ItemIDsResponse
	err := c.do(ctx, http.MethodPost, "/v1/items/reopen", nil, ItemIDsRequest{IDs: ids}, &resp)
	return resp.IDs, err
}

func (c *Client) ListContributors(ctx context.Context) ([]tracker.Contributor, error) {
	var contributors []tracker.Contributor
	err := c.do(ctx, http.MethodGet, "/v1/contributors", nil, nil, &contributors)
	return contributors, err
}

func (c *Client) CreateContributor(ctx context.Context, req ContributorCreateRequest) (tracker.Contributor, error) {
	var contributor tracker.Contributor
	err := c.do(ctx, http.MethodPost, "/v1/contributors", nil, req, &contributor)
	return contributor, err
}

func (c *Client) DeleteContributor(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/contributors/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListMilestones(ctx context.Context) ([]tracker.Milestone, error) {
	var milestones []tracker.Milestone
	err := c.do(ctx, http.MethodGet, "/v1/milestones", nil, nil, &milestones)
	return milestones, err
}

func (c *Client) EnsureMilestone(ctx context.Context, req MilestoneEnsureRequest) (tracker.Milestone, error) {
	var milestone tracker.Milestone
	err := c.do(ctx, http.MethodPost, "/v1/milestones", nil, req, &milestone)
	return milestone, err
}

// ListLabels returns the distinct labels in use on items.
func (c *Client) ListLabels(ctx context.Context) ([]string, error) {
	var labels []string
	err := c.do(ctx, http.MethodGet, "/v1/labels", nil, nil, &labels)
	return labels, err
}

// ListLabelDefs returns stored label definitions.
func (c *Client) ListLabelDefs(ctx context.Context) ([]tracker.LabelDef, error) {
	query := url.Values{"defs": {"true"}}
	var defs []tracker.LabelDef
	err := c.do(ctx, http.MethodGet, "/v1/labels", query, nil, &defs)
	return defs, err
}

func (c *Client) EnsureLabels(ctx context.Context, defs []tracker.LabelDef) ([]tracker.LabelDef, error) {
	var out []tracker.LabelDef
	err := c.do(ctx, http.MethodPut, "/v1/labels", nil, LabelEnsureRequest{Labels: defs}, &out)
	return out, err
}

func (c *Client) ListBoards(ctx context.Context) ([]tracker.Board, error) {
	var boards []tracker.Board
	err := c.do(ctx, http.MethodGet, "/v1/boards", nil, nil, &boards)
	return boards, err
}

func (c *Client) CreateBoard(ctx context.Context, req BoardCreateRequest) (tracker.Board, error) {
	var board tracker.Board
	err := c.do(ctx, http.MethodPost, "/v1/boards", nil, req, &board)
	return board, err
}

func (c *Client) ListCards(ctx context.Context, boardID string) ([]tracker.BoardCard, error) {
	var cards []tracker.BoardCard
	err := c.do(ctx, http.MethodGet, "/v1/boards/"+url.PathEscape(boardID)+"/cards", nil, nil, &cards)
	return cards, err
}

func (c *Client) AddCard(ctx context.Context, boardID string, req CardAddRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/boards/"+url.PathEscape(boardID)+"/cards", nil, req, nil)
}

// CreateToken mints a named API token. Requires the admin token.
func (c *Client) CreateToken(ctx context.Context, name string) (TokenCreateResponse, error) {
	var resp TokenCreateResponse
	err := c.doAdmin(ctx, http.MethodPost, "/v1/admin/tokens", TokenCreateRequest{Name: name}, &resp)
	return resp, err
}

// ListTokens lists stored API tokens. Requires the admin token.
func (c *Client) ListTokens(ctx context.Context) ([]TokenInfo, error) {
	var tokens []TokenInfo
	err := c.doAdmin(ctx, http.MethodGet, "/v1/admin/tokens", nil, &tokens)
	return tokens, err
}

// RevokeToken revokes a token by name. Requires the admin token.
func (c *Client) RevokeToken(ctx context.Context, name string) error {
	return c.doAdmin(ctx, http.MethodDelete, "/v1/admin/tokens/"+url.PathEscape(name), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) doAdmin(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if c.adminToken != "" {
		req.Header.Set("X-Admin-Token", c.adminToken)
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
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
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
	apiErr := &APIError{Status: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Code
		apiErr.ErrorCode = errResp.ErrorCode
		apiErr.Message = errResp.Error
	} else {
		apiErr.Message = resp.Status
	}
	return apiErr
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
