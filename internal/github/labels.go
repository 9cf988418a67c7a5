package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"courseops/internal/tracker"
)

// EnsureLabels creates the definitions that do not exist yet. Existing
// labels keep their color and description.
func (c *Client) EnsureLabels(ctx context.Context, defs []tracker.LabelDef) error {
	existing, err := c.ListLabelDefs(ctx)
	if err != nil {
		return err
	}
	present := make(map[string]struct{}, len(existing))
	for _, def := range existing {
		present[strings.ToLower(def.Name)] = struct{}{}
	}

	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return fmt.Errorf("label name is required")
		}
		if _, ok := present[strings.ToLower(name)]; ok {
			continue
		}

		req := labelCreateRequest{
			Name: name,
			// The API wants the hex color without a leading #.
			Color:       strings.TrimPrefix(def.Color, "#"),
			Description: def.Description,
		}
		if err := c.do(ctx, http.MethodPost, c.repoPath("labels"), nil, req, nil); err != nil {
			return err
		}
		present[strings.ToLower(name)] = struct{}{}
	}
	return nil
}

// ListLabelDefs returns the repository's label definitions.
func (c *Client) ListLabelDefs(ctx context.Context) ([]tracker.LabelDef, error) {
	query := url.Values{"per_page": {strconv.Itoa(perPage)}}

	defs := []tracker.LabelDef{}
	err := fetchAllPages(func(page int) (int, error) {
		query.Set("page", strconv.Itoa(page))
		var batch []label
		if err := c.do(ctx, http.MethodGet, c.repoPath("labels"), query, nil, &batch); err != nil {
			return 0, err
		}
		for _, l := range batch {
			defs = append(defs, tracker.LabelDef{Name: l.Name, Color: l.Color, Description: l.Description})
		}
		return len(batch), nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}
