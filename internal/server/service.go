package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"courseops/internal/api"
	"courseops/internal/store"
	"courseops/internal/tracker"
)

// ItemService centralizes item validation and defaults.
type ItemService struct {
	store  store.ItemStore
	prefix string
}

// NewItemService constructs an ItemService.
func NewItemService(itemStore store.ItemStore, prefix string) *ItemService {
	return &ItemService{store: itemStore, prefix: prefix}
}

// Create creates an item from a request.
func (s *ItemService) Create(ctx context.Context, req api.ItemCreateRequest) (tracker.Item, error) {
	var item tracker.Item

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return item, badRequestCode(fmt.Errorf("title is required"), ErrCodeMissingRequired)
	}

	prefix, err := normalizePrefix(s.prefix)
	if err != nil {
		return item, internalError(err)
	}

	state := string(tracker.StateOpen)
	if req.State != nil {
		state, err = normalizeState(*req.State)
		if err != nil {
			return item, err
		}
	}

	labels, err := normalizeLabels(req.Labels)
	if err != nil {
		return item, err
	}

	assignee := valueOrEmpty(req.Assignee)
	if assignee != "" {
		if err := s.requireContributor(ctx, assignee); err != nil {
			return item, err
		}
	}

	id := strings.TrimSpace(req.ID)
	if id != "" {
		if !validateID(id) || !strings.HasPrefix(id, prefix+"-") {
			return item, badRequestCode(fmt.Errorf("invalid id"), ErrCodeInvalidID)
		}
		exists, err := s.store.ItemExists(id)
		if err != nil {
			return item, storeFailure(err)
		}
		if exists {
			return item, conflictCode(fmt.Errorf("id already exists"), ErrCodeItemIDExists)
		}
	} else {
		id, err = store.GenerateID(prefix, s.store.ItemExists)
		if err != nil {
			return item, storeFailure(err)
		}
	}

	now := time.Now().UTC()
	item = tracker.Item{
		ID:        id,
		Title:     title,
		Body:      valueOrEmpty(req.Body),
		State:     tracker.ItemState(state),
		Assignee:  assignee,
		Milestone: valueOrEmpty(req.Milestone),
		Labels:    labels,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if item.State == tracker.StateClosed {
		item.ClosedAt = &now
	}

	if err := s.store.CreateItem(ctx, &item, labels); err != nil {
		if isUniqueConstraint(err) {
			return tracker.Item{}, conflictCode(fmt.Errorf("id already exists"), ErrCodeItemIDExists)
		}
		return tracker.Item{}, storeFailure(err)
	}

	item.Labels = labels
	return item, nil
}

// Get returns an item with labels by id.
func (s *ItemService) Get(ctx context.Context, id string) (tracker.Item, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return tracker.Item{}, storeFailure(err)
	}
	if item == nil {
		return tracker.Item{}, notFoundCode(fmt.Errorf("item not found"), ErrCodeItemNotFound)
	}

	labels, err := s.store.ListLabels(ctx, id)
	if err != nil {
		return tracker.Item{}, storeFailure(err)
	}
	item.Labels = labels
	return *item, nil
}

// Update applies a patch and returns the updated item.
func (s *ItemService) Update(ctx context.Context, id string, req api.ItemUpdateRequest) (tracker.Item, error) {
	update, err := buildItemUpdate(ctx, s, req, time.Now().UTC())
	if err != nil {
		return tracker.Item{}, err
	}

	if err := s.store.UpdateItem(ctx, id, update); err != nil {
		return tracker.Item{}, storeFailure(err)
	}

	return s.Get(ctx, id)
}

// List returns items with labels.
func (s *ItemService) List(ctx context.Context, filter store.ListFilter) ([]tracker.Item, error) {
	items, err := s.store.ListItems(ctx, filter)
	if err != nil {
		return nil, storeFailure(err)
	}
	return s.attachLabels(ctx, items)
}

// SetAssignee sets or clears an assignee and returns the updated item.
// An empty assignee clears the field.
func (s *ItemService) SetAssignee(ctx context.Context, id, assignee string) (tracker.Item, error) {
	assignee = strings.TrimSpace(assignee)
	if assignee != "" {
		if err := s.requireContributor(ctx, assignee); err != nil {
			return tracker.Item{}, err
		}
	}

	ok, err := s.store.SetAssignee(ctx, id, assignee, time.Now().UTC())
	if err != nil {
		return tracker.Item{}, storeFailure(err)
	}
	if !ok {
		return tracker.Item{}, notFoundCode(fmt.Errorf("item not found"), ErrCodeItemNotFound)
	}

	return s.Get(ctx, id)
}

// Close closes items by ids.
func (s *ItemService) Close(ctx context.Context, ids []string) error {
	if err := s.store.CloseItems(ctx, ids, time.Now().UTC()); err != nil {
		return storeFailure(err)
	}
	return nil
}

// Reopen reopens items by ids.
func (s *ItemService) Reopen(ctx context.Context, ids []string) error {
	if err := s.store.ReopenItems(ctx, ids, time.Now().UTC()); err != nil {
		return storeFailure(err)
	}
	return nil
}

func (s *ItemService) requireContributor(ctx context.Context, id string) error {
	contributor, err := s.store.GetContributor(ctx, id)
	if err != nil {
		return storeFailure(err)
	}
	if contributor == nil {
		return badRequestCode(fmt.Errorf("unknown contributor %q", id), ErrCodeContributorNotFound)
	}
	return nil
}

func (s *ItemService) attachLabels(ctx context.Context, items []tracker.Item) ([]tracker.Item, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	labelMap, err := s.store.ListLabelsForItems(ctx, ids)
	if err != nil {
		return nil, storeFailure(err)
	}

	out := make([]tracker.Item, 0, len(items))
	for _, item := range items {
		labels := labelMap[item.ID]
		if labels == nil {
			labels = []string{}
		}
		item.Labels = labels
		out = append(out, item)
	}
	return out, nil
}
