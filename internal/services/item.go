package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/homelists/homelists/internal/model"
	"github.com/homelists/homelists/internal/store"
)

// ItemService handles item mutations within a list.
type ItemService struct {
	store store.Store
}

func NewItemService(s store.Store) *ItemService { return &ItemService{store: s} }

// Add appends an item. Whitespace-only content is rejected before any store
// call is made.
func (s *ItemService) Add(ctx context.Context, listID, content string) (*model.Item, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", model.ErrValidation)
	}
	return s.store.Items().Create(ctx, &model.Item{ListID: listID, Content: content})
}

// List returns the items of a list ordered by creation time ascending.
func (s *ItemService) List(ctx context.Context, listID string) ([]*model.Item, error) {
	return s.store.Items().ListByList(ctx, listID)
}

// SetChecked writes the checked flag. The caller patches its local state only
// after this returns, so a failure leaves client state untouched.
func (s *ItemService) SetChecked(ctx context.Context, itemID string, checked bool) error {
	return s.store.Items().SetChecked(ctx, itemID, checked)
}

// Delete removes an item by ID.
func (s *ItemService) Delete(ctx context.Context, itemID string) error {
	return s.store.Items().Delete(ctx, itemID)
}
