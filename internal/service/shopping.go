package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/types"
)

// ShoppingListFilename is the attachment name of a downloaded list
const ShoppingListFilename = "shopping_list.txt"

// ShoppingListService renders a user's cart as a plain text shopping list
type ShoppingListService struct {
	store  *repository.Store
	access *AccessPolicy
}

func NewShoppingListService(store *repository.Store, access *AccessPolicy) *ShoppingListService {
	return &ShoppingListService{store: store, access: access}
}

// Lines returns one "<name> - <total>, <unit>" line per ingredient and unit
// across every recipe in the cart, sorted by name then unit
func (s *ShoppingListService) Lines(ctx context.Context, user types.Viewer) ([]string, error) {
	if !user.Authenticated() {
		return nil, UnauthorizedError("authentication credentials were not provided")
	}
	items, err := s.store.ShoppingListItems(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shopping list: %w", err)
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s - %d, %s", item.Name, item.Total, item.MeasurementUnit)
	}
	shoppingListLines.Observe(float64(len(lines)))
	return lines, nil
}

// Render returns the list as a text body. An empty cart gives an empty body.
func (s *ShoppingListService) Render(ctx context.Context, user types.Viewer) ([]byte, error) {
	lines, err := s.Lines(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []byte{}, nil
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}
