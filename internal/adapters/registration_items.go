package adapters

import (
	"context"
	"fmt"

	itemsvc "ecoleta/internal/items/service"
	"ecoleta/internal/registration/service"
)

// RegistrationItemCatalog adapts the item service for the registration page,
// satisfying service.ItemCatalog.
type RegistrationItemCatalog struct {
	items *itemsvc.Service
}

// NewRegistrationItemCatalog creates a new item catalog adapter.
func NewRegistrationItemCatalog(items *itemsvc.Service) *RegistrationItemCatalog {
	return &RegistrationItemCatalog{items: items}
}

// ListItems returns the catalog with resolved image URLs.
func (a *RegistrationItemCatalog) ListItems(ctx context.Context) ([]service.Item, error) {
	items, err := a.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("registration items adapter: %w", err)
	}

	result := make([]service.Item, 0, len(items))
	for _, item := range items {
		result = append(result, service.Item{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
		})
	}
	return result, nil
}

var _ service.ItemCatalog = (*RegistrationItemCatalog)(nil)
