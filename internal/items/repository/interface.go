package repository

import (
	"context"
	"time"
)

// Item is a collectible waste category.
type Item struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Image     string    `db:"image"`
	CreatedAt time.Time `db:"created_at"`
}

// CreateItemParams contains data for creating an item.
type CreateItemParams struct {
	Title string
	Image string
}

// Repository defines item persistence.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id int64) (Item, error)
	Create(ctx context.Context, params CreateItemParams) (Item, error)
	// Delete removes the item and returns it so the caller can clean up its image.
	Delete(ctx context.Context, id int64) (Item, error)
	// ExistingIDs returns the subset of ids that exist.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
