package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecoleta/platform/apperr"
)

const (
	itemNotFoundMessage = "item not found"
	itemInUseMessage    = "item is referenced by collection points"

	pgForeignKeyViolation = "23503"
)

// Repo implements the item repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns every item ordered by id.
func (r *Repo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, image, created_at FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Image, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// GetByID retrieves an item by ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Item, error) {
	var item Item
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, image, created_at FROM items WHERE id = $1`, id,
	).Scan(&item.ID, &item.Title, &item.Image, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return Item{}, fmt.Errorf("get item by id: %w", err)
	}
	return item, nil
}

// Create inserts an item.
func (r *Repo) Create(ctx context.Context, params CreateItemParams) (Item, error) {
	query := `
		INSERT INTO items (title, image)
		VALUES ($1, $2)
		RETURNING id, title, image, created_at`

	var item Item
	if err := r.pool.QueryRow(ctx, query, params.Title, params.Image).Scan(
		&item.ID, &item.Title, &item.Image, &item.CreatedAt,
	); err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// Delete removes an item that no point references.
func (r *Repo) Delete(ctx context.Context, id int64) (Item, error) {
	var item Item
	err := r.pool.QueryRow(ctx,
		`DELETE FROM items WHERE id = $1 RETURNING id, title, image, created_at`, id,
	).Scan(&item.ID, &item.Title, &item.Image, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return Item{}, apperr.Conflict(itemInUseMessage)
		}
		return Item{}, fmt.Errorf("delete item: %w", err)
	}
	return item, nil
}

// ExistingIDs returns which of ids are present in the items table.
func (r *Repo) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id FROM items WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("existing item ids: %w", err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect item ids: %w", err)
	}
	return found, nil
}
