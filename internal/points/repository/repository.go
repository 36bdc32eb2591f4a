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
	pointNotFoundMessage  = "point not found"
	unknownItemsMessage   = "one or more items do not exist"
	pgForeignKeyViolation = "23503"

	pointColumns = `id, name, email, whatsapp, latitude, longitude, city, uf, created_at`
)

// Repo implements the point repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new point repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a point and its item links in one transaction.
func (r *Repo) Create(ctx context.Context, params CreatePointParams) (Point, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Point{}, fmt.Errorf("begin create point: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO points (name, email, whatsapp, latitude, longitude, city, uf)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + pointColumns

	point, err := scanPoint(tx.QueryRow(ctx, query,
		params.Name, params.Email, params.Whatsapp, params.Latitude, params.Longitude, params.City, params.UF,
	))
	if err != nil {
		return Point{}, fmt.Errorf("insert point: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO point_items (point_id, item_id) SELECT $1, unnest($2::bigint[])`,
		point.ID, params.ItemIDs,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return Point{}, apperr.Validation(unknownItemsMessage)
		}
		return Point{}, fmt.Errorf("insert point items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Point{}, fmt.Errorf("commit create point: %w", err)
	}
	return point, nil
}

// GetByID retrieves a point by ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Point, error) {
	point, err := scanPoint(r.pool.QueryRow(ctx, `SELECT `+pointColumns+` FROM points WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Point{}, apperr.NotFound(pointNotFoundMessage)
		}
		return Point{}, fmt.Errorf("get point by id: %w", err)
	}
	return point, nil
}

// List returns points matching the filters, ordered by id.
func (r *Repo) List(ctx context.Context, params ListPointsParams) ([]Point, error) {
	itemIDs := params.ItemIDs
	if itemIDs == nil {
		itemIDs = []int64{}
	}

	query := `
		SELECT ` + pointColumns + `
		FROM points p
		WHERE ($1 = '' OR p.uf = $1)
		  AND ($2 = '' OR p.city = $2)
		  AND (cardinality($3::bigint[]) = 0 OR EXISTS (
		      SELECT 1 FROM point_items pi WHERE pi.point_id = p.id AND pi.item_id = ANY($3)
		  ))
		ORDER BY p.id`

	rows, err := r.pool.Query(ctx, query, params.UF, params.City, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	defer rows.Close()

	points := make([]Point, 0)
	for rows.Next() {
		point, err := scanPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points: %w", err)
	}
	return points, nil
}

// ItemsFor loads item links with titles for the given points.
func (r *Repo) ItemsFor(ctx context.Context, pointIDs []int64) (map[int64][]PointItem, error) {
	result := make(map[int64][]PointItem, len(pointIDs))
	if len(pointIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT pi.point_id, i.id, i.title
		FROM point_items pi
		JOIN items i ON i.id = pi.item_id
		WHERE pi.point_id = ANY($1)
		ORDER BY pi.point_id, i.id`

	rows, err := r.pool.Query(ctx, query, pointIDs)
	if err != nil {
		return nil, fmt.Errorf("list point items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item PointItem
		if err := rows.Scan(&item.PointID, &item.ItemID, &item.Title); err != nil {
			return nil, fmt.Errorf("scan point item: %w", err)
		}
		result[item.PointID] = append(result[item.PointID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate point items: %w", err)
	}
	return result, nil
}

func scanPoint(row pgx.Row) (Point, error) {
	var p Point
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Whatsapp, &p.Latitude, &p.Longitude, &p.City, &p.UF, &p.CreatedAt)
	return p, err
}
