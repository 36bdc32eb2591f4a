package repository

import (
	"context"
	"time"
)

// Point is a registered collection point.
type Point struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Whatsapp  string    `db:"whatsapp"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	City      string    `db:"city"`
	UF        string    `db:"uf"`
	CreatedAt time.Time `db:"created_at"`
}

// PointItem is an item accepted at a point.
type PointItem struct {
	PointID int64  `db:"point_id"`
	ItemID  int64  `db:"item_id"`
	Title   string `db:"title"`
}

// CreatePointParams contains data for creating a point and its item links.
type CreatePointParams struct {
	Name      string
	Email     string
	Whatsapp  string
	Latitude  float64
	Longitude float64
	City      string
	UF        string
	ItemIDs   []int64
}

// ListPointsParams filters points. Empty fields do not filter; points match
// when they accept any of ItemIDs.
type ListPointsParams struct {
	UF      string
	City    string
	ItemIDs []int64
}

// Repository defines point persistence.
type Repository interface {
	// Create inserts the point and its item links atomically.
	Create(ctx context.Context, params CreatePointParams) (Point, error)
	GetByID(ctx context.Context, id int64) (Point, error)
	List(ctx context.Context, params ListPointsParams) ([]Point, error)
	// ItemsFor returns the items of each point, keyed by point id.
	ItemsFor(ctx context.Context, pointIDs []int64) (map[int64][]PointItem, error)
}
