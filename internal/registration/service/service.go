// Package service loads the data the registration page needs and submits
// completed forms. Other modules are reached only through the ports below.
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ecoleta/internal/registration/domain"
	"ecoleta/platform/logger"
)

// Item is a selectable collection category as shown on the page.
type Item struct {
	ID       int64
	Title    string
	ImageURL string
}

// ItemCatalog lists the collectible item categories.
type ItemCatalog interface {
	ListItems(ctx context.Context) ([]Item, error)
}

// Geography lists states and the cities of a state.
type Geography interface {
	ListUFs(ctx context.Context) ([]string, error)
	ListCities(ctx context.Context, uf string) ([]string, error)
}

// PointCreator persists a submitted point and returns its id.
type PointCreator interface {
	CreatePoint(ctx context.Context, payload domain.Payload) (int64, error)
}

// Page is everything the create-point template renders besides the form.
type Page struct {
	Items     []Item
	UFs       []string
	Cities    []string
	ItemsErr  error
	UFsErr    error
	CitiesErr error
}

// Failed reports whether any lookup failed.
func (p Page) Failed() bool {
	return p.ItemsErr != nil || p.UFsErr != nil || p.CitiesErr != nil
}

// Service backs the registration page.
type Service struct {
	items     ItemCatalog
	geography Geography
	points    PointCreator
	log       *logger.Logger
}

// New creates a registration service.
func New(items ItemCatalog, geography Geography, points PointCreator, log *logger.Logger) *Service {
	return &Service{items: items, geography: geography, points: points, log: log}
}

// LoadPage fetches the item catalog, the UF list and, when a UF is selected,
// its cities. The lookups run concurrently and fail independently so the page
// can still render whatever loaded.
func (s *Service) LoadPage(ctx context.Context, form *domain.Form) Page {
	var page Page
	var g errgroup.Group

	g.Go(func() error {
		page.Items, page.ItemsErr = s.items.ListItems(ctx)
		return nil
	})
	g.Go(func() error {
		page.UFs, page.UFsErr = s.geography.ListUFs(ctx)
		return nil
	})
	if form.HasUF() {
		uf := form.UF()
		g.Go(func() error {
			page.Cities, page.CitiesErr = s.geography.ListCities(ctx, uf)
			return nil
		})
	}
	_ = g.Wait()

	reqLog := s.log.WithContext(ctx)
	if page.ItemsErr != nil {
		reqLog.Error("registration page: items unavailable", "error", page.ItemsErr)
	}
	if page.UFsErr != nil {
		reqLog.Error("registration page: states unavailable", "error", page.UFsErr)
	}
	if page.CitiesErr != nil {
		reqLog.Error("registration page: cities unavailable", "uf", form.UF(), "error", page.CitiesErr)
	}
	return page
}

// Cities returns the cities of uf, or nothing for the unselected sentinel.
func (s *Service) Cities(ctx context.Context, uf string) ([]string, error) {
	if uf == "" || uf == domain.Unselected {
		return []string{}, nil
	}
	return s.geography.ListCities(ctx, uf)
}

// Submit sends the form payload in a single create call.
func (s *Service) Submit(ctx context.Context, form *domain.Form) (int64, error) {
	id, err := s.points.CreatePoint(ctx, form.Payload())
	if err != nil {
		return 0, err
	}
	s.log.WithContext(ctx).Info("collection point registered from page", "id", id)
	return id, nil
}
