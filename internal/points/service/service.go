package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"ecoleta/internal/events"
	"ecoleta/internal/points/repository"
	"ecoleta/internal/points/transport"
	"ecoleta/platform/apperr"
	"ecoleta/platform/logger"
	"ecoleta/platform/metrics"
	"ecoleta/platform/phone"
	"ecoleta/platform/sanitize"
)

const (
	msgInvalidWhatsapp   = "whatsapp must be a valid phone number"
	msgWhatsappNotMobile = "whatsapp must be a mobile number"
	msgUnknownItems      = "one or more items do not exist"
	msgInvalidItems      = "items must be a comma-separated list of ids"
	msgNameRequired      = "name is required"
)

// ItemChecker reports which item ids are not in the catalog.
type ItemChecker interface {
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// Service provides business logic for collection points.
type Service struct {
	repo     repository.Repository
	items    ItemChecker
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new point service.
func New(repo repository.Repository, items ItemChecker, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, items: items, eventBus: eventBus, log: log}
}

// Create registers a collection point. The request must already have passed
// struct validation.
func (s *Service) Create(ctx context.Context, req transport.CreatePointRequest) (transport.PointResponse, error) {
	params, err := s.normalize(ctx, req)
	if err != nil {
		return transport.PointResponse{}, err
	}

	point, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.PointResponse{}, err
	}

	items, err := s.repo.ItemsFor(ctx, []int64{point.ID})
	if err != nil {
		return transport.PointResponse{}, err
	}

	metrics.PointsCreated.WithLabelValues(point.UF).Inc()
	s.log.WithContext(ctx).Info("point created", "id", point.ID, "uf", point.UF, "city", point.City, "items", len(params.ItemIDs))

	if s.eventBus != nil {
		titles := make([]string, 0, len(items[point.ID]))
		for _, item := range items[point.ID] {
			titles = append(titles, item.Title)
		}
		s.eventBus.Publish(ctx, events.PointCreated{
			BaseEvent:  events.NewBaseEvent(),
			PointID:    point.ID,
			Name:       point.Name,
			Email:      point.Email,
			City:       point.City,
			UF:         point.UF,
			ItemIDs:    params.ItemIDs,
			ItemTitles: titles,
		})
	}

	return toResponse(point, items[point.ID]), nil
}

// GetByID returns a point with its items.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.PointResponse, error) {
	point, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PointResponse{}, err
	}

	items, err := s.repo.ItemsFor(ctx, []int64{id})
	if err != nil {
		return transport.PointResponse{}, err
	}
	return toResponse(point, items[id]), nil
}

// List returns points in a UF/city accepting any of the requested items.
func (s *Service) List(ctx context.Context, req transport.ListPointsRequest) (transport.PointListResponse, error) {
	itemIDs, err := ParseItemIDs(req.Items)
	if err != nil {
		return transport.PointListResponse{}, err
	}

	points, err := s.repo.List(ctx, repository.ListPointsParams{
		UF:      strings.ToUpper(strings.TrimSpace(req.UF)),
		City:    strings.TrimSpace(req.City),
		ItemIDs: itemIDs,
	})
	if err != nil {
		return transport.PointListResponse{}, err
	}

	ids := make([]int64, 0, len(points))
	for _, p := range points {
		ids = append(ids, p.ID)
	}
	items, err := s.repo.ItemsFor(ctx, ids)
	if err != nil {
		return transport.PointListResponse{}, err
	}

	resp := transport.PointListResponse{Points: make([]transport.PointResponse, 0, len(points)), Total: len(points)}
	for _, p := range points {
		resp.Points = append(resp.Points, toResponse(p, items[p.ID]))
	}
	return resp, nil
}

func (s *Service) normalize(ctx context.Context, req transport.CreatePointRequest) (repository.CreatePointParams, error) {
	name := sanitize.Text(req.Name)
	if name == "" {
		return repository.CreatePointParams{}, apperr.Validation(msgNameRequired).WithDetails(map[string]string{"name": "required"})
	}

	whatsapp, ok := phone.ParseE164(req.Whatsapp)
	if !ok {
		return repository.CreatePointParams{}, apperr.Validation(msgInvalidWhatsapp).WithDetails(map[string]string{"whatsapp": "phone"})
	}
	if !phone.IsMobile(whatsapp) {
		return repository.CreatePointParams{}, apperr.Validation(msgWhatsappNotMobile).WithDetails(map[string]string{"whatsapp": "mobile"})
	}

	itemIDs := append([]int64(nil), req.Items...)
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

	if s.items != nil {
		missing, err := s.items.MissingIDs(ctx, itemIDs)
		if err != nil {
			return repository.CreatePointParams{}, err
		}
		if len(missing) > 0 {
			return repository.CreatePointParams{}, apperr.Validation(msgUnknownItems).WithDetails(map[string][]int64{"items": missing})
		}
	}

	return repository.CreatePointParams{
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Whatsapp:  whatsapp,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		City:      sanitize.Text(req.City),
		UF:        strings.ToUpper(strings.TrimSpace(req.UF)),
		ItemIDs:   itemIDs,
	}, nil
}

// ParseItemIDs parses "1,2, 3" into ids. An empty string yields no filter.
func ParseItemIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, apperr.BadRequest(msgInvalidItems)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toResponse(p repository.Point, items []repository.PointItem) transport.PointResponse {
	resp := transport.PointResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Whatsapp:  p.Whatsapp,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		City:      p.City,
		UF:        p.UF,
		Items:     make([]transport.PointItemResponse, 0, len(items)),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, transport.PointItemResponse{ID: item.ItemID, Title: item.Title})
	}
	return resp
}
