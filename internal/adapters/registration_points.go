package adapters

import (
	"context"

	pointsvc "ecoleta/internal/points/service"
	"ecoleta/internal/points/transport"
	"ecoleta/internal/registration/domain"
	"ecoleta/internal/registration/service"
	"ecoleta/platform/apperr"
	"ecoleta/platform/validator"
)

// RegistrationPointCreator submits page payloads through the points service,
// applying the same validation as POST /points.
type RegistrationPointCreator struct {
	points *pointsvc.Service
	val    *validator.Validator
}

// NewRegistrationPointCreator creates a new point creator adapter.
func NewRegistrationPointCreator(points *pointsvc.Service, val *validator.Validator) *RegistrationPointCreator {
	return &RegistrationPointCreator{points: points, val: val}
}

// CreatePoint validates and stores the payload, returning the new point id.
func (a *RegistrationPointCreator) CreatePoint(ctx context.Context, payload domain.Payload) (int64, error) {
	req := ToCreatePointRequest(payload)
	if err := a.val.Struct(req); err != nil {
		return 0, apperr.Validation("validation failed").WithDetails(validator.FieldErrors(err))
	}

	point, err := a.points.Create(ctx, req)
	if err != nil {
		return 0, err
	}
	return point.ID, nil
}

// ToCreatePointRequest maps the page payload field for field.
func ToCreatePointRequest(payload domain.Payload) transport.CreatePointRequest {
	return transport.CreatePointRequest{
		Name:      payload.Name,
		Email:     payload.Email,
		Whatsapp:  payload.Whatsapp,
		UF:        payload.UF,
		City:      payload.City,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		Items:     append([]int64{}, payload.Items...),
	}
}

var _ service.PointCreator = (*RegistrationPointCreator)(nil)
