// Package points provides the collection point bounded context module.
package points

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"ecoleta/internal/events"
	apphttp "ecoleta/internal/http"
	"ecoleta/internal/points/handler"
	"ecoleta/internal/points/repository"
	"ecoleta/internal/points/service"
	"ecoleta/platform/config"
	"ecoleta/platform/httpkit"
	"ecoleta/platform/logger"
	"ecoleta/platform/validator"
)

// Module is the points module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	limiter *httpkit.IPRateLimiter
}

// NewModule creates and initializes the points module.
func NewModule(pool *pgxpool.Pool, items service.ItemChecker, eventBus events.Bus, val *validator.Validator, cfg config.PointsConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, items, eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		limiter: httpkit.NewPerMinuteRateLimiter(cfg.GetPointsRateLimitPerMinute(), log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "points"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RateLimiter is shared with the registration page so both write paths
// count against the same per-IP budget.
func (m *Module) RateLimiter() *httpkit.IPRateLimiter {
	return m.limiter
}

// RegisterRoutes mounts point routes and the legacy POST /points alias.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/points")
	group.POST("", m.limiter.RateLimit(), m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.GetByID)

	ctx.Engine.POST("/points", m.limiter.RateLimit(), m.handler.Create)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
