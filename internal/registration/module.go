// Package registration provides the "create collection point" page module.
package registration

import (
	"github.com/gin-gonic/gin"

	apphttp "ecoleta/internal/http"
	"ecoleta/internal/registration/domain"
	"ecoleta/internal/registration/handler"
	"ecoleta/internal/registration/service"
	"ecoleta/platform/config"
	"ecoleta/platform/logger"
)

// Module serves the server-rendered registration pages.
type Module struct {
	handler     *handler.Handler
	submitGuard []gin.HandlerFunc
}

// NewModule wires the page to its ports. A non-nil limiter throttles form
// submissions per client IP.
func NewModule(items service.ItemCatalog, geography service.Geography, points service.PointCreator, cfg config.MapConfig, log *logger.Logger, limiter handler.SubmitLimiter) (*Module, error) {
	svc := service.New(items, geography, points, log)

	center := domain.DefaultPosition
	if cfg.GetMapDefaultLat() != 0 || cfg.GetMapDefaultLng() != 0 {
		center = domain.Position{Latitude: cfg.GetMapDefaultLat(), Longitude: cfg.GetMapDefaultLng()}
	}

	h, err := handler.New(svc, handler.Options{TileURL: cfg.GetMapTileURL(), DefaultCenter: center})
	if err != nil {
		return nil, err
	}
	m := &Module{handler: h}
	if limiter != nil {
		m.submitGuard = append(m.submitGuard, h.SubmitGuard(limiter, log))
	}
	return m, nil
}

func (m *Module) Name() string {
	return "registration"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/", m.handler.Home)
	ctx.Engine.GET("/create-point", m.handler.CreatePointForm)
	ctx.Engine.GET("/create-point/cities", m.handler.Cities)

	submit := append(append([]gin.HandlerFunc{}, m.submitGuard...), m.handler.Submit)
	ctx.Engine.POST("/create-point", submit...)
}

var _ apphttp.Module = (*Module)(nil)
