// Package items provides the item catalog bounded context module.
package items

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"ecoleta/internal/adapters/storage"
	apphttp "ecoleta/internal/http"
	"ecoleta/internal/items/handler"
	"ecoleta/internal/items/repository"
	"ecoleta/internal/items/service"
	"ecoleta/platform/config"
	"ecoleta/platform/logger"
	"ecoleta/platform/validator"
)

//go:embed assets/*.svg
var assetsFS embed.FS

// Module is the item catalog module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// ItemsConfig is the configuration the module reads.
type ItemsConfig interface {
	config.AssetsConfig
	config.MinIOConfig
}

// NewModule creates and initializes the item module. storageSvc may be nil.
func NewModule(pool *pgxpool.Pool, storageSvc storage.StorageService, cfg ItemsConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	return newModule(repo, storageSvc, cfg, val, log)
}

func newModule(repo repository.Repository, storageSvc storage.StorageService, cfg ItemsConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, storageSvc, cfg.GetMinioBucketItemImages(), cfg.GetAssetsBaseURL(), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "items"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts item routes, the legacy /items alias and the bundled
// item icons under /uploads.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/items", m.handler.List)
	ctx.Engine.GET("/items", m.handler.List)

	icons, err := fs.Sub(assetsFS, "assets")
	if err == nil {
		ctx.Engine.StaticFS("/uploads", http.FS(icons))
	}

	if ctx.Admin != nil {
		adminGroup := ctx.Admin.Group("/items")
		adminGroup.POST("", m.handler.Create)
		adminGroup.DELETE("/:id", m.handler.Delete)
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
