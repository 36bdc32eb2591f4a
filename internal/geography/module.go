package geography

import (
	apphttp "ecoleta/internal/http"
	"ecoleta/platform/config"
	"ecoleta/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module wires the IBGE-backed state and city routes.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule builds the module. A nil redisClient selects the in-memory cache.
func NewModule(cfg config.GeographyConfig, redisClient *redis.Client, log *logger.Logger) *Module {
	var cache Cache = NewMemoryCache()
	if redisClient != nil {
		cache = NewRedisCache(redisClient)
	}

	client := NewClient(cfg.GetIBGEBaseURL(), cfg.GetIBGETimeout(), log)
	svc := NewService(client, cache, cfg.GetGeographyCacheTTL(), log)
	return &Module{handler: NewHandler(svc), service: svc}
}

func (m *Module) Name() string {
	return "geography"
}

// Service returns the service for the registration page adapters.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/geography")
	group.GET("/states", m.handler.ListStates)
	group.GET("/states/:uf/cities", m.handler.ListCities)
}

var _ apphttp.Module = (*Module)(nil)
