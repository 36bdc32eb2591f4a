// Package http holds what the router needs from the composition root: the
// module contract and the assembled App.
package http

import (
	"context"

	"ecoleta/platform/config"
	"ecoleta/platform/logger"
)

// RouterConfig is the slice of configuration the router reads: listen
// address, CORS policy and the admin JWT secret.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs /healthz. In production it pings the pgx pool.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is built by cmd/api and handed to router.New.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health may be nil, in which case /healthz always answers ok.
	Health HealthChecker
	// Modules are mounted in order: geography, items, points, then the page.
	Modules []Module
}
