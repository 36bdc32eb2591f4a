package scheduler

import (
	"context"
	"time"

	"ecoleta/platform/logger"
)

const defaultGeographyWarmupInterval = 12 * time.Hour

// GeographyLoader is the lookup surface the warm-up refreshes.
type GeographyLoader interface {
	ListUFs(ctx context.Context) ([]string, error)
	ListCities(ctx context.Context, uf string) ([]string, error)
}

// GeographyWarmup periodically loads every state and its cities so page
// visitors rarely wait on the upstream service.
type GeographyWarmup struct {
	geo      GeographyLoader
	log      *logger.Logger
	interval time.Duration
}

func NewGeographyWarmup(geo GeographyLoader, log *logger.Logger, interval time.Duration) *GeographyWarmup {
	if interval <= 0 {
		interval = defaultGeographyWarmupInterval
	}

	return &GeographyWarmup{
		geo:      geo,
		log:      log,
		interval: interval,
	}
}

func (g *GeographyWarmup) Run(ctx context.Context) {
	if g == nil || g.geo == nil {
		return
	}

	g.warm(ctx)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.warm(ctx)
		}
	}
}

func (g *GeographyWarmup) warm(ctx context.Context) {
	ufs, err := g.geo.ListUFs(ctx)
	if err != nil {
		g.log.Warn("geography warm-up failed", "error", err)
		return
	}

	failed := 0
	for _, uf := range ufs {
		if ctx.Err() != nil {
			return
		}
		if _, err := g.geo.ListCities(ctx, uf); err != nil {
			failed++
			g.log.Warn("geography warm-up failed for state", "uf", uf, "error", err)
		}
	}

	g.log.Info("geography warm-up finished", "states", len(ufs), "failed", failed)
}
