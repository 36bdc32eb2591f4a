package geography

import (
	"context"
	"sort"
	"time"

	"ecoleta/platform/apperr"
	"ecoleta/platform/logger"
	"ecoleta/platform/metrics"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	statesKey          = "states"
	citiesKeyPrefix    = "cities:"
	msgUnavailable     = "geography service unavailable"
	msgInvalidUF       = "invalid uf"
	cacheOutcomeHit    = "hit"
	cacheOutcomeMiss   = "miss"
	defaultCacheExpiry = 24 * time.Hour
)

// Fetcher is the upstream source of states and cities.
type Fetcher interface {
	FetchUFs(ctx context.Context) ([]string, error)
	FetchCities(ctx context.Context, uf string) ([]string, error)
}

// Service serves state and city lists. Each list is fetched upstream at most
// once per TTL; concurrent misses for the same key share one upstream call.
type Service struct {
	fetcher Fetcher
	cache   Cache
	ttl     time.Duration
	group   singleflight.Group
	log     *logger.Logger
}

// NewService creates a geography service. A non-positive ttl falls back to 24h.
func NewService(fetcher Fetcher, cache Cache, ttl time.Duration, log *logger.Logger) *Service {
	if ttl <= 0 {
		ttl = defaultCacheExpiry
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Service{fetcher: fetcher, cache: cache, ttl: ttl, log: log}
}

// ListUFs returns all state codes sorted alphabetically.
func (s *Service) ListUFs(ctx context.Context) ([]string, error) {
	return s.load(ctx, resourceStates, statesKey, func(ctx context.Context) ([]string, error) {
		ufs, err := s.fetcher.FetchUFs(ctx)
		if err != nil {
			return nil, err
		}
		sort.Strings(ufs)
		return ufs, nil
	})
}

// ListCities returns the municipalities of uf in pt-BR collation order.
func (s *Service) ListCities(ctx context.Context, uf string) ([]string, error) {
	normalized, ok := NormalizeUF(uf)
	if !ok {
		return nil, apperr.Validation(msgInvalidUF).WithDetails(map[string]string{"uf": uf})
	}

	return s.load(ctx, resourceCities, citiesKeyPrefix+normalized, func(ctx context.Context) ([]string, error) {
		cities, err := s.fetcher.FetchCities(ctx, normalized)
		if err != nil {
			return nil, err
		}
		collate.New(language.BrazilianPortuguese).SortStrings(cities)
		return cities, nil
	})
}

func (s *Service) load(ctx context.Context, resource, key string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	if values, ok := s.cached(ctx, resource, key); ok {
		return values, nil
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Another caller may have filled the cache while we waited.
		if values, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return values, nil
		}

		values, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		if len(values) > 0 {
			if err := s.cache.Set(ctx, key, values, s.ttl); err != nil {
				s.log.WithContext(ctx).Warn("geography cache write failed", "key", key, "error", err)
			}
		}
		return values, nil
	})
	if err != nil {
		return nil, apperr.Unavailable(msgUnavailable, err)
	}

	values := result.([]string)
	return append([]string(nil), values...), nil
}

func (s *Service) cached(ctx context.Context, resource, key string) ([]string, bool) {
	values, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WithContext(ctx).Warn("geography cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		metrics.GeographyCacheLookups.WithLabelValues(resource, cacheOutcomeMiss).Inc()
		return nil, false
	}
	metrics.GeographyCacheLookups.WithLabelValues(resource, cacheOutcomeHit).Inc()
	return values, true
}
