package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/energymix/internal/domain"
	"github.com/seu-repo/energymix/internal/observability/telemetry"
	"github.com/seu-repo/energymix/internal/ports"
)

// ForecastKey is the cache key holding the latest generation forecast snapshot
const ForecastKey = "energymix:forecast:generation"

// ForecastCache is a time-bounded read-through cache in front of a ForecastProvider.
// Failed or empty fetches are never stored.
type ForecastCache struct {
	next  ports.ForecastProvider
	cache ports.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewForecastCache wraps next; a non-positive ttl defaults to 5 minutes
func NewForecastCache(next ports.ForecastProvider, cache ports.Cache, ttl time.Duration, log *zap.Logger) *ForecastCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ForecastCache{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

var _ ports.ForecastProvider = (*ForecastCache)(nil)

// FetchForecast serves the cached snapshot when fresh, otherwise fetches and stores it.
// Every call decodes a new slice, callers never share backing arrays.
func (f *ForecastCache) FetchForecast(ctx context.Context) ([]domain.TimeSlot, error) {
	raw, err := f.cache.Get(ctx, ForecastKey)
	switch {
	case err == nil:
		var slots []domain.TimeSlot
		jsonErr := json.Unmarshal([]byte(raw), &slots)
		if jsonErr == nil {
			telemetry.ForecastCacheTotal.WithLabelValues("hit").Inc()
			return slots, nil
		}
		f.log.Warn("Discarding undecodable forecast cache entry", zap.Error(jsonErr))
		_ = f.cache.Delete(ctx, ForecastKey)
	case errors.Is(err, ErrMiss):
	default:
		f.log.Warn("Forecast cache lookup failed", zap.Error(err))
	}
	telemetry.ForecastCacheTotal.WithLabelValues("miss").Inc()

	slots, err := f.next.FetchForecast(ctx)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return slots, nil
	}

	payload, err := json.Marshal(slots)
	if err != nil {
		f.log.Warn("Failed to encode forecast for cache", zap.Error(err))
		return slots, nil
	}
	if err := f.cache.Set(ctx, ForecastKey, payload, f.ttl); err != nil {
		f.log.Warn("Failed to store forecast in cache", zap.Error(err))
	}
	return slots, nil
}

// Invalidate drops the cached snapshot
func (f *ForecastCache) Invalidate(ctx context.Context) error {
	return f.cache.Delete(ctx, ForecastKey)
}
