package ports

import (
	"context"
	"time"

	"github.com/seu-repo/energymix/internal/domain"
)

// ForecastProvider returns the chronologically ordered generation forecast
// (now through the configured horizon, 30 minute slots).
type ForecastProvider interface {
	FetchForecast(ctx context.Context) ([]domain.TimeSlot, error)
}

// EnergyService exposes the daily mix and optimal window computations
type EnergyService interface {
	GetThreeDayForecast(ctx context.Context) ([]domain.DailyReport, error)
	FindOptimalWindow(ctx context.Context, hours int) (*domain.OptimalWindow, error)
}

// Cache is a string key/value store with per-key expiry
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
