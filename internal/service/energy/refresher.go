package energy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/energymix/internal/adapter/queue"
	"github.com/seu-repo/energymix/internal/domain"
	"github.com/seu-repo/energymix/internal/observability/telemetry"
	"github.com/seu-repo/energymix/internal/ports"
)

// SubjectForecastRefreshed carries domain.ForecastRefreshed payloads
const SubjectForecastRefreshed = "energy.forecast.refreshed"

// Refresher periodically pulls the forecast (warming any cache in front of the
// provider) and publishes the daily summary.
type Refresher struct {
	provider ports.ForecastProvider
	mq       queue.MessageQueue
	interval time.Duration
	subject  string
	now      func() time.Time
	log      *zap.Logger
}

// NewRefresher creates a refresher; a non-positive interval defaults to 15 minutes
func NewRefresher(provider ports.ForecastProvider, mq queue.MessageQueue, interval time.Duration, subject string, log *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if subject == "" {
		subject = SubjectForecastRefreshed
	}
	return &Refresher{
		provider: provider,
		mq:       mq,
		interval: interval,
		subject:  subject,
		now:      time.Now,
		log:      log,
	}
}

// Run refreshes immediately and then on every tick until ctx is done
func (r *Refresher) Run(ctx context.Context) {
	r.log.Info("Starting forecast refresher",
		zap.Duration("interval", r.interval),
		zap.String("subject", r.subject),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.RefreshOnce(ctx); err != nil {
			r.log.Warn("Forecast refresh failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			r.log.Info("Forecast refresher stopped")
			return
		case <-ticker.C:
		}
	}
}

// RefreshOnce fetches, aggregates and publishes a single refresh event.
// An empty forecast is not published.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	slots, err := r.provider.FetchForecast(ctx)
	if err != nil {
		telemetry.RefreshEventsTotal.WithLabelValues("fetch_failed").Inc()
		return fmt.Errorf("fetch forecast: %w", err)
	}
	if len(slots) == 0 {
		telemetry.RefreshEventsTotal.WithLabelValues("empty").Inc()
		r.log.Debug("Forecast empty, nothing to publish")
		return nil
	}

	event := domain.ForecastRefreshed{
		ID:          uuid.NewString(),
		GeneratedAt: r.now().UTC(),
		SlotCount:   len(slots),
		Days:        AggregateByDay(slots),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal refresh event: %w", err)
	}

	if err := r.mq.Publish(r.subject, payload); err != nil {
		telemetry.RefreshEventsTotal.WithLabelValues("publish_failed").Inc()
		return fmt.Errorf("publish refresh event: %w", err)
	}

	telemetry.RefreshEventsTotal.WithLabelValues("published").Inc()
	r.log.Info("Published forecast refresh",
		zap.String("event_id", event.ID),
		zap.Int("slots", event.SlotCount),
		zap.Int("days", len(event.Days)),
	)
	return nil
}
