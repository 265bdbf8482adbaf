package energy

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/seu-repo/energymix/internal/domain"
	"github.com/seu-repo/energymix/internal/observability/telemetry"
	"github.com/seu-repo/energymix/internal/ports"
)

// Service feeds the forecast from a provider into the aggregation and window logic
type Service struct {
	provider ports.ForecastProvider
	log      *zap.Logger
}

var _ ports.EnergyService = (*Service)(nil)

// NewService creates a new energy mix service
func NewService(provider ports.ForecastProvider, log *zap.Logger) *Service {
	return &Service{
		provider: provider,
		log:      log,
	}
}

// GetThreeDayForecast returns the forecast aggregated into daily reports
func (s *Service) GetThreeDayForecast(ctx context.Context) ([]domain.DailyReport, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "energy.GetThreeDayForecast")
	defer span.End()

	slots := s.fetch(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reports := AggregateByDay(slots)
	if len(reports) > 0 {
		telemetry.CurrentDayCleanEnergyPercent.Set(reports[0].CleanEnergyPercent)
	}

	span.SetAttributes(
		attribute.Int("energy.slots", len(slots)),
		attribute.Int("energy.days", len(reports)),
	)
	return reports, nil
}

// FindOptimalWindow returns the best window of the given length in hours, or
// nil when the forecast does not cover it.
func (s *Service) FindOptimalWindow(ctx context.Context, hours int) (*domain.OptimalWindow, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "energy.FindOptimalWindow")
	defer span.End()
	span.SetAttributes(attribute.Int("energy.hours", hours))

	slots := s.fetch(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	window := FindOptimalWindow(slots, hours)
	result := "found"
	if window == nil {
		result = "insufficient_data"
		s.log.Debug("Not enough forecast slots for window",
			zap.Int("hours", hours),
			zap.Int("slots", len(slots)),
		)
	} else {
		span.SetAttributes(attribute.Float64("energy.avg_clean_percent", window.AvgCleanEnergyPercent))
	}
	telemetry.OptimalWindowTotal.WithLabelValues(strconv.Itoa(hours), result).Inc()

	return window, nil
}

// fetch never fails: a provider error degrades to an empty forecast
func (s *Service) fetch(ctx context.Context) []domain.TimeSlot {
	slots, err := s.provider.FetchForecast(ctx)
	if err != nil {
		s.log.Warn("Forecast unavailable, continuing with empty data", zap.Error(err))
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, "forecast unavailable")
		return nil
	}
	telemetry.ForecastSlotsFetched.Set(float64(len(slots)))
	return slots
}
