package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	ForecastSlotsFetched = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "energymix_forecast_slots",
		Help: "Number of 30 minute slots in the most recent forecast",
	})

	ForecastFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energymix_forecast_fetch_total",
		Help: "Upstream forecast fetches by outcome",
	}, []string{"outcome"})

	ForecastFetchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "energymix_forecast_fetch_seconds",
		Help:    "Latency of upstream forecast fetches",
		Buckets: prometheus.DefBuckets,
	})

	ForecastCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energymix_forecast_cache_total",
		Help: "Forecast cache lookups by result",
	}, []string{"result"})

	OptimalWindowTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energymix_optimal_window_total",
		Help: "Optimal window computations by requested hours and result",
	}, []string{"hours", "result"})

	CurrentDayCleanEnergyPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "energymix_current_day_clean_energy_percent",
		Help: "Forecast clean energy share of the first day in the latest report",
	})

	RefreshEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energymix_refresh_events_total",
		Help: "Forecast refresh events by publish outcome",
	}, []string{"outcome"})

	// Infrastructure metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energymix_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "energymix_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
