package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/energymix/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/energymix/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/energymix/internal/ports"
	"github.com/seu-repo/energymix/internal/service/health"
	"github.com/seu-repo/energymix/pkg/config"
)

// Deps are the services the HTTP surface exposes
type Deps struct {
	Energy ports.EnergyService
	Health *health.Service
}

// NewApp builds the Fiber application with middleware and all routes mounted
func NewApp(cfg *config.Config, deps Deps, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ServerHeader:          cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(log),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(log))
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}

	if deps.Health != nil {
		health.NewFiberHandler(deps.Health).RegisterRoutes(app)
	}

	if cfg.Prometheus.Enabled {
		path := cfg.Prometheus.Path
		if path == "" {
			path = "/metrics"
		}
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(path, func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	api := app.Group("/api/energy")
	if cfg.CircuitBreaker.Enabled {
		api.Use(middleware.CircuitBreaker(cfg.CircuitBreaker, log))
	}

	energyHandler := handlers.NewEnergyHandler(deps.Energy, handlers.WindowLimits{
		MinHours: cfg.Limits.MinWindowHours,
		MaxHours: cfg.Limits.MaxWindowHours,
	}, log)
	energyHandler.RegisterRoutes(api)

	return app
}
