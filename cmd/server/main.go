package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/energymix/internal/adapter/cache"
	"github.com/seu-repo/energymix/internal/adapter/carbonintensity"
	grpcserver "github.com/seu-repo/energymix/internal/adapter/grpc/server"
	httpserver "github.com/seu-repo/energymix/internal/adapter/http/fiber/server"
	"github.com/seu-repo/energymix/internal/adapter/queue"
	"github.com/seu-repo/energymix/internal/logging"
	"github.com/seu-repo/energymix/internal/observability/telemetry"
	"github.com/seu-repo/energymix/internal/ports"
	"github.com/seu-repo/energymix/internal/service/energy"
	"github.com/seu-repo/energymix/internal/service/health"
	"github.com/seu-repo/energymix/pkg/config"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// 2. Initialize Logger
	logger, err := logging.New(cfg.Logging, cfg.App.Environment)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting energy mix service",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	tracerProvider, err := telemetry.InitTracer(telemetry.TracerConfig{
		Enabled:        cfg.OpenTelemetry.Enabled,
		ServiceName:    cfg.OpenTelemetry.ServiceName,
		ServiceVersion: cfg.App.Version,
		Endpoint:       cfg.OpenTelemetry.Jaeger.Endpoint,
		SampleRatio:    cfg.OpenTelemetry.Jaeger.SamplerParam,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 4. Initialize Cache (Redis with in-memory fallback)
	forecastStore := newCache(cfg, logger)
	defer forecastStore.Close()

	// 5. Initialize Message Queue
	messageQueue, err := queue.New(queue.Options{
		Driver:        cfg.Queue.Driver,
		URL:           cfg.Queue.URL,
		MaxReconnects: cfg.Queue.MaxReconnects,
		ReconnectWait: cfg.Queue.ReconnectWait,
		Timeout:       cfg.Queue.Timeout,
	}, logger)
	if err != nil {
		logger.Warn("Message queue unavailable, refresh events disabled", zap.Error(err))
		messageQueue = queue.NewNoopQueue()
	}
	defer messageQueue.Close()

	// 6. Carbon Intensity client behind the forecast cache
	ciClient := carbonintensity.NewClient(&carbonintensity.Config{
		BaseURL:                 cfg.CarbonIntensity.BaseURL,
		Timeout:                 cfg.CarbonIntensity.Timeout,
		Horizon:                 cfg.CarbonIntensity.Horizon,
		MaxRetries:              cfg.CarbonIntensity.MaxRetries,
		RetryDelay:              cfg.CarbonIntensity.RetryDelay,
		UserAgent:               cfg.CarbonIntensity.UserAgent,
		AcceptLanguage:          cfg.CarbonIntensity.AcceptLanguage,
		BreakerMaxRequests:      cfg.CircuitBreaker.MaxRequests,
		BreakerInterval:         cfg.CircuitBreaker.Interval,
		BreakerTimeout:          cfg.CircuitBreaker.Timeout,
		BreakerFailureThreshold: cfg.CircuitBreaker.FailureThreshold,
	}, logger)
	provider := cache.NewForecastCache(ciClient, forecastStore, cfg.Cache.ForecastTTL, logger)

	// 7. Initialize Services
	energyService := energy.NewService(provider, logger)

	healthService := health.NewService(cfg.App.Version, logger)
	healthService.RegisterChecker("cache", health.CacheChecker(forecastStore, logger))
	healthService.RegisterChecker("carbon_intensity", health.BreakerChecker(ciClient.BreakerState))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 8. Background forecast refresh
	if cfg.Refresh.Enabled {
		refresher := energy.NewRefresher(provider, messageQueue, cfg.Refresh.Interval, cfg.Queue.Subject, logger)
		go refresher.Run(ctx)
	}

	// 9. Initialize gRPC health server
	var grpcServer *grpcserver.GRPCServer
	if cfg.GRPC.Enabled {
		grpcServer = grpcserver.NewGRPCServer(logger)
		go grpcServer.WatchReadiness(ctx, func(ctx context.Context) bool {
			return healthService.Ready(ctx).Ready
		}, cfg.GRPC.PollInterval)

		go func() {
			logger.Info("Starting gRPC Server", zap.Int("port", cfg.GRPC.Port))
			lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPC.Port))
			if err != nil {
				logger.Fatal("Failed to listen for gRPC", zap.Error(err))
			}
			if err := grpcServer.Serve(lis); err != nil {
				logger.Fatal("gRPC Server failed", zap.Error(err))
			}
		}()
	}

	// 10. Start HTTP Server
	app := httpserver.NewApp(cfg, httpserver.Deps{
		Energy: energyService,
		Health: healthService,
	}, logger)

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 11. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if grpcServer != nil {
		grpcServer.Stop()
	}

	logger.Info("Server exited gracefully")
}

// newCache connects to Redis when configured and falls back to the in-memory cache
func newCache(cfg *config.Config, logger *zap.Logger) ports.Cache {
	if cfg.Cache.Driver == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisOptions{
			URL:          cfg.Redis.URL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, logger)
		if err == nil {
			return redisCache
		}
		logger.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
	}
	return cache.NewLocalCache(cfg.Cache.CleanupInterval, logger)
}
