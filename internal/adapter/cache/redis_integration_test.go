//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startRedis(t *testing.T) *RedisCache {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get redis connection string: %v", err)
	}

	c, err := NewRedisCache(RedisOptions{URL: url}, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_Integration(t *testing.T) {
	c := startRedis(t)
	ctx := context.Background()

	if err := c.Ping(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	if _, err := c.Get(ctx, ForecastKey); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss for absent key, got %v", err)
	}

	if err := c.Set(ctx, ForecastKey, []byte(`[{"from":"2025-01-01T12:00:00Z"}]`), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := c.Get(ctx, ForecastKey)
	if err != nil || got != `[{"from":"2025-01-01T12:00:00Z"}]` {
		t.Errorf("unexpected value %q, %v", got, err)
	}

	time.Sleep(1500 * time.Millisecond)
	if _, err := c.Get(ctx, ForecastKey); !errors.Is(err, ErrMiss) {
		t.Errorf("expected key to expire, got %v", err)
	}

	_ = c.Set(ctx, "k", "v", time.Minute)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss after delete, got %v", err)
	}
}
