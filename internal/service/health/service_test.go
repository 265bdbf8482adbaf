package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/energymix/internal/mocks"
)

func TestReady_NoCheckers(t *testing.T) {
	s := NewService("test", zap.NewNop())

	resp := s.Ready(context.Background())
	if !resp.Ready || resp.Status != StatusHealthy {
		t.Errorf("expected ready and healthy, got %+v", resp)
	}
}

func TestReady_CacheDown(t *testing.T) {
	cache := mocks.NewMockCache()
	cache.PingFunc = func() error { return errors.New("connection refused") }

	s := NewService("test", zap.NewNop())
	s.RegisterChecker("cache", CacheChecker(cache, zap.NewNop()))

	resp := s.Ready(context.Background())
	if resp.Ready {
		t.Error("expected not ready when cache is down")
	}
	if resp.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", resp.Status)
	}
	if resp.Checks["cache"].Name != "cache" {
		t.Errorf("expected result named after checker, got %q", resp.Checks["cache"].Name)
	}
}

func TestReady_BreakerOpenDegrades(t *testing.T) {
	s := NewService("test", zap.NewNop())
	s.RegisterChecker("cache", CacheChecker(mocks.NewMockCache(), zap.NewNop()))
	s.RegisterChecker("upstream", BreakerChecker(func() gobreaker.State { return gobreaker.StateOpen }))

	resp := s.Ready(context.Background())
	if !resp.Ready {
		t.Error("an open upstream breaker must not make the service unready")
	}
	if resp.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", resp.Status)
	}
	if resp.Checks["cache"].Status != StatusHealthy {
		t.Errorf("expected healthy cache, got %s", resp.Checks["cache"].Status)
	}
}

func TestBreakerChecker_States(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  Status
	}{
		{gobreaker.StateClosed, StatusHealthy},
		{gobreaker.StateHalfOpen, StatusDegraded},
		{gobreaker.StateOpen, StatusDegraded},
	}

	for _, tt := range tests {
		st := tt.state
		result := BreakerChecker(func() gobreaker.State { return st })(context.Background())
		if result.Status != tt.want {
			t.Errorf("state %s: expected %s, got %s", tt.state, tt.want, result.Status)
		}
	}
}

func TestCacheChecker_Timeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	cache := mocks.NewMockCache()
	cache.PingFunc = func() error {
		<-block
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result := CacheChecker(cache, zap.NewNop())(ctx)
	if result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy on timeout, got %s", result.Status)
	}
}

func TestHealth_ReportsVersion(t *testing.T) {
	s := NewService("v9.9.9", zap.NewNop())

	resp := s.Health(context.Background())
	if resp.Status != StatusHealthy || resp.Version != "v9.9.9" {
		t.Errorf("unexpected liveness response: %+v", resp)
	}
}
