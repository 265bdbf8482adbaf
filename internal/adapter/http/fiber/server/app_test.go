package server

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/seu-repo/energymix/internal/domain"
	"github.com/seu-repo/energymix/internal/mocks"
	"github.com/seu-repo/energymix/internal/service/health"
	"github.com/seu-repo/energymix/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadWith(viper.New())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.CircuitBreaker.FailureThreshold = 2
	return cfg
}

func newApp(t *testing.T, service *mocks.MockEnergyService) *fiber.App {
	t.Helper()
	log := zap.NewNop()
	return NewApp(testConfig(t), Deps{
		Energy: service,
		Health: health.NewService("test", log),
	}, log)
}

func TestApp_RequestIDAndCORS(t *testing.T) {
	app := newApp(t, &mocks.MockEnergyService{})

	req := httptest.NewRequest(fiber.MethodGet, "/api/energy/mix", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected generated X-Request-ID")
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard CORS origin, got %q", got)
	}
}

func TestApp_PropagatesRequestID(t *testing.T) {
	app := newApp(t, &mocks.MockEnergyService{})

	req := httptest.NewRequest(fiber.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected echoed request id, got %q", got)
	}
}

func TestApp_HealthAndReady(t *testing.T) {
	app := newApp(t, &mocks.MockEnergyService{})

	for _, path := range []string{"/health", "/healthz", "/ready", "/readyz"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("%s: request failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestApp_Metrics(t *testing.T) {
	app := newApp(t, &mocks.MockEnergyService{})

	// Generate at least one labelled sample
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/energy/optimal?hours=2", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "energymix_http_requests_total") {
		t.Error("expected HTTP request counter in /metrics output")
	}
}

func TestApp_BadRequestJSON(t *testing.T) {
	app := newApp(t, &mocks.MockEnergyService{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/energy/optimal?hours=x", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"error"`) {
		t.Errorf("expected JSON error body, got %s", body)
	}
}

func TestApp_BreakerOpensOnServerErrors(t *testing.T) {
	service := &mocks.MockEnergyService{
		GetThreeDayForecastFunc: func(ctx context.Context) ([]domain.DailyReport, error) {
			return nil, errors.New("boom")
		},
	}
	app := newApp(t, service)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/energy/mix", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}

	if statuses[0] != fiber.StatusInternalServerError || statuses[1] != fiber.StatusInternalServerError {
		t.Errorf("expected first two requests to fail with 500, got %v", statuses)
	}
	if statuses[2] != fiber.StatusServiceUnavailable {
		t.Errorf("expected open breaker to answer 503, got %d", statuses[2])
	}
}
