package main

import (
	"encoding/json"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func sum(slot Slot) float64 {
	total := 0.0
	for _, s := range slot.GenerationMix {
		total += s.Perc
	}
	return total
}

func perc(slot Slot, fuel string) float64 {
	for _, s := range slot.GenerationMix {
		if s.Fuel == fuel {
			return s.Perc
		}
	}
	return -1
}

func TestGenerator_Deterministic(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	a := NewGenerator(GeneratorConfig{Seed: 7, Drift: 1}).Slot(start)
	b := NewGenerator(GeneratorConfig{Seed: 7, Drift: 1}).Slot(start)

	if len(a.GenerationMix) != len(b.GenerationMix) {
		t.Fatal("mix length differs between identical generators")
	}
	for i := range a.GenerationMix {
		if a.GenerationMix[i] != b.GenerationMix[i] {
			t.Errorf("share %d differs: %+v vs %+v", i, a.GenerationMix[i], b.GenerationMix[i])
		}
	}
}

func TestGenerator_NoDriftSumsToHundred(t *testing.T) {
	g := NewGenerator(GeneratorConfig{Seed: 1})
	for _, slot := range g.Range(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)) {
		if total := sum(slot); math.Abs(total-100) >= 0.5 {
			t.Errorf("slot %s sums to %.2f", slot.From, total)
		}
	}
}

func TestGenerator_DriftBounded(t *testing.T) {
	g := NewGenerator(GeneratorConfig{Seed: 3, Drift: 2})
	for _, slot := range g.Range(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)) {
		if total := sum(slot); math.Abs(total-100) > 2.5 {
			t.Errorf("slot %s drifted to %.2f", slot.From, total)
		}
	}
}

func TestGenerator_NoSolarAtNight(t *testing.T) {
	g := NewGenerator(GeneratorConfig{Seed: 1})
	night := g.Slot(time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC))
	noon := g.Slot(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	if perc(night, "solar") != 0 {
		t.Errorf("expected no solar at 02:00, got %.1f", perc(night, "solar"))
	}
	if perc(noon, "solar") <= 10 {
		t.Errorf("expected strong solar at noon, got %.1f", perc(noon, "solar"))
	}
}

func TestGenerator_RangeAlignment(t *testing.T) {
	g := NewGenerator(GeneratorConfig{})
	slots := g.Range(time.Date(2025, 1, 1, 12, 10, 0, 0, time.UTC), time.Date(2025, 1, 1, 13, 30, 0, 0, time.UTC))

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if slots[0].From != "2025-01-01T12:00Z" || slots[2].To != "2025-01-01T13:30Z" {
		t.Errorf("unexpected bounds %s .. %s", slots[0].From, slots[2].To)
	}
}

func TestApp_Generation(t *testing.T) {
	app := NewApp(NewGenerator(GeneratorConfig{Seed: 42}), zap.NewNop())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/generation/2025-01-01T00:00Z/2025-01-04T00:00Z", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Data) != 144 {
		t.Errorf("expected 144 half-hour slots over 3 days, got %d", len(body.Data))
	}
}

func TestApp_RejectsBadRange(t *testing.T) {
	app := NewApp(NewGenerator(GeneratorConfig{}), zap.NewNop())

	for _, target := range []string{
		"/generation/yesterday/2025-01-02T00:00Z",
		"/generation/2025-01-02T00:00Z/2025-01-01T00:00Z",
		"/generation/2025-01-01T00:00Z/2025-03-01T00:00Z",
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, resp.StatusCode)
		}
	}
}
