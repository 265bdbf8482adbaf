package main

import (
	"math"
	"math/rand"
	"time"
)

// SlotDuration is the granularity of the generation forecast
const SlotDuration = 30 * time.Minute

// MaxRange mirrors the provider's limit on a single /generation query
const MaxRange = 14 * 24 * time.Hour

// Share is one fuel's percentage of a slot
type Share struct {
	Fuel string  `json:"fuel"`
	Perc float64 `json:"perc"`
}

// Slot is a simulated 30 minute interval in the provider's wire format
type Slot struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	GenerationMix []Share `json:"generationmix"`
}

// GeneratorConfig tunes the simulated grid
type GeneratorConfig struct {
	Seed  int64
	Drift float64 // max deviation of a slot's total from 100, in percentage points
}

// Generator produces a deterministic generation mix for any instant
type Generator struct {
	config GeneratorConfig
}

func NewGenerator(config GeneratorConfig) *Generator {
	if config.Drift < 0 {
		config.Drift = 0
	}
	return &Generator{config: config}
}

// Range returns the slots covering [from, to). from is floored to a slot boundary.
func (g *Generator) Range(from, to time.Time) []Slot {
	start := from.UTC().Truncate(SlotDuration)
	end := to.UTC()

	slots := make([]Slot, 0, int(end.Sub(start)/SlotDuration)+1)
	for t := start; t.Before(end); t = t.Add(SlotDuration) {
		slots = append(slots, g.Slot(t))
	}
	return slots
}

// Slot returns the mix for the slot starting at start. Equal inputs give equal output.
func (g *Generator) Slot(start time.Time) Slot {
	start = start.UTC()
	rng := rand.New(rand.NewSource(g.config.Seed ^ start.Unix()))

	hour := float64(start.Hour()) + float64(start.Minute())/60

	// Solar follows daylight between 06:00 and 18:00
	solar := 0.0
	if hour > 6 && hour < 18 {
		solar = 22 * math.Sin(math.Pi*(hour-6)/12)
	}

	// Wind drifts over a ~36h weather cycle seeded per deployment
	phase := float64(g.config.Seed%360) * math.Pi / 180
	cycle := float64(start.Unix()) / (36 * 3600) * 2 * math.Pi
	wind := 8 + 30*(0.5+0.5*math.Sin(cycle+phase)) + rng.Float64()*3

	mix := []Share{
		{Fuel: "biomass", Perc: 5 + rng.Float64()},
		{Fuel: "coal", Perc: rng.Float64() * 1.5},
		{Fuel: "imports", Perc: 7 + rng.Float64()*4},
		{Fuel: "nuclear", Perc: 14 + rng.Float64()*2},
		{Fuel: "other", Perc: 0.5 + rng.Float64()*0.5},
		{Fuel: "hydro", Perc: 1.5 + rng.Float64()},
		{Fuel: "solar", Perc: solar},
		{Fuel: "wind", Perc: wind},
	}

	used := 0.0
	for _, s := range mix {
		used += s.Perc
	}
	gas := math.Max(0, 100-used)
	mix = append(mix, Share{Fuel: "gas", Perc: gas})

	// Rescale to exactly 100 first, then apply the configured drift
	total := used + gas
	scale := 100 / total
	if g.config.Drift > 0 {
		scale *= 1 + (rng.Float64()*2-1)*g.config.Drift/100
	}
	for i := range mix {
		mix[i].Perc = math.Round(mix[i].Perc*scale*10) / 10
	}

	return Slot{
		From:          start.Format(wireLayout),
		To:            start.Add(SlotDuration).Format(wireLayout),
		GenerationMix: mix,
	}
}
