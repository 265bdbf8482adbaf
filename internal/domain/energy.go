package domain

import "time"

// DateLayout is the calendar date format used for daily report keys
const DateLayout = "2006-01-02"

// GenerationShare is one fuel's contribution to a slot's generation mix
type GenerationShare struct {
	Fuel    string  `json:"fuel"`
	Percent float64 `json:"perc"`
}

// TimeSlot is a fixed-size (30 minute) forecast interval and its fuel mix.
// Percentages nominally sum to 100 but may drift.
type TimeSlot struct {
	From time.Time         `json:"from"`
	To   time.Time         `json:"to"`
	Mix  []GenerationShare `json:"generationmix"`
}

// EnergySource is an averaged fuel entry inside a daily report
type EnergySource struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Renewable  bool    `json:"renewable"`
}

// DailyReport summarises the generation mix for one calendar date
type DailyReport struct {
	Date               string         `json:"date"` // YYYY-MM-DD in the slots' own zone
	Sources            []EnergySource `json:"sources"`
	CleanEnergyPercent float64        `json:"cleanEnergyPercent"`
}

// OptimalWindow is the contiguous span with the highest average clean share
type OptimalWindow struct {
	Start                 time.Time `json:"start"`
	End                   time.Time `json:"end"`
	AvgCleanEnergyPercent float64   `json:"avgCleanEnergyPercent"`
}

// ForecastRefreshed is published after a background forecast refresh
type ForecastRefreshed struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generatedAt"`
	SlotCount   int           `json:"slotCount"`
	Days        []DailyReport `json:"days"`
}
