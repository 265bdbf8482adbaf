package energy

import (
	"github.com/seu-repo/energymix/internal/domain"
)

// SlotsPerHour is the number of forecast slots in one hour (30 minute granularity)
const SlotsPerHour = 2

// FindOptimalWindow slides a window of hours*SlotsPerHour slots across the
// sequence and returns the span with the highest mean clean-energy share.
// The earliest window wins ties. It returns nil when there are not enough slots.
func FindOptimalWindow(slots []domain.TimeSlot, hours int) *domain.OptimalWindow {
	required := hours * SlotsPerHour
	if required <= 0 || len(slots) < required {
		return nil
	}

	clean := make([]float64, len(slots))
	for i, slot := range slots {
		clean[i] = SlotCleanPercent(slot)
	}

	bestStart := -1
	bestAverage := 0.0

	// Sum each window in slot order: equal windows must compare equal for the tie-break.
	for start := 0; start <= len(slots)-required; start++ {
		sum := 0.0
		for j := start; j < start+required; j++ {
			sum += clean[j]
		}
		average := sum / float64(required)

		if bestStart < 0 || average > bestAverage {
			bestStart = start
			bestAverage = average
		}
	}

	return &domain.OptimalWindow{
		Start:                 slots[bestStart].From,
		End:                   slots[bestStart+required-1].To,
		AvgCleanEnergyPercent: bestAverage,
	}
}
