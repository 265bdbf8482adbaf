package energy

import (
	"math"
	"strings"

	"github.com/seu-repo/energymix/internal/domain"
)

// normalizeTolerance is the distance from 100% under which a day's mix is left untouched
const normalizeTolerance = 0.5

var renewableFuels = map[string]struct{}{
	"wind":    {},
	"solar":   {},
	"hydro":   {},
	"biomass": {},
}

// IsRenewable reports whether a fuel type counts as clean energy.
// Unknown fuel types are non-renewable.
func IsRenewable(fuel string) bool {
	_, ok := renewableFuels[strings.ToLower(fuel)]
	return ok
}

// Normalize rescales the entries so they sum to exactly 100%.
// Sums within the tolerance band and zero sums are returned unchanged.
func Normalize(sources []domain.EnergySource) []domain.EnergySource {
	if len(sources) == 0 {
		return sources
	}

	total := 0.0
	for _, s := range sources {
		total += s.Percentage
	}

	if math.Abs(total-100.0) < normalizeTolerance {
		return sources
	}
	if total == 0 {
		return sources
	}

	scaled := make([]domain.EnergySource, len(sources))
	for i, s := range sources {
		scaled[i] = domain.EnergySource{
			Name:       s.Name,
			Percentage: s.Percentage / total * 100.0,
			Renewable:  s.Renewable,
		}
	}
	return scaled
}

// SlotCleanPercent returns the renewable share of a single slot, 0 when the
// slot reports no generation at all.
func SlotCleanPercent(slot domain.TimeSlot) float64 {
	var total, renewable float64
	for _, share := range slot.Mix {
		total += share.Percent
		if IsRenewable(share.Fuel) {
			renewable += share.Percent
		}
	}
	if total <= 0 {
		return 0
	}
	return renewable / total * 100
}
