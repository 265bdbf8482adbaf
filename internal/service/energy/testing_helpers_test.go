package energy

import (
	"time"

	"github.com/seu-repo/energymix/internal/domain"
)

var scenarioStart = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// slotAt builds the i-th 30 minute slot after base
func slotAt(base time.Time, i int, mix ...domain.GenerationShare) domain.TimeSlot {
	from := base.Add(time.Duration(i) * 30 * time.Minute)
	return domain.TimeSlot{From: from, To: from.Add(30 * time.Minute), Mix: mix}
}

func share(fuel string, perc float64) domain.GenerationShare {
	return domain.GenerationShare{Fuel: fuel, Percent: perc}
}

// coalWindWind is the three-slot scenario: 0%, 100%, 100% clean
func coalWindWind() []domain.TimeSlot {
	return []domain.TimeSlot{
		slotAt(scenarioStart, 0, share("coal", 100)),
		slotAt(scenarioStart, 1, share("wind", 100)),
		slotAt(scenarioStart, 2, share("wind", 100)),
	}
}

func sourceByName(report domain.DailyReport, name string) (domain.EnergySource, bool) {
	for _, s := range report.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return domain.EnergySource{}, false
}
