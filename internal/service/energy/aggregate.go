package energy

import (
	"sort"

	"github.com/seu-repo/energymix/internal/domain"
)

// AggregateByDay groups slots by the calendar date of their start instant
// (in the slot's own zone) and averages each fuel across the slots that
// report it. Output is sorted by date; empty input yields an empty slice.
func AggregateByDay(slots []domain.TimeSlot) []domain.DailyReport {
	if len(slots) == 0 {
		return []domain.DailyReport{}
	}

	groups := make(map[string][]domain.TimeSlot)
	for _, slot := range slots {
		key := slot.From.Format(domain.DateLayout)
		groups[key] = append(groups[key], slot)
	}

	reports := make([]domain.DailyReport, 0, len(groups))
	for date, daySlots := range groups {
		reports = append(reports, dailyAverage(date, daySlots))
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Date < reports[j].Date
	})
	return reports
}

func dailyAverage(date string, slots []domain.TimeSlot) domain.DailyReport {
	type accumulator struct {
		sum   float64
		count int
	}

	// A fuel missing from a slot is not counted, it does not pull the mean towards zero.
	perFuel := make(map[string]*accumulator)
	for _, slot := range slots {
		for _, share := range slot.Mix {
			acc, ok := perFuel[share.Fuel]
			if !ok {
				acc = &accumulator{}
				perFuel[share.Fuel] = acc
			}
			acc.sum += share.Percent
			acc.count++
		}
	}

	sources := make([]domain.EnergySource, 0, len(perFuel))
	for fuel, acc := range perFuel {
		sources = append(sources, domain.EnergySource{
			Name:       fuel,
			Percentage: acc.sum / float64(acc.count),
			Renewable:  IsRenewable(fuel),
		})
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})

	sources = Normalize(sources)

	clean := 0.0
	for _, s := range sources {
		if s.Renewable {
			clean += s.Percentage
		}
	}

	return domain.DailyReport{
		Date:               date,
		Sources:            sources,
		CleanEnergyPercent: clean,
	}
}
