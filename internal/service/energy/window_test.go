package energy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/energymix/internal/domain"
)

func TestFindOptimalWindow_Scenario(t *testing.T) {
	window := FindOptimalWindow(coalWindWind(), 1)
	require.NotNil(t, window)

	assert.Equal(t, time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2025, 1, 1, 13, 30, 0, 0, time.UTC), window.End)
	assert.InDelta(t, 100.0, window.AvgCleanEnergyPercent, 1e-9)
}

func TestFindOptimalWindow_InsufficientData(t *testing.T) {
	for hours := 1; hours <= 6; hours++ {
		assert.Nil(t, FindOptimalWindow(nil, hours), "empty input, %d hours", hours)
	}
	assert.Nil(t, FindOptimalWindow(coalWindWind(), 2))
}

func TestFindOptimalWindow_NonPositiveHours(t *testing.T) {
	assert.Nil(t, FindOptimalWindow(coalWindWind(), 0))
	assert.Nil(t, FindOptimalWindow(coalWindWind(), -3))
}

func TestFindOptimalWindow_ExactLength(t *testing.T) {
	slots := []domain.TimeSlot{
		slotAt(scenarioStart, 0, share("wind", 50), share("gas", 50)),
		slotAt(scenarioStart, 1, share("solar", 100)),
	}

	window := FindOptimalWindow(slots, 1)
	require.NotNil(t, window)
	assert.Equal(t, slots[0].From, window.Start)
	assert.Equal(t, slots[1].To, window.End)
	assert.InDelta(t, 75.0, window.AvgCleanEnergyPercent, 1e-9)
}

func TestFindOptimalWindow_TieKeepsEarliest(t *testing.T) {
	slots := []domain.TimeSlot{
		slotAt(scenarioStart, 0, share("wind", 30), share("gas", 70)),
		slotAt(scenarioStart, 1, share("wind", 70), share("gas", 30)),
		slotAt(scenarioStart, 2, share("wind", 30), share("gas", 70)),
		slotAt(scenarioStart, 3, share("wind", 70), share("gas", 30)),
	}

	// every 2-slot window averages 50
	window := FindOptimalWindow(slots, 1)
	require.NotNil(t, window)
	assert.Equal(t, slots[0].From, window.Start)
	assert.Equal(t, slots[1].To, window.End)
}

func TestFindOptimalWindow_AllZeroPicksFirst(t *testing.T) {
	slots := make([]domain.TimeSlot, 6)
	for i := range slots {
		slots[i] = slotAt(scenarioStart, i, share("gas", 100))
	}

	window := FindOptimalWindow(slots, 2)
	require.NotNil(t, window)
	assert.Equal(t, slots[0].From, window.Start)
	assert.Equal(t, slots[3].To, window.End)
	assert.Equal(t, 0.0, window.AvgCleanEnergyPercent)
}

func TestFindOptimalWindow_ZeroTotalSlotsCountAsZero(t *testing.T) {
	slots := []domain.TimeSlot{
		slotAt(scenarioStart, 0),
		slotAt(scenarioStart, 1, share("gas", 0)),
		slotAt(scenarioStart, 2, share("wind", 100)),
		slotAt(scenarioStart, 3, share("wind", 100)),
	}

	window := FindOptimalWindow(slots, 1)
	require.NotNil(t, window)
	assert.Equal(t, slots[2].From, window.Start)
	assert.InDelta(t, 100.0, window.AvgCleanEnergyPercent, 1e-9)
}

func TestFindOptimalWindow_MatchesBruteForce(t *testing.T) {
	// three days of slots with a varying clean share
	slots := make([]domain.TimeSlot, 144)
	for i := range slots {
		wind := float64((i*37)%100) / 2
		solar := float64((i*11)%60) / 3
		slots[i] = slotAt(scenarioStart, i, share("wind", wind), share("solar", solar), share("gas", 100-wind-solar))
	}

	for hours := 1; hours <= 6; hours++ {
		window := FindOptimalWindow(slots, hours)
		require.NotNil(t, window)

		required := hours * SlotsPerHour
		best := -1.0
		bestStart := 0
		for start := 0; start+required <= len(slots); start++ {
			sum := 0.0
			for j := start; j < start+required; j++ {
				sum += SlotCleanPercent(slots[j])
			}
			if avg := sum / float64(required); avg > best {
				best = avg
				bestStart = start
			}
		}

		assert.Equal(t, slots[bestStart].From, window.Start, "hours=%d", hours)
		assert.Equal(t, slots[bestStart+required-1].To, window.End, "hours=%d", hours)
		assert.InDelta(t, best, window.AvgCleanEnergyPercent, 1e-9, "hours=%d", hours)
	}
}
