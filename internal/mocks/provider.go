package mocks

import (
	"context"
	"sync/atomic"

	"github.com/seu-repo/energymix/internal/domain"
)

// MockForecastProvider is a mock implementation of ports.ForecastProvider
type MockForecastProvider struct {
	Slots             []domain.TimeSlot
	Err               error
	FetchForecastFunc func(ctx context.Context) ([]domain.TimeSlot, error)

	calls atomic.Int32
}

func (m *MockForecastProvider) FetchForecast(ctx context.Context) ([]domain.TimeSlot, error) {
	m.calls.Add(1)
	if m.FetchForecastFunc != nil {
		return m.FetchForecastFunc(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Slots, nil
}

// Calls returns how many times FetchForecast ran
func (m *MockForecastProvider) Calls() int {
	return int(m.calls.Load())
}

// MockEnergyService is a mock implementation of ports.EnergyService
type MockEnergyService struct {
	GetThreeDayForecastFunc func(ctx context.Context) ([]domain.DailyReport, error)
	FindOptimalWindowFunc   func(ctx context.Context, hours int) (*domain.OptimalWindow, error)

	LastHours int
}

func (m *MockEnergyService) GetThreeDayForecast(ctx context.Context) ([]domain.DailyReport, error) {
	if m.GetThreeDayForecastFunc != nil {
		return m.GetThreeDayForecastFunc(ctx)
	}
	return []domain.DailyReport{}, nil
}

func (m *MockEnergyService) FindOptimalWindow(ctx context.Context, hours int) (*domain.OptimalWindow, error) {
	m.LastHours = hours
	if m.FindOptimalWindowFunc != nil {
		return m.FindOptimalWindowFunc(ctx, hours)
	}
	return nil, nil
}
