package collector

import (
	"context"
	"time"

	"MarketPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Closes, if set, takes priority over the generated drift series; Errs maps
// symbols to forced failures.
type MockFetcher struct {
	Price  float64
	Closes map[string][]float64
	Errs   map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ context.Context, symbol string, days int) ([]model.PricePoint, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if closes, ok := m.Closes[symbol]; ok {
		return PointsFromCloses(closes), nil
	}
	base := m.Price
	if base == 0 {
		base = 100
	}
	closes := make([]float64, days)
	for i := range closes {
		closes[i] = base * (1 + float64(i-days/2)*0.001)
	}
	return PointsFromCloses(closes), nil
}

// PointsFromCloses builds a chronological daily series ending today.
func PointsFromCloses(closes []float64) []model.PricePoint {
	points := make([]model.PricePoint, len(closes))
	now := time.Now().UTC()
	for i, c := range closes {
		points[i] = model.PricePoint{
			Date:  now.AddDate(0, 0, -(len(closes) - 1 - i)),
			Close: c,
		}
	}
	return points
}
