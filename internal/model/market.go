package model

import "time"

// PricePoint is one daily closing observation.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds the trailing close history for one instrument,
// chronological, no duplicate dates.
type PriceSeries struct {
	Name      string // display name from the watchlist
	Symbol    string // provider symbol
	Points    []PricePoint
	FetchedAt time.Time
}

// Closes returns the closing prices in chronological order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
