package model

import "time"

// SnapshotKeyLayout is the minute-resolution timestamp format used as the
// history row key. Lexical order on keys equals chronological order.
const SnapshotKeyLayout = "2006-01-02 15:04"

// Snapshot is one timestamped history row: the observed price of every
// instrument that computed successfully in a run, plus the composite ratio.
// Instruments absent from Prices produced no observation that run.
type Snapshot struct {
	Key    string
	Prices map[string]float64
	Ratio  float64
}

// NewSnapshot builds a snapshot keyed by ts at minute resolution.
func NewSnapshot(ts time.Time, results []IndicatorResult, ratio float64) Snapshot {
	prices := make(map[string]float64, len(results))
	for _, r := range results {
		prices[r.Name] = r.Price
	}
	return Snapshot{
		Key:    ts.Format(SnapshotKeyLayout),
		Prices: prices,
		Ratio:  ratio,
	}
}
