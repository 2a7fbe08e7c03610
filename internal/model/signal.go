package model

// RiskTier is the discrete risk classification for one instrument.
type RiskTier struct {
	Label  string
	Color  string
	Weight int
}

// Thresholds holds the |z-score| band boundaries for risk classification.
// Exactly Caution maps to Normal, exactly Danger maps to Caution.
type Thresholds struct {
	Caution float64
	Danger  float64
}

// DefaultThresholds are the standard classification bands.
var DefaultThresholds = Thresholds{Caution: 1.5, Danger: 2.0}

// IndicatorResult is the full set of signals computed for one instrument
// in one run. Never mutated after creation.
type IndicatorResult struct {
	Name           string
	Symbol         string
	Price          float64
	Change         float64
	PctChange      float64
	ZScore         float64
	ConversionProb float64 // Φ(|z|)×100, descriptive magnitude score
	RSI            float64
	RSIValid       bool // false when the series is too short for RSI(14)
	Drawdown       float64
	Tier           RiskTier
}

// Outcome is the per-instrument result of one engine pass: either a
// computed IndicatorResult or the error that made the instrument's data
// unavailable for this run.
type Outcome struct {
	Name   string
	Result *IndicatorResult
	Err    error
}

// OK reports whether the instrument produced a usable result.
func (o Outcome) OK() bool { return o.Err == nil && o.Result != nil }
