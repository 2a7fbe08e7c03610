package strategy

import (
	"MarketPulse/internal/calculator"
	"MarketPulse/internal/model"
)

// RSIPeriod is the lookback for the relative strength index.
const RSIPeriod = 14

// Evaluate runs the full indicator pipeline over one instrument's close
// series and classifies the result. Pure: no I/O, no shared state. The RSI
// is marked invalid rather than failing when the series is too short; it and
// the drawdown are informational only and never influence the tier.
func Evaluate(series *model.PriceSeries, th model.Thresholds) *model.IndicatorResult {
	closes := series.Closes()

	var current float64
	if len(closes) > 0 {
		current = closes[len(closes)-1]
	}
	change, pct := calculator.ChangeFromPrevious(closes)
	z := calculator.ZScore(closes)
	drawdown := calculator.CalculateDrawdown(closes)

	res := &model.IndicatorResult{
		Name:           series.Name,
		Symbol:         series.Symbol,
		Price:          current,
		Change:         change,
		PctChange:      pct,
		ZScore:         z,
		ConversionProb: calculator.ConversionProbability(z),
		Drawdown:       drawdown,
		Tier:           Classify(z, th),
	}

	if rsi, err := calculator.CalculateRSI(closes, RSIPeriod); err == nil {
		res.RSI = rsi
		res.RSIValid = true
	}
	return res
}
