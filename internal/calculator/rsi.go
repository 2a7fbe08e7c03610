package calculator

import "errors"

// ErrInsufficientData is returned when a series is too short for the
// requested indicator window.
var ErrInsufficientData = errors.New("not enough data points")

// CalculateRSI computes the relative strength index for the most recent bar
// using simple averages of gains and losses over the trailing `period`
// deltas. Requires at least period+1 prices; shorter series return
// ErrInsufficientData so callers can mark the signal undefined.
func CalculateRSI(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period+1 {
		return 0, ErrInsufficientData
	}

	var avgGain, avgLoss float64
	start := len(prices) - period
	for i := start; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
