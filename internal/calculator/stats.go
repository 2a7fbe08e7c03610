package calculator

import "math"

// Mean returns the arithmetic mean of prices, 0 for an empty slice.
func Mean(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices))
}

// StdDev returns the sample standard deviation of prices.
// Returns 0 for fewer than two points or a constant series.
func StdDev(prices []float64) float64 {
	n := len(prices)
	if n < 2 {
		return 0
	}
	mean := Mean(prices)
	var ss float64
	for _, p := range prices {
		d := p - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// ZScore returns how many standard deviations the last price lies from the
// series mean. Defined as 0 for degenerate series (stddev 0).
func ZScore(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	sd := StdDev(prices)
	if sd == 0 {
		return 0
	}
	return (prices[len(prices)-1] - Mean(prices)) / sd
}

// ConversionProbability maps a z-score magnitude through the standard normal
// CDF, scaled to 0-100. It is a monotonic anomaly-magnitude score, not a
// calibrated forecast: ≈50 near z=0, approaching 100 as |z| grows.
func ConversionProbability(z float64) float64 {
	return normCDF(math.Abs(z)) * 100
}

func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// ChangeFromPrevious returns the absolute and percent change between the last
// two prices. Both are 0 when the series has fewer than two points.
func ChangeFromPrevious(prices []float64) (change, pct float64) {
	n := len(prices)
	if n < 2 {
		return 0, 0
	}
	prev := prices[n-2]
	change = prices[n-1] - prev
	if prev != 0 {
		pct = change / prev * 100
	}
	return change, pct
}
