package calculator

// DrawdownWindow is the trailing high window for the drawdown signal,
// roughly three trading months.
const DrawdownWindow = 63

// CalculateDrawdown returns the percent decline of the last price from the
// maximum close over the trailing DrawdownWindow bars. The window shrinks to
// the series start for shorter series. Since the window includes the current
// bar, the result is always <= 0. Returns 0 for an empty series.
func CalculateDrawdown(prices []float64) float64 {
	n := len(prices)
	if n == 0 {
		return 0
	}
	start := n - DrawdownWindow
	if start < 0 {
		start = 0
	}
	high := prices[start]
	for i := start + 1; i < n; i++ {
		if prices[i] > high {
			high = prices[i]
		}
	}
	if high == 0 {
		return 0
	}
	return (prices[n-1] - high) / high * 100
}
