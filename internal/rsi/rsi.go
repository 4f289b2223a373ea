// Package rsi computes the Relative Strength Index over a closing price
// series using Wilder's smoothing. Pure functions, safe for concurrent use.
package rsi

// DefaultPeriod is the conventional RSI lookback.
const DefaultPeriod = 14

// Calculate returns one RSI value per price index from period onward.
// Fewer than period+1 prices yield an empty result.
//
// The seed averages are the arithmetic mean of the first period gains and
// losses; every later average uses Wilder's smoothing:
// avg = (prevAvg*(period-1) + current) / period.
func Calculate(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period+1 {
		return nil
	}

	gains := make([]float64, len(prices)-1)
	losses := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	var avgGain, avgLoss float64
	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	values := make([]float64, 0, len(prices)-period)
	for i := period; i < len(prices); i++ {
		if avgLoss == 0 {
			values = append(values, 100)
		} else {
			rs := avgGain / avgLoss
			values = append(values, 100-100/(1+rs))
		}

		if i < len(prices)-1 {
			avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
			avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		}
	}

	return values
}

// IsOversold reports whether the value sits strictly below the threshold.
func IsOversold(value, threshold float64) bool {
	return value < threshold
}

// IsOverbought reports whether the value sits strictly above the threshold.
func IsOverbought(value, threshold float64) bool {
	return value > threshold
}
