package engine

import (
	"math"

	"BaseScan/internal/domain/models"
)

// IndicatorSet holds the trend SMAs aligned to the daily series. Positions
// before a window is fully populated are NaN.
type IndicatorSet struct {
	SMA50  []float64
	SMA150 []float64
	SMA200 []float64
}

// ComputeIndicators computes the 50/150/200-day simple moving averages
// over daily closes.
func ComputeIndicators(daily []models.Bar) IndicatorSet {
	closes := make([]float64, len(daily))
	for i, b := range daily {
		closes[i] = b.Close
	}
	return IndicatorSet{
		SMA50:  smaSeries(closes, smaShort),
		SMA150: smaSeries(closes, smaMid),
		SMA200: smaSeries(closes, smaLong),
	}
}

// smaSeries computes a trailing simple moving average, NaN until the first
// full window.
func smaSeries(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}
