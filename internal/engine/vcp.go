package engine

import (
	"time"

	talib "github.com/markcheno/go-talib"

	"BaseScan/internal/domain/models"
)

const atrPeriod = 14

// vcpLike flags bases whose pullbacks contract the way a volatility
// contraction pattern does: successive pivot-low depths shrinking, volume
// drying up on down weeks, and daily ATR lower at the base end than at its
// start. Informational only; classification never depends on it.
func vcpLike(weekly []models.Bar, c candidate, daily []models.Bar) bool {
	if c.priorHigh <= 0 || len(c.lows) < 2 {
		return false
	}
	prev := -1.0
	for _, li := range c.lows {
		depth := (c.priorHigh - weekly[li].Low) / c.priorHigh * 100.0
		if prev >= 0 && depth >= prev {
			return false
		}
		prev = depth
	}
	if !volumeDriesUp(weekly[c.start : c.end+1]) {
		return false
	}
	return atrContracts(daily, weekly[c.start].Date, weekly[c.end].Date)
}

// volumeDriesUp compares average volume on down weeks against up weeks.
// Missing volume data passes the check rather than failing the flag.
func volumeDriesUp(segment []models.Bar) bool {
	var upVol, downVol float64
	var upN, downN int
	for _, b := range segment {
		if !b.HasVolume {
			return true
		}
		if b.Close >= b.Open {
			upVol += b.Volume
			upN++
		} else {
			downVol += b.Volume
			downN++
		}
	}
	if upN == 0 || downN == 0 || upVol <= 0 {
		return true
	}
	return downVol/float64(downN) < upVol/float64(upN)
}

// atrContracts requires the 14-day ATR at the end of the base span to be
// below the ATR at its start. Spans without enough daily data pass.
func atrContracts(daily []models.Bar, from, to time.Time) bool {
	if len(daily) <= atrPeriod {
		return true
	}
	highs := make([]float64, len(daily))
	lows := make([]float64, len(daily))
	closes := make([]float64, len(daily))
	for i, b := range daily {
		highs[i], lows[i], closes[i] = b.High, b.Low, b.Close
	}
	atr := talib.Atr(highs, lows, closes, atrPeriod)
	first, last := -1, -1
	for i, b := range daily {
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 || first > last {
		return true
	}
	start, end := atr[first], atr[last]
	if start <= 0 || end <= 0 {
		return true
	}
	return end < start
}
