package engine

import "BaseScan/internal/domain/models"

// resistanceFor returns the breakout trigger level for a classified base:
// the handle high for cups with handles, the neckline between the two lows
// for double bottoms, the box high for Darvas boxes, and the prior high
// for everything else.
func resistanceFor(baseType models.BaseType, weekly []models.Bar, c candidate) float64 {
	maxHigh := func(from, to int) float64 {
		m := weekly[from].High
		for i := from + 1; i <= to; i++ {
			if weekly[i].High > m {
				m = weekly[i].High
			}
		}
		return m
	}
	switch baseType {
	case models.CupWithHandle:
		if c.hasHandle && len(c.lows) >= 2 {
			return maxHigh(c.lows[1], c.end)
		}
	case models.DoubleBottom:
		if len(c.lows) >= 2 {
			return maxHigh(c.lows[0], c.lows[1])
		}
	case models.DarvasBox:
		return maxHigh(c.start, c.end)
	}
	return c.priorHigh
}

// scanBuyPoint walks forward from the candidate start and returns the index
// of the first weekly bar closing at or above resistance. Only bars up to
// the current step are ever consulted, so truncating future data never
// changes a past decision. Returns false when no bar has triggered yet.
func scanBuyPoint(weekly []models.Bar, start int, resistance float64) (int, bool) {
	for i := start; i < len(weekly); i++ {
		if weekly[i].Close >= resistance {
			return i, true
		}
	}
	return 0, false
}
