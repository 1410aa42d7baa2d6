package engine

import "BaseScan/internal/domain/models"

// candidate is a contiguous weekly slice anchored at a prior high, from the
// anchor week (inclusive) to the week before the next pivot high, or the
// series end. Intermediate only; candidates never outlive a Detect call.
type candidate struct {
	start, end  int // weekly indices, inclusive
	priorHigh   float64
	baseLow     float64
	depthPct    float64
	duration    int
	lows        []int // pivot-low indices strictly inside the slice
	low1, low2  float64
	hasHandle   bool
	latestClose float64
	runup8w     float64
	hasRunup    bool
	fromTail    bool
}

// newCandidate fills the derived attributes for a start..end weekly span.
func newCandidate(weekly []models.Bar, pivotLows []Pivot, start, end int) candidate {
	c := candidate{start: start, end: end}
	c.priorHigh = weekly[start].High
	c.baseLow = weekly[start].Low
	for i := start; i <= end; i++ {
		if weekly[i].Low < c.baseLow {
			c.baseLow = weekly[i].Low
		}
	}
	if c.priorHigh > 0 {
		c.depthPct = (c.priorHigh - c.baseLow) / c.priorHigh * 100.0
	}
	c.duration = end - start + 1
	c.latestClose = weekly[end].Close
	for _, p := range pivotLows {
		if p.Index > start && p.Index <= end {
			c.lows = append(c.lows, p.Index)
		}
	}
	if len(c.lows) >= 1 {
		c.low1 = weekly[c.lows[0]].Low
	}
	if len(c.lows) >= 2 {
		c.low2 = weekly[c.lows[1]].Low
		mid := c.baseLow + (c.priorHigh-c.baseLow)/2
		c.hasHandle = c.low2 > mid && c.low2 > c.low1
	}
	if start >= powerPlayRunupWeeks {
		ago := weekly[start-powerPlayRunupWeeks].Close
		if ago > 0 {
			c.runup8w = (c.priorHigh - ago) / ago
			c.hasRunup = true
		}
	}
	return c
}

// buildCandidates constructs one candidate per pivot high, in order.
func buildCandidates(weekly []models.Bar, pivotHighs, pivotLows []Pivot) []candidate {
	var out []candidate
	for i, ph := range pivotHighs {
		end := len(weekly) - 1
		if i+1 < len(pivotHighs) {
			end = pivotHighs[i+1].Index - 1
		}
		if end <= ph.Index {
			continue
		}
		out = append(out, newCandidate(weekly, pivotLows, ph.Index, end))
	}
	return out
}

// tailCandidate anchors one extra candidate at the highest high within the
// trailing window, covering the still-open tail the strict pivot rule
// cannot confirm yet. Returns false when the tail is too short or the
// anchor duplicates an existing candidate start.
func tailCandidate(weekly []models.Bar, pivotLows []Pivot, existing []candidate, trailingWeeks int) (candidate, bool) {
	n := len(weekly)
	if n < 2 {
		return candidate{}, false
	}
	from := n - trailingWeeks
	if from < 0 {
		from = 0
	}
	anchor := from
	for i := from + 1; i < n; i++ {
		if weekly[i].High > weekly[anchor].High {
			anchor = i
		}
	}
	if anchor >= n-1 {
		return candidate{}, false
	}
	for _, c := range existing {
		if c.start == anchor {
			return candidate{}, false
		}
	}
	c := newCandidate(weekly, pivotLows, anchor, n-1)
	c.fromTail = true
	return c, true
}
