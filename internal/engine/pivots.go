package engine

import "BaseScan/internal/domain/models"

// PivotKind tags a weekly extremum.
type PivotKind int

const (
	PivotHigh PivotKind = iota
	PivotLow
)

// Pivot marks a confirmed local extremum on the weekly series.
type Pivot struct {
	Index int
	Price float64
	Kind  PivotKind
}

// FindPivots returns pivot highs and lows on the weekly series using a
// strict symmetric window: a bar qualifies only when it dominates `window`
// fully-present neighbors on each side, so the first and last `window`
// bars can never be pivots. Ties count as dominating.
func FindPivots(weekly []models.Bar, window int) (highs, lows []Pivot) {
	n := len(weekly)
	for i := window; i < n-window; i++ {
		isHigh, isLow := true, true
		for j := i - window; j <= i+window; j++ {
			if j == i {
				continue
			}
			if weekly[j].High > weekly[i].High {
				isHigh = false
			}
			if weekly[j].Low < weekly[i].Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}
		if isHigh {
			highs = append(highs, Pivot{Index: i, Price: weekly[i].High, Kind: PivotHigh})
		}
		if isLow {
			lows = append(lows, Pivot{Index: i, Price: weekly[i].Low, Kind: PivotLow})
		}
	}
	return highs, lows
}
