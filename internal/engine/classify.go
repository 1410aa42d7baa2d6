package engine

import (
	"math"

	"BaseScan/internal/domain/models"
)

// rule pairs a predicate with the base type it assigns. Rules form an
// ordered decision table: first match wins, no match means rejection.
type rule struct {
	baseType models.BaseType
	match    func(c candidate) bool
}

func durationIn(c candidate, lo, hi int) bool {
	return c.duration >= lo && c.duration <= hi
}

// inLowerThird reports whether the candidate's last close sits in the
// lower third of its high-to-low range.
func inLowerThird(c candidate) bool {
	rng := c.priorHigh - c.baseLow
	bound := c.baseLow
	if rng > 0 {
		bound = c.baseLow + rng/3.0
	}
	return c.latestClose <= bound
}

// classifyRules builds the priority-ordered decision table. Overlapping
// duration ranges are resolved by order alone.
func (d *Detector) classifyRules() []rule {
	p := d.params
	return []rule{
		{models.PowerPlay, func(c candidate) bool {
			return durationIn(c, powerPlayMinWeeks, powerPlayMaxWeeks) &&
				c.hasRunup && c.runup8w >= p.PowerPlayMinRunup
		}},
		{models.DarvasBox, func(c candidate) bool {
			return durationIn(c, darvasMinWeeks, darvasMaxWeeks) &&
				c.depthPct <= p.DarvasMaxDepthPct
		}},
		{models.CupWithHandle, func(c candidate) bool {
			return durationIn(c, cupHandleMinWeeks, cupHandleMaxWeeks) && c.hasHandle
		}},
		{models.DoubleBottom, func(c candidate) bool {
			if !durationIn(c, doubleBottomMinWeeks, doubleBottomMaxWeeks) || c.hasHandle {
				return false
			}
			if len(c.lows) != 2 || c.priorHigh <= 0 {
				return false
			}
			return math.Abs(c.low1-c.low2)/c.priorHigh <= p.DoubleBottomTolerance
		}},
		{models.CupCompletionCheat, func(c candidate) bool {
			return durationIn(c, cupCheatMinWeeks, cupCheatMaxWeeks) &&
				!c.hasHandle && !inLowerThird(c)
		}},
		{models.LowCheat, func(c candidate) bool {
			return durationIn(c, cupCheatMinWeeks, cupCheatMaxWeeks) &&
				!c.hasHandle && inLowerThird(c)
		}},
	}
}

// classify assigns a base type to the candidate, or rejects it.
func (d *Detector) classify(c candidate) (models.BaseType, bool) {
	for _, r := range d.rules {
		if r.match(c) {
			return r.baseType, true
		}
	}
	return "", false
}
