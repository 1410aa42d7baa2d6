package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"BaseScan/internal/domain/models"
	domsvc "BaseScan/internal/domain/service"
)

var _ domsvc.BaseDetector = (*Detector)(nil)

// Detector runs base detection over daily bar series. It is stateless
// between calls: every invocation recomputes weekly bars, indicators,
// pivots and candidates from scratch, so concurrent use needs no
// coordination.
type Detector struct {
	params Params
	rules  []rule
}

// NewDetector creates a detector with the given thresholds; zero fields
// fall back to DefaultParams.
func NewDetector(p Params) *Detector {
	d := &Detector{params: p.withDefaults()}
	d.rules = d.classifyRules()
	return d
}

// Params returns the effective thresholds.
func (d *Detector) Params() Params { return d.params }

// Detect identifies and classifies consolidation bases in the daily series.
// Candidates come from two sources: strict weekly pivot highs, plus one
// trailing-high anchor for the unconfirmed tail, deduplicated by start
// index and fed through the same decision table. The returned slice puts
// the current base first (if any), then completed bases by start date
// descending. Structurally invalid input yields *InvalidInputError; a
// series too short for the trend SMAs yields an empty result.
func (d *Detector) Detect(daily []models.Bar) ([]models.Base, error) {
	if err := validateDaily(daily); err != nil {
		return nil, err
	}
	bases := []models.Base{}
	if len(daily) < d.params.MinDailyBars {
		return bases, nil
	}
	weekly := ToWeekly(daily)
	if len(weekly) < 2*d.params.PivotWeeks+1 {
		return bases, nil
	}
	ind := ComputeIndicators(daily)
	highs, lows := FindPivots(weekly, d.params.PivotWeeks)

	cands := buildCandidates(weekly, highs, lows)
	if tc, ok := tailCandidate(weekly, lows, cands, d.params.TrailingHighWeeks); ok {
		cands = append(cands, tc)
	}

	lastWeek := weekly[len(weekly)-1].Date
	for _, c := range cands {
		if c.start > c.end {
			return nil, fmt.Errorf("%w: candidate start %d after end %d", ErrInternal, c.start, c.end)
		}
		if c.baseLow > c.priorHigh {
			return nil, fmt.Errorf("%w: base low %.4f above prior high %.4f", ErrInternal, c.baseLow, c.priorHigh)
		}
		if !d.uptrendOK(daily, ind, weekly[c.start].Date) {
			continue
		}
		baseType, ok := d.classify(c)
		if !ok {
			continue
		}
		resistance := resistanceFor(baseType, weekly, c)
		b := models.Base{
			Type:          baseType,
			StartDate:     weekly[c.start].Date,
			EndDate:       weekly[c.end].Date,
			PriorHigh:     c.priorHigh,
			BaseLow:       c.baseLow,
			DepthPct:      round2(c.depthPct),
			DurationWeeks: c.duration,
			Resistance:    round2(resistance),
			VCPLike:       vcpLike(weekly, c, daily),
		}
		if idx, found := scanBuyPoint(weekly, c.start, resistance); found {
			date := weekly[idx].Date
			price := b.Resistance
			b.BuyPointDate = &date
			b.BuyPointPrice = &price
		} else if resistance > 0 {
			b.DistancePct = round2((resistance - c.latestClose) / resistance * 100.0)
		}
		bases = append(bases, b)
	}

	markCurrent(bases, lastWeek)
	orderBases(bases)
	return bases, nil
}

// markCurrent flags the still-open base: the one ending on the last weekly
// bar, preferring the most recent start when both candidate sources
// produced one. At most one base is ever current.
func markCurrent(bases []models.Base, lastWeek time.Time) {
	cur := -1
	for i, b := range bases {
		if !b.EndDate.Equal(lastWeek) {
			continue
		}
		if cur < 0 || b.StartDate.After(bases[cur].StartDate) {
			cur = i
		}
	}
	if cur >= 0 {
		bases[cur].Current = true
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// orderBases sorts current-first, then by start date descending.
func orderBases(bases []models.Base) {
	sort.SliceStable(bases, func(i, j int) bool {
		if bases[i].Current != bases[j].Current {
			return bases[i].Current
		}
		return bases[i].StartDate.After(bases[j].StartDate)
	})
}
