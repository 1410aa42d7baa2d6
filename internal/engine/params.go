package engine

// SMA windows used by the trend filter (trading days).
const (
	smaShort = 50
	smaMid   = 150
	smaLong  = 200
)

// Base type duration ranges (whole weeks, inclusive).
const (
	powerPlayMinWeeks    = 2
	powerPlayMaxWeeks    = 6
	darvasMinWeeks       = 4
	darvasMaxWeeks       = 6
	cupCheatMinWeeks     = 6
	cupCheatMaxWeeks     = 52
	cupHandleMinWeeks    = 7
	cupHandleMaxWeeks    = 65
	doubleBottomMinWeeks = 7
	doubleBottomMaxWeeks = 65
)

// Run-up window preceding a Power Play candidate (weeks).
const powerPlayRunupWeeks = 8

// Params holds the tunable detection thresholds. The heuristic constants
// have no derivation beyond practice, so they are configuration rather
// than contract.
type Params struct {
	// MinDailyBars is the minimum daily history for detection; shorter
	// series yield an empty result, not an error.
	MinDailyBars int
	// SlopeDays is the lookback for the long-SMA rising test (trading days).
	SlopeDays int
	// RisingLookback is the per-SMA rising comparison offset (trading days).
	RisingLookback int
	// PivotWeeks is the symmetric confirmation window on each side of a
	// weekly pivot.
	PivotWeeks int
	// TrailingHighWeeks bounds the trailing-high candidate source for the
	// still-open tail of the series.
	TrailingHighWeeks int
	// DarvasMaxDepthPct is the tight-range ceiling for a Darvas box.
	DarvasMaxDepthPct float64
	// DoubleBottomTolerance is the max spread between the two lows as a
	// fraction of the prior high.
	DoubleBottomTolerance float64
	// PowerPlayMinRunup is the minimum prior 8-week gain (decimal).
	PowerPlayMinRunup float64
	// RelaxedUptrendProbe retries the uptrend test one week before the
	// candidate start when the strict probe fails.
	RelaxedUptrendProbe bool
}

// DefaultParams returns the standard thresholds.
func DefaultParams() Params {
	return Params{
		MinDailyBars:          252,
		SlopeDays:             21,
		RisingLookback:        5,
		PivotWeeks:            2,
		TrailingHighWeeks:     26,
		DarvasMaxDepthPct:     25.0,
		DoubleBottomTolerance: 0.05,
		PowerPlayMinRunup:     0.90,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.MinDailyBars <= 0 {
		p.MinDailyBars = d.MinDailyBars
	}
	if p.SlopeDays <= 0 {
		p.SlopeDays = d.SlopeDays
	}
	if p.RisingLookback <= 0 {
		p.RisingLookback = d.RisingLookback
	}
	if p.PivotWeeks <= 0 {
		p.PivotWeeks = d.PivotWeeks
	}
	if p.TrailingHighWeeks <= 0 {
		p.TrailingHighWeeks = d.TrailingHighWeeks
	}
	if p.DarvasMaxDepthPct <= 0 {
		p.DarvasMaxDepthPct = d.DarvasMaxDepthPct
	}
	if p.DoubleBottomTolerance <= 0 {
		p.DoubleBottomTolerance = d.DoubleBottomTolerance
	}
	if p.PowerPlayMinRunup <= 0 {
		p.PowerPlayMinRunup = d.PowerPlayMinRunup
	}
	return p
}
