package models

import "time"

// BaseType names a recognized consolidation pattern.
type BaseType string

const (
	PowerPlay          BaseType = "Power Play"
	DarvasBox          BaseType = "Darvas box"
	CupWithHandle      BaseType = "Cup w/ handle"
	DoubleBottom       BaseType = "Double bottom"
	CupCompletionCheat BaseType = "Cup completion cheat"
	LowCheat           BaseType = "Low cheat"
)

// Base is one classified consolidation structure in a weekly series.
// BuyPointDate and BuyPointPrice are nil until a breakout bar exists,
// which is distinct from a zero value ("not yet triggered").
type Base struct {
	Symbol        string     `json:"symbol,omitempty"`
	Type          BaseType   `json:"base_type"`
	Current       bool       `json:"current"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	PriorHigh     float64    `json:"prior_high"`
	BaseLow       float64    `json:"base_low"`
	DepthPct      float64    `json:"depth_pct"`
	DurationWeeks int        `json:"duration_weeks"`
	Resistance    float64    `json:"resistance"`
	BuyPointDate  *time.Time `json:"buy_point_date"`
	BuyPointPrice *float64   `json:"buy_point_price"`
	DistancePct   float64    `json:"distance_pct"`
	VCPLike       bool       `json:"vcp_like"`
}
