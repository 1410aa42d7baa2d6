package repository

// Lookback represents the historical span requested from the bar provider,
// in whole years.
type Lookback int

const (
	Lookback1Y  Lookback = 1
	Lookback2Y  Lookback = 2
	Lookback5Y  Lookback = 5
	Lookback10Y Lookback = 10
)

// IsValidLookback returns true if lb is a supported lookback span.
func IsValidLookback(lb Lookback) bool {
	switch lb {
	case Lookback1Y, Lookback2Y, Lookback5Y, Lookback10Y:
		return true
	default:
		return false
	}
}

// DefaultLookback returns the default lookback span.
func DefaultLookback() Lookback { return Lookback5Y }

// NormalizeLookback converts raw years to a valid lookback (or default).
// Values between supported spans round up to the next one.
func NormalizeLookback(years int) Lookback {
	switch {
	case years <= 0:
		return DefaultLookback()
	case years <= 1:
		return Lookback1Y
	case years <= 2:
		return Lookback2Y
	case years <= 5:
		return Lookback5Y
	default:
		return Lookback10Y
	}
}
