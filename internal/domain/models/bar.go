package models

import "time"

// Bar represents one period's OHLCV summary (daily or weekly).
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
	// HasVolume is false for bars whose provider reported no volume.
	HasVolume bool `json:"has_volume"`
}

// Valid reports whether the bar satisfies low <= open,close <= high.
func (b Bar) Valid() bool {
	if b.Low > b.High {
		return false
	}
	if b.Open < b.Low || b.Open > b.High {
		return false
	}
	if b.Close < b.Low || b.Close > b.High {
		return false
	}
	return b.Open > 0 && b.High > 0 && b.Low > 0 && b.Close > 0 && b.Volume >= 0
}
