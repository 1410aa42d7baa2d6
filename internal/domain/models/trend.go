package models

import "time"

// TrendStatus reports the uptrend predicate and its SMA inputs at a probed
// bar. SMA pointers are nil while the window is not yet fully populated.
type TrendStatus struct {
	Symbol  string    `json:"symbol,omitempty"`
	Date    time.Time `json:"date"`
	Uptrend bool      `json:"uptrend"`
	SMA50   *float64  `json:"sma50"`
	SMA150  *float64  `json:"sma150"`
	SMA200  *float64  `json:"sma200"`
}
