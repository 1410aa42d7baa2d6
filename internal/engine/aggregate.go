package engine

import (
	"time"

	"BaseScan/internal/domain/models"
)

// validateDaily checks the structural input contract: non-empty, strictly
// increasing dates, and per-bar price sanity.
func validateDaily(daily []models.Bar) error {
	if len(daily) == 0 {
		return invalidInputf("empty daily series")
	}
	for i, b := range daily {
		if !b.Valid() {
			return invalidInputf("bar %d (%s): prices violate low <= open,close <= high", i, b.Date.Format("2006-01-02"))
		}
		if i == 0 {
			continue
		}
		prev := daily[i-1].Date
		if !b.Date.After(prev) {
			if b.Date.Equal(prev) {
				return invalidInputf("duplicate timestamp at bar %d (%s)", i, b.Date.Format("2006-01-02"))
			}
			return invalidInputf("out-of-order timestamp at bar %d (%s)", i, b.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// weekEnd returns the Friday closing the calendar week containing t.
// Saturday and Sunday roll into the following week.
func weekEnd(t time.Time) time.Time {
	days := (int(time.Friday) - int(t.Weekday()) + 7) % 7
	y, m, d := t.AddDate(0, 0, days).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ToWeekly aggregates a daily series into calendar-week bars: open of the
// first day, max high, min low, close of the last day, summed volume.
// A weekly bar's Date is the last trading day observed in that week. Weeks
// without trading days are omitted, not interpolated. Pure; the input is
// never mutated.
func ToWeekly(daily []models.Bar) []models.Bar {
	if len(daily) == 0 {
		return nil
	}
	weekly := make([]models.Bar, 0, len(daily)/4+1)
	cur := daily[0]
	curWeek := weekEnd(daily[0].Date)
	for _, b := range daily[1:] {
		w := weekEnd(b.Date)
		if !w.Equal(curWeek) {
			weekly = append(weekly, cur)
			cur = b
			curWeek = w
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Date = b.Date
		cur.Volume += b.Volume
		cur.HasVolume = cur.HasVolume && b.HasVolume
	}
	return append(weekly, cur)
}
