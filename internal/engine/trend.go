package engine

import (
	"math"
	"sort"
	"time"

	"BaseScan/internal/domain/models"
)

// barIndexAt returns the index of the daily bar on or immediately
// preceding date, or -1 if the series starts after it.
func barIndexAt(daily []models.Bar, date time.Time) int {
	i := sort.Search(len(daily), func(i int) bool {
		return daily[i].Date.After(date)
	})
	return i - 1
}

// UptrendAt reports whether the daily series is in a confirmed uptrend at
// date (or the nearest prior trading day): 50 > 150 > 200 SMA, the 200-day
// SMA strictly higher than SlopeDays ago, and each SMA strictly higher than
// RisingLookback days ago. Insufficient history is "not in uptrend", never
// an error.
func (d *Detector) UptrendAt(daily []models.Bar, ind IndicatorSet, date time.Time) bool {
	pos := barIndexAt(daily, date)
	if pos < 0 {
		return false
	}
	s50, s150, s200 := ind.SMA50[pos], ind.SMA150[pos], ind.SMA200[pos]
	if math.IsNaN(s50) || math.IsNaN(s150) || math.IsNaN(s200) {
		return false
	}
	if !(s50 > s150 && s150 > s200) {
		return false
	}
	if pos < d.params.SlopeDays {
		return false
	}
	ago := ind.SMA200[pos-d.params.SlopeDays]
	if math.IsNaN(ago) || s200 <= ago {
		return false
	}
	if pos < d.params.RisingLookback {
		return false
	}
	for _, sma := range [][]float64{ind.SMA50, ind.SMA150, ind.SMA200} {
		prev := sma[pos-d.params.RisingLookback]
		if math.IsNaN(prev) || sma[pos] <= prev {
			return false
		}
	}
	return true
}

// TrendStatusAt evaluates the uptrend predicate over a validated daily
// series and reports the SMA values at the probed bar. SMA pointers stay
// nil until their windows are fully populated.
func (d *Detector) TrendStatusAt(daily []models.Bar, date time.Time) (models.TrendStatus, error) {
	if err := validateDaily(daily); err != nil {
		return models.TrendStatus{}, err
	}
	pos := barIndexAt(daily, date)
	if pos < 0 {
		return models.TrendStatus{}, invalidInputf("date %s precedes the series", date.Format("2006-01-02"))
	}
	ind := ComputeIndicators(daily)
	st := models.TrendStatus{
		Date:    daily[pos].Date,
		Uptrend: d.UptrendAt(daily, ind, date),
	}
	setIfDefined := func(dst **float64, v float64) {
		if !math.IsNaN(v) {
			val := v
			*dst = &val
		}
	}
	setIfDefined(&st.SMA50, ind.SMA50[pos])
	setIfDefined(&st.SMA150, ind.SMA150[pos])
	setIfDefined(&st.SMA200, ind.SMA200[pos])
	return st, nil
}

// uptrendOK applies the configured probe policy: strict at date, with an
// optional one-week-earlier retry for candidates still forming.
func (d *Detector) uptrendOK(daily []models.Bar, ind IndicatorSet, date time.Time) bool {
	if d.UptrendAt(daily, ind, date) {
		return true
	}
	if d.params.RelaxedUptrendProbe {
		return d.UptrendAt(daily, ind, date.AddDate(0, 0, -7))
	}
	return false
}
