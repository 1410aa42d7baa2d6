package engine

import (
	"math"
	"testing"
)

func TestSMASeriesWindowBoundary(t *testing.T) {
	out := smaSeries([]float64{1, 2, 3, 4, 5}, 3)
	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Errorf("positions before a full window must be NaN: %v", out[:2])
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if out[i+2] != w {
			t.Errorf("sma[%d] = %v, want %v", i+2, out[i+2], w)
		}
	}
}

func TestSMASeriesShortInput(t *testing.T) {
	out := smaSeries([]float64{1, 2}, 3)
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Errorf("position %d should be NaN on short input, got %v", i, v)
		}
	}
}

func TestUptrendAtRisingSeries(t *testing.T) {
	daily := seriesOfCloses(ramp(nil, 100, 0.2, 300))
	d := NewDetector(Params{})
	ind := ComputeIndicators(daily)
	if !d.UptrendAt(daily, ind, daily[len(daily)-1].Date) {
		t.Fatalf("a steady 300-day rise should qualify as an uptrend")
	}
}

func TestUptrendAtFallingSeries(t *testing.T) {
	daily := seriesOfCloses(ramp(nil, 200, -0.2, 300))
	d := NewDetector(Params{})
	ind := ComputeIndicators(daily)
	if d.UptrendAt(daily, ind, daily[len(daily)-1].Date) {
		t.Fatalf("a steady decline must not qualify as an uptrend")
	}
}

func TestUptrendAtInsufficientHistory(t *testing.T) {
	daily := seriesOfCloses(ramp(nil, 100, 0.2, 100))
	d := NewDetector(Params{})
	ind := ComputeIndicators(daily)
	if d.UptrendAt(daily, ind, daily[len(daily)-1].Date) {
		t.Fatalf("undefined long SMA must degrade to false, not error")
	}
}

func TestUptrendAtDateBeforeSeries(t *testing.T) {
	daily := seriesOfCloses(ramp(nil, 100, 0.2, 300))
	d := NewDetector(Params{})
	ind := ComputeIndicators(daily)
	if d.UptrendAt(daily, ind, testStart.AddDate(0, 0, -10)) {
		t.Fatalf("a probe before the series must be false")
	}
}

func TestBarIndexAtUsesPriorTradingDay(t *testing.T) {
	daily := seriesOfCloses(ramp(nil, 100, 1, 10))
	// daily[4] is a Friday; the following Saturday must resolve to it.
	saturday := daily[4].Date.AddDate(0, 0, 1)
	if got := barIndexAt(daily, saturday); got != 4 {
		t.Fatalf("barIndexAt(saturday) = %d, want 4", got)
	}
	if got := barIndexAt(daily, daily[7].Date); got != 7 {
		t.Fatalf("barIndexAt(exact date) = %d, want 7", got)
	}
}

func TestRelaxedUptrendProbeRetriesEarlier(t *testing.T) {
	// Rising series followed by a week of collapse: strict probe at the
	// end fails, the one-week-earlier retry succeeds.
	closes := ramp(nil, 100, 0.2, 300)
	closes = weeks(closes, 40)
	daily := seriesOfCloses(closes)
	ind := ComputeIndicators(daily)
	probe := daily[len(daily)-1].Date

	strict := NewDetector(Params{})
	if strict.uptrendOK(daily, ind, probe) {
		t.Fatalf("strict probe should fail after the collapse week")
	}
	relaxed := NewDetector(Params{RelaxedUptrendProbe: true})
	if !relaxed.uptrendOK(daily, ind, probe) {
		t.Fatalf("relaxed probe should pass one week earlier")
	}
}
