package engine

import (
	"testing"
	"time"

	"BaseScan/internal/domain/models"
)

// weeklyOfCloses builds standalone weekly bars, one per close, a week apart.
func weeklyOfCloses(closes []float64) []models.Bar {
	bars := make([]models.Bar, len(closes))
	d := testStart.AddDate(0, 0, 4) // first Friday
	for i, c := range closes {
		bars[i] = barAt(d, c)
		d = d.AddDate(0, 0, 7)
	}
	return bars
}

func TestFindPivotsSinglePeak(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 11, 12, 15, 12, 11, 10})
	highs, lows := FindPivots(weekly, 2)
	if len(highs) != 1 || highs[0].Index != 3 {
		t.Fatalf("expected exactly one pivot high at index 3, got %+v", highs)
	}
	if len(lows) != 0 {
		t.Errorf("monotonic flanks should produce no pivot lows, got %+v", lows)
	}
}

func TestFindPivotsSingleTrough(t *testing.T) {
	weekly := weeklyOfCloses([]float64{15, 12, 10, 12, 15})
	highs, lows := FindPivots(weekly, 2)
	if len(lows) != 1 || lows[0].Index != 2 {
		t.Fatalf("expected exactly one pivot low at index 2, got %+v", lows)
	}
	if len(highs) != 0 {
		t.Errorf("expected no pivot highs, got %+v", highs)
	}
}

func TestFindPivotsEdgesNeverQualify(t *testing.T) {
	weekly := weeklyOfCloses([]float64{1, 2, 3, 4, 5, 6})
	highs, lows := FindPivots(weekly, 2)
	if len(highs) != 0 || len(lows) != 0 {
		t.Fatalf("series extremes at the edges must not be pivots: highs=%v lows=%v", highs, lows)
	}
}

func TestFindPivotsTiesDominate(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 10, 10, 10, 10})
	highs, lows := FindPivots(weekly, 2)
	if len(highs) != 1 || highs[0].Index != 2 {
		t.Errorf("a tied flat interior bar should still be a pivot high, got %+v", highs)
	}
	if len(lows) != 1 || lows[0].Index != 2 {
		t.Errorf("a tied flat interior bar should still be a pivot low, got %+v", lows)
	}
}

func TestFindPivotsShortSeries(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 20, 10})
	highs, lows := FindPivots(weekly, 2)
	if len(highs) != 0 || len(lows) != 0 {
		t.Fatalf("series shorter than the window cannot confirm pivots")
	}
}

func TestFindPivotsDatesAlign(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 11, 12, 15, 12, 11, 10})
	highs, _ := FindPivots(weekly, 2)
	if len(highs) != 1 {
		t.Fatalf("expected one pivot high")
	}
	want := testStart.AddDate(0, 0, 4).AddDate(0, 0, 7*3)
	if !weekly[highs[0].Index].Date.Equal(want) {
		t.Errorf("pivot index does not line up with the expected week: %s", weekly[highs[0].Index].Date.Format(time.DateOnly))
	}
}
