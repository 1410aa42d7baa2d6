package engine

import (
	"testing"

	"BaseScan/internal/domain/models"
)

func TestScanBuyPointFirstCrossing(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 9, 8, 11, 12})
	idx, ok := scanBuyPoint(weekly, 0, 10.5)
	if !ok || idx != 3 {
		t.Fatalf("expected first crossing at index 3, got %d ok=%v", idx, ok)
	}
}

func TestScanBuyPointStartWeekCounts(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 9, 8})
	idx, ok := scanBuyPoint(weekly, 0, 10)
	if !ok || idx != 0 {
		t.Fatalf("a start week already at resistance should trigger, got %d ok=%v", idx, ok)
	}
}

func TestScanBuyPointNeverTriggers(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 9, 8, 9, 10})
	if _, ok := scanBuyPoint(weekly, 0, 20); ok {
		t.Fatalf("no close reaches 20, must not trigger")
	}
}

func TestScanBuyPointRespectsStart(t *testing.T) {
	weekly := weeklyOfCloses([]float64{15, 9, 8, 9, 12})
	idx, ok := scanBuyPoint(weekly, 1, 11)
	if !ok || idx != 4 {
		t.Fatalf("crossings before the start index must be ignored, got %d ok=%v", idx, ok)
	}
}

func TestResistanceForCupWithHandle(t *testing.T) {
	weekly := weeklyOfCloses([]float64{100, 80, 70, 80, 90, 88, 90, 92})
	c := newCandidate(weekly, []Pivot{{Index: 2, Kind: PivotLow}, {Index: 5, Kind: PivotLow}}, 0, 7)
	got := resistanceFor(models.CupWithHandle, weekly, c)
	want := weekly[7].High // highest weekly high from the handle low onward
	if got != want {
		t.Fatalf("cup w/ handle resistance = %v, want %v", got, want)
	}
}

func TestResistanceForDoubleBottom(t *testing.T) {
	weekly := weeklyOfCloses([]float64{100, 80, 70, 85, 78, 71, 80, 82})
	c := newCandidate(weekly, []Pivot{{Index: 2, Kind: PivotLow}, {Index: 5, Kind: PivotLow}}, 0, 7)
	got := resistanceFor(models.DoubleBottom, weekly, c)
	want := weekly[3].High // neckline between the two lows
	if got != want {
		t.Fatalf("double bottom resistance = %v, want %v", got, want)
	}
}

func TestResistanceForDarvasBox(t *testing.T) {
	weekly := weeklyOfCloses([]float64{100, 98, 101, 99, 97})
	c := newCandidate(weekly, nil, 0, 4)
	got := resistanceFor(models.DarvasBox, weekly, c)
	want := weekly[2].High // box high, not the anchor high
	if got != want {
		t.Fatalf("darvas resistance = %v, want %v", got, want)
	}
}

func TestResistanceDefaultsToPriorHigh(t *testing.T) {
	weekly := weeklyOfCloses([]float64{100, 90, 80, 85, 88})
	c := newCandidate(weekly, nil, 0, 4)
	for _, bt := range []models.BaseType{models.LowCheat, models.CupCompletionCheat, models.PowerPlay} {
		if got := resistanceFor(bt, weekly, c); got != c.priorHigh {
			t.Errorf("%s resistance = %v, want prior high %v", bt, got, c.priorHigh)
		}
	}
}
