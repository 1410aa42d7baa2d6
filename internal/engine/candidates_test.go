package engine

import (
	"math"
	"testing"
)

func TestBuildCandidatesSpans(t *testing.T) {
	weekly := weeklyOfCloses(ramp(nil, 100, 1, 12))
	highs := []Pivot{{Index: 2, Kind: PivotHigh}, {Index: 7, Kind: PivotHigh}}
	lows := []Pivot{{Index: 4, Kind: PivotLow}, {Index: 9, Kind: PivotLow}}
	cands := buildCandidates(weekly, highs, lows)
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].start != 2 || cands[0].end != 6 {
		t.Errorf("first candidate should span 2..6, got %d..%d", cands[0].start, cands[0].end)
	}
	if cands[1].start != 7 || cands[1].end != 11 {
		t.Errorf("second candidate should span 7..11, got %d..%d", cands[1].start, cands[1].end)
	}
	if len(cands[0].lows) != 1 || cands[0].lows[0] != 4 {
		t.Errorf("first candidate lows = %v, want [4]", cands[0].lows)
	}
	if len(cands[1].lows) != 1 || cands[1].lows[0] != 9 {
		t.Errorf("second candidate lows = %v, want [9]", cands[1].lows)
	}
}

func TestBuildCandidatesSkipsAdjacentHighs(t *testing.T) {
	weekly := weeklyOfCloses(ramp(nil, 100, 1, 6))
	highs := []Pivot{{Index: 2, Kind: PivotHigh}, {Index: 3, Kind: PivotHigh}}
	cands := buildCandidates(weekly, highs, nil)
	if len(cands) != 1 {
		t.Fatalf("a zero-width span must be skipped, got %d candidates", len(cands))
	}
	if cands[0].start != 3 {
		t.Errorf("surviving candidate should anchor at index 3, got %d", cands[0].start)
	}
}

func TestNewCandidateStats(t *testing.T) {
	weekly := weeklyOfCloses([]float64{100, 90, 80, 90, 95})
	c := newCandidate(weekly, nil, 0, 4)
	if c.priorHigh != weekly[0].High {
		t.Errorf("prior high should be the anchor high, got %v", c.priorHigh)
	}
	if c.baseLow != weekly[2].Low {
		t.Errorf("base low should be the span minimum, got %v", c.baseLow)
	}
	wantDepth := (c.priorHigh - c.baseLow) / c.priorHigh * 100.0
	if math.Abs(c.depthPct-wantDepth) > 1e-9 {
		t.Errorf("depth = %v, want %v", c.depthPct, wantDepth)
	}
	if c.duration != 5 {
		t.Errorf("duration = %d, want 5", c.duration)
	}
	if c.latestClose != 95 {
		t.Errorf("latest close = %v, want 95", c.latestClose)
	}
	if c.hasRunup {
		t.Errorf("no 8-week history before the anchor, run-up must be absent")
	}
}

func TestNewCandidateHandleDetection(t *testing.T) {
	closes := []float64{100, 95, 90, 80, 90, 92, 94, 96, 95, 96, 97}
	weekly := weeklyOfCloses(closes)
	lows := []Pivot{{Index: 3, Kind: PivotLow}, {Index: 8, Kind: PivotLow}}

	c := newCandidate(weekly, lows, 0, 10)
	if !c.hasHandle {
		t.Fatalf("second low in the upper half should form a handle")
	}

	closes[8] = 83 // second low sinks into the lower half
	c = newCandidate(weeklyOfCloses(closes), lows, 0, 10)
	if c.hasHandle {
		t.Fatalf("a deep second low is not a handle")
	}
}

func TestNewCandidateRunup(t *testing.T) {
	closes := ramp(nil, 100, 15, 12) // steep weekly climb
	weekly := weeklyOfCloses(closes)
	c := newCandidate(weekly, nil, 9, 11)
	if !c.hasRunup {
		t.Fatalf("anchor at index 9 has a full 8-week lookback")
	}
	want := (weekly[9].High - weekly[1].Close) / weekly[1].Close
	if math.Abs(c.runup8w-want) > 1e-9 {
		t.Errorf("run-up = %v, want %v", c.runup8w, want)
	}
}

func TestTailCandidateAnchorsRecentHigh(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 11, 12, 13, 14, 13})
	c, ok := tailCandidate(weekly, nil, nil, 26)
	if !ok {
		t.Fatalf("expected a tail candidate")
	}
	if c.start != 4 || c.end != 5 {
		t.Errorf("tail candidate should span 4..5, got %d..%d", c.start, c.end)
	}
	if !c.fromTail {
		t.Errorf("tail candidates must be marked as such")
	}
}

func TestTailCandidateRejectsLastBarAnchor(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 11, 12, 13, 14, 15})
	if _, ok := tailCandidate(weekly, nil, nil, 26); ok {
		t.Fatalf("an all-time high on the last bar leaves no tail to cover")
	}
}

func TestTailCandidateDeduplicates(t *testing.T) {
	weekly := weeklyOfCloses([]float64{10, 11, 12, 13, 14, 13})
	existing := []candidate{{start: 4, end: 5}}
	if _, ok := tailCandidate(weekly, nil, existing, 26); ok {
		t.Fatalf("a tail anchored at an existing candidate start must be dropped")
	}
}

func TestTailCandidateWindowBounds(t *testing.T) {
	// The all-time high sits outside the trailing window; the anchor must
	// come from inside it.
	closes := append(ramp(nil, 100, -1, 10), 85, 89, 88, 87, 86)
	weekly := weeklyOfCloses(closes)
	c, ok := tailCandidate(weekly, nil, nil, 5)
	if !ok {
		t.Fatalf("expected a tail candidate inside the window")
	}
	if c.start < len(weekly)-5 {
		t.Errorf("anchor %d outside the trailing window", c.start)
	}
}
