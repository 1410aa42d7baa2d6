package repository

import "testing"

func TestNormalizeLookback(t *testing.T) {
	cases := []struct {
		years int
		want  Lookback
	}{
		{-3, Lookback5Y},
		{0, Lookback5Y},
		{1, Lookback1Y},
		{2, Lookback2Y},
		{3, Lookback5Y},
		{5, Lookback5Y},
		{6, Lookback10Y},
		{10, Lookback10Y},
		{50, Lookback10Y},
	}
	for _, tc := range cases {
		if got := NormalizeLookback(tc.years); got != tc.want {
			t.Errorf("NormalizeLookback(%d) = %d, want %d", tc.years, got, tc.want)
		}
	}
}

func TestIsValidLookback(t *testing.T) {
	for _, lb := range []Lookback{Lookback1Y, Lookback2Y, Lookback5Y, Lookback10Y} {
		if !IsValidLookback(lb) {
			t.Errorf("IsValidLookback(%d) = false", lb)
		}
	}
	for _, lb := range []Lookback{0, 3, 7, -1} {
		if IsValidLookback(lb) {
			t.Errorf("IsValidLookback(%d) = true", lb)
		}
	}
}
