package engine

import (
	"testing"
	"time"

	"BaseScan/internal/domain/models"
)

func TestWeekEnd(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2019, 1, 7, 0, 0, 0, 0, time.UTC), time.Date(2019, 1, 11, 0, 0, 0, 0, time.UTC)},  // Monday
		{time.Date(2019, 1, 11, 0, 0, 0, 0, time.UTC), time.Date(2019, 1, 11, 0, 0, 0, 0, time.UTC)}, // Friday
		{time.Date(2019, 1, 12, 0, 0, 0, 0, time.UTC), time.Date(2019, 1, 18, 0, 0, 0, 0, time.UTC)}, // Saturday rolls forward
		{time.Date(2019, 1, 13, 0, 0, 0, 0, time.UTC), time.Date(2019, 1, 18, 0, 0, 0, 0, time.UTC)}, // Sunday rolls forward
	}
	for _, c := range cases {
		if got := weekEnd(c.in); !got.Equal(c.want) {
			t.Errorf("weekEnd(%s) = %s, want %s", c.in.Format("2006-01-02"), got.Format("2006-01-02"), c.want.Format("2006-01-02"))
		}
	}
}

func TestToWeeklyAggregates(t *testing.T) {
	mon := time.Date(2019, 1, 7, 0, 0, 0, 0, time.UTC)
	daily := []models.Bar{
		{Date: mon, Open: 10, High: 12, Low: 9, Close: 11, Volume: 100, HasVolume: true},
		{Date: mon.AddDate(0, 0, 1), Open: 11, High: 15, Low: 10, Close: 14, Volume: 100, HasVolume: true},
		{Date: mon.AddDate(0, 0, 2), Open: 14, High: 14.5, Low: 13, Close: 13.5, Volume: 100, HasVolume: true},
	}
	weekly := ToWeekly(daily)
	if len(weekly) != 1 {
		t.Fatalf("expected 1 weekly bar, got %d", len(weekly))
	}
	w := weekly[0]
	if w.Open != 10 || w.High != 15 || w.Low != 9 || w.Close != 13.5 {
		t.Errorf("unexpected OHLC: %+v", w)
	}
	if w.Volume != 300 {
		t.Errorf("expected summed volume 300, got %v", w.Volume)
	}
	if !w.Date.Equal(daily[2].Date) {
		t.Errorf("weekly date should be the last trading day, got %s", w.Date.Format("2006-01-02"))
	}
	if !w.HasVolume {
		t.Errorf("volume present on every day should carry through")
	}
}

func TestToWeeklyOmitsEmptyWeeks(t *testing.T) {
	mon := time.Date(2019, 1, 7, 0, 0, 0, 0, time.UTC)
	daily := []models.Bar{
		barAt(mon, 10),
		barAt(mon.AddDate(0, 0, 14), 12), // next bar two calendar weeks later
	}
	weekly := ToWeekly(daily)
	if len(weekly) != 2 {
		t.Fatalf("expected 2 weekly bars around the gap, got %d", len(weekly))
	}
}

func TestToWeeklyMissingVolumePropagates(t *testing.T) {
	mon := time.Date(2019, 1, 7, 0, 0, 0, 0, time.UTC)
	daily := []models.Bar{barAt(mon, 10), barAt(mon.AddDate(0, 0, 1), 11)}
	daily[1].HasVolume = false
	weekly := ToWeekly(daily)
	if len(weekly) != 1 || weekly[0].HasVolume {
		t.Fatalf("a week with any volumeless day must not claim volume")
	}
}

func TestToWeeklyDoesNotMutateInput(t *testing.T) {
	daily := seriesOfCloses(ramp(nil, 100, 1, 10))
	before := make([]models.Bar, len(daily))
	copy(before, daily)
	ToWeekly(daily)
	for i := range daily {
		if daily[i] != before[i] {
			t.Fatalf("input bar %d mutated", i)
		}
	}
}
