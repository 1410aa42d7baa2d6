package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"BaseScan/internal/domain/models"
	domrepo "BaseScan/internal/domain/repository"
	applogger "BaseScan/pkg/logger"
)

type fakeProvider struct {
	bars  []models.Bar
	err   error
	calls int
}

func (p *fakeProvider) DailyBars(_ context.Context, _ string, _ domrepo.Lookback) ([]models.Bar, error) {
	p.calls++
	return p.bars, p.err
}

type fakeStore struct {
	bars      []models.Bar
	queryErr  error
	storeErr  error
	stored    []models.Bar
	storedFor string
}

func (s *fakeStore) Init(context.Context) error { return nil }
func (s *fakeStore) StoreBars(_ context.Context, symbol string, bars []models.Bar) error {
	if s.storeErr != nil {
		return s.storeErr
	}
	s.storedFor = symbol
	s.stored = append(s.stored, bars...)
	return nil
}
func (s *fakeStore) QueryBars(_ context.Context, _ string, _, _ time.Time) ([]models.Bar, error) {
	return s.bars, s.queryErr
}
func (s *fakeStore) Health(context.Context) error { return nil }
func (s *fakeStore) Close() error                 { return nil }

type fakePublisher struct {
	err     error
	symbols []string
	counts  []int
}

func (p *fakePublisher) PublishBases(_ context.Context, symbol string, bases []models.Base) error {
	if p.err != nil {
		return p.err
	}
	p.symbols = append(p.symbols, symbol)
	p.counts = append(p.counts, len(bases))
	return nil
}
func (p *fakePublisher) Close() error { return nil }

type fakeMetrics struct {
	scans  int
	errors []string
}

func (m *fakeMetrics) RecordScan(string, int)        { m.scans++ }
func (m *fakeMetrics) RecordError(kind string)       { m.errors = append(m.errors, kind) }
func (m *fakeMetrics) RecordBasesFound(string, int)  {}
func (m *fakeMetrics) RecordLatency(string, float64) {}

type fakeDetector struct {
	bases []models.Base
	err   error
}

func (d *fakeDetector) Detect([]models.Bar) ([]models.Base, error) { return d.bases, d.err }
func (d *fakeDetector) TrendStatusAt(_ []models.Bar, date time.Time) (models.TrendStatus, error) {
	return models.TrendStatus{Date: date, Uptrend: true}, nil
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func barsEndingAt(end time.Time, n int) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		d := end.AddDate(0, 0, i-n+1)
		bars[i] = models.Bar{Date: d, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000, HasVolume: true}
	}
	return bars
}

func TestDetectBasesSetsSymbolAndPublishes(t *testing.T) {
	provider := &fakeProvider{bars: barsEndingAt(time.Now().UTC(), 10)}
	pub := &fakePublisher{}
	met := &fakeMetrics{}
	det := &fakeDetector{bases: []models.Base{{Type: models.DarvasBox}, {Type: models.LowCheat}}}
	s := NewBaseScanner(provider, nil, det, pub, met, testLogger(t))

	bases, err := s.DetectBases(context.Background(), "NVDA", domrepo.Lookback5Y)
	if err != nil {
		t.Fatalf("DetectBases: %v", err)
	}
	if len(bases) != 2 {
		t.Fatalf("got %d bases, want 2", len(bases))
	}
	for i, b := range bases {
		if b.Symbol != "NVDA" {
			t.Errorf("bases[%d].Symbol = %q, want NVDA", i, b.Symbol)
		}
	}
	if met.scans != 1 {
		t.Errorf("scans = %d, want 1", met.scans)
	}
	if len(pub.symbols) != 1 || pub.symbols[0] != "NVDA" || pub.counts[0] != 2 {
		t.Errorf("publish calls = %v/%v", pub.symbols, pub.counts)
	}
}

func TestDetectBasesPublishFailureIsSoft(t *testing.T) {
	provider := &fakeProvider{bars: barsEndingAt(time.Now().UTC(), 10)}
	pub := &fakePublisher{err: errors.New("broker down")}
	met := &fakeMetrics{}
	s := NewBaseScanner(provider, nil, &fakeDetector{}, pub, met, testLogger(t))

	if _, err := s.DetectBases(context.Background(), "AAPL", domrepo.Lookback2Y); err != nil {
		t.Fatalf("DetectBases: %v", err)
	}
	found := false
	for _, e := range met.errors {
		if e == "publish" {
			found = true
		}
	}
	if !found {
		t.Errorf("publish error not recorded: %v", met.errors)
	}
}

func TestDetectBasesProviderErrorWraps(t *testing.T) {
	provider := &fakeProvider{err: errors.New("dial tcp: refused")}
	s := NewBaseScanner(provider, nil, &fakeDetector{}, &fakePublisher{}, &fakeMetrics{}, testLogger(t))

	_, err := s.DetectBases(context.Background(), "MSFT", domrepo.Lookback1Y)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "fetch bars MSFT") {
		t.Errorf("error = %v, want fetch wrap", err)
	}
}

func TestLoadBarsPrefersFreshStore(t *testing.T) {
	stored := barsEndingAt(time.Now().UTC().Add(-24*time.Hour), 20)
	store := &fakeStore{bars: stored}
	provider := &fakeProvider{bars: barsEndingAt(time.Now().UTC(), 30)}
	s := NewBaseScanner(provider, store, &fakeDetector{}, &fakePublisher{}, &fakeMetrics{}, testLogger(t))

	if _, err := s.DetectBases(context.Background(), "TSLA", domrepo.Lookback1Y); err != nil {
		t.Fatalf("DetectBases: %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times, want 0", provider.calls)
	}
}

func TestLoadBarsStaleStoreFallsBackAndBackfills(t *testing.T) {
	stored := barsEndingAt(time.Now().UTC().Add(-30*24*time.Hour), 20)
	store := &fakeStore{bars: stored}
	provider := &fakeProvider{bars: barsEndingAt(time.Now().UTC(), 30)}
	s := NewBaseScanner(provider, store, &fakeDetector{}, &fakePublisher{}, &fakeMetrics{}, testLogger(t))

	if _, err := s.DetectBases(context.Background(), "TSLA", domrepo.Lookback1Y); err != nil {
		t.Fatalf("DetectBases: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
	if store.storedFor != "TSLA" || len(store.stored) != 30 {
		t.Errorf("backfill stored %d bars for %q", len(store.stored), store.storedFor)
	}
}

func TestLoadBarsStoreReadErrorFallsBack(t *testing.T) {
	store := &fakeStore{queryErr: errors.New("connection reset")}
	provider := &fakeProvider{bars: barsEndingAt(time.Now().UTC(), 30)}
	s := NewBaseScanner(provider, store, &fakeDetector{}, &fakePublisher{}, &fakeMetrics{}, testLogger(t))

	if _, err := s.DetectBases(context.Background(), "AMD", domrepo.Lookback1Y); err != nil {
		t.Fatalf("DetectBases: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}

func TestLoadBarsStoreWriteErrorIsSoft(t *testing.T) {
	store := &fakeStore{storeErr: errors.New("disk full")}
	provider := &fakeProvider{bars: barsEndingAt(time.Now().UTC(), 30)}
	met := &fakeMetrics{}
	s := NewBaseScanner(provider, store, &fakeDetector{}, &fakePublisher{}, met, testLogger(t))

	if _, err := s.DetectBases(context.Background(), "AMD", domrepo.Lookback1Y); err != nil {
		t.Fatalf("DetectBases: %v", err)
	}
	found := false
	for _, e := range met.errors {
		if e == "store_bars" {
			found = true
		}
	}
	if !found {
		t.Errorf("store_bars error not recorded: %v", met.errors)
	}
}

func TestTrendAtDefaultsToLatestBar(t *testing.T) {
	end := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	provider := &fakeProvider{bars: barsEndingAt(end, 10)}
	s := NewBaseScanner(provider, nil, &fakeDetector{}, &fakePublisher{}, &fakeMetrics{}, testLogger(t))

	st, err := s.TrendAt(context.Background(), "GOOG", time.Time{}, domrepo.Lookback1Y)
	if err != nil {
		t.Fatalf("TrendAt: %v", err)
	}
	if !st.Date.Equal(end) {
		t.Errorf("Date = %v, want %v", st.Date, end)
	}
	if st.Symbol != "GOOG" {
		t.Errorf("Symbol = %q, want GOOG", st.Symbol)
	}
}
