package usecase

import (
	"context"
	"fmt"
	"time"

	"BaseScan/internal/domain/models"
	domrepo "BaseScan/internal/domain/repository"
	domsvc "BaseScan/internal/domain/service"
	applogger "BaseScan/pkg/logger"
)

// staleAfter bounds how old the newest stored bar may be before the
// provider is consulted again.
const staleAfter = 72 * time.Hour

// BaseScanner orchestrates one detection scan: load daily bars (store
// first, provider on miss, backfill after), run the detector, publish the
// result, record metrics.
type BaseScanner struct {
	provider  domrepo.BarProvider
	store     domrepo.BarStore // nil when persistence is disabled
	detector  domsvc.BaseDetector
	publisher domrepo.BasePublisher
	metrics   domrepo.Metrics
	l         *applogger.Logger
}

func NewBaseScanner(
	provider domrepo.BarProvider,
	store domrepo.BarStore,
	detector domsvc.BaseDetector,
	publisher domrepo.BasePublisher,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *BaseScanner {
	return &BaseScanner{
		provider:  provider,
		store:     store,
		detector:  detector,
		publisher: publisher,
		metrics:   metrics,
		l:         l,
	}
}

// DetectBases runs a full scan for one symbol over the given lookback.
func (u *BaseScanner) DetectBases(ctx context.Context, symbol string, lookback domrepo.Lookback) ([]models.Base, error) {
	start := time.Now()

	daily, err := u.loadBars(ctx, symbol, lookback)
	if err != nil {
		u.metrics.RecordError("load_bars")
		return nil, err
	}

	bases, err := u.detector.Detect(daily)
	if err != nil {
		u.metrics.RecordError("detect")
		return nil, fmt.Errorf("detect %s: %w", symbol, err)
	}
	for i := range bases {
		bases[i].Symbol = symbol
	}

	u.metrics.RecordScan(symbol, len(bases))
	u.metrics.RecordLatency("scan", time.Since(start).Seconds())

	// Publishing is best-effort; a broker outage must not fail the scan.
	if err := u.publisher.PublishBases(ctx, symbol, bases); err != nil {
		u.metrics.RecordError("publish")
		u.l.Warn("publish bases failed",
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
	}

	u.l.Info("scan complete",
		applogger.String("symbol", symbol),
		applogger.Int("daily_bars", len(daily)),
		applogger.Int("bases", len(bases)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return bases, nil
}

// TrendAt evaluates the uptrend predicate for a symbol at a probe date
// (zero date means the latest bar).
func (u *BaseScanner) TrendAt(ctx context.Context, symbol string, date time.Time, lookback domrepo.Lookback) (models.TrendStatus, error) {
	daily, err := u.loadBars(ctx, symbol, lookback)
	if err != nil {
		u.metrics.RecordError("load_bars")
		return models.TrendStatus{}, err
	}
	if len(daily) == 0 {
		return models.TrendStatus{}, fmt.Errorf("no bars for %s", symbol)
	}
	if date.IsZero() {
		date = daily[len(daily)-1].Date
	}
	st, err := u.detector.TrendStatusAt(daily, date)
	if err != nil {
		return models.TrendStatus{}, err
	}
	st.Symbol = symbol
	return st, nil
}

// loadBars reads the store when it holds a fresh series, otherwise fetches
// from the provider and backfills the store.
func (u *BaseScanner) loadBars(ctx context.Context, symbol string, lookback domrepo.Lookback) ([]models.Bar, error) {
	now := time.Now().UTC()
	from := now.AddDate(-int(lookback), 0, 0)

	if u.store != nil {
		stored, err := u.store.QueryBars(ctx, symbol, from, now)
		if err != nil {
			u.l.Warn("bar store read failed, using provider",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		} else if len(stored) > 0 && now.Sub(stored[len(stored)-1].Date) < staleAfter {
			return stored, nil
		}
	}

	fetchStart := time.Now()
	bars, err := u.provider.DailyBars(ctx, symbol, lookback)
	u.metrics.RecordLatency("provider_fetch", time.Since(fetchStart).Seconds())
	if err != nil {
		return nil, fmt.Errorf("fetch bars %s: %w", symbol, err)
	}

	if u.store != nil {
		if err := u.store.StoreBars(ctx, symbol, bars); err != nil {
			u.metrics.RecordError("store_bars")
			u.l.Warn("bar store backfill failed",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
	}
	return bars, nil
}
