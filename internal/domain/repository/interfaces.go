package repository

import (
	"context"
	"time"

	"BaseScan/internal/domain/models"
)

// BarProvider fetches historical daily OHLCV bars from an external
// market-data service. Bars are returned in ascending date order.
type BarProvider interface {
	DailyBars(ctx context.Context, symbol string, lookback Lookback) ([]models.Bar, error)
}

// BarStore persists daily bars and reads them back ordered by date.
type BarStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	StoreBars(ctx context.Context, symbol string, bars []models.Bar) error
	QueryBars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error)
	Health(ctx context.Context) error
	Close() error
}

// BasePublisher emits completed detection results for downstream consumers.
type BasePublisher interface {
	PublishBases(ctx context.Context, symbol string, bases []models.Base) error
	Close() error
}

// Metrics records operational measurements for scans and collaborators.
type Metrics interface {
	RecordScan(symbol string, bases int)
	RecordError(kind string)
	RecordBasesFound(symbol string, count int)
	RecordLatency(op string, seconds float64)
}
