package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"BaseScan/internal/domain/models"
	domrepo "BaseScan/internal/domain/repository"
	pkgch "BaseScan/pkg/clickhouse"
	applogger "BaseScan/pkg/logger"
)

const dailyBarsTable = "basescan.daily_bars"

var barStoreSchema = []string{
	`CREATE DATABASE IF NOT EXISTS basescan`,
	`CREATE TABLE IF NOT EXISTS ` + dailyBarsTable + ` (
        symbol     LowCardinality(String),
        date       Date,
        open       Float64,
        high       Float64,
        low        Float64,
        close      Float64,
        volume     Float64,
        has_volume UInt8,
        inserted_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(inserted_at)
    ORDER BY (symbol, date)`,
}

// CHBarStore implements BarStore backed by ClickHouse.
type CHBarStore struct {
	ch *pkgch.Client
	db *sql.DB
	l  *applogger.Logger
}

func NewCHBarStore(ch *pkgch.Client) *CHBarStore {
	return &CHBarStore{ch: ch, db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHBarStore) SetLogger(l *applogger.Logger) { s.l = l }

// Init creates the database and table when missing.
func (s *CHBarStore) Init(ctx context.Context) error {
	if err := s.ch.InitSchema(ctx, barStoreSchema); err != nil {
		return fmt.Errorf("bar store init: %w", err)
	}
	return nil
}

// StoreBars upserts daily bars for a symbol. The ReplacingMergeTree key is
// (symbol, date), so re-fetching a range is idempotent.
func (s *CHBarStore) StoreBars(ctx context.Context, symbol string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store bars begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO `+dailyBarsTable+` (symbol, date, open, high, low, close, volume, has_volume) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("store bars prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		hv := uint8(0)
		if b.HasVolume {
			hv = 1
		}
		if _, err := stmt.ExecContext(ctx, symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume, hv); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store bar %s %s: %w", symbol, b.Date.Format(time.DateOnly), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store bars commit: %w", err)
	}

	if s.l != nil {
		s.l.Debug("clickhouse store_bars ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(bars)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// QueryBars reads bars for a symbol in [from, to], ascending by date.
func (s *CHBarStore) QueryBars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error) {
	start := time.Now()
	const q = `
        SELECT date, open, high, low, close, volume, has_volume
        FROM ` + dailyBarsTable + ` FINAL
        WHERE symbol = ? AND date >= ? AND date <= ?
        ORDER BY date ASC
    `
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse query_bars error",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	out := make([]models.Bar, 0, 1024)
	for rows.Next() {
		var b models.Bar
		var hv uint8
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume, &hv); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.HasVolume = hv == 1
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if s.l != nil {
		s.l.Debug("clickhouse query_bars ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

// Health pings the connection pool.
func (s *CHBarStore) Health(ctx context.Context) error {
	return s.ch.Health(ctx)
}

// Close closes the underlying pool.
func (s *CHBarStore) Close() error {
	return s.ch.Close()
}

var _ domrepo.BarStore = (*CHBarStore)(nil)
