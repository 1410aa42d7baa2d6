package service

import (
	"time"

	"BaseScan/internal/domain/models"
)

// BaseDetector runs base detection over a daily bar series. Implementations
// must be pure: no I/O, no shared mutable state, safe for concurrent calls.
type BaseDetector interface {
	Detect(daily []models.Bar) ([]models.Base, error)
	TrendStatusAt(daily []models.Bar, date time.Time) (models.TrendStatus, error)
}
