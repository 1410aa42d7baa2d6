package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"BaseScan/internal/domain/models"
	domrepo "BaseScan/internal/domain/repository"
	"BaseScan/internal/engine"
	icache "BaseScan/internal/service/cache"
	"BaseScan/internal/service/metrics"
	"BaseScan/internal/service/ratelimit"
	"BaseScan/internal/usecase"
	xhttp "BaseScan/pkg/http"
	applogger "BaseScan/pkg/logger"
	"BaseScan/pkg/util"

	"github.com/labstack/echo/v4"
)

// BasesHandler serves the detection API over Echo.
type BasesHandler struct {
	scanner  *usecase.BaseScanner
	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
	l        *applogger.Logger
}

func NewBasesHandler(l *applogger.Logger, scanner *usecase.BaseScanner) *BasesHandler {
	metrics.Register()
	return &BasesHandler{
		scanner:  scanner,
		cacheTTL: 60 * time.Second,
		rl:       ratelimit.New(),
		l:        l,
	}
}

// SetCache enables response caching.
func (h *BasesHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.cacheTTL = ttl
	}
}

func (h *BasesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/bases", h.Bases)
	g.GET("/trend", h.Trend)
}

func (h *BasesHandler) Bases(c echo.Context) error {
	start := time.Now()
	endpoint := "bases"
	defer func() { metrics.DetectionLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.BasesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	lb := domrepo.NormalizeLookback(req.Years)

	if !h.rl.Allow(c.RealIP()+":bases", 5, 2) {
		h.l.Warn("bases rate_limited", applogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	cacheKey := fmt.Sprintf("bases:%s:%d", req.Symbol, lb)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			h.l.Warn("bases cache_get_error", applogger.Error(err))
		} else if ok {
			metrics.CacheHits.WithLabelValues(endpoint).Inc()
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	bases, err := h.scanner.DetectBases(c.Request().Context(), req.Symbol, lb)
	if err != nil {
		return h.errorResponse(c, endpoint, err)
	}
	if bases == nil {
		bases = []models.Base{}
	}

	body, err := json.Marshal(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    bases,
	})
	if err != nil {
		metrics.DetectionErrors.WithLabelValues(endpoint).Inc()
		return xhttp.InternalServerErrorResponse(c)
	}
	if h.cache != nil {
		if err := h.cache.SetBytes(cacheKey, body, h.cacheTTL); err != nil {
			h.l.Warn("bases cache_set_error", applogger.Error(err))
		}
	}
	return c.JSONBlob(http.StatusOK, body)
}

func (h *BasesHandler) Trend(c echo.Context) error {
	start := time.Now()
	endpoint := "trend"
	defer func() { metrics.DetectionLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	lb := domrepo.NormalizeLookback(req.Years)

	var date time.Time
	if req.Date != "" {
		t, ok := util.ParseTime(req.Date)
		if !ok {
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code:    "ERR_DATE",
				Field:   "date",
				Message: "date must be RFC3339, YYYY-MM-DD, or unix seconds",
			}})
		}
		date = util.TruncateDay(t)
	}

	st, err := h.scanner.TrendAt(c.Request().Context(), req.Symbol, date, lb)
	if err != nil {
		return h.errorResponse(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, st)
}

// errorResponse maps malformed-input failures to 400 and everything else
// to the standard error envelope.
func (h *BasesHandler) errorResponse(c echo.Context, endpoint string, err error) error {
	metrics.DetectionErrors.WithLabelValues(endpoint).Inc()
	h.l.Error(endpoint+" error", applogger.Error(err))

	var iie *engine.InvalidInputError
	if errors.As(err, &iie) {
		return xhttp.AppErrorResponse(c,
			xhttp.NewAppError("ERR_INVALID_SERIES", "", iie.Reason, http.StatusBadRequest).WithError(err))
	}
	return xhttp.AppErrorResponse(c, err)
}

var _ xhttp.Handler = (*BasesHandler)(nil)
