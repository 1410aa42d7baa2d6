package api

import (
	"context"
	"net/http"
	"time"

	"BaseScan/internal/domain/models"
	domrepo "BaseScan/internal/domain/repository"
	"BaseScan/internal/usecase"
	xhttp "BaseScan/pkg/http"
	applogger "BaseScan/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const wsWriteTimeout = 10 * time.Second

// StreamHandler pushes detection snapshots to websocket subscribers. Each
// connection is scoped to one symbol; the snapshot is sent on connect and
// re-sent every refresh interval until the peer goes away.
type StreamHandler struct {
	scanner  *usecase.BaseScanner
	upgrader websocket.Upgrader
	refresh  time.Duration
	l        *applogger.Logger
}

func NewStreamHandler(l *applogger.Logger, scanner *usecase.BaseScanner, refresh time.Duration) *StreamHandler {
	if refresh <= 0 {
		refresh = 30 * time.Second
	}
	return &StreamHandler{
		scanner: scanner,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		refresh: refresh,
		l:       l,
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/bases", h.Subscribe)
}

type streamSnapshot struct {
	Symbol string        `json:"symbol"`
	AsOf   time.Time     `json:"as_of"`
	Bases  []models.Base `json:"bases"`
	Error  string        `json:"error,omitempty"`
}

func (h *StreamHandler) Subscribe(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "symbol is required"})
	}
	lb := domrepo.NormalizeLookback(xhttp.ParseIntDefault(c.QueryParam("years"), 5))

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	h.l.Info("stream subscribed",
		applogger.String("symbol", symbol),
		applogger.String("remote", conn.RemoteAddr().String()))

	// Drain control frames so pings and close messages are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request().Context()
	if err := h.push(ctx, conn, symbol, lb); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.push(ctx, conn, symbol, lb); err != nil {
				h.l.Debug("stream push failed",
					applogger.String("symbol", symbol), applogger.Error(err))
				return nil
			}
		}
	}
}

func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn, symbol string, lb domrepo.Lookback) error {
	snap := streamSnapshot{Symbol: symbol, AsOf: time.Now().UTC()}
	bases, err := h.scanner.DetectBases(ctx, symbol, lb)
	if err != nil {
		snap.Error = err.Error()
	} else {
		snap.Bases = bases
	}
	if snap.Bases == nil {
		snap.Bases = []models.Base{}
	}
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(snap)
}

var _ xhttp.Handler = (*StreamHandler)(nil)
