package api

import (
	"errors"
	"net/http"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/handler/ws"
	"MacroPulse/internal/service/ratelimit"
	"MacroPulse/internal/usecase"
	xhttp "MacroPulse/pkg/http"
	xlogger "MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MacroHandler implements the dashboard HTTP surface.
type MacroHandler struct {
	logger    *xlogger.Logger
	cycle     *usecase.UpdateCycle
	dashboard *usecase.Dashboard
	notifier  domrepo.Notifier
	limiter   *ratelimit.Limiter
	hub       *ws.Hub

	updateCapacity float64
	updateRefill   float64
}

func NewMacroHandler(
	logger *xlogger.Logger,
	cycle *usecase.UpdateCycle,
	dashboard *usecase.Dashboard,
	notifier domrepo.Notifier,
	limiter *ratelimit.Limiter,
	hub *ws.Hub,
	updateCapacity, updateRefill float64,
) *MacroHandler {
	if updateCapacity <= 0 {
		updateCapacity = 5
	}
	if updateRefill <= 0 {
		updateRefill = 1.0 / 60 // one refill per minute
	}
	return &MacroHandler{
		logger:         logger,
		cycle:          cycle,
		dashboard:      dashboard,
		notifier:       notifier,
		limiter:        limiter,
		hub:            hub,
		updateCapacity: updateCapacity,
		updateRefill:   updateRefill,
	}
}

func (h *MacroHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	if h.hub != nil {
		e.GET("/ws", h.hub.Serve)
	}

	g := e.Group("/api")
	g.GET("/current-data", h.CurrentData)
	g.GET("/update-data", h.UpdateData)
	g.GET("/history", h.History)
	g.GET("/historical-data", h.HistoricalData)
	g.GET("/summary", h.Summary)
	g.GET("/test-notification", h.TestNotification)
}

// CurrentData returns the latest stored reading with its signal.
func (h *MacroHandler) CurrentData(c echo.Context) error {
	data, err := h.dashboard.Current(c.Request().Context())
	if err != nil {
		if errors.Is(err, domrepo.ErrNoData) {
			return xhttp.NotFoundResponse(c, "no macro data recorded yet")
		}
		h.logger.Error("current-data error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, data)
}

// UpdateData triggers the full fetch-store-evaluate-notify cycle.
func (h *MacroHandler) UpdateData(c echo.Context) error {
	if h.limiter != nil && !h.limiter.Allow("update-data", h.updateCapacity, h.updateRefill) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "update rate limit exceeded")
	}

	req := &models.UpdateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.cycle.Run(c.Request().Context(), !req.Silent)
	if err != nil {
		h.logger.Error("update cycle error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("update failed: %v", err))
	}
	h.dashboard.InvalidateLatest(c.Request().Context())
	return xhttp.SuccessResponse(c, res)
}

// History returns the most recent stored readings.
func (h *MacroHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.dashboard.History(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("history error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// HistoricalData returns per-indicator chart series from the upstream API.
func (h *MacroHandler) HistoricalData(c echo.Context) error {
	req := &models.HistoricalSeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	series, err := h.dashboard.ChartSeries(c.Request().Context(), req.Days)
	if err != nil {
		h.logger.Error("historical-data error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, series)
}

// Summary returns AI commentary for the current snapshot.
func (h *MacroHandler) Summary(c echo.Context) error {
	text, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		h.logger.Error("summary error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("summary unavailable: %v", err))
	}
	return xhttp.SuccessResponse(c, map[string]string{"summary": text})
}

// TestNotification sends a low-priority test push to the configured topic.
func (h *MacroHandler) TestNotification(c echo.Context) error {
	req := &models.TestNotificationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.notifier.SendTest(c.Request().Context(), req.Message); err != nil {
		h.logger.Error("test notification failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("notification failed: %v", err))
	}
	return xhttp.SuccessResponse(c, map[string]bool{"sent": true})
}
