package http

import (
	"net/http"
	"strings"

	"golang-stock-signal/internal/entity"
	executorservice "golang-stock-signal/internal/executor/service"
	"golang-stock-signal/internal/scheduler/dto"
	"golang-stock-signal/internal/scheduler/service"
	"golang-stock-signal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	defaultRecentLimit = 10
	defaultTickerLimit = 20
)

// SignalHandler handles HTTP requests for signals.
type SignalHandler struct {
	queryService  service.SignalQueryService
	signalService executorservice.SignalService
	tickers       []string
	logger        *logger.Logger
}

// NewSignalHandler creates a new SignalHandler. tickers is the default set of
// the synchronous multi ticker run.
func NewSignalHandler(queryService service.SignalQueryService, signalService executorservice.SignalService, tickers []string, logger *logger.Logger) *SignalHandler {
	return &SignalHandler{queryService: queryService, signalService: signalService, tickers: tickers, logger: logger}
}

// RegisterRoutes registers the signal routes to the Echo group.
func (h *SignalHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/recent", h.GetRecentSignals)
	g.GET("/summary", h.GetSignalSummary)
	g.GET("/:ticker", h.GetSignalsByTicker)
	g.POST("/run", h.RunForAllTickers)
	g.POST("/run/:ticker", h.RunForTicker)
}

// GetRecentSignals godoc
// @Summary Get recent signals
// @Description Get the most recent signals across all tickers
// @Tags signals
// @Produce  json
// @Param   limit  query  int  false  "Maximum number of signals"  default(10)
// @Success 200 {array} dto.SignalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /signals/recent [get]
func (h *SignalHandler) GetRecentSignals(c echo.Context) error {
	limit, err := queryLimit(c, defaultRecentLimit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	signals, err := h.queryService.RecentSignals(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get signals"})
	}
	return c.JSON(http.StatusOK, signals)
}

// GetSignalSummary godoc
// @Summary Summarize signals
// @Description Count persisted signals grouped by signal type
// @Tags signals
// @Produce  json
// @Success 200 {array} dto.SignalSummaryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /signals/summary [get]
func (h *SignalHandler) GetSignalSummary(c echo.Context) error {
	summary, err := h.queryService.Summary(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to summarize signals"})
	}
	return c.JSON(http.StatusOK, summary)
}

// GetSignalsByTicker godoc
// @Summary Get signals for a ticker
// @Description Get the most recent signals of one ticker
// @Tags signals
// @Produce  json
// @Param   ticker path   string true   "Ticker symbol"
// @Param   limit  query  int    false  "Maximum number of signals"  default(20)
// @Success 200 {array} dto.SignalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /signals/{ticker} [get]
func (h *SignalHandler) GetSignalsByTicker(c echo.Context) error {
	limit, err := queryLimit(c, defaultTickerLimit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	signals, err := h.queryService.SignalsByTicker(c.Request().Context(), c.Param("ticker"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get signals"})
	}
	return c.JSON(http.StatusOK, signals)
}

// RunForTicker godoc
// @Summary Run signals for a ticker
// @Description Synchronously run every active signal for one ticker
// @Tags signals
// @Produce  json
// @Param   ticker path string true "Ticker symbol"
// @Success 200 {object} dto.TickerSummary
// @Failure 400 {object} dto.ErrorResponse
// @Router /signals/run/{ticker} [post]
func (h *SignalHandler) RunForTicker(c echo.Context) error {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid ticker"})
	}

	summary := h.signalService.RunForTicker(c.Request().Context(), ticker, entity.TriggeredByManual)
	return c.JSON(http.StatusOK, summary)
}

// RunForAllTickers godoc
// @Summary Run signals for many tickers
// @Description Synchronously run every active signal for the given tickers (default: configured tickers)
// @Tags signals
// @Accept  json
// @Produce  json
// @Param   request body dto.RunRequest false "Tickers to run"
// @Success 200 {object} dto.RunSummary
// @Failure 400 {object} dto.ErrorResponse
// @Router /signals/run [post]
func (h *SignalHandler) RunForAllTickers(c echo.Context) error {
	var req dto.RunRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		}
	}

	tickers := make([]string, 0, len(req.Tickers))
	for _, t := range req.Tickers {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		tickers = h.tickers
	}

	h.logger.Info("Manual signal run", logger.Field("tickers", tickers))
	summary := h.signalService.RunForAllTickers(c.Request().Context(), tickers, entity.TriggeredByManual)
	return c.JSON(http.StatusOK, summary)
}
