package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	executorservice "golang-stock-signal/internal/executor/service"
	"golang-stock-signal/internal/scheduler/dto"
	"golang-stock-signal/internal/scheduler/service"
	"golang-stock-signal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultPriceLimit = 500

// PriceHandler handles HTTP requests for stored prices and the backtest.
type PriceHandler struct {
	queryService    service.SignalQueryService
	backtestService executorservice.BacktestService
	logger          *logger.Logger
}

func NewPriceHandler(queryService service.SignalQueryService, backtestService executorservice.BacktestService, logger *logger.Logger) *PriceHandler {
	return &PriceHandler{queryService: queryService, backtestService: backtestService, logger: logger}
}

// RegisterRoutes registers the price routes to the Echo group.
func (h *PriceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:ticker", h.GetPrices)
}

// RegisterBacktestRoutes registers the backtest routes to the Echo group.
func (h *PriceHandler) RegisterBacktestRoutes(g *echo.Group) {
	g.GET("/:ticker", h.Backtest)
}

// GetPrices godoc
// @Summary Get prices for a ticker
// @Description Get the stored price history of a ticker in ascending time order
// @Tags prices
// @Produce  json
// @Param   ticker path   string true   "Ticker symbol"
// @Param   limit  query  int    false  "Most recent bars to return"  default(500)
// @Success 200 {array} dto.PriceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /prices/{ticker} [get]
func (h *PriceHandler) GetPrices(c echo.Context) error {
	limit, err := queryLimit(c, defaultPriceLimit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	prices, err := h.queryService.Prices(c.Request().Context(), c.Param("ticker"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get prices"})
	}
	return c.JSON(http.StatusOK, prices)
}

// Backtest godoc
// @Summary Backtest a ticker
// @Description Run the moving average PnL accumulator over the stored prices of a ticker
// @Tags backtest
// @Produce  json
// @Param   ticker path   string true   "Ticker symbol"
// @Param   window query  int    false  "Moving average window"  default(10)
// @Success 200 {object} dto.BacktestResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /backtest/{ticker} [get]
func (h *PriceHandler) Backtest(c echo.Context) error {
	window := executorservice.DefaultBacktestWindow
	if raw := c.QueryParam("window"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid window"})
		}
		window = w
	}

	ticker := strings.ToUpper(c.Param("ticker"))
	result, err := h.backtestService.Run(c.Request().Context(), ticker, window)
	if errors.Is(err, executorservice.ErrNoData) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not enough price data"})
	}
	if err != nil {
		h.logger.Error("Backtest failed", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Backtest failed"})
	}
	return c.JSON(http.StatusOK, result)
}
