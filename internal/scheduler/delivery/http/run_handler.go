package http

import (
	"errors"
	"net/http"

	"golang-stock-signal/internal/scheduler/dto"
	"golang-stock-signal/internal/scheduler/service"
	"golang-stock-signal/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const defaultRunLimit = 50

// RunHandler handles HTTP requests for the orchestrator run history.
type RunHandler struct {
	runService service.RunHistoryService
	logger     *logger.Logger
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(runService service.RunHistoryService, logger *logger.Logger) *RunHandler {
	return &RunHandler{runService: runService, logger: logger}
}

// RegisterRoutes registers the run history routes to the Echo group.
func (h *RunHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetRecentRuns)
	g.GET("/:run_id", h.GetRunByID)
}

// GetRecentRuns godoc
// @Summary Get recent runs
// @Description Get the latest orchestrator runs, optionally for one ticker
// @Tags runs
// @Produce  json
// @Param   ticker query  string false  "Ticker symbol"
// @Param   limit  query  int    false  "Maximum number of runs"  default(50)
// @Success 200 {array} dto.RunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs [get]
func (h *RunHandler) GetRecentRuns(c echo.Context) error {
	limit, err := queryLimit(c, defaultRunLimit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	runs, err := h.runService.GetRecentRuns(c.Request().Context(), c.QueryParam("ticker"), limit)
	if err != nil {
		h.logger.Error("Failed to get recent runs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get runs"})
	}
	return c.JSON(http.StatusOK, runs)
}

// GetRunByID godoc
// @Summary Get a run by id
// @Description Get a single orchestrator run by its run id
// @Tags runs
// @Produce  json
// @Param   run_id  path  string true  "Run ID"
// @Success 200 {object} dto.RunResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs/{run_id} [get]
func (h *RunHandler) GetRunByID(c echo.Context) error {
	runID, err := uuid.Parse(c.Param("run_id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Run not found"})
	}

	run, err := h.runService.GetRunByID(c.Request().Context(), runID.String())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Run not found"})
	}
	if err != nil {
		h.logger.Error("Failed to get run", logger.ErrorField(err), logger.StringField("run_id", runID.String()))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get run"})
	}
	return c.JSON(http.StatusOK, run)
}
