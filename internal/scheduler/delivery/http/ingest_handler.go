package http

import (
	"net/http"

	"golang-stock-signal/internal/entity"
	executordto "golang-stock-signal/internal/executor/dto"
	"golang-stock-signal/internal/scheduler/dto"
	"golang-stock-signal/internal/scheduler/service"
	"golang-stock-signal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// IngestHandler enqueues ingest and signal runs for the execution service.
type IngestHandler struct {
	schedulerService service.SchedulerService
	logger           *logger.Logger
}

func NewIngestHandler(schedulerService service.SchedulerService, logger *logger.Logger) *IngestHandler {
	return &IngestHandler{schedulerService: schedulerService, logger: logger}
}

// RegisterRoutes registers the ingest routes to the Echo group.
func (h *IngestHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Enqueue)
}

// Enqueue godoc
// @Summary Enqueue an ingest run
// @Description Publish an ingest_and_run task; prices are refreshed and every ticker is run asynchronously
// @Tags ingest
// @Produce  json
// @Success 202 {object} dto.EnqueueResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /ingest [post]
func (h *IngestHandler) Enqueue(c echo.Context) error {
	task := executordto.Task{Type: executordto.TaskTypeIngestAndRun, TriggeredBy: entity.TriggeredByManual}
	id, err := h.schedulerService.Enqueue(c.Request().Context(), task)
	if err != nil {
		h.logger.Error("Failed to enqueue ingest task", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to enqueue task"})
	}
	return c.JSON(http.StatusAccepted, dto.EnqueueResponse{MessageID: id, Task: string(task.Type)})
}
