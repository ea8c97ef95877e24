package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tmyeomans/RS2.1/internal/models"
	"github.com/tmyeomans/RS2.1/internal/pipeline"
	"github.com/tmyeomans/RS2.1/internal/repository"
	"github.com/tmyeomans/RS2.1/pkg/response"
)

// RunHandler handles HTTP requests for sampling runs
type RunHandler struct {
	runs   *repository.RunRepository
	runner *pipeline.Runner
}

// NewRunHandler creates a new run handler
func NewRunHandler(runs *repository.RunRepository, runner *pipeline.Runner) *RunHandler {
	return &RunHandler{runs: runs, runner: runner}
}

// CreateRunRequest represents the request body for starting a run
type CreateRunRequest struct {
	Kind string `json:"kind" binding:"required"` // lines, pads or matrix
}

// CreateRun starts a new pipeline run in the background
// POST /api/v1/runs
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	kind := models.RunKind(req.Kind)
	switch kind {
	case models.RunLines, models.RunPads, models.RunMatrix:
	default:
		response.BadRequest(c, "kind must be one of lines, pads, matrix")
		return
	}

	run, err := h.runner.Launch(kind)
	if errors.Is(err, pipeline.ErrRunInProgress) {
		response.Error(c, http.StatusConflict, "A run is already in progress")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to start run")
		return
	}

	response.Success(c, run)
}

// ListRuns retrieves recent runs
// GET /api/v1/runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		response.BadRequest(c, "Invalid limit")
		return
	}

	runs, err := h.runs.List(limit)
	if err != nil {
		response.InternalError(c, "Failed to list runs")
		return
	}

	response.Success(c, gin.H{
		"data":  runs,
		"count": len(runs),
	})
}

// GetRun retrieves a run by ID
// GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.runs.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get run")
		return
	}
	if run == nil {
		response.NotFound(c, "Run not found")
		return
	}

	response.Success(c, run)
}
