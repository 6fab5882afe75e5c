package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/repository"
)

const (
	defaultRunLimit = 50
	maxRunLimit     = 200
)

// RunHandler handles run history endpoints
type RunHandler struct {
	runRepo *repository.RunRepository
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(runRepo *repository.RunRepository) *RunHandler {
	return &RunHandler{runRepo: runRepo}
}

// ListRuns handles GET /api/v1/runs
// @Summary List past validation runs
// @Description Return run headers newest first, optionally filtered by kind
// @Tags runs
// @Produce json
// @Param kind query string false "Run kind filter (k303 or transactions)"
// @Param limit query int false "Maximum rows to return (default 50, max 200)"
// @Success 200 {object} models.ListRunsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/runs [get]
func (h *RunHandler) ListRuns(c *gin.Context) {
	var req models.ListRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if req.Kind != "" && req.Kind != models.RunKindDisclosure && req.Kind != models.RunKindTransactions {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "kind must be k303 or transactions",
		})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRunLimit
	}
	if limit > maxRunLimit {
		limit = maxRunLimit
	}

	runs, err := h.runRepo.ListRuns(c.Request.Context(), req.Kind, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ListRunsResponse{
		Count: len(runs),
		Runs:  runs,
	})
}

// GetRun handles GET /api/v1/runs/:id
// @Summary Get one validation run
// @Description Return a run's full report, including sampled exceptions and warnings
// @Tags runs
// @Produce json
// @Param id path string true "Run id (UUID)"
// @Success 200 {object} models.RunReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/runs/{id} [get]
func (h *RunHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "id must be a UUID",
		})
		return
	}

	report, err := h.runRepo.GetRun(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrRunNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "run not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetRunExceptions handles GET /api/v1/runs/:id/exceptions/:rule
// @Summary Get one rule's exceptions for a run
// @Description Return the flattened exception rows a rule produced in a run, in emission order
// @Tags runs
// @Produce json
// @Param id path string true "Run id (UUID)"
// @Param rule path string true "Rule id (for example 1a or CHK_3)"
// @Success 200 {object} models.RuleExceptionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/runs/{id}/exceptions/{rule} [get]
func (h *RunHandler) GetRunExceptions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "id must be a UUID",
		})
		return
	}

	// Confirms the run exists so an empty rule reads as 200 with no rows,
	// not as a missing run.
	if _, err := h.runRepo.GetRun(c.Request.Context(), id); err != nil {
		if err == repository.ErrRunNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "run not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	ruleID := c.Param("rule")
	exceptions, err := h.runRepo.ExceptionsByRule(c.Request.Context(), id, ruleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.RuleExceptionsResponse{
		RunID:      id.String(),
		RuleID:     ruleID,
		Count:      len(exceptions),
		Exceptions: exceptions,
	})
}
