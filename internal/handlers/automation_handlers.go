package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rainerrr/Mizrahi-Automations/internal/middleware"
	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/services"
)

// AutomationHandler handles task-runner automation endpoints
type AutomationHandler struct {
	automationSvc  *services.AutomationService
	defaultManager string
}

// NewAutomationHandler creates a new AutomationHandler
func NewAutomationHandler(automationSvc *services.AutomationService, defaultManager string) *AutomationHandler {
	return &AutomationHandler{
		automationSvc:  automationSvc,
		defaultManager: defaultManager,
	}
}

// TriggerK303 handles POST /api/v1/automations/k303
// @Summary Run the K.303 automation end to end
// @Description Fetch the fund registry and the manager's monthly reports through the task runner, then run the disclosure check battery. Long-running; the remote report scrape alone can take minutes
// @Tags automations
// @Accept json
// @Produce json
// @Param request body models.K303AutomationRequest false "Manager selection"
// @Param X-Operator header string true "Operator identity"
// @Success 200 {object} models.RunReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/automations/k303 [post]
func (h *AutomationHandler) TriggerK303(c *gin.Context) {
	var req models.K303AutomationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
			return
		}
	}

	manager := req.Manager
	if manager == "" {
		manager = h.defaultManager
	}
	if manager == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "fund manager name is required",
		})
		return
	}

	var period models.Period
	if req.Period != "" {
		parsed, err := models.ParsePeriod(req.Period)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
			return
		}
		period = parsed
	}

	operator, _ := middleware.GetOperator(c)

	warnCtx, _ := services.NewWarningContext(c.Request.Context())
	report, err := h.automationSvc.RunK303(warnCtx, services.AutomationInput{
		Manager:  manager,
		Operator: operator,
		Period:   period,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
