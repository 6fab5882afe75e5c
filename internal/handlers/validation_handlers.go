package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rainerrr/Mizrahi-Automations/internal/loader"
	"github.com/Rainerrr/Mizrahi-Automations/internal/middleware"
	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/services"
)

// ValidationHandler handles uploaded-report validation endpoints
type ValidationHandler struct {
	disclosureSvc   *services.DisclosureService
	transactionsSvc *services.TransactionsService
	defaultPeriod   models.Period
	defaultTrustee  string
	defaultManager  string
}

// NewValidationHandler creates a new ValidationHandler
func NewValidationHandler(disclosureSvc *services.DisclosureService, transactionsSvc *services.TransactionsService, defaultPeriod models.Period, trustee, manager string) *ValidationHandler {
	return &ValidationHandler{
		disclosureSvc:   disclosureSvc,
		transactionsSvc: transactionsSvc,
		defaultPeriod:   defaultPeriod,
		defaultTrustee:  trustee,
		defaultManager:  manager,
	}
}

// ValidateDisclosure handles POST /api/v1/validations/disclosure
// @Summary Validate a K.303 disclosure report
// @Description Run the disclosure check battery over an uploaded monthly report, with an optional previous-month report for cross-period comparison
// @Tags validations
// @Accept multipart/form-data
// @Produce json
// @Param report formData file true "Current month K.303 report (CSV)"
// @Param previous_report formData file false "Previous month K.303 report (CSV)"
// @Param registry formData file true "Fund registry export (CSV)"
// @Param period formData string false "Expected report period (YYYY-MM)"
// @Param trustee formData string false "Trustee name override"
// @Param manager formData string false "Fund manager name override"
// @Success 200 {object} models.RunReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/validations/disclosure [post]
func (h *ValidationHandler) ValidateDisclosure(c *gin.Context) {
	var req models.DisclosureValidationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	reportFile, err := c.FormFile("report")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "report file is required",
		})
		return
	}
	registryFile, err := c.FormFile("registry")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "registry file is required",
		})
		return
	}

	current, err := parseDisclosureUpload(reportFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	var previous []models.DisclosureRecord
	hasPrevious := false
	if prevFile, err := c.FormFile("previous_report"); err == nil {
		previous, err = parseDisclosureUpload(prevFile)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
			return
		}
		hasPrevious = true
	}

	registry, err := parseRegistryUpload(registryFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	period, err := h.resolvePeriod(req.Period, func() (models.Period, bool) {
		return loader.InferDisclosurePeriod(current)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	trustee := req.Trustee
	if trustee == "" {
		trustee = h.defaultTrustee
	}
	if trustee == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "trustee name is required",
		})
		return
	}
	manager := req.Manager
	if manager == "" {
		manager = h.defaultManager
	}
	operator, _ := middleware.GetOperator(c)

	warnCtx, _ := services.NewWarningContext(c.Request.Context())
	report, err := h.disclosureSvc.Run(warnCtx, services.DisclosureInput{
		Current:     current,
		Previous:    previous,
		HasPrevious: hasPrevious,
		Registry:    registry,
		Period:      period,
		Trustee:     trustee,
		Manager:     manager,
		Operator:    operator,
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

// ValidateTransactions handles POST /api/v1/validations/transactions
// @Summary Validate a special-transactions report
// @Description Run the special-transactions check battery over an uploaded manager report. Structural checks always run; price and denylist checks run best-effort against external sources
// @Tags validations
// @Accept multipart/form-data
// @Produce json
// @Param transactions formData file true "Manager special-transactions report (CSV)"
// @Param registry formData file true "Fund registry export (CSV)"
// @Param period formData string false "Expected report period (YYYY-MM)"
// @Param trustee formData string false "Trustee name override"
// @Param manager formData string false "Fund manager name override"
// @Success 200 {object} models.RunReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/validations/transactions [post]
func (h *ValidationHandler) ValidateTransactions(c *gin.Context) {
	var req models.TransactionsValidationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	txnFile, err := c.FormFile("transactions")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "transactions file is required",
		})
		return
	}
	registryFile, err := c.FormFile("registry")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "registry file is required",
		})
		return
	}

	rows, skipped, err := parseTransactionsUpload(txnFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	registry, err := parseRegistryUpload(registryFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	// A manager report for month M normally arrives during month M+1, so
	// when the report itself carries no date the previous month is assumed.
	period, err := h.resolvePeriod(req.Period, func() (models.Period, bool) {
		if inferred, ok := loader.InferTransactionsPeriod(rows); ok {
			return inferred, true
		}
		return models.PeriodOf(time.Now()).Previous(), true
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	trustee := req.Trustee
	if trustee == "" {
		trustee = h.defaultTrustee
	}
	if trustee == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "trustee name is required",
		})
		return
	}
	manager := req.Manager
	if manager == "" {
		manager = h.defaultManager
	}
	operator, _ := middleware.GetOperator(c)

	warnCtx, _ := services.NewWarningContext(c.Request.Context())
	if skipped > 0 {
		services.Warnf(warnCtx, models.WarnRowSkipped,
			"%d rows without fund, security or record identifiers skipped during load", skipped)
	}

	report, err := h.transactionsSvc.Run(warnCtx, services.TransactionsInput{
		Rows:     rows,
		Registry: registry,
		Period:   period,
		Trustee:  trustee,
		Manager:  manager,
		Operator: operator,
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

// resolvePeriod picks the expected report period: an explicit form value
// wins, then the configured default, then the infer fallback.
func (h *ValidationHandler) resolvePeriod(raw string, infer func() (models.Period, bool)) (models.Period, error) {
	if raw != "" {
		period, err := models.ParsePeriod(raw)
		if err != nil {
			return models.Period{}, err
		}
		return period, nil
	}
	if !h.defaultPeriod.IsZero() {
		return h.defaultPeriod, nil
	}
	if period, ok := infer(); ok {
		return period, nil
	}
	return models.Period{}, fmt.Errorf("could not determine report period; pass period=YYYY-MM")
}

func parseDisclosureUpload(fh *multipart.FileHeader) ([]models.DisclosureRecord, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return loader.ParseDisclosureCSV(f)
}

func parseTransactionsUpload(fh *multipart.FileHeader) ([]models.TransactionRecord, int, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return loader.ParseTransactionsCSV(f)
}

func parseRegistryUpload(fh *multipart.FileHeader) (map[int64]models.Fund, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return loader.ParseRegistryCSV(f)
}
