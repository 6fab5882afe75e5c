package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Rainerrr/Mizrahi-Automations/internal/middleware"
	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/services"
	"github.com/Rainerrr/Mizrahi-Automations/internal/taxonomy"
)

// setupAutomationTestRouter wires the automation endpoint without a task
// runner, so only the request handling up to the external call is exercised.
func setupAutomationTestRouter(defaultManager string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	disclosureSvc := services.NewDisclosureService(taxonomy.NewResolver(), nil, 50, 7)
	automationSvc := services.NewAutomationService(nil, disclosureSvc, testTrustee)
	handler := NewAutomationHandler(automationSvc, defaultManager)

	router := gin.New()
	router.Use(middleware.OperatorIdentity())
	router.POST("/api/v1/automations/k303", middleware.RequireOperator(), handler.TriggerK303)
	return router
}

func postAutomation(t *testing.T, router *gin.Engine, body string, operator string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req, err := http.NewRequest("POST", "/api/v1/automations/k303", reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if operator != "" {
		req.Header.Set("X-Operator", operator)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTriggerK303_RequiresOperator(t *testing.T) {
	router := setupAutomationTestRouter("מגדל")

	w := postAutomation(t, router, "", "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "operator identity required") {
		t.Errorf("expected operator message, got %s", w.Body.String())
	}
}

func TestTriggerK303_MissingManager(t *testing.T) {
	router := setupAutomationTestRouter("")

	w := postAutomation(t, router, "", "דנה")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "fund manager name is required") {
		t.Errorf("expected missing manager message, got %s", w.Body.String())
	}
}

func TestTriggerK303_InvalidPeriod(t *testing.T) {
	router := setupAutomationTestRouter("מגדל")

	w := postAutomation(t, router, `{"period":"09-2025"}`, "דנה")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	var response models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Error != "invalid_request" {
		t.Errorf("expected error invalid_request, got %s", response.Error)
	}
}

func TestTriggerK303_RunnerNotConfigured(t *testing.T) {
	router := setupAutomationTestRouter("מגדל")

	w := postAutomation(t, router, `{"manager":"מגדל"}`, "דנה")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "task runner not configured") {
		t.Errorf("expected runner message, got %s", w.Body.String())
	}
}
