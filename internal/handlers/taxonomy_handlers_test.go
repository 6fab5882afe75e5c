package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/taxonomy"
)

func setupTaxonomyTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewTaxonomyHandler(taxonomy.NewResolver())
	router := gin.New()
	router.GET("/api/v1/taxonomy/:code", handler.GetCode)
	return router
}

func TestGetTaxonomyCode_Known(t *testing.T) {
	router := setupTaxonomyTestRouter()

	req, _ := http.NewRequest("GET", "/api/v1/taxonomy/080201", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response models.TaxonomyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.Code != "080201" {
		t.Errorf("expected code 080201, got %s", response.Code)
	}
	if response.Description != "ממשלתי שקלי" {
		t.Errorf("expected own label, got %q", response.Description)
	}
	if !strings.Contains(response.Resolved, "ממשלתי שקלי") {
		t.Errorf("expected resolved phrase to contain the leaf label, got %q", response.Resolved)
	}
	if len(response.Ancestors) != 3 {
		t.Fatalf("expected 3 ancestors, got %d", len(response.Ancestors))
	}
	if response.Ancestors[0].Code != "08" {
		t.Errorf("expected first ancestor 08, got %s", response.Ancestors[0].Code)
	}
	if response.Ancestors[2].Code != "080201" {
		t.Errorf("expected last ancestor 080201, got %s", response.Ancestors[2].Code)
	}
}

func TestGetTaxonomyCode_Unknown(t *testing.T) {
	router := setupTaxonomyTestRouter()

	req, _ := http.NewRequest("GET", "/api/v1/taxonomy/999999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}

	var response models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Error != "not_found" {
		t.Errorf("expected error not_found, got %s", response.Error)
	}
	if !strings.Contains(response.Message, "999999") {
		t.Errorf("expected message to name the code, got %q", response.Message)
	}
}
