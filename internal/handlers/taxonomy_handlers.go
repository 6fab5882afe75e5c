package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/taxonomy"
)

// TaxonomyHandler handles disclosure-code lookup endpoints
type TaxonomyHandler struct {
	resolver *taxonomy.Resolver
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(resolver *taxonomy.Resolver) *TaxonomyHandler {
	return &TaxonomyHandler{resolver: resolver}
}

// GetCode handles GET /api/v1/taxonomy/:code
// @Summary Resolve a disclosure code
// @Description Return a K.303 disclosure code's own label, its merged hierarchical description and its ancestor chain
// @Tags taxonomy
// @Produce json
// @Param code path string true "Disclosure code (2, 4, 6 or 8 digits)"
// @Success 200 {object} models.TaxonomyResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/taxonomy/{code} [get]
func (h *TaxonomyHandler) GetCode(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "code is required",
		})
		return
	}

	resolved := h.resolver.Resolve(code)
	chain := h.resolver.Ancestors(code)
	if resolved == "" && len(chain) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "unknown disclosure code: " + code,
		})
		return
	}

	description, _ := h.resolver.Lookup(code)
	ancestors := make([]models.TaxonomyAncestor, len(chain))
	for i, entry := range chain {
		ancestors[i] = models.TaxonomyAncestor{
			Code:        entry.Code,
			Description: entry.Description,
		}
	}

	c.JSON(http.StatusOK, models.TaxonomyResponse{
		Code:        code,
		Description: description,
		Resolved:    resolved,
		Ancestors:   ancestors,
	})
}
