package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/http/response"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/services"
)

type PolicyHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewPolicyHandler(log *logger.Logger, catalog services.CatalogService) *PolicyHandler {
	return &PolicyHandler{log: log.With("handler", "PolicyHandler"), catalog: catalog}
}

// GET /api/policies
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	out, err := h.catalog.ListActive(dbcFrom(c))
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch policies")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/policies/age/:ageGroup
func (h *PolicyHandler) ListByAgeGroup(c *gin.Context) {
	out, err := h.catalog.ListByAgeGroup(dbcFrom(c), c.Param("ageGroup"))
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch policies")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/policies/:id
func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	p, err := h.catalog.Get(dbcFrom(c), c.Param("id"))
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch policy")
		return
	}
	response.RespondOK(c, p)
}
