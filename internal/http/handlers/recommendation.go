package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/http/response"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/services"
	"github.com/yungbote/jeevandwaar-backend/internal/validation"
)

type RecommendationHandler struct {
	log             *logger.Logger
	recommendations services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recommendations services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{log: log.With("handler", "RecommendationHandler"), recommendations: recommendations}
}

type recommendRequest struct {
	SessionID   string  `json:"sessionId" binding:"required,notblank"`
	Age         *int    `json:"age" binding:"omitempty,min=0,max=120"`
	IncomeRange *string `json:"incomeRange" binding:"omitempty,oneof=low medium high"`
	Dependents  *int    `json:"dependents" binding:"omitempty,min=0"`
	Goal        *string `json:"goal" binding:"omitempty,oneof=education protection retirement"`
}

// POST /api/recommendations
func (h *RecommendationHandler) Create(c *gin.Context) {
	var req recommendRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.RespondErr(c, h.log, err, "Failed to create recommendation")
		return
	}
	rec, err := h.recommendations.Recommend(dbcFrom(c), services.RecommendInput{
		SessionID:   req.SessionID,
		Age:         req.Age,
		IncomeRange: req.IncomeRange,
		Dependents:  req.Dependents,
		Goal:        req.Goal,
	})
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to create recommendation")
		return
	}
	response.RespondOK(c, rec)
}

// GET /api/recommendations/:sessionId
func (h *RecommendationHandler) ListBySession(c *gin.Context) {
	out, err := h.recommendations.ListBySession(dbcFrom(c), c.Param("id"))
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch recommendations")
		return
	}
	response.RespondOK(c, out)
}

type acceptRequest struct {
	SelectedPolicyID *string `json:"selectedPolicyId" binding:"omitempty,min=1"`
}

// PATCH /api/recommendations/:id/accept
// The body is optional; without it the selection is cleared.
func (h *RecommendationHandler) Accept(c *gin.Context) {
	var req acceptRequest
	if _, err := validation.BindOptionalJSON(c, &req); err != nil {
		response.RespondErr(c, h.log, err, "Failed to update recommendation")
		return
	}
	if err := h.recommendations.Accept(dbcFrom(c), c.Param("id"), req.SelectedPolicyID); err != nil {
		response.RespondErr(c, h.log, err, "Failed to update recommendation")
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
