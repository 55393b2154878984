package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/http/response"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/services"
)

type EducationHandler struct {
	log       *logger.Logger
	education services.EducationService
}

func NewEducationHandler(log *logger.Logger, education services.EducationService) *EducationHandler {
	return &EducationHandler{log: log.With("handler", "EducationHandler"), education: education}
}

// GET /api/funds/nav
func (h *EducationHandler) Funds(c *gin.Context) {
	response.RespondOK(c, h.education.Funds(ctxutil.Language(c.Request.Context())))
}

// GET /api/education/articles
func (h *EducationHandler) Articles(c *gin.Context) {
	response.RespondOK(c, h.education.Articles(ctxutil.Language(c.Request.Context())))
}

// GET /api/education/search?q=&limit=
// Results are restricted to the request language.
func (h *EducationHandler) Search(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to search articles")
		return
	}
	ctx := c.Request.Context()
	hits, err := h.education.Search(ctx, c.Query("q"), ctxutil.Language(ctx), limit)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to search articles")
		return
	}
	response.RespondOK(c, hits)
}
