package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/http/response"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/reports"
	"github.com/yungbote/jeevandwaar-backend/internal/services"
)

type DashboardHandler struct {
	log       *logger.Logger
	dashboard services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{log: log.With("handler", "DashboardHandler"), dashboard: dashboard}
}

// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch dashboard stats")
		return
	}
	response.RespondOK(c, stats)
}

// GET /api/dashboard/language-stats
func (h *DashboardHandler) LanguageStats(c *gin.Context) {
	out, err := h.dashboard.LanguageStats(c.Request.Context())
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch language stats")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/dashboard/export.xlsx
func (h *DashboardHandler) Export(c *gin.Context) {
	raw, err := h.dashboard.Export(c.Request.Context())
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to export dashboard")
		return
	}
	name := fmt.Sprintf("jeevandwaar-dashboard-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, reports.ContentTypeXLSX, raw)
}
