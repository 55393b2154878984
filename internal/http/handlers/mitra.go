package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/http/response"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/services"
)

type MitraHandler struct {
	log    *logger.Logger
	mitras services.MitraService
}

func NewMitraHandler(log *logger.Logger, mitras services.MitraService) *MitraHandler {
	return &MitraHandler{log: log.With("handler", "MitraHandler"), mitras: mitras}
}

// GET /api/mitras?sort=rating
func (h *MitraHandler) List(c *gin.Context) {
	out, err := h.mitras.List(dbcFrom(c), c.Query("sort"))
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch mitras")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/mitras/area/:area
func (h *MitraHandler) ByArea(c *gin.Context) {
	out, err := h.mitras.ByArea(dbcFrom(c), c.Param("area"))
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch mitras")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/mitras/nearby?lat=&lng=&limit=
func (h *MitraHandler) Nearby(c *gin.Context) {
	lat, err := queryFloat(c, "lat")
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch mitras")
		return
	}
	lng, err := queryFloat(c, "lng")
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch mitras")
		return
	}
	limit, err := queryInt(c, "limit", services.DefaultNearbyLimit)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch mitras")
		return
	}
	out, err := h.mitras.Nearby(dbcFrom(c), lat, lng, limit)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch mitras")
		return
	}
	response.RespondOK(c, out)
}
