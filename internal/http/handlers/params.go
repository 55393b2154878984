package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
)

func dbcFrom(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

// queryInt reads an optional integer query parameter; absent means def.
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apierr.BadRequest(name + " must be a non-negative integer")
	}
	return v, nil
}

func queryFloat(c *gin.Context, name string) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, apierr.BadRequest(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apierr.BadRequest(name + " must be a number")
	}
	return v, nil
}
