package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/validation"
)

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

const invalidInput = "Invalid input data"

func RespondError(c *gin.Context, status int, msg string, details any) {
	c.JSON(status, ErrorEnvelope{Error: msg, Details: details})
}

// RespondErr maps err onto the wire. Validation failures become 400 with field details and
// client-facing apierr errors keep their status and message. Anything else is logged and
// answered with an opaque 500 carrying fallback.
func RespondErr(c *gin.Context, log *logger.Logger, err error, fallback string) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		RespondError(c, http.StatusBadRequest, invalidInput, ve.Fields)
		return
	}
	var ae *apierr.Error
	if errors.As(err, &ae) && clientVisible(ae.Status) {
		RespondError(c, ae.Status, ae.Error(), nil)
		return
	}
	if log != nil {
		log.Error(fallback, "error", err, "path", c.FullPath(), "request_id", ctxutil.RequestID(c.Request.Context()))
	}
	RespondError(c, http.StatusInternalServerError, fallback, nil)
}

// clientVisible reports whether an apierr status may carry its message to the client.
func clientVisible(status int) bool {
	return (status >= 400 && status < 500) || status == http.StatusBadGateway
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
