package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/http/response"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/services"
	"github.com/yungbote/jeevandwaar-backend/internal/validation"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService}
}

type sendOTPRequest struct {
	AadharID string `json:"aadharId" binding:"required"`
}

// POST /api/auth/otp/send
func (ah *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.RespondErr(c, ah.log, err, "Failed to send OTP")
		return
	}
	if err := ah.authService.SendOTP(c.Request.Context(), req.AadharID); err != nil {
		response.RespondErr(c, ah.log, err, "Failed to send OTP")
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

type verifyOTPRequest struct {
	AadharID string `json:"aadharId" binding:"required"`
	OTP      string `json:"otp" binding:"required,numeric,len=6"`
}

// POST /api/auth/otp/verify
func (ah *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.RespondErr(c, ah.log, err, "Failed to verify OTP")
		return
	}
	sess, err := ah.authService.VerifyOTP(c.Request.Context(), req.AadharID, req.OTP)
	if err != nil {
		response.RespondErr(c, ah.log, err, "Failed to verify OTP")
		return
	}
	response.RespondOK(c, sess)
}

// GET /api/auth/me
func (ah *AuthHandler) Me(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		response.RespondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	response.RespondOK(c, gin.H{
		"id":       rd.UserID,
		"name":     rd.Name,
		"role":     rd.Role,
		"language": rd.Language,
	})
}
