package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/http/response"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/services"
	"github.com/yungbote/jeevandwaar-backend/internal/validation"
)

type UserHandler struct {
	log   *logger.Logger
	users services.UserService
}

func NewUserHandler(log *logger.Logger, users services.UserService) *UserHandler {
	return &UserHandler{log: log.With("handler", "UserHandler"), users: users}
}

type createUserRequest struct {
	Username          string  `json:"username" binding:"required,notblank,min=3,max=64"`
	Password          string  `json:"password" binding:"required,min=6,max=72"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Phone             *string `json:"phone" binding:"omitempty,max=20"`
	PreferredLanguage *string `json:"preferredLanguage" binding:"omitempty,oneof=hindi english"`
}

// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.RespondErr(c, h.log, err, "Failed to create user")
		return
	}
	u, err := h.users.Create(dbcFrom(c), services.CreateUserInput{
		Username:          req.Username,
		Password:          req.Password,
		Email:             req.Email,
		Phone:             req.Phone,
		PreferredLanguage: req.PreferredLanguage,
	})
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to create user")
		return
	}
	response.RespondCreated(c, u)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.users.Get(dbcFrom(c), c.Param("id"))
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch user")
		return
	}
	response.RespondOK(c, u)
}

// GET /api/users/:id/policies
func (h *UserHandler) ListPolicies(c *gin.Context) {
	out, err := h.users.ListPolicies(dbcFrom(c), c.Param("id"))
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch user policies")
		return
	}
	response.RespondOK(c, out)
}

type addPolicyRequest struct {
	PolicyID        string          `json:"policyId" binding:"required,notblank"`
	NextPremiumDate *time.Time      `json:"nextPremiumDate"`
	NomineeDetails  json.RawMessage `json:"nomineeDetails"`
}

// POST /api/users/:id/policies
func (h *UserHandler) AddPolicy(c *gin.Context) {
	var req addPolicyRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.RespondErr(c, h.log, err, "Failed to add policy")
		return
	}
	link, err := h.users.AddPolicy(dbcFrom(c), c.Param("id"), services.AddUserPolicyInput{
		PolicyID:        req.PolicyID,
		NextPremiumDate: req.NextPremiumDate,
		NomineeDetails:  req.NomineeDetails,
	})
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to add policy")
		return
	}
	response.RespondCreated(c, link)
}

type policyStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active lapsed claimed"`
}

// PATCH /api/user-policies/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req policyStatusRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.RespondErr(c, h.log, err, "Failed to update policy status")
		return
	}
	link, err := h.users.UpdatePolicyStatus(dbcFrom(c), c.Param("id"), req.Status)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to update policy status")
		return
	}
	response.RespondOK(c, link)
}

type nomineeRequest struct {
	NomineeDetails json.RawMessage `json:"nomineeDetails" binding:"required"`
}

// PATCH /api/user-policies/:id/nominee
func (h *UserHandler) UpdateNominee(c *gin.Context) {
	var req nomineeRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.RespondErr(c, h.log, err, "Failed to update nominee")
		return
	}
	link, err := h.users.UpdateNominee(dbcFrom(c), c.Param("id"), req.NomineeDetails)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to update nominee")
		return
	}
	response.RespondOK(c, link)
}
