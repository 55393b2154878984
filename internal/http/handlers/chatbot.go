package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/jeevandwaar-backend/internal/http/response"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/services"
	"github.com/yungbote/jeevandwaar-backend/internal/validation"
)

type ChatbotHandler struct {
	log     *logger.Logger
	chatbot services.ChatbotService
}

func NewChatbotHandler(log *logger.Logger, chatbot services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{log: log.With("handler", "ChatbotHandler"), chatbot: chatbot}
}

type chatbotQueryRequest struct {
	SessionID string  `json:"sessionId" binding:"required,notblank"`
	Question  string  `json:"question" binding:"required,notblank,max=2000"`
	Language  *string `json:"language" binding:"omitempty,oneof=hindi english"`
}

// POST /api/chatbot/query
func (h *ChatbotHandler) Query(c *gin.Context) {
	var req chatbotQueryRequest
	if err := validation.BindJSON(c, &req); err != nil {
		response.RespondErr(c, h.log, err, "Failed to process query")
		return
	}
	q, err := h.chatbot.Ask(dbcFrom(c), services.ChatInput{
		SessionID: req.SessionID,
		Question:  req.Question,
		Language:  req.Language,
	})
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to process query")
		return
	}
	response.RespondOK(c, q)
}

// GET /api/chatbot/popular?limit=
func (h *ChatbotHandler) Popular(c *gin.Context) {
	limit, err := queryInt(c, "limit", services.DefaultPopularLimit)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch popular questions")
		return
	}
	out, err := h.chatbot.Popular(dbcFrom(c), limit)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch popular questions")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/chatbot/category/:category?limit=
func (h *ChatbotHandler) ByCategory(c *gin.Context) {
	limit, err := queryInt(c, "limit", services.DefaultByCategoryLimit)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch queries")
		return
	}
	out, err := h.chatbot.ByCategory(dbcFrom(c), c.Param("category"), limit)
	if err != nil {
		response.RespondErr(c, h.log, err, "Failed to fetch queries")
		return
	}
	response.RespondOK(c, out)
}
