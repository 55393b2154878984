package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/data/repos"
	"github.com/yungbote/jeevandwaar-backend/internal/observability"
	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/apierr"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/ctxutil"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/rules"
)

const (
	DefaultPopularLimit    = 5
	DefaultByCategoryLimit = 10
	MaxByCategoryLimit     = 50
)

type ChatInput struct {
	SessionID string
	Question  string
	// Language overrides the request language when set.
	Language *string
}

type ChatbotService interface {
	Ask(dbc dbctx.Context, in ChatInput) (*types.ChatbotQuery, error)
	Popular(dbc dbctx.Context, limit int) ([]types.PopularQuestion, error)
	ByCategory(dbc dbctx.Context, category string, limit int) ([]*types.ChatbotQuery, error)
}

type chatbotService struct {
	db        *gorm.DB
	log       *logger.Logger
	queryRepo repos.ChatbotQueryRepo
}

func NewChatbotService(db *gorm.DB, log *logger.Logger, queryRepo repos.ChatbotQueryRepo) ChatbotService {
	return &chatbotService{
		db:        db,
		log:       log.With("service", "ChatbotService"),
		queryRepo: queryRepo,
	}
}

func (s *chatbotService) Ask(dbc dbctx.Context, in ChatInput) (*types.ChatbotQuery, error) {
	if strings.TrimSpace(in.SessionID) == "" || strings.TrimSpace(in.Question) == "" {
		return nil, apierr.BadRequest("sessionId and question are required")
	}
	language := ctxutil.Language(dbc.Ctx)
	if in.Language != nil && *in.Language != "" {
		language = *in.Language
	}
	reply := rules.Answer(in.Question, language)
	row := &types.ChatbotQuery{
		SessionID:  in.SessionID,
		Question:   in.Question,
		Answer:     reply.Answer,
		Category:   reply.Category,
		Language:   language,
		IsResolved: true,
	}
	created, err := s.queryRepo.Create(dbc, row)
	if err != nil {
		return nil, fmt.Errorf("create chatbot query: %w", err)
	}
	observability.Current().IncChatbotAnswer(reply.Category, language)
	return created, nil
}

func (s *chatbotService) Popular(dbc dbctx.Context, limit int) ([]types.PopularQuestion, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	out, err := s.queryRepo.Popular(dbc, limit)
	if err != nil {
		return nil, fmt.Errorf("popular questions: %w", err)
	}
	return out, nil
}

func (s *chatbotService) ByCategory(dbc dbctx.Context, category string, limit int) ([]*types.ChatbotQuery, error) {
	known := false
	for _, c := range rules.Categories() {
		if c == category {
			known = true
			break
		}
	}
	if !known {
		return nil, apierr.BadRequest("unknown category " + category)
	}
	if limit <= 0 {
		limit = DefaultByCategoryLimit
	}
	if limit > MaxByCategoryLimit {
		limit = MaxByCategoryLimit
	}
	out, err := s.queryRepo.ListByCategory(dbc, category, limit)
	if err != nil {
		return nil, fmt.Errorf("list chatbot queries: %w", err)
	}
	if out == nil {
		out = []*types.ChatbotQuery{}
	}
	return out, nil
}
