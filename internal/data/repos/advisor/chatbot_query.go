package advisor

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type ChatbotQueryRepo interface {
	Create(dbc dbctx.Context, q *types.ChatbotQuery) (*types.ChatbotQuery, error)
	ListByCategory(dbc dbctx.Context, category string, limit int) ([]*types.ChatbotQuery, error)
	Popular(dbc dbctx.Context, limit int) ([]types.PopularQuestion, error)
}

type chatbotQueryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatbotQueryRepo(db *gorm.DB, baseLog *logger.Logger) ChatbotQueryRepo {
	return &chatbotQueryRepo{db: db, log: baseLog.With("repo", "ChatbotQueryRepo")}
}

func (r *chatbotQueryRepo) Create(dbc dbctx.Context, q *types.ChatbotQuery) (*types.ChatbotQuery, error) {
	if q == nil {
		return nil, errors.New("chatbot query required")
	}
	if err := dbc.DB(r.db).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

func (r *chatbotQueryRepo) ListByCategory(dbc dbctx.Context, category string, limit int) ([]*types.ChatbotQuery, error) {
	var out []*types.ChatbotQuery
	q := dbc.DB(r.db).
		Where("category = ?", category).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type popularRow struct {
	Question string
	Total    int64
}

// Popular groups logged questions by exact text. Ties on count break by question ascending.
func (r *chatbotQueryRepo) Popular(dbc dbctx.Context, limit int) ([]types.PopularQuestion, error) {
	var rows []popularRow
	q := dbc.DB(r.db).
		Model(&types.ChatbotQuery{}).
		Select("question, COUNT(*) AS total").
		Group("question").
		Order("total DESC, question ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.PopularQuestion, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.PopularQuestion{Question: row.Question, Count: row.Total})
	}
	return out, nil
}
