package advisor

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type RecommendationRepo interface {
	Create(dbc dbctx.Context, rec *types.PolicyRecommendation) (*types.PolicyRecommendation, error)
	GetByID(dbc dbctx.Context, id string) (*types.PolicyRecommendation, error)
	ListBySession(dbc dbctx.Context, sessionID string) ([]*types.PolicyRecommendation, error)
	UpdateAcceptance(dbc dbctx.Context, id string, selectedPolicyID *string) (bool, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return &recommendationRepo{db: db, log: baseLog.With("repo", "RecommendationRepo")}
}

func (r *recommendationRepo) Create(dbc dbctx.Context, rec *types.PolicyRecommendation) (*types.PolicyRecommendation, error) {
	if rec == nil {
		return nil, errors.New("recommendation required")
	}
	if err := dbc.DB(r.db).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *recommendationRepo) GetByID(dbc dbctx.Context, id string) (*types.PolicyRecommendation, error) {
	if id == "" {
		return nil, nil
	}
	var out types.PolicyRecommendation
	err := dbc.DB(r.db).Where("id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBySession returns the session's rows newest first.
func (r *recommendationRepo) ListBySession(dbc dbctx.Context, sessionID string) ([]*types.PolicyRecommendation, error) {
	var out []*types.PolicyRecommendation
	if err := dbc.DB(r.db).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAcceptance marks the row accepted and overwrites selected_policy_id, writing NULL when
// selectedPolicyID is nil. It reports whether a row matched; an unmatched id is not an error.
func (r *recommendationRepo) UpdateAcceptance(dbc dbctx.Context, id string, selectedPolicyID *string) (bool, error) {
	var selected any
	if selectedPolicyID != nil {
		selected = *selectedPolicyID
	}
	res := dbc.DB(r.db).
		Model(&types.PolicyRecommendation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_accepted":        true,
			"selected_policy_id": selected,
		})
	return res.RowsAffected > 0, res.Error
}
