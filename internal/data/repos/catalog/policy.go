package catalog

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type PolicyRepo interface {
	Create(dbc dbctx.Context, policies []*types.Policy) ([]*types.Policy, error)
	Upsert(dbc dbctx.Context, policies []*types.Policy) error
	GetByID(dbc dbctx.Context, id string) (*types.Policy, error)
	ListActive(dbc dbctx.Context) ([]*types.Policy, error)
	ListActiveByAgeGroup(dbc dbctx.Context, ageGroup string) ([]*types.Policy, error)
}

type policyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPolicyRepo(db *gorm.DB, baseLog *logger.Logger) PolicyRepo {
	return &policyRepo{db: db, log: baseLog.With("repo", "PolicyRepo")}
}

func (r *policyRepo) Create(dbc dbctx.Context, policies []*types.Policy) ([]*types.Policy, error) {
	if len(policies) == 0 {
		return []*types.Policy{}, nil
	}
	if err := dbc.DB(r.db).Create(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

// Upsert inserts or fully replaces rows keyed by id. Seeding uses it so reruns converge.
func (r *policyRepo) Upsert(dbc dbctx.Context, policies []*types.Policy) error {
	if len(policies) == 0 {
		return nil
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "coverage_amount", "monthly_premium", "age_group", "duration", "is_active", "features", "exclusions"}),
		}).
		Create(&policies).Error
}

// GetByID returns the policy regardless of isActive, or (nil, nil).
func (r *policyRepo) GetByID(dbc dbctx.Context, id string) (*types.Policy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var out types.Policy
	err := dbc.DB(r.db).Where("id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *policyRepo) ListActive(dbc dbctx.Context) ([]*types.Policy, error) {
	var out []*types.Policy
	if err := dbc.DB(r.db).
		Where("is_active = ?", true).
		Order("monthly_premium ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *policyRepo) ListActiveByAgeGroup(dbc dbctx.Context, ageGroup string) ([]*types.Policy, error) {
	var out []*types.Policy
	if err := dbc.DB(r.db).
		Where("is_active = ? AND age_group = ?", true, ageGroup).
		Order("monthly_premium ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
