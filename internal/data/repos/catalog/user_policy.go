package catalog

import (
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type UserPolicyRepo interface {
	Create(dbc dbctx.Context, link *types.UserPolicy) (*types.UserPolicy, error)
	GetByID(dbc dbctx.Context, id string) (*types.UserPolicy, error)
	ListByUser(dbc dbctx.Context, userID string) ([]*types.UserPolicy, error)
	UpdateStatus(dbc dbctx.Context, id, status string) (bool, error)
	UpdateNominee(dbc dbctx.Context, id string, nominee datatypes.JSON) (bool, error)
}

type userPolicyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserPolicyRepo(db *gorm.DB, baseLog *logger.Logger) UserPolicyRepo {
	return &userPolicyRepo{db: db, log: baseLog.With("repo", "UserPolicyRepo")}
}

func (r *userPolicyRepo) Create(dbc dbctx.Context, link *types.UserPolicy) (*types.UserPolicy, error) {
	if link == nil {
		return nil, errors.New("user policy required")
	}
	if err := dbc.DB(r.db).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (r *userPolicyRepo) GetByID(dbc dbctx.Context, id string) (*types.UserPolicy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var out types.UserPolicy
	err := dbc.DB(r.db).Where("id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userPolicyRepo) ListByUser(dbc dbctx.Context, userID string) ([]*types.UserPolicy, error) {
	var out []*types.UserPolicy
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("start_date DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus reports whether a row matched.
func (r *userPolicyRepo) UpdateStatus(dbc dbctx.Context, id, status string) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.UserPolicy{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

func (r *userPolicyRepo) UpdateNominee(dbc dbctx.Context, id string, nominee datatypes.JSON) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.UserPolicy{}).
		Where("id = ?", id).
		Update("nominee_details", nominee)
	return res.RowsAffected > 0, res.Error
}
