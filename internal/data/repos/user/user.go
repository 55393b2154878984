package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, user *types.User) (*types.User, error)
	GetByID(dbc dbctx.Context, id string) (*types.User, error)
	GetByUsername(dbc dbctx.Context, username string) (*types.User, error)
	GetByPhone(dbc dbctx.Context, phone string) (*types.User, error)
	UsernameExists(dbc dbctx.Context, username string) (bool, error)
	UpdatePreferredLanguage(dbc dbctx.Context, id, language string) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(dbc dbctx.Context, user *types.User) (*types.User, error) {
	if user == nil {
		return nil, errors.New("user required")
	}
	if err := dbc.DB(r.db).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID returns (nil, nil) when no row matches.
func (r *userRepo) GetByID(dbc dbctx.Context, id string) (*types.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	return r.first(dbc, "id = ?", id)
}

func (r *userRepo) GetByUsername(dbc dbctx.Context, username string) (*types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, nil
	}
	return r.first(dbc, "username = ?", username)
}

func (r *userRepo) GetByPhone(dbc dbctx.Context, phone string) (*types.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil
	}
	return r.first(dbc, "phone = ?", phone)
}

func (r *userRepo) UsernameExists(dbc dbctx.Context, username string) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.User{}).
		Where("username = ?", strings.TrimSpace(username)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) UpdatePreferredLanguage(dbc dbctx.Context, id, language string) error {
	return dbc.DB(r.db).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("preferred_language", language).Error
}

func (r *userRepo) first(dbc dbctx.Context, query string, args ...any) (*types.User, error) {
	var out types.User
	err := dbc.DB(r.db).Where(query, args...).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
