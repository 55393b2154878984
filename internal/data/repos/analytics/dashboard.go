package analytics

import (
	"database/sql"

	"gorm.io/gorm"

	types "github.com/yungbote/jeevandwaar-backend/internal/domain"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/catalog"
	"github.com/yungbote/jeevandwaar-backend/internal/domain/user"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type AcceptanceCounts struct {
	Total    int64
	Accepted int64
}

type LanguageCount struct {
	Language string
	Total    int64
}

// DashboardRepo runs the admin aggregates. Each method is one independent statement.
type DashboardRepo interface {
	CountUserPolicies(dbc dbctx.Context) (int64, error)
	CountUsers(dbc dbctx.Context) (int64, error)
	SumActivePremiums(dbc dbctx.Context) (float64, error)
	AcceptanceCounts(dbc dbctx.Context) (AcceptanceCounts, error)
	LanguageCounts(dbc dbctx.Context) ([]LanguageCount, error)
}

type dashboardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDashboardRepo(db *gorm.DB, baseLog *logger.Logger) DashboardRepo {
	return &dashboardRepo{db: db, log: baseLog.With("repo", "DashboardRepo")}
}

func (r *dashboardRepo) CountUserPolicies(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).Model(&types.UserPolicy{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepo) CountUsers(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).Model(&types.User{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepo) SumActivePremiums(dbc dbctx.Context) (float64, error) {
	var sum sql.NullFloat64
	err := dbc.DB(r.db).
		Raw(`SELECT COALESCE(SUM(p.monthly_premium), 0)
			FROM user_policies up
			JOIN policies p ON p.id = up.policy_id
			WHERE up.status = ?`, catalog.StatusActive).
		Row().
		Scan(&sum)
	if err != nil {
		return 0, err
	}
	return sum.Float64, nil
}

func (r *dashboardRepo) AcceptanceCounts(dbc dbctx.Context) (AcceptanceCounts, error) {
	var out AcceptanceCounts
	err := dbc.DB(r.db).
		Model(&types.PolicyRecommendation{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN is_accepted THEN 1 ELSE 0 END), 0) AS accepted").
		Scan(&out).Error
	return out, err
}

// LanguageCounts folds NULL or empty preferred_language into the default language.
func (r *dashboardRepo) LanguageCounts(dbc dbctx.Context) ([]LanguageCount, error) {
	expr := "COALESCE(NULLIF(preferred_language, ''), '" + user.DefaultLanguage + "')"
	var out []LanguageCount
	err := dbc.DB(r.db).
		Model(&types.User{}).
		Select(expr + " AS language, COUNT(*) AS total").
		Group(expr).
		Order("total DESC, language ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
