package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/data/repos/advisor"
	"github.com/yungbote/jeevandwaar-backend/internal/data/repos/analytics"
	"github.com/yungbote/jeevandwaar-backend/internal/data/repos/catalog"
	"github.com/yungbote/jeevandwaar-backend/internal/data/repos/mitra"
	"github.com/yungbote/jeevandwaar-backend/internal/data/repos/user"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type PolicyRepo = catalog.PolicyRepo
type UserPolicyRepo = catalog.UserPolicyRepo

type RecommendationRepo = advisor.RecommendationRepo
type ChatbotQueryRepo = advisor.ChatbotQueryRepo

type MitraRepo = mitra.MitraRepo

type DashboardRepo = analytics.DashboardRepo
type AcceptanceCounts = analytics.AcceptanceCounts
type LanguageCount = analytics.LanguageCount

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewPolicyRepo(db *gorm.DB, baseLog *logger.Logger) PolicyRepo {
	return catalog.NewPolicyRepo(db, baseLog)
}

func NewUserPolicyRepo(db *gorm.DB, baseLog *logger.Logger) UserPolicyRepo {
	return catalog.NewUserPolicyRepo(db, baseLog)
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return advisor.NewRecommendationRepo(db, baseLog)
}

func NewChatbotQueryRepo(db *gorm.DB, baseLog *logger.Logger) ChatbotQueryRepo {
	return advisor.NewChatbotQueryRepo(db, baseLog)
}

func NewMitraRepo(db *gorm.DB, baseLog *logger.Logger) MitraRepo {
	return mitra.NewMitraRepo(db, baseLog)
}

func NewDashboardRepo(db *gorm.DB, baseLog *logger.Logger) DashboardRepo {
	return analytics.NewDashboardRepo(db, baseLog)
}
