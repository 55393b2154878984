package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/data/repos"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type Repos struct {
	User           repos.UserRepo
	Policy         repos.PolicyRepo
	UserPolicy     repos.UserPolicyRepo
	Recommendation repos.RecommendationRepo
	ChatbotQuery   repos.ChatbotQueryRepo
	Mitra          repos.MitraRepo
	Dashboard      repos.DashboardRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		Policy:         repos.NewPolicyRepo(db, log),
		UserPolicy:     repos.NewUserPolicyRepo(db, log),
		Recommendation: repos.NewRecommendationRepo(db, log),
		ChatbotQuery:   repos.NewChatbotQueryRepo(db, log),
		Mitra:          repos.NewMitraRepo(db, log),
		Dashboard:      repos.NewDashboardRepo(db, log),
	}
}
