package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
	"github.com/yungbote/jeevandwaar-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	User           services.UserService
	Catalog        services.CatalogService
	Recommendation services.RecommendationService
	Chatbot        services.ChatbotService
	Mitra          services.MitraService
	Dashboard      services.DashboardService
	Education      services.EducationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:           services.NewAuthService(log, clients.Identity, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:           services.NewUserService(db, log, repos.User, repos.Policy, repos.UserPolicy),
		Catalog:        services.NewCatalogService(db, log, repos.Policy),
		Recommendation: services.NewRecommendationService(db, log, repos.Recommendation),
		Chatbot:        services.NewChatbotService(db, log, repos.ChatbotQuery),
		Mitra:          services.NewMitraService(db, log, repos.Mitra),
		Dashboard:      services.NewDashboardService(db, log, repos.Dashboard, repos.ChatbotQuery),
		Education:      services.NewEducationService(log, clients.Catalog, clients.Articles),
	}
}
