package app

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpserver "github.com/yungbote/jeevandwaar-backend/internal/http"
	httpH "github.com/yungbote/jeevandwaar-backend/internal/http/handlers"
	httpMW "github.com/yungbote/jeevandwaar-backend/internal/http/middleware"
	"github.com/yungbote/jeevandwaar-backend/internal/observability"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health         *httpH.HealthHandler
	Auth           *httpH.AuthHandler
	User           *httpH.UserHandler
	Policy         *httpH.PolicyHandler
	Recommendation *httpH.RecommendationHandler
	Chatbot        *httpH.ChatbotHandler
	Mitra          *httpH.MitraHandler
	Dashboard      *httpH.DashboardHandler
	Education      *httpH.EducationHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, rdb *goredis.Client, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(db, rdb),
		Auth:           httpH.NewAuthHandler(log, services.Auth),
		User:           httpH.NewUserHandler(log, services.User),
		Policy:         httpH.NewPolicyHandler(log, services.Catalog),
		Recommendation: httpH.NewRecommendationHandler(log, services.Recommendation),
		Chatbot:        httpH.NewChatbotHandler(log, services.Chatbot),
		Mitra:          httpH.NewMitraHandler(log, services.Mitra),
		Dashboard:      httpH.NewDashboardHandler(log, services.Dashboard),
		Education:      httpH.NewEducationHandler(log, services.Education),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouterConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) httpserver.RouterConfig {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return httpserver.RouterConfig{
		Log:          log,
		ServiceName:  serviceName,
		AllowOrigins: cfg.AllowOrigins,
		Metrics:      metrics,
		// A dedicated METRICS_ADDR listener replaces the /metrics route.
		ServeMetrics:   cfg.MetricsAddr == "",
		AuthMiddleware: middleware.Auth,

		AuthHandler:           handlers.Auth,
		PolicyHandler:         handlers.Policy,
		RecommendationHandler: handlers.Recommendation,
		ChatbotHandler:        handlers.Chatbot,
		MitraHandler:          handlers.Mitra,
		DashboardHandler:      handlers.Dashboard,
		UserHandler:           handlers.User,
		EducationHandler:      handlers.Education,

		HealthHandler: handlers.Health,
	}
}
