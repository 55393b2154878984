package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/jeevandwaar-backend/internal/http/handlers"
	httpMW "github.com/yungbote/jeevandwaar-backend/internal/http/middleware"
	"github.com/yungbote/jeevandwaar-backend/internal/observability"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowOrigins   []string
	Metrics        *observability.Metrics
	ServeMetrics   bool
	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler           *httpH.AuthHandler
	PolicyHandler         *httpH.PolicyHandler
	RecommendationHandler *httpH.RecommendationHandler
	ChatbotHandler        *httpH.ChatbotHandler
	MitraHandler          *httpH.MitraHandler
	DashboardHandler      *httpH.DashboardHandler
	UserHandler           *httpH.UserHandler
	EducationHandler      *httpH.EducationHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachLanguage())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil && cfg.ServeMetrics {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Catalog
		if cfg.PolicyHandler != nil {
			api.GET("/policies", cfg.PolicyHandler.ListPolicies)
			api.GET("/policies/age/:ageGroup", cfg.PolicyHandler.ListByAgeGroup)
			api.GET("/policies/:id", cfg.PolicyHandler.GetPolicy)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			api.POST("/recommendations", cfg.RecommendationHandler.Create)
			// gin requires one wildcard name per segment; :id is the session id here.
			api.GET("/recommendations/:id", cfg.RecommendationHandler.ListBySession)
			api.PATCH("/recommendations/:id/accept", cfg.RecommendationHandler.Accept)
		}

		// Chatbot
		if cfg.ChatbotHandler != nil {
			api.POST("/chatbot/query", cfg.ChatbotHandler.Query)
			api.GET("/chatbot/popular", cfg.ChatbotHandler.Popular)
			api.GET("/chatbot/category/:category", cfg.ChatbotHandler.ByCategory)
		}

		// Mitras
		if cfg.MitraHandler != nil {
			api.GET("/mitras", cfg.MitraHandler.List)
			api.GET("/mitras/nearby", cfg.MitraHandler.Nearby)
			api.GET("/mitras/area/:area", cfg.MitraHandler.ByArea)
		}

		// Dashboard (open, like the rest of the catalog)
		if cfg.DashboardHandler != nil {
			api.GET("/dashboard/stats", cfg.DashboardHandler.Stats)
			api.GET("/dashboard/language-stats", cfg.DashboardHandler.LanguageStats)
			api.GET("/dashboard/export.xlsx", cfg.DashboardHandler.Export)
		}

		// Users
		if cfg.UserHandler != nil {
			api.POST("/users", cfg.UserHandler.Create)
			api.GET("/users/:id", cfg.UserHandler.Get)
			api.GET("/users/:id/policies", cfg.UserHandler.ListPolicies)
			api.POST("/users/:id/policies", cfg.UserHandler.AddPolicy)
			api.PATCH("/user-policies/:id/status", cfg.UserHandler.UpdateStatus)
			api.PATCH("/user-policies/:id/nominee", cfg.UserHandler.UpdateNominee)
		}

		// Education & funds
		if cfg.EducationHandler != nil {
			api.GET("/funds/nav", cfg.EducationHandler.Funds)
			api.GET("/education/articles", cfg.EducationHandler.Articles)
			api.GET("/education/search", cfg.EducationHandler.Search)
		}

		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/otp/send", cfg.AuthHandler.SendOTP)
			api.POST("/auth/otp/verify", cfg.AuthHandler.VerifyOTP)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}
		if cfg.AuthHandler != nil && cfg.AuthMiddleware != nil {
			protected.GET("/auth/me", cfg.AuthHandler.Me)
		}
	}

	return r
}
