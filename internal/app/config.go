package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/jeevandwaar-backend/internal/clients/redis"
	"github.com/yungbote/jeevandwaar-backend/internal/data/db"
	"github.com/yungbote/jeevandwaar-backend/internal/http/middleware"
	"github.com/yungbote/jeevandwaar-backend/internal/identity"
	"github.com/yungbote/jeevandwaar-backend/internal/observability"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/envutil"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

const (
	IdentityModeDev  = "dev"
	IdentityModeHTTP = "http"
)

type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	DB    db.Config
	Redis redis.Config

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	IdentityMode    string
	IdentityBaseURL string
	IdentityAPIKey  string
	IdentityTimeout time.Duration
	DevOTPDelay     time.Duration
	DevOTPCode      string
	OTPTTL          time.Duration
	OTPCooldown     time.Duration

	AllowOrigins []string

	Otel observability.OtelConfig

	MetricsEnabled  bool
	MetricsAddr     string
	MetricsInterval time.Duration
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig(log *logger.Logger) Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on process environment")
	}

	driver := strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres, log))
	dsn := envutil.String("POSTGRES_DSN", "", log)
	if dsn == "" && driver == db.DriverPostgres {
		dsn = postgresDSN(
			envutil.String("POSTGRES_HOST", "localhost", log),
			envutil.Int("POSTGRES_PORT", 5432, log),
			envutil.String("POSTGRES_USER", "postgres", log),
			envutil.String("POSTGRES_PASSWORD", "", log),
			envutil.String("POSTGRES_NAME", "jeevandwaar", log),
			envutil.String("POSTGRES_SSLMODE", "disable", log),
		)
	}

	accessTTL := time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600, log)) * time.Second

	return Config{
		Port:            envutil.String("PORT", "5000", log),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 10*time.Second, log),

		DB: db.Config{
			Driver:         driver,
			PostgresDSN:    dsn,
			SQLitePath:     envutil.String("SQLITE_PATH", "jeevandwaar.db", log),
			MaxOpenConns:   envutil.Int("DB_MAX_OPEN_CONNS", 20, log),
			MaxIdleConns:   envutil.Int("DB_MAX_IDLE_CONNS", 5, log),
			SimpleProtocol: envutil.Bool("PG_SIMPLE_PROTOCOL", false, log),
		},
		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", "", log),
			Password: envutil.String("REDIS_PASSWORD", "", log),
			DB:       envutil.Int("REDIS_DB", 0, log),
		},

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL: accessTTL,

		IdentityMode:    strings.ToLower(envutil.String("IDENTITY_MODE", IdentityModeDev, log)),
		IdentityBaseURL: envutil.String("IDENTITY_BASE_URL", "", log),
		IdentityAPIKey:  envutil.String("IDENTITY_API_KEY", "", log),
		IdentityTimeout: envutil.Duration("IDENTITY_TIMEOUT", 10*time.Second, log),
		DevOTPDelay:     envutil.Duration("IDENTITY_DEV_DELAY", 0, log),
		DevOTPCode:      envutil.String("IDENTITY_DEV_OTP", "", log),
		OTPTTL:          envutil.Duration("OTP_TTL", identity.DefaultOTPTTL, log),
		OTPCooldown:     envutil.Duration("OTP_COOLDOWN", identity.DefaultOTPCooldown, log),

		AllowOrigins: envutil.List("CORS_ALLOW_ORIGINS", middleware.DefaultAllowOrigins, log),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "jeevandwaar-api", log),
			Environment: envutil.String("APP_ENV", "development", log),
			Version:     envutil.String("APP_VERSION", "dev", log),
			Exporter:    strings.ToLower(envutil.String("OTEL_EXPORTER", observability.ExporterStdout, log)),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true, log),
			SampleRatio: sampleRatio(envutil.String("OTEL_SAMPLE_RATIO", "1", log)),
		},

		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", false, log),
		MetricsAddr:     envutil.String("METRICS_ADDR", "", log),
		MetricsInterval: envutil.Duration("METRICS_INTERVAL", 10*time.Second, log),
	}
}

func postgresDSN(host string, port int, user, password, name, sslmode string) string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s", host, port, user, name, sslmode)
	if password != "" {
		dsn += " password=" + password
	}
	return dsn
}

func sampleRatio(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 1
	}
	return f
}
