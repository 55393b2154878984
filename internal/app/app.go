package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/yungbote/jeevandwaar-backend/internal/data/db"
	httpserver "github.com/yungbote/jeevandwaar-backend/internal/http"
	"github.com/yungbote/jeevandwaar-backend/internal/observability"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/dbctx"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	Server   *httpserver.Server

	store        *db.Service
	otelShutdown func(context.Context) error
}

// NewLogger honours LOG_MODE, defaulting to development output.
func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// OpenStore opens the configured database and runs AutoMigrate.
func OpenStore(log *logger.Logger, cfg Config) (*db.Service, error) {
	store, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("init %s: %w", cfg.DB.Driver, err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s automigrate: %w", cfg.DB.Driver, err)
	}
	return store, nil
}

func New(ctx context.Context, log *logger.Logger) (*App, error) {
	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init(log, cfg.MetricsEnabled, cfg.MetricsInterval)

	store, err := OpenStore(log, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}
	theDB := store.DB()

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = store.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients)

	a := &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		store:        store,
		otelShutdown: otelShutdown,
	}
	if err := a.Seed(ctx); err != nil {
		a.Close()
		return nil, err
	}

	handlerset := wireHandlers(log, theDB, clients.Redis, serviceset)
	middleware := wireMiddleware(log, serviceset)
	a.Server = httpserver.NewServer(wireRouterConfig(log, cfg, metrics, handlerset, middleware))
	return a, nil
}

// Seed upserts the embedded policy and mitra catalog. It is safe on every boot.
func (a *App) Seed(ctx context.Context) error {
	dbc := dbctx.New(ctx)
	policies, err := a.Services.Catalog.Seed(dbc, a.Clients.Catalog)
	if err != nil {
		return fmt.Errorf("seed policies: %w", err)
	}
	mitras, err := a.Services.Mitra.Seed(dbc, a.Clients.Catalog)
	if err != nil {
		return fmt.Errorf("seed mitras: %w", err)
	}
	a.Log.Info("Catalog seeded", "policies", policies, "mitras", mitras)
	return nil
}

// Run serves HTTP until ctx is cancelled. Background collectors stop with ctx.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Metrics.StartDBCollector(ctx, a.Log, a.DB)
	a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis)
	a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)

	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)
	return a.Server.Run(ctx, addr, a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
