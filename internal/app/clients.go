package app

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/jeevandwaar-backend/internal/clients/redis"
	"github.com/yungbote/jeevandwaar-backend/internal/content"
	"github.com/yungbote/jeevandwaar-backend/internal/identity"
	"github.com/yungbote/jeevandwaar-backend/internal/platform/logger"
)

type Clients struct {
	// Redis is nil when REDIS_ADDR is unset.
	Redis    *goredis.Client
	Identity identity.Provider
	Catalog  *content.Catalog
	Articles *content.Index
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	catalog, err := content.Load()
	if err != nil {
		return Clients{}, fmt.Errorf("load content catalog: %w", err)
	}

	rdb, err := redis.NewClient(cfg.Redis, log)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}

	provider, err := wireIdentity(log, cfg, catalog, rdb)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return Clients{}, err
	}

	index, err := content.NewIndex(catalog)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return Clients{}, fmt.Errorf("build article index: %w", err)
	}

	return Clients{
		Redis:    rdb,
		Identity: provider,
		Catalog:  catalog,
		Articles: index,
	}, nil
}

func wireIdentity(log *logger.Logger, cfg Config, catalog *content.Catalog, rdb *goredis.Client) (identity.Provider, error) {
	switch cfg.IdentityMode {
	case IdentityModeHTTP:
		p, err := identity.NewHTTPProvider(identity.HTTPConfig{
			BaseURL: cfg.IdentityBaseURL,
			APIKey:  cfg.IdentityAPIKey,
			Timeout: cfg.IdentityTimeout,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("init identity provider: %w", err)
		}
		return p, nil
	case IdentityModeDev, "":
		var store identity.OTPStore
		if rdb != nil {
			store = identity.NewRedisStore(rdb, "jd:otp")
		}
		p, err := identity.NewDevProvider(identity.DevConfig{
			Directory: catalog.Identities,
			Code:      cfg.DevOTPCode,
			Delay:     cfg.DevOTPDelay,
			TTL:       cfg.OTPTTL,
			Cooldown:  cfg.OTPCooldown,
			Store:     store,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("init dev identity provider: %w", err)
		}
		log.Warn("Using dev identity provider; OTP codes are logged", "redis_store", rdb != nil)
		return p, nil
	default:
		return nil, fmt.Errorf("unknown IDENTITY_MODE %q", cfg.IdentityMode)
	}
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Articles != nil {
		_ = c.Articles.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
