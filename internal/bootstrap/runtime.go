// Package bootstrap wires shared runtime dependencies for the binaries.
package bootstrap

import (
	"fmt"

	"murmur/internal/cache"
	"murmur/internal/config"
	"murmur/internal/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds the shared process-level dependencies.
type Runtime struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
}

// InitRuntime loads configuration and establishes the database and Redis
// connections. Redis being unavailable is not fatal; the returned client
// is nil in that case and callers degrade gracefully.
func InitRuntime() (*Runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return &Runtime{
		Config: cfg,
		DB:     db,
		Redis:  cache.GetClient(),
	}, nil
}
