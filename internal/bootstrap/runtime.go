// Package bootstrap prepares the database, cache and reference data the API
// needs before it starts serving.
package bootstrap

import (
	"context"
	"fmt"

	"medialane/internal/auth"
	"medialane/internal/cache"
	"medialane/internal/config"
	"medialane/internal/database"
	"medialane/internal/middleware"
	"medialane/internal/repository"
	"medialane/internal/seed"
	"medialane/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedCatalog bool
}

// InitRuntime connects to DB and Redis, loads the catalog when asked and
// ensures the configured super admin exists.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedCatalog {
		if err := seed.Catalog(ctx, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	if err := EnsureSuperAdmin(ctx, cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap super admin: %w", err)
	}

	return db, r, nil
}

// EnsureSuperAdmin creates the SUPER_ADMIN account named by the SUPER_ADMIN_*
// settings unless one already exists. It does nothing when no user name is
// configured.
func EnsureSuperAdmin(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil || cfg.SuperAdminUserName == "" {
		return nil
	}

	users := service.NewUserService(repository.NewUserRepository(db), auth.NewTokenManager(cfg.JWTSecret))
	created, err := users.EnsureSuperAdmin(ctx, service.CreateAdminInput{
		UserName: cfg.SuperAdminUserName,
		Email:    cfg.SuperAdminEmail,
		Password: cfg.SuperAdminPassword,
	})
	if err != nil {
		return err
	}
	if created {
		middleware.Logger.Info("super admin created", "userName", cfg.SuperAdminUserName)
	}
	return nil
}
