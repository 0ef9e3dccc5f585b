// Package bootstrap wires the process-level dependencies shared by the server
// and the operator commands.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"childrenlk/internal/cache"
	"childrenlk/internal/config"
	"childrenlk/internal/database"
	"childrenlk/internal/mailer"
	"childrenlk/internal/middleware"
	"childrenlk/internal/models"
	"childrenlk/internal/observability"
	"childrenlk/internal/storage"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Runtime is everything a running server needs from the outside world.
type Runtime struct {
	DB             *gorm.DB
	Redis          *redis.Client
	MediaHost      storage.MediaHost
	Mailer         mailer.Mailer
	ShutdownTracer func(context.Context) error
}

// InitRuntime connects to the database and Redis, applies the schema,
// builds the media host and mailer and starts tracing.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	middleware.InitLogger(cfg.Env)

	db, err := InitDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		// Rate limits, token revocation and tag caching degrade without Redis.
		middleware.Logger.Warn("redis unavailable, continuing without it", slog.String("error", err.Error()))
		rdb = nil
	}

	host, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("media host: %w", err)
	}

	mail, err := mailer.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    "childrenlk-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   1,
	})
	if err != nil {
		return nil, err
	}

	return &Runtime{
		DB:             db,
		Redis:          rdb,
		MediaHost:      host,
		Mailer:         mail,
		ShutdownTracer: shutdown,
	}, nil
}

// InitDatabase connects, applies the schema and ensures the development root
// admin when enabled.
func InitDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	if err := ensureDevRootAdmin(ctx, cfg, db); err != nil {
		return nil, fmt.Errorf("failed to bootstrap development root admin: %w", err)
	}
	return db, nil
}

func ensureDevRootAdmin(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = "root@children.lk"
	}
	if cfg.DevRootPassword == "" {
		return fmt.Errorf("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DevRootPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var root models.User
		findErr := tx.Where("email = ?", email).First(&root).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				Name:     "Root Admin",
				Email:    email,
				Password: string(hash),
				Role:     models.RoleAdmin,
			}
			return tx.Create(&root).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&root).Update("role", models.RoleAdmin).Error
		}
	})
	if err != nil {
		return err
	}

	middleware.Logger.Info("development root admin ensured", slog.String("email", email))
	return nil
}
