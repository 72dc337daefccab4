package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/numerisys/document-system/internal/api"
	"github.com/numerisys/document-system/internal/core/ports"
	"github.com/numerisys/document-system/internal/core/service"
	"github.com/numerisys/document-system/internal/infrastructure/config"
	"github.com/numerisys/document-system/internal/infrastructure/db/postgres"
	redisdb "github.com/numerisys/document-system/internal/infrastructure/db/redis"
	"github.com/numerisys/document-system/internal/infrastructure/storage"
	"github.com/numerisys/document-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Postgres ---
	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// --- Redis (optional: enables the failed-login throttle) ---
	var throttle ports.LoginThrottle
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		throttle = redisdb.NewLoginLimiter(redisClient, 0, 0)
	}

	// --- File storage ---
	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init upload storage")
	}

	// --- Services ---
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	userRepo := postgres.NewUserRepository(db)
	docRepo := postgres.NewDocumentRepository(db)

	authService := service.NewAuthService(userRepo, tokens, throttle, log)
	userService := service.NewUserService(userRepo, log)
	docService := service.NewDocumentService(docRepo, files, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Users:     userService,
		Documents: docService,
		Verifier:  tokens,
		DB:        db,
		Redis:     redisClient,
		UploadDir: cfg.UploadDir,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}
}
