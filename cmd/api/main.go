package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenharbor/greennest-backend/internal/api"
	mongodb "github.com/greenharbor/greennest-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/greenharbor/greennest-backend/internal/infrastructure/db/redis"
	"github.com/greenharbor/greennest-backend/internal/infrastructure/notify"
	"github.com/greenharbor/greennest-backend/internal/pkg/config"
	"github.com/greenharbor/greennest-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	// The unique email index backs registration conflict detection and must
	// exist before the server accepts requests.
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewOrderRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("order index creation failed")
	}
	if err := mongodb.NewPlantRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("plant index creation failed")
	}
	if err := mongodb.NewCategoryRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("category index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Notification pipeline ---
	mailer := notify.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	dispatcher := notify.NewDispatcher(mailer, cfg.Notify.Workers, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
