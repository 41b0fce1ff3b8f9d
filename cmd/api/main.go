// @title        Agency API
// @version      1.0
// @description  Multi-tenant agency backend: client and admin auth, blogs, catalog, intake and service requests.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/studiozeta/agency-api/internal/api"
	"github.com/studiozeta/agency-api/internal/core/token"
	"github.com/studiozeta/agency-api/internal/infrastructure/config"
	mongodb "github.com/studiozeta/agency-api/internal/infrastructure/db/mongo"
	redisdb "github.com/studiozeta/agency-api/internal/infrastructure/db/redis"
	"github.com/studiozeta/agency-api/internal/infrastructure/email"
	"github.com/studiozeta/agency-api/internal/infrastructure/notify"
	"github.com/studiozeta/agency-api/internal/infrastructure/storage"
	"github.com/studiozeta/agency-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is a local-development convenience; absence is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("configuration invalid")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Background notify workers ---
	mailer := email.NewSMTPMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	media := storage.NewHTTPStore(storage.Config{
		BaseURL: cfg.Media.BaseURL,
		APIKey:  cfg.Media.APIKey,
		Folder:  cfg.Media.Folder,
	})
	dispatcher := notify.NewDispatcher(cfg.NotifyWorkers, mailer, media, log)
	dispatcher.Start(ctx)

	issuer := token.NewIssuer(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	e := api.NewRouter(api.Deps{
		Cfg:    cfg,
		DB:     db,
		Client: mongoClient,
		Redis:  rdb,
		Issuer: issuer,
		Notify: dispatcher,
		Media:  media,
		Log:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}

// ensureIndexes creates the unique and query indexes every collection relies
// on. Index creation is idempotent; startup fails fast when it cannot run.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewClientRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewAdminRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewBlogRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewCatalogRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewRequestRepository(db).EnsureIndexes(ctx)
}
