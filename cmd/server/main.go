// @title                       The Hex message board API
// @version                     1.0
// @description                 Members-only message board: anyone may read, members see who wrote what.
// @BasePath                    /v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thehex/board/internal/api"
	"github.com/thehex/board/internal/api/handler"
	"github.com/thehex/board/internal/core/policy"
	"github.com/thehex/board/internal/core/service"
	mongodb "github.com/thehex/board/internal/infrastructure/db/mongo"
	redisdb "github.com/thehex/board/internal/infrastructure/db/redis"
	"github.com/thehex/board/internal/infrastructure/queue"
	"github.com/thehex/board/internal/pkg/config"
	"github.com/thehex/board/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Output:  os.Stdout,
		Service: "board",
	})

	// Storage
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	sessionStore, rdb, err := redisdb.OpenSessionStore(ctx, redisdb.Config{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.DialTimeout,
		ReadTimeout: cfg.Redis.ReadTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// Repositories
	accountRepo := mongodb.NewAccountRepository(db)
	messageRepo := mongodb.NewMessageRepository(db, logger.Component("message_repository"))
	activityRepo := mongodb.NewActivityRepository(db)

	if err := mongodb.EnsureIndexes(ctx, accountRepo, messageRepo, activityRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// Activity log workers
	activitySvc := service.NewActivityService(activityRepo, logger.Component("activity"))
	dispatcher := queue.NewDispatcher(cfg.Board.ActivityWorkers, activitySvc, logger.Component("dispatcher"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	// Services
	authSvc := service.NewAuthService(accountRepo, sessionStore, dispatcher, cfg.JWTSecret, cfg.Board.TokenTTL)
	messageSvc := service.NewMessageService(messageRepo, accountRepo, dispatcher, logger.Component("messages"))
	membershipSvc := service.NewMembershipService(
		accountRepo,
		policy.NewPasscodeGate(cfg.Board.MemberPasscode),
		dispatcher,
		logger.Component("membership"),
	)

	e := api.NewRouter(api.Dependencies{
		Identity:   authSvc,
		Messages:   messageSvc,
		Membership: membershipSvc,
		Activity:   activitySvc,
		Sessions:   sessionStore,
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("message board listening")
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("server stopped")
}
