package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "pharmtrack/internal/adapters/http"
	"pharmtrack/internal/adapters/postgres"
	redisstore "pharmtrack/internal/adapters/redis"
	"pharmtrack/internal/config"
	"pharmtrack/internal/core/auth"
	"pharmtrack/internal/core/medication"
	"pharmtrack/internal/logger"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if cfg.JWTSecret == "" {
		panic("FATAL: JWT_SECRET is mandatory for Server!")
	}

	dbPool, err := postgres.InitDB(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to init DB", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(dbPool)
	medicationRepo := postgres.NewMedicationRepository(dbPool)
	reminderRepo := postgres.NewReminderRepository(dbPool)
	tokenStore := redisstore.NewTokenStore(redisClient)

	authService := auth.NewService(userRepo, tokenStore, cfg.JWTSecret, cfg.JWTExpiry)
	medicationService := medication.NewService(medicationRepo, reminderRepo)

	router := api.NewRouter(cfg, log, &api.RouterDeps{
		Auth:       api.NewAuthHandler(authService, cfg),
		Medication: api.NewMedicationHandler(medicationService),
		Reminder:   api.NewReminderHandler(medicationService),

		UserRepo:   userRepo,
		TokenStore: tokenStore,
	})

	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http: starting server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("http: server error", "error", err)
	}

	log.Info("server stopped")
}
