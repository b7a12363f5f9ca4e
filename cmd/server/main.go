package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sudisha-pv/feedback-service/internal/auth"
	"github.com/Sudisha-pv/feedback-service/internal/config"
	"github.com/Sudisha-pv/feedback-service/internal/domain"
	"github.com/Sudisha-pv/feedback-service/internal/feedback"
	"github.com/Sudisha-pv/feedback-service/internal/logging"
	"github.com/Sudisha-pv/feedback-service/internal/postgres"
	"github.com/Sudisha-pv/feedback-service/internal/redis"
	"github.com/Sudisha-pv/feedback-service/internal/sentiment"
	"github.com/Sudisha-pv/feedback-service/internal/server"
	"github.com/Sudisha-pv/feedback-service/internal/stats"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	healthChecks := []server.HealthCheck{
		{Name: "database", Check: pool.Ping},
	}

	// The session cache is optional: without REDIS_URL every validation
	// goes straight to the database.
	var sessionCache domain.SessionCache
	if cfg.RedisURL != "" {
		redisClient := setupRedis(context.Background(), cfg)
		defer func() { _ = redisClient.Close() }()

		sessionCache = redis.NewSessionCache(redisClient)
		healthChecks = append(healthChecks, server.HealthCheck{
			Name:  "cache",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	userRepo := postgres.NewUserRepo(pool)
	sessionRepo := postgres.NewSessionRepo(pool)
	feedbackRepo := postgres.NewFeedbackRepo(pool)

	authSvc := auth.NewService(userRepo, sessionRepo, sessionCache, clock, cfg.SessionTTL, cfg.AdminUsername, cfg.AdminPassword)
	feedbackSvc := feedback.NewService(feedbackRepo, sentiment.NewClassifier())
	statsReporter := stats.NewReporter(userRepo, feedbackRepo)

	srv := server.NewServer(cfg, authSvc, feedbackSvc, statsReporter, healthChecks)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
