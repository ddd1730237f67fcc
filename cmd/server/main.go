package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"gridgames-server/internal/analytics"
	"gridgames-server/internal/api"
	"gridgames-server/internal/config"
	"gridgames-server/internal/database"
	"gridgames-server/internal/database/repositories"
	"gridgames-server/internal/game"
)

// @title			Grid Games API
// @version		1.0
// @description	Backend service for multiplayer turn-based grid games.
// @BasePath		/
func main() {
	// Local overrides; absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	moveRepo := repositories.NewMoveRepository(db)
	leaderboardRepo := repositories.NewLeaderboardRepository(db)

	registry := game.NewRegistry()

	var producer *analytics.KafkaProducer
	var analyticsSink game.AnalyticsProducer
	if cfg.AnalyticsEnabled {
		producer = analytics.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		analyticsSink = producer
		logger.Info("analytics producer enabled",
			"brokers", strings.Join(cfg.KafkaBrokers, ","),
			"topic", cfg.KafkaTopic,
		)
	}

	engine := game.NewEngine(db, registry, userRepo, sessionRepo, moveRepo, analyticsSink, logger)
	queries := game.NewQueryService(sessionRepo, moveRepo, leaderboardRepo)

	server := api.NewServer(engine, queries, userRepo, db, cfg.CORSOrigins, logger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("analytics producer close failed", "error", err)
		}
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
