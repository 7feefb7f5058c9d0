package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai-backend/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if closeErr := redisStorage.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if closeErr := sqliteStorage.Close(); closeErr != nil {
			log.Error("could not close sqlite storage", "error", closeErr)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	sessionRepo := repository.NewSessionRepository(redisStorage.Connection)
	preferenceRepo := repository.NewPreferenceRepository(sqliteStorage.Connection)

	gameService := service.NewGameService(logger, sessionRepo)
	preferenceService := service.NewPreferenceService(preferenceRepo)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	restServer := rest.New(logger, gameService, preferenceService)
	if err = restServer.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}
