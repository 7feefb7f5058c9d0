package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	logger   *slog.Logger
	handlers *handlers
}

func New(logger *slog.Logger, games gameService, preferences preferenceService) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		handlers: newHandlers(logger, games, preferences),
	}
}

// Start - runs the HTTP server until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.handlers.Ping)

	router.Route("/api", func(api chi.Router) {
		api.Post("/game/new", that.handlers.NewGame)
		api.Post("/game/move", that.handlers.PlayerMove)
		api.Post("/game/difficulty", that.handlers.ChangeDifficulty)
		api.Post("/game/personality", that.handlers.SetPersonality)
		api.Get("/game/state", that.handlers.GameState)
		api.Get("/preferences", that.handlers.Preferences)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		that.logger.Info("HTTP server stopped")
		return nil
	}
}
