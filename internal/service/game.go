package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/tictactoe"
)

type sessionRepo interface {
	Save(ctx context.Context, sessionID string, engine *tictactoe.Engine) error
	GetByID(ctx context.Context, sessionID string) (*tictactoe.Engine, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

// GameService runs game sessions against their persisted engines: every
// operation loads the session's engine, applies one engine call and saves
// the result back. Sessions are independent; callers serialize the
// operations of a single session.
type GameService interface {
	StartNewGame(ctx context.Context, sessionID, playerMark, difficulty string) (*tictactoe.Snapshot, error)
	PlayerMove(ctx context.Context, sessionID string, x, y int) (*tictactoe.Snapshot, error)
	ChangeDifficulty(ctx context.Context, sessionID, difficulty string) (bool, error)
	SetPersonality(ctx context.Context, sessionID string, randomnessFactor float64) (bool, error)
	GetState(ctx context.Context, sessionID string) (*tictactoe.Snapshot, error)
}

type gameService struct {
	logger   *slog.Logger
	sessions sessionRepo
}

func NewGameService(logger *slog.Logger, sessions sessionRepo) GameService {
	return &gameService{
		logger:   logger.With("component", "game service"),
		sessions: sessions,
	}
}

func (that *gameService) StartNewGame(ctx context.Context, sessionID, playerMark, difficulty string) (*tictactoe.Snapshot, error) {
	engine := tictactoe.NewEngine()

	snapshot, err := engine.StartNewGame(playerMark, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to start new game: %w", err)
	}

	if err = that.sessions.Save(ctx, sessionID, engine); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	that.logger.Info("new game started", "session", sessionID, "player_mark", playerMark, "difficulty", difficulty)

	return snapshot, nil
}

func (that *gameService) PlayerMove(ctx context.Context, sessionID string, x, y int) (*tictactoe.Snapshot, error) {
	engine, err := that.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	snapshot, err := engine.PlayerMove(x, y)
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if err = that.sessions.Save(ctx, sessionID, engine); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return snapshot, nil
}

func (that *gameService) ChangeDifficulty(ctx context.Context, sessionID, difficulty string) (bool, error) {
	engine, err := that.sessions.GetByID(ctx, sessionID)

	if errors.Is(err, apperror.ErrSessionNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to get session: %w", err)
	}

	changed, err := engine.ChangeDifficulty(difficulty)
	if err != nil {
		return false, fmt.Errorf("failed to change difficulty: %w", err)
	}

	if !changed {
		return false, nil
	}

	if err = that.sessions.Save(ctx, sessionID, engine); err != nil {
		return false, fmt.Errorf("failed to save session: %w", err)
	}

	return true, nil
}

func (that *gameService) SetPersonality(ctx context.Context, sessionID string, randomnessFactor float64) (bool, error) {
	engine, err := that.sessions.GetByID(ctx, sessionID)

	if errors.Is(err, apperror.ErrSessionNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to get session: %w", err)
	}

	if !engine.SetPersonality(randomnessFactor) {
		return false, nil
	}

	if err = that.sessions.Save(ctx, sessionID, engine); err != nil {
		return false, fmt.Errorf("failed to save session: %w", err)
	}

	return true, nil
}

func (that *gameService) GetState(ctx context.Context, sessionID string) (*tictactoe.Snapshot, error) {
	engine, err := that.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return engine.State(), nil
}
