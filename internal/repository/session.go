package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/tictactoe"
)

// sessionTTL bounds how long an abandoned game survives in storage.
const sessionTTL = 24 * time.Hour

type SessionRepository interface {
	Save(ctx context.Context, sessionID string, engine *tictactoe.Engine) error
	GetByID(ctx context.Context, sessionID string) (*tictactoe.Engine, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) Save(ctx context.Context, sessionID string, engine *tictactoe.Engine) error {
	engineJSON, err := json.Marshal(engine)
	if err != nil {
		return fmt.Errorf("could not marshal engine: %w", err)
	}

	sessionKey := "session:" + sessionID
	if err = that.client.Set(ctx, sessionKey, engineJSON, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, sessionID string) (*tictactoe.Engine, error) {
	sessionKey := "session:" + sessionID

	response, err := that.client.Get(ctx, sessionKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, sessionID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}

	engine := tictactoe.NewEngine()
	if err = json.Unmarshal([]byte(response), engine); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engine: %w", err)
	}

	return engine, nil
}

func (that *dbSession) DeleteByID(ctx context.Context, sessionID string) error {
	sessionKey := "session:" + sessionID

	if err := that.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session by ID: %w", err)
	}

	return nil
}
