package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySessions keeps serialized engines in a map, standing in for the
// Redis repository.
type memorySessions struct {
	store map[string][]byte
}

func newMemorySessions() *memorySessions {
	return &memorySessions{store: make(map[string][]byte)}
}

func (that *memorySessions) Save(_ context.Context, sessionID string, engine *tictactoe.Engine) error {
	data, err := json.Marshal(engine)
	if err != nil {
		return err
	}
	that.store[sessionID] = data
	return nil
}

func (that *memorySessions) GetByID(_ context.Context, sessionID string) (*tictactoe.Engine, error) {
	data, ok := that.store[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, sessionID)
	}

	engine := tictactoe.NewEngine()
	if err := json.Unmarshal(data, engine); err != nil {
		return nil, err
	}
	return engine, nil
}

func (that *memorySessions) DeleteByID(_ context.Context, sessionID string) error {
	delete(that.store, sessionID)
	return nil
}

func newTestGameService() (GameService, *memorySessions) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	sessions := newMemorySessions()
	return NewGameService(logger, sessions), sessions
}

func TestGameService_StartNewGame(t *testing.T) {
	t.Run("Starts and persists a session", func(t *testing.T) {
		ctx := context.Background()
		games, sessions := newTestGameService()

		// When: starting a new game
		snapshot, err := games.StartNewGame(ctx, "session-1", entity.PlayerX, "medium")

		// Then: the snapshot is live and the session stored
		require.NoError(t, err)
		assert.Equal(t, tictactoe.StatusInProgress, snapshot.GameStatus)
		assert.Contains(t, sessions.store, "session-1")
	})

	t.Run("Propagates an invalid mark", func(t *testing.T) {
		ctx := context.Background()
		games, sessions := newTestGameService()

		_, err := games.StartNewGame(ctx, "session-1", "Q", "medium")

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
		assert.Empty(t, sessions.store)
	})
}

func TestGameService_PlayerMove(t *testing.T) {
	t.Run("Applies a move against the stored session", func(t *testing.T) {
		// Given: a started session
		ctx := context.Background()
		games, _ := newTestGameService()
		_, err := games.StartNewGame(ctx, "session-1", entity.PlayerX, "hard")
		require.NoError(t, err)

		// When: the player takes the center
		snapshot, err := games.PlayerMove(ctx, "session-1", 1, 1)

		// Then: the move and the AI reply show up
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, snapshot.Board[1][1])
		require.NotNil(t, snapshot.AIMove)

		// And: the reply is persisted for the next request
		state, err := games.GetState(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, snapshot.Board, state.Board)
	})

	t.Run("Fails for an unknown session", func(t *testing.T) {
		ctx := context.Background()
		games, _ := newTestGameService()

		_, err := games.PlayerMove(ctx, "missing", 0, 0)

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Propagates a rejected move without saving", func(t *testing.T) {
		// Given: a started session
		ctx := context.Background()
		games, sessions := newTestGameService()
		_, err := games.StartNewGame(ctx, "session-1", entity.PlayerX, "easy")
		require.NoError(t, err)
		stored := append([]byte(nil), sessions.store["session-1"]...)

		// When: the player moves out of bounds
		_, err = games.PlayerMove(ctx, "session-1", 5, 5)

		// Then: the error surfaces and the stored session is untouched
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
		assert.Equal(t, stored, sessions.store["session-1"])
	})
}

func TestGameService_ChangeDifficulty(t *testing.T) {
	t.Run("Changes an active session", func(t *testing.T) {
		ctx := context.Background()
		games, _ := newTestGameService()
		_, err := games.StartNewGame(ctx, "session-1", entity.PlayerX, "easy")
		require.NoError(t, err)

		changed, err := games.ChangeDifficulty(ctx, "session-1", "hard")

		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("Returns false for an unknown session", func(t *testing.T) {
		ctx := context.Background()
		games, _ := newTestGameService()

		changed, err := games.ChangeDifficulty(ctx, "missing", "hard")

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("Propagates an unknown difficulty", func(t *testing.T) {
		ctx := context.Background()
		games, _ := newTestGameService()
		_, err := games.StartNewGame(ctx, "session-1", entity.PlayerX, "easy")
		require.NoError(t, err)

		_, err = games.ChangeDifficulty(ctx, "session-1", "impossible")

		require.ErrorIs(t, err, apperror.ErrInvalidDifficulty)
	})
}

func TestGameService_SetPersonality(t *testing.T) {
	t.Run("Updates an active session", func(t *testing.T) {
		ctx := context.Background()
		games, _ := newTestGameService()
		_, err := games.StartNewGame(ctx, "session-1", entity.PlayerX, "easy")
		require.NoError(t, err)

		changed, err := games.SetPersonality(ctx, "session-1", 0.7)

		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("Returns false for an unknown session", func(t *testing.T) {
		ctx := context.Background()
		games, _ := newTestGameService()

		changed, err := games.SetPersonality(ctx, "missing", 0.7)

		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestGameService_GetState(t *testing.T) {
	t.Run("Fails for an unknown session", func(t *testing.T) {
		ctx := context.Background()
		games, _ := newTestGameService()

		_, err := games.GetState(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
