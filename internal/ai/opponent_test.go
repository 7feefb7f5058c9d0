package ai

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	t.Run("Accepts known levels case-insensitively", func(t *testing.T) {
		for value, want := range map[string]Difficulty{
			"easy":   DifficultyEasy,
			"Medium": DifficultyMedium,
			"HARD":   DifficultyHard,
		} {
			difficulty, err := ParseDifficulty(value)
			require.NoError(t, err)
			assert.Equal(t, want, difficulty)
		}
	})

	t.Run("Rejects unknown levels", func(t *testing.T) {
		_, err := ParseDifficulty("nightmare")

		require.ErrorIs(t, err, apperror.ErrInvalidDifficulty)
	})
}

func TestOpponent_MakeMove(t *testing.T) {
	t.Run("Returns the strategy's move when the personality stays quiet", func(t *testing.T) {
		// Given: a hard opponent with perturbation disabled
		board := entity.NewBoard()
		require.NoError(t, board.Place(entity.Move{X: 1, Y: 1}, entity.PlayerX))
		opponent := NewOpponent(entity.PlayerO, DifficultyHard, 0, rand.New(rand.NewSource(1))) //nolint: gosec // deterministic test

		// When: making a move
		move := opponent.MakeMove(board)

		// Then: the minimax corner reply comes through untouched
		require.NotNil(t, move)
		assert.Equal(t, entity.Move{X: 0, Y: 0}, *move)
	})

	t.Run("Substitutes the move when the personality always fires", func(t *testing.T) {
		// Given: a hard opponent with randomness factor 1
		board := entity.NewBoard()
		require.NoError(t, board.Place(entity.Move{X: 1, Y: 1}, entity.PlayerX))
		opponent := NewOpponent(entity.PlayerO, DifficultyHard, 1, rand.New(rand.NewSource(1))) //nolint: gosec // deterministic test

		// When / Then: the move always differs from the minimax choice
		for i := 0; i < 50; i++ {
			move := opponent.MakeMove(board)
			require.NotNil(t, move)
			assert.NotEqual(t, entity.Move{X: 0, Y: 0}, *move)
		}
	})

	t.Run("Returns nil on a full board", func(t *testing.T) {
		board := &entity.Board{Grid: [3][3]string{
			{entity.PlayerX, entity.PlayerO, entity.PlayerX},
			{entity.PlayerO, entity.PlayerX, entity.PlayerO},
			{entity.PlayerO, entity.PlayerX, entity.PlayerO},
		}}
		opponent := NewOpponent(entity.PlayerO, DifficultyEasy, 0, rand.New(rand.NewSource(1))) //nolint: gosec // deterministic test

		assert.Nil(t, opponent.MakeMove(board))
	})
}

func TestOpponent_SetDifficulty(t *testing.T) {
	// Given: an easy opponent with a tuned personality
	opponent := NewOpponent(entity.PlayerO, DifficultyEasy, 0.4, rand.New(rand.NewSource(1))) //nolint: gosec // deterministic test

	// When: switching to hard
	opponent.SetDifficulty(DifficultyHard)

	// Then: the difficulty changes and the personality survives
	assert.Equal(t, DifficultyHard, opponent.Difficulty())
	assert.InDelta(t, 0.4, opponent.RandomnessFactor(), 0)
}

func TestOpponent_SetPersonality(t *testing.T) {
	// Given: a hard opponent
	opponent := NewOpponent(entity.PlayerO, DifficultyHard, 0.1, rand.New(rand.NewSource(1))) //nolint: gosec // deterministic test

	// When: replacing the personality
	opponent.SetPersonality(0.8)

	// Then: the factor changes and the strategy survives
	assert.InDelta(t, 0.8, opponent.RandomnessFactor(), 0)
	assert.Equal(t, DifficultyHard, opponent.Difficulty())
}
