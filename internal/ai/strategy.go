package ai

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

// Difficulty selects one of the strategy tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty - validates a difficulty string from the outside world.
func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(value)); difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, value)
	}
}

// Strategy picks the next move for a mark on the current board.
// FindBestMove returns nil only when the board has no empty cell left;
// callers treat that as "no move possible", not as an error.
type Strategy interface {
	FindBestMove(board *entity.Board, mark string) *entity.Move
}

func newStrategy(difficulty Difficulty, rng *rand.Rand) Strategy {
	switch difficulty {
	case DifficultyEasy:
		return &easyStrategy{rng: rng}
	case DifficultyMedium:
		return &mediumStrategy{rng: rng}
	default:
		return &hardStrategy{}
	}
}
