package ai

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

// Opponent plays one side of the board. It composes the strategy selected by
// difficulty with a personality that may override the strategy's choice.
type Opponent struct {
	mark        string
	difficulty  Difficulty
	strategy    Strategy
	personality *Personality
	rng         *rand.Rand
}

// NewOpponent builds an opponent for mark. The random source drives the easy
// and medium strategies and the personality, so tests can seed it.
func NewOpponent(mark string, difficulty Difficulty, randomnessFactor float64, rng *rand.Rand) *Opponent {
	return &Opponent{
		mark:        mark,
		difficulty:  difficulty,
		strategy:    newStrategy(difficulty, rng),
		personality: NewPersonality(randomnessFactor, rng),
		rng:         rng,
	}
}

func (that *Opponent) Mark() string {
	return that.mark
}

func (that *Opponent) Difficulty() Difficulty {
	return that.difficulty
}

func (that *Opponent) RandomnessFactor() float64 {
	return that.personality.RandomnessFactor()
}

// MakeMove asks the strategy for its move and gives the personality a chance
// to substitute it. Returns nil when the board is full.
func (that *Opponent) MakeMove(board *entity.Board) *entity.Move {
	suggested := that.strategy.FindBestMove(board, that.mark)
	if suggested == nil {
		return nil
	}

	if that.personality.ShouldPerturb() {
		adjusted := that.personality.Adjust(*suggested, board)
		return &adjusted
	}

	return suggested
}

// SetDifficulty rebuilds the strategy and keeps the personality.
func (that *Opponent) SetDifficulty(difficulty Difficulty) {
	that.difficulty = difficulty
	that.strategy = newStrategy(difficulty, that.rng)
}

// SetPersonality rebuilds the personality and keeps the strategy.
func (that *Opponent) SetPersonality(randomnessFactor float64) {
	that.personality = NewPersonality(randomnessFactor, that.rng)
}
