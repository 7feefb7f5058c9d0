package ai

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

// movePreferences weights the board positions when the personality picks a
// substitute move: center over corners over edges.
var movePreferences = map[entity.Move]float64{
	{X: 0, Y: 0}: 1.2,
	{X: 0, Y: 2}: 1.2,
	{X: 2, Y: 0}: 1.2,
	{X: 2, Y: 2}: 1.2,
	{X: 1, Y: 1}: 1.5,
	{X: 0, Y: 1}: 1.0,
	{X: 1, Y: 0}: 1.0,
	{X: 1, Y: 2}: 1.0,
	{X: 2, Y: 1}: 1.0,
}

const defaultPreferenceWeight = 1.0

// Personality occasionally substitutes a strategy's chosen move with a
// weighted alternative, so the opponent feels less mechanical.
type Personality struct {
	randomnessFactor float64
	rng              *rand.Rand
}

// NewPersonality builds a personality; the factor is clamped to [0, 1].
func NewPersonality(randomnessFactor float64, rng *rand.Rand) *Personality {
	if randomnessFactor < 0 {
		randomnessFactor = 0
	}
	if randomnessFactor > 1 {
		randomnessFactor = 1
	}

	return &Personality{
		randomnessFactor: randomnessFactor,
		rng:              rng,
	}
}

func (that *Personality) RandomnessFactor() float64 {
	return that.randomnessFactor
}

// ShouldPerturb is a Bernoulli trial with probability randomnessFactor.
func (that *Personality) ShouldPerturb() bool {
	return that.rng.Float64() < that.randomnessFactor
}

// Adjust draws a substitute from the empty cells excluding suggestedMove,
// each weighted by its position preference. With fewer than two empty cells
// there is nothing to substitute and the suggestion comes back unchanged.
func (that *Personality) Adjust(suggestedMove entity.Move, board *entity.Board) entity.Move {
	emptyCells := board.EmptyCells()
	if len(emptyCells) < 2 {
		return suggestedMove
	}

	candidates := make([]entity.Move, 0, len(emptyCells))
	for _, move := range emptyCells {
		if move != suggestedMove {
			candidates = append(candidates, move)
		}
	}

	if len(candidates) == 0 {
		return suggestedMove
	}

	totalWeight := 0.0
	for _, move := range candidates {
		totalWeight += preferenceWeight(move)
	}

	draw := that.rng.Float64() * totalWeight
	accumulated := 0.0
	for _, move := range candidates {
		accumulated += preferenceWeight(move)
		if accumulated >= draw {
			return move
		}
	}

	// rounding slipped past the cumulative walk
	return candidates[that.rng.Intn(len(candidates))]
}

func preferenceWeight(move entity.Move) float64 {
	if weight, ok := movePreferences[move]; ok {
		return weight
	}
	return defaultPreferenceWeight
}
