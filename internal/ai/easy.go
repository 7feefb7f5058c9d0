package ai

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

// easyStrategy plays a uniformly random empty cell.
type easyStrategy struct {
	rng *rand.Rand
}

func (that *easyStrategy) FindBestMove(board *entity.Board, _ string) *entity.Move {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return nil
	}

	move := cells[that.rng.Intn(len(cells))]
	return &move
}
