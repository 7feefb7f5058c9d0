package ai

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

// mediumStrategy looks one ply ahead: take an immediate win, otherwise block
// the opponent's immediate win, otherwise take the center, otherwise play a
// random empty cell.
type mediumStrategy struct {
	rng *rand.Rand
}

func (that *mediumStrategy) FindBestMove(board *entity.Board, mark string) *entity.Move {
	opponentMark := entity.OppositeMark(mark)

	if move := findWinningMove(board, mark); move != nil {
		return move
	}

	if move := findWinningMove(board, opponentMark); move != nil {
		return move
	}

	center := entity.Move{X: 1, Y: 1}
	if empty, err := board.IsEmpty(center); err == nil && empty {
		return &center
	}

	cells := board.EmptyCells()
	if len(cells) == 0 {
		return nil
	}

	move := cells[that.rng.Intn(len(cells))]
	return &move
}

// findWinningMove returns the first cell, in enumeration order, that would
// complete a line for mark. Each candidate is tried on the board and undone.
func findWinningMove(board *entity.Board, mark string) *entity.Move {
	for _, move := range board.EmptyCells() {
		if err := board.Place(move, mark); err != nil {
			continue
		}

		isWin := board.CheckWin(mark)
		_ = board.Clear(move)

		if isWin {
			winning := move
			return &winning
		}
	}

	return nil
}
