package ai

import (
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

const (
	winScore = 10

	// wider than any reachable score, stands in for +-infinity
	scoreBound = 1000
)

// hardStrategy runs an exhaustive minimax search with alpha-beta pruning.
// Scores are depth-adjusted so quicker wins and later losses rank higher.
// From any position this strategy never does worse than a draw.
type hardStrategy struct{}

func (that *hardStrategy) FindBestMove(board *entity.Board, mark string) *entity.Move {
	opponentMark := entity.OppositeMark(mark)

	bestScore := -scoreBound
	var bestMove *entity.Move

	for _, move := range board.EmptyCells() {
		if err := board.Place(move, mark); err != nil {
			continue
		}

		score := minimax(board, 0, false, mark, opponentMark, -scoreBound, scoreBound)
		_ = board.Clear(move)

		// strictly greater, so the first move in enumeration order wins ties
		if score > bestScore {
			bestScore = score
			best := move
			bestMove = &best
		}
	}

	return bestMove
}

// minimax evaluates the position for aiMark, alternating maximizing and
// minimizing plies and pruning branches once beta <= alpha.
func minimax(board *entity.Board, depth int, isMaximizing bool, aiMark, opponentMark string, alpha, beta int) int {
	switch {
	case board.CheckWin(aiMark):
		return winScore - depth
	case board.CheckWin(opponentMark):
		return depth - winScore
	case board.CheckDraw():
		return 0
	}

	if isMaximizing {
		maxEval := -scoreBound
		for _, move := range board.EmptyCells() {
			_ = board.Place(move, aiMark)
			eval := minimax(board, depth+1, false, aiMark, opponentMark, alpha, beta)
			_ = board.Clear(move)

			if eval > maxEval {
				maxEval = eval
			}
			if eval > alpha {
				alpha = eval
			}
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := scoreBound
	for _, move := range board.EmptyCells() {
		_ = board.Place(move, opponentMark)
		eval := minimax(board, depth+1, true, aiMark, opponentMark, alpha, beta)
		_ = board.Clear(move)

		if eval < minEval {
			minEval = eval
		}
		if eval < beta {
			beta = eval
		}
		if beta <= alpha {
			break
		}
	}
	return minEval
}
