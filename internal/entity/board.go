package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

const boardSize = 3

// OppositeMark returns the mark of the other player.
func OppositeMark(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Move is a position on the board. Moves are value objects: two moves are
// equal when both coordinates match.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Validate - checks that both coordinates are on the board.
func (that Move) Validate() error {
	if that.X < 0 || that.X >= boardSize || that.Y < 0 || that.Y >= boardSize {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, that.X, that.Y)
	}
	return nil
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.X, that.Y)
}

// Board is the 3x3 grid of marks. Cells hold PlayerX, PlayerO or EmptyCell.
type Board struct {
	Grid [boardSize][boardSize]string `json:"grid"`
}

func NewBoard() *Board {
	return &Board{}
}

// EmptyCells returns every empty position in row-major order (row 0..2, then
// col 0..2). The strategies iterate this order, so it decides tie-breaks.
func (that *Board) EmptyCells() []Move {
	cells := make([]Move, 0, boardSize*boardSize)
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			if that.Grid[x][y] == EmptyCell {
				cells = append(cells, Move{X: x, Y: y})
			}
		}
	}
	return cells
}

// IsEmpty reports whether the cell at move is empty.
func (that *Board) IsEmpty(move Move) (bool, error) {
	if err := move.Validate(); err != nil {
		return false, err
	}
	return that.Grid[move.X][move.Y] == EmptyCell, nil
}

// Place puts a mark on the board.
func (that *Board) Place(move Move, mark string) error {
	if err := move.Validate(); err != nil {
		return err
	}

	if that.Grid[move.X][move.Y] != EmptyCell {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, move)
	}

	that.Grid[move.X][move.Y] = mark
	return nil
}

// Clear resets a cell to empty. Together with Place it gives the search a
// reversible mutation pair, so deep search never copies the board. Callers
// are responsible for pairing it with the Place they are undoing.
func (that *Board) Clear(move Move) error {
	if err := move.Validate(); err != nil {
		return err
	}

	that.Grid[move.X][move.Y] = EmptyCell
	return nil
}

// CheckWin reports whether mark holds a full row, column or diagonal.
func (that *Board) CheckWin(mark string) bool {
	for i := 0; i < boardSize; i++ {
		if that.Grid[i][0] == mark && that.Grid[i][1] == mark && that.Grid[i][2] == mark {
			return true
		}
		if that.Grid[0][i] == mark && that.Grid[1][i] == mark && that.Grid[2][i] == mark {
			return true
		}
	}

	if that.Grid[0][0] == mark && that.Grid[1][1] == mark && that.Grid[2][2] == mark {
		return true
	}

	return that.Grid[0][2] == mark && that.Grid[1][1] == mark && that.Grid[2][0] == mark
}

// CheckDraw reports whether no empty cell remains. Callers must check
// CheckWin first: a full board with a completed line is a win, not a draw.
func (that *Board) CheckDraw() bool {
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			if that.Grid[x][y] == EmptyCell {
				return false
			}
		}
	}
	return true
}

// WinningLine returns the three positions of the first completed line in the
// fixed scan order rows, columns, falling diagonal, rising diagonal, or nil
// when no line is complete.
func (that *Board) WinningLine() []Move {
	for row := 0; row < boardSize; row++ {
		if that.Grid[row][0] != EmptyCell && that.Grid[row][0] == that.Grid[row][1] && that.Grid[row][1] == that.Grid[row][2] {
			return []Move{{X: row, Y: 0}, {X: row, Y: 1}, {X: row, Y: 2}}
		}
	}

	for col := 0; col < boardSize; col++ {
		if that.Grid[0][col] != EmptyCell && that.Grid[0][col] == that.Grid[1][col] && that.Grid[1][col] == that.Grid[2][col] {
			return []Move{{X: 0, Y: col}, {X: 1, Y: col}, {X: 2, Y: col}}
		}
	}

	if that.Grid[0][0] != EmptyCell && that.Grid[0][0] == that.Grid[1][1] && that.Grid[1][1] == that.Grid[2][2] {
		return []Move{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	}

	if that.Grid[0][2] != EmptyCell && that.Grid[0][2] == that.Grid[1][1] && that.Grid[1][1] == that.Grid[2][0] {
		return []Move{{X: 0, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	}

	return nil
}
