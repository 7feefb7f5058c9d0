package apperror

import "errors"

var (
	ErrInvalidMark       = errors.New("invalid player mark")
	ErrInvalidDifficulty = errors.New("invalid difficulty level")
	ErrOutOfBounds       = errors.New("cell coordinates out of bounds")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrNotYourTurn       = errors.New("it's not your turn")

	ErrSessionNotFound    = errors.New("game session not found")
	ErrPreferenceNotFound = errors.New("user preference not found")
)
