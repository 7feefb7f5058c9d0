package tictactoe

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/ai"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusPlayerWin  = "player_win"
	StatusAIWin      = "ai_win"
	StatusDraw       = "draw"
)

const defaultRandomnessFactor = 0.1

// Snapshot is the externally visible state of a session after an operation.
// AIMove is only set when the AI moved during the call that produced it.
type Snapshot struct {
	Board         [3][3]string  `json:"board"`
	CurrentPlayer string        `json:"current_player"`
	PlayerMark    string        `json:"player_mark"`
	AIMark        string        `json:"ai_mark"`
	GameStatus    string        `json:"game_status"`
	WinningLine   []entity.Move `json:"winning_line"`
	AIMove        *entity.Move  `json:"ai_move"`
}

// Engine drives one game session between the human player and the AI
// opponent. It owns its board and opponent exclusively; nothing is shared
// between sessions. Operations validate first and mutate only on success,
// and a terminal status is never left once reached.
type Engine struct {
	board         *entity.Board
	currentPlayer string
	playerMark    string
	aiMark        string
	status        string
	opponent      *ai.Opponent
	rng           *rand.Rand
}

func NewEngine() *Engine {
	return NewEngineWithRand(rand.New(rand.NewSource(time.Now().UnixNano()))) //nolint: gosec // game moves, not secrets
}

// NewEngineWithRand lets tests supply a seeded random source.
func NewEngineWithRand(rng *rand.Rand) *Engine {
	return &Engine{
		status: StatusNotStarted,
		rng:    rng,
	}
}

// StartNewGame resets the session with a fresh board and opponent. X always
// moves first, so when the AI holds X it replies before this returns.
func (that *Engine) StartNewGame(playerMark, difficulty string) (*Snapshot, error) {
	if playerMark != entity.PlayerX && playerMark != entity.PlayerO {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, playerMark)
	}

	parsedDifficulty, err := ai.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}

	that.board = entity.NewBoard()
	that.playerMark = playerMark
	that.aiMark = entity.OppositeMark(playerMark)
	that.opponent = ai.NewOpponent(that.aiMark, parsedDifficulty, defaultRandomnessFactor, that.rng)
	that.currentPlayer = entity.PlayerX
	that.status = StatusInProgress

	var aiMove *entity.Move
	if that.aiMark == entity.PlayerX {
		aiMove = that.processAIMove()
	}

	return that.snapshot(aiMove), nil
}

// PlayerMove applies the human move at (x, y) and, while the game is still
// in progress afterwards, exactly one AI reply.
func (that *Engine) PlayerMove(x, y int) (*Snapshot, error) {
	move := entity.Move{X: x, Y: y}
	if err := move.Validate(); err != nil {
		return nil, err
	}

	if that.status != StatusInProgress {
		return nil, fmt.Errorf("%w: status is %s", apperror.ErrGameNotInProgress, that.status)
	}

	if that.currentPlayer != that.playerMark {
		return nil, apperror.ErrNotYourTurn
	}

	if err := that.board.Place(move, that.playerMark); err != nil {
		return nil, err
	}

	that.updateStatusAfterMove(that.playerMark)

	var aiMove *entity.Move
	if that.status == StatusInProgress {
		aiMove = that.processAIMove()
	}

	return that.snapshot(aiMove), nil
}

// ChangeDifficulty swaps the opponent's strategy without touching the board.
// Returns false when no session is active.
func (that *Engine) ChangeDifficulty(difficulty string) (bool, error) {
	parsedDifficulty, err := ai.ParseDifficulty(difficulty)
	if err != nil {
		return false, err
	}

	if that.opponent == nil {
		return false, nil
	}

	that.opponent.SetDifficulty(parsedDifficulty)
	return true, nil
}

// SetPersonality replaces the opponent's personality without touching the
// board. Returns false when no session is active.
func (that *Engine) SetPersonality(randomnessFactor float64) bool {
	if that.opponent == nil {
		return false
	}

	that.opponent.SetPersonality(randomnessFactor)
	return true
}

// State returns the current session state without making any move.
func (that *Engine) State() *Snapshot {
	return that.snapshot(nil)
}

func (that *Engine) processAIMove() *entity.Move {
	if that.status != StatusInProgress || that.currentPlayer != that.aiMark {
		return nil
	}

	move := that.opponent.MakeMove(that.board)
	if move == nil {
		return nil
	}

	if err := that.board.Place(*move, that.aiMark); err != nil {
		return nil
	}

	that.updateStatusAfterMove(that.aiMark)

	return move
}

// updateStatusAfterMove re-evaluates the terminal conditions for the mark
// that just moved. The win check runs before the draw check.
func (that *Engine) updateStatusAfterMove(mark string) {
	switch {
	case that.board.CheckWin(mark):
		if mark == that.playerMark {
			that.status = StatusPlayerWin
		} else {
			that.status = StatusAIWin
		}
	case that.board.CheckDraw():
		that.status = StatusDraw
	default:
		that.currentPlayer = entity.OppositeMark(that.currentPlayer)
	}
}

func (that *Engine) snapshot(aiMove *entity.Move) *Snapshot {
	snap := &Snapshot{
		CurrentPlayer: that.currentPlayer,
		PlayerMark:    that.playerMark,
		AIMark:        that.aiMark,
		GameStatus:    that.status,
		AIMove:        aiMove,
	}

	if that.board != nil {
		snap.Board = that.board.Grid
		snap.WinningLine = that.board.WinningLine()
	}

	return snap
}

// engineState is the serialized form kept in session storage. The opponent
// is captured by its configuration and rebuilt on load.
type engineState struct {
	Board            *entity.Board `json:"board"`
	CurrentPlayer    string        `json:"current_player"`
	PlayerMark       string        `json:"player_mark"`
	AIMark           string        `json:"ai_mark"`
	Status           string        `json:"status"`
	Difficulty       ai.Difficulty `json:"difficulty,omitempty"`
	RandomnessFactor float64       `json:"randomness_factor"`
}

func (that *Engine) MarshalJSON() ([]byte, error) {
	state := engineState{
		Board:         that.board,
		CurrentPlayer: that.currentPlayer,
		PlayerMark:    that.playerMark,
		AIMark:        that.aiMark,
		Status:        that.status,
	}

	if that.opponent != nil {
		state.Difficulty = that.opponent.Difficulty()
		state.RandomnessFactor = that.opponent.RandomnessFactor()
	}

	return json.Marshal(state)
}

func (that *Engine) UnmarshalJSON(data []byte) error {
	var state engineState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to unmarshal engine state: %w", err)
	}

	that.board = state.Board
	that.currentPlayer = state.CurrentPlayer
	that.playerMark = state.PlayerMark
	that.aiMark = state.AIMark
	that.status = state.Status

	if that.rng == nil {
		that.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // game moves, not secrets
	}

	if state.Difficulty != "" {
		that.opponent = ai.NewOpponent(state.AIMark, state.Difficulty, state.RandomnessFactor, that.rng)
	}

	return nil
}
