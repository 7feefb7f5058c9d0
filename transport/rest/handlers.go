package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/tictactoe"
)

const (
	sessionCookieName = "game_session"
	userCookieName    = "user_id"

	cookieLifetime = 24 * time.Hour
)

type gameService interface {
	StartNewGame(ctx context.Context, sessionID, playerMark, difficulty string) (*tictactoe.Snapshot, error)
	PlayerMove(ctx context.Context, sessionID string, x, y int) (*tictactoe.Snapshot, error)
	ChangeDifficulty(ctx context.Context, sessionID, difficulty string) (bool, error)
	SetPersonality(ctx context.Context, sessionID string, randomnessFactor float64) (bool, error)
	GetState(ctx context.Context, sessionID string) (*tictactoe.Snapshot, error)
}

type preferenceService interface {
	LoadOrDefault(ctx context.Context, userID string) (*entity.Preference, error)
	Save(ctx context.Context, preference *entity.Preference) error
}

type handlers struct {
	logger      *slog.Logger
	games       gameService
	preferences preferenceService
}

func newHandlers(logger *slog.Logger, games gameService, preferences preferenceService) *handlers {
	return &handlers{
		logger:      logger.With("component", "rest handlers"),
		games:       games,
		preferences: preferences,
	}
}

type newGameRequest struct {
	PlayerMark string `json:"player_mark"`
	Difficulty string `json:"difficulty"`
}

type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type personalityRequest struct {
	RandomnessFactor float64 `json:"randomness_factor"`
}

type gameStateResponse struct {
	Success   bool                `json:"success"`
	GameState *tictactoe.Snapshot `json:"game_state,omitempty"`
	Error     string              `json:"error,omitempty"`
}

type changedResponse struct {
	Success bool   `json:"success"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := that.ensureSession(w, r)

	var request newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	preference := that.applyPreferenceDefaults(ctx, r, &request)

	snapshot, err := that.games.StartNewGame(ctx, sessionID, request.PlayerMark, request.Difficulty)
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	if preference != nil {
		preference.PreferredMark = request.PlayerMark
		preference.PreferredDifficulty = request.Difficulty
		if err = that.preferences.Save(ctx, preference); err != nil {
			that.logger.Error("failed to save preference", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, gameStateResponse{Success: true, GameState: snapshot})
}

func (that *handlers) PlayerMove(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := that.sessionID(r)
	if !ok {
		writeError(w, http.StatusNotFound, apperror.ErrSessionNotFound.Error())
		return
	}

	var request moveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := that.games.PlayerMove(r.Context(), sessionID, request.X, request.Y)
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameStateResponse{Success: true, GameState: snapshot})
}

func (that *handlers) ChangeDifficulty(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := that.sessionID(r)
	if !ok {
		writeJSON(w, http.StatusOK, changedResponse{Success: true, Changed: false})
		return
	}

	var request difficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	changed, err := that.games.ChangeDifficulty(r.Context(), sessionID, request.Difficulty)
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, changedResponse{Success: true, Changed: changed})
}

func (that *handlers) SetPersonality(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := that.sessionID(r)
	if !ok {
		writeJSON(w, http.StatusOK, changedResponse{Success: true, Changed: false})
		return
	}

	var request personalityRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	changed, err := that.games.SetPersonality(r.Context(), sessionID, request.RandomnessFactor)
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, changedResponse{Success: true, Changed: changed})
}

func (that *handlers) GameState(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := that.sessionID(r)
	if !ok {
		writeError(w, http.StatusNotFound, apperror.ErrSessionNotFound.Error())
		return
	}

	snapshot, err := that.games.GetState(r.Context(), sessionID)
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameStateResponse{Success: true, GameState: snapshot})
}

func (that *handlers) Preferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := that.userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "no user identity")
		return
	}

	preference, err := that.preferences.LoadOrDefault(r.Context(), userID)
	if err != nil {
		that.logger.Error("failed to load preference", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load preference")
		return
	}

	writeJSON(w, http.StatusOK, preference)
}

// applyPreferenceDefaults fills omitted new-game fields from the user's
// saved settings. Anonymous players fall back to the global defaults and
// nothing gets saved for them, so the returned preference is nil.
func (that *handlers) applyPreferenceDefaults(ctx context.Context, r *http.Request, request *newGameRequest) *entity.Preference {
	userID, ok := that.userID(r)
	if !ok {
		fallback := entity.DefaultPreference("")
		if request.PlayerMark == "" {
			request.PlayerMark = fallback.PreferredMark
		}
		if request.Difficulty == "" {
			request.Difficulty = fallback.PreferredDifficulty
		}
		return nil
	}

	preference, err := that.preferences.LoadOrDefault(ctx, userID)
	if err != nil {
		that.logger.Error("failed to load preference", "error", err)
		preference = entity.DefaultPreference(userID)
	}

	if request.PlayerMark == "" {
		request.PlayerMark = preference.PreferredMark
	}
	if request.Difficulty == "" {
		request.Difficulty = preference.PreferredDifficulty
	}

	return preference
}

// ensureSession returns the game session ID, issuing a cookie when the
// request has none.
func (that *handlers) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if sessionID, ok := that.sessionID(r); ok {
		return sessionID
	}

	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(cookieLifetime),
		Path:     "/",
		HttpOnly: true,
	})

	return sessionID
}

func (that *handlers) sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (that *handlers) userID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(userCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (that *handlers) writeGameError(w http.ResponseWriter, err error) {
	that.logger.Debug("game operation rejected", "error", err)
	writeError(w, statusFromError(err), err.Error())
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidDifficulty),
		errors.Is(err, apperror.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameNotInProgress),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, gameStateResponse{Success: false, Error: message})
}
