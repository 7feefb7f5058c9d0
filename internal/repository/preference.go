package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Preference, error)
	Save(ctx context.Context, preference *entity.Preference) error
}

type dbPreference struct {
	conn *sql.DB
}

func NewPreferenceRepository(conn *sql.DB) PreferenceRepository {
	return &dbPreference{
		conn: conn,
	}
}

func (that *dbPreference) GetByUserID(ctx context.Context, userID string) (*entity.Preference, error) {
	query := `SELECT preferred_difficulty, preferred_mark, randomness_factor
		FROM user_preferences WHERE user_id = ?`

	preference := entity.Preference{UserID: userID}

	row := that.conn.QueryRowContext(ctx, query, userID)
	err := row.Scan(&preference.PreferredDifficulty, &preference.PreferredMark, &preference.RandomnessFactor)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPreferenceNotFound, userID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get preference by user ID: %w", err)
	}

	return &preference, nil
}

func (that *dbPreference) Save(ctx context.Context, preference *entity.Preference) error {
	query := `INSERT INTO user_preferences (user_id, preferred_difficulty, preferred_mark, randomness_factor)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			preferred_difficulty = excluded.preferred_difficulty,
			preferred_mark = excluded.preferred_mark,
			randomness_factor = excluded.randomness_factor`

	_, err := that.conn.ExecContext(ctx, query,
		preference.UserID, preference.PreferredDifficulty, preference.PreferredMark, preference.RandomnessFactor)
	if err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	return nil
}
