package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

type preferenceRepo interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Preference, error)
	Save(ctx context.Context, preference *entity.Preference) error
}

// PreferenceService keeps each user's last played settings.
type PreferenceService interface {
	LoadOrDefault(ctx context.Context, userID string) (*entity.Preference, error)
	Save(ctx context.Context, preference *entity.Preference) error
}

type preferenceService struct {
	preferences preferenceRepo
}

func NewPreferenceService(preferences preferenceRepo) PreferenceService {
	return &preferenceService{
		preferences: preferences,
	}
}

// LoadOrDefault returns the user's saved settings, falling back to the
// defaults for users who never saved any.
func (that *preferenceService) LoadOrDefault(ctx context.Context, userID string) (*entity.Preference, error) {
	preference, err := that.preferences.GetByUserID(ctx, userID)

	if errors.Is(err, apperror.ErrPreferenceNotFound) {
		return entity.DefaultPreference(userID), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load preference: %w", err)
	}

	return preference, nil
}

func (that *preferenceService) Save(ctx context.Context, preference *entity.Preference) error {
	if err := that.preferences.Save(ctx, preference); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	return nil
}
