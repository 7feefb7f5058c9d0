package entity

// Preference stores the game settings a user last played with.
type Preference struct {
	UserID              string  `json:"user_id"`
	PreferredDifficulty string  `json:"preferred_difficulty"`
	PreferredMark       string  `json:"preferred_mark"`
	RandomnessFactor    float64 `json:"randomness_factor"`
}

// DefaultPreference returns the settings used before the user has saved any.
func DefaultPreference(userID string) *Preference {
	return &Preference{
		UserID:              userID,
		PreferredDifficulty: "medium",
		PreferredMark:       PlayerX,
		RandomnessFactor:    0.1,
	}
}
