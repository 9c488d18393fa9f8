package database

import (
	"database/sql"
	"fmt"

	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
)

// StreakRepository handles database operations for study streaks
type StreakRepository struct{}

// NewStreakRepository creates a new repository instance
func NewStreakRepository() *StreakRepository {
	return &StreakRepository{}
}

// Get returns the user's streak, or a zeroed streak if none is recorded yet
func (r *StreakRepository) Get(userKey string) (models.Streak, error) {
	var streak models.Streak
	query := DB.Rebind("SELECT user_key, current, record, last_activity FROM streaks WHERE user_key = ?")
	err := DB.Get(&streak, query, userKey)
	if err == sql.ErrNoRows {
		return models.Streak{UserKey: userKey}, nil
	}
	if err != nil {
		return models.Streak{}, fmt.Errorf("failed to get streak for user %q: %v", userKey, err)
	}
	return streak, nil
}

// Save upserts the user's streak
func (r *StreakRepository) Save(streak models.Streak) error {
	query := DB.Rebind(`
		INSERT INTO streaks (user_key, current, record, last_activity)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_key) DO UPDATE SET
			current = excluded.current,
			record = excluded.record,
			last_activity = excluded.last_activity
	`)
	_, err := DB.Exec(query, streak.UserKey, streak.Current, streak.Record, streak.LastActivity)
	if err != nil {
		return fmt.Errorf("failed to save streak for user %q: %v", streak.UserKey, err)
	}
	return nil
}
