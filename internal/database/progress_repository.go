package database

import (
	"fmt"

	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
)

// ProgressRepository handles database operations for per-user review progress.
// It is the durable backing of the review engine's progress store.
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

type progressRow struct {
	UserKey      string     `db:"user_key"`
	CardKey      string     `db:"card_key"`
	LastReviewed models.Day `db:"last_reviewed"`
	NextDue      models.Day `db:"next_due"`
	TimesKnown   int        `db:"times_known"`
	CorrectToday int        `db:"correct_today"`
}

// GetStore returns the full progress map for one user. A user with no
// recorded reviews gets an empty map.
func (r *ProgressRepository) GetStore(userKey string) (models.ProgressStore, error) {
	var rows []progressRow
	query := DB.Rebind(`
		SELECT user_key, card_key, last_reviewed, next_due, times_known, correct_today
		FROM review_progress
		WHERE user_key = ?
	`)
	if err := DB.Select(&rows, query, userKey); err != nil {
		return nil, fmt.Errorf("failed to get progress for user %q: %v", userKey, err)
	}

	store := make(models.ProgressStore, len(rows))
	for _, row := range rows {
		store[row.CardKey] = models.ProgressEntry{
			LastReviewed: row.LastReviewed,
			NextDue:      row.NextDue,
			TimesKnown:   row.TimesKnown,
			CorrectToday: row.CorrectToday,
		}
	}
	return store, nil
}

// SaveStore upserts every entry of the user's progress map in one
// transaction. Existing rows for keys not present in the map are left
// untouched; progress rows are never deleted.
func (r *ProgressRepository) SaveStore(userKey string, store models.ProgressStore) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	query := DB.Rebind(`
		INSERT INTO review_progress (
			user_key, card_key, last_reviewed, next_due, times_known, correct_today, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_key, card_key) DO UPDATE SET
			last_reviewed = excluded.last_reviewed,
			next_due = excluded.next_due,
			times_known = excluded.times_known,
			correct_today = excluded.correct_today,
			updated_at = CURRENT_TIMESTAMP
	`)
	for cardKey, entry := range store {
		_, err := tx.Exec(query, userKey, cardKey,
			entry.LastReviewed, entry.NextDue, entry.TimesKnown, entry.CorrectToday)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save progress for card %q: %v", cardKey, err)
		}
	}

	return tx.Commit()
}

// ListUsers returns every user key with at least one progress row
func (r *ProgressRepository) ListUsers() ([]string, error) {
	var users []string
	err := DB.Select(&users, "SELECT DISTINCT user_key FROM review_progress ORDER BY user_key")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %v", err)
	}
	return users, nil
}

// DailyStats returns how many cards the user reviewed on the given date and
// how many of those reviews succeeded.
func (r *ProgressRepository) DailyStats(userKey string, day models.Day) (models.DailyStats, error) {
	stats := models.DailyStats{Day: day}
	query := DB.Rebind(`
		SELECT COUNT(*) AS reviewed,
		       COALESCE(SUM(CASE WHEN correct_today > 0 THEN 1 ELSE 0 END), 0) AS correct
		FROM review_progress
		WHERE user_key = ? AND last_reviewed = ?
	`)
	if err := DB.Get(&stats, query, userKey, day); err != nil {
		return stats, fmt.Errorf("failed to get daily stats for user %q: %v", userKey, err)
	}
	return stats, nil
}
