package streak

import (
	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
)

// Repository is the persistence boundary for streaks
type Repository interface {
	Get(userKey string) (models.Streak, error)
	Save(streak models.Streak) error
}

// Tracker maintains each user's run of consecutive study days. Any recorded
// review outcome counts as activity for the day.
type Tracker struct {
	repo Repository
}

// NewTracker creates a tracker backed by the given repository
func NewTracker(repo Repository) *Tracker {
	return &Tracker{repo: repo}
}

// RegisterActivity counts today as a study day. A second call on the same
// day is a no-op; activity on the day after the last one extends the run;
// any gap restarts it at 1. The record run is raised when surpassed.
func (t *Tracker) RegisterActivity(userKey string, today models.Day) (models.Streak, error) {
	row, err := t.repo.Get(userKey)
	if err != nil {
		return models.Streak{UserKey: userKey}, err
	}
	row.UserKey = userKey

	if !row.LastActivity.IsZero() && row.LastActivity.Equal(today) {
		return row, nil
	}

	switch {
	case row.LastActivity.IsZero():
		row.Current = 1
	case row.LastActivity.AddDays(1).Equal(today):
		row.Current++
	default:
		row.Current = 1
	}
	if row.Current > row.Record {
		row.Record = row.Current
	}
	row.LastActivity = today

	if err := t.repo.Save(row); err != nil {
		return row, err
	}
	return row, nil
}

// Get returns the user's current streak
func (t *Tracker) Get(userKey string) (models.Streak, error) {
	return t.repo.Get(userKey)
}
