package models

// ProgressEntry tracks one user's review history for one flashcard.
type ProgressEntry struct {
	// LastReviewed is the date of the most recent review, absent if the
	// card has never been reviewed.
	LastReviewed Day `json:"last_reviewed" db:"last_reviewed"`
	// NextDue is the date on or after which the card becomes eligible
	// again. Absent means eligible immediately.
	NextDue Day `json:"next_due" db:"next_due"`
	// TimesKnown counts consecutive "recalled" outcomes. It indexes into
	// the review interval sequence and resets to zero on any failure.
	TimesKnown int `json:"times_known" db:"times_known"`
	// CorrectToday records whether today's review (if any) succeeded. It
	// feeds the daily-statistics view, not the scheduling logic.
	CorrectToday int `json:"correct_today" db:"correct_today"`
}

// ProgressStore maps flashcard keys to progress entries for a single user.
// Entries are created lazily on first review and overwritten, never deleted.
type ProgressStore map[string]ProgressEntry
