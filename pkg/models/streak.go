package models

// Streak tracks a user's run of consecutive study days.
type Streak struct {
	UserKey      string `json:"user_key" db:"user_key"`
	Current      int    `json:"current" db:"current"`
	Record       int    `json:"record" db:"record"`
	LastActivity Day    `json:"last_activity" db:"last_activity"`
}
