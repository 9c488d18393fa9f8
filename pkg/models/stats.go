package models

// DailyStats summarizes a user's review activity for one calendar date,
// consumed by the "today's correct/total" widget.
type DailyStats struct {
	Day      Day `json:"day"`
	Reviewed int `json:"reviewed" db:"reviewed"`
	Correct  int `json:"correct" db:"correct"`
}
