package models

// Flashcard represents a question/answer study unit with topic and
// difficulty metadata. Content fields are opaque to the review engine.
type Flashcard struct {
	ID         string `json:"id" db:"id"`
	Topic      string `json:"topic" db:"topic"`
	Difficulty string `json:"difficulty" db:"difficulty"`
	Question   string `json:"question" db:"question"`
	Answer     string `json:"answer" db:"answer"`
}

// Key returns the stable identifier used to join a flashcard to its progress
// entry: the explicit id when present, otherwise a composite of question and
// topic. Every place that needs a flashcard key must go through this function,
// or progress silently fails to attach after a catalog re-import.
func (f Flashcard) Key() string {
	if f.ID != "" {
		return f.ID
	}
	return f.Question + "||" + f.Topic
}
