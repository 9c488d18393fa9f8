package database

import (
	"fmt"

	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
)

// FlashcardRepository handles database operations for the flashcard catalog
type FlashcardRepository struct{}

// NewFlashcardRepository creates a new repository instance
func NewFlashcardRepository() *FlashcardRepository {
	return &FlashcardRepository{}
}

// GetAll returns the full catalog in its original order
func (r *FlashcardRepository) GetAll() ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := DB.Select(&cards, "SELECT id, topic, difficulty, question, answer FROM flashcards ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcards: %v", err)
	}
	return cards, nil
}

// Count returns the number of flashcards in the catalog
func (r *FlashcardRepository) Count() (int, error) {
	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM flashcards"); err != nil {
		return 0, fmt.Errorf("failed to count flashcards: %v", err)
	}
	return count, nil
}

// BulkInsert stores a batch of flashcards, preserving their order
func (r *FlashcardRepository) BulkInsert(cards []models.Flashcard) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	query := DB.Rebind(`
		INSERT INTO flashcards (id, topic, difficulty, question, answer, position)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			topic = excluded.topic,
			difficulty = excluded.difficulty,
			question = excluded.question,
			answer = excluded.answer,
			position = excluded.position
	`)
	for i, card := range cards {
		if _, err := tx.Exec(query, card.ID, card.Topic, card.Difficulty, card.Question, card.Answer, i); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert flashcard %q: %v", card.ID, err)
		}
	}

	return tx.Commit()
}

// ListTopics returns the distinct topics present in the catalog
func (r *FlashcardRepository) ListTopics() ([]string, error) {
	var topics []string
	err := DB.Select(&topics, "SELECT DISTINCT topic FROM flashcards WHERE topic <> '' ORDER BY topic")
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %v", err)
	}
	return topics, nil
}
