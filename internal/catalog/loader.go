package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ChemaTorresGarvia/fichas-backend/internal/database"
	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
	"github.com/google/uuid"
)

// RawFicha mirrors one row of the bundled dataset, which uses the Spanish
// field names of the platform's export format.
type RawFicha struct {
	ID         string `json:"id"`
	Tema       string `json:"tema"`
	Dificultad string `json:"dificultad"`
	Pregunta   string `json:"pregunta"`
	Respuesta  string `json:"respuesta"`
}

// Normalize converts raw rows into catalog flashcards: fields are trimmed,
// rows without question text are dropped, difficulty defaults to "media"
// and rows lacking an id get a generated one so their key stays stable.
func Normalize(rows []RawFicha) []models.Flashcard {
	out := make([]models.Flashcard, 0, len(rows))
	for _, r := range rows {
		question := strings.TrimSpace(r.Pregunta)
		if question == "" {
			continue // indispensable
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = uuid.NewString()
		}
		difficulty := strings.TrimSpace(r.Dificultad)
		if difficulty == "" {
			difficulty = "media"
		}
		out = append(out, models.Flashcard{
			ID:         id,
			Topic:      strings.TrimSpace(r.Tema),
			Difficulty: difficulty,
			Question:   question,
			Answer:     r.Respuesta,
		})
	}
	return out
}

// Load reads and normalizes the bundled dataset at path.
func Load(path string) ([]models.Flashcard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %v", err)
	}
	var rows []RawFicha
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %v", err)
	}
	return Normalize(rows), nil
}

// Seed loads the bundled dataset into the catalog table when it is empty.
// It returns the number of flashcards inserted; 0 means the catalog was
// already populated or the dataset was empty.
func Seed(repo *database.FlashcardRepository, path string) (int, error) {
	count, err := repo.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	cards, err := Load(path)
	if err != nil {
		return 0, err
	}
	if len(cards) == 0 {
		return 0, nil
	}
	if err := repo.BulkInsert(cards); err != nil {
		return 0, err
	}
	return len(cards), nil
}
