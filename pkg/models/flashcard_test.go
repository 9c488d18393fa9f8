package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlashcardKey(t *testing.T) {
	withID := Flashcard{ID: "f1", Topic: "Constitución", Question: "¿Año?", Answer: "1978"}
	assert.Equal(t, "f1", withID.Key())

	// Deterministic across calls and independent of content fields other
	// than the id.
	assert.Equal(t, withID.Key(), withID.Key())
	differentAnswer := withID
	differentAnswer.Answer = "otra respuesta"
	assert.Equal(t, withID.Key(), differentAnswer.Key())

	withoutID := Flashcard{Topic: "Constitución", Question: "¿Año?"}
	assert.Equal(t, "¿Año?||Constitución", withoutID.Key())

	// The composite key is case-sensitive and exact.
	upper := Flashcard{Topic: "CONSTITUCIÓN", Question: "¿Año?"}
	assert.NotEqual(t, withoutID.Key(), upper.Key())
}
