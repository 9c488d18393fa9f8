package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDropsRowsWithoutQuestion(t *testing.T) {
	rows := []RawFicha{
		{ID: "f1", Tema: "Constitución", Pregunta: "¿Año?", Respuesta: "1978"},
		{ID: "f2", Tema: "Constitución", Pregunta: "   "},
		{Tema: "UE"},
	}
	cards := Normalize(rows)
	require.Len(t, cards, 1)
	assert.Equal(t, "f1", cards[0].ID)
}

func TestNormalizeDefaultsAndGeneratedIDs(t *testing.T) {
	rows := []RawFicha{
		{Tema: "  UE  ", Pregunta: " ¿Sede del Parlamento? ", Respuesta: "Estrasburgo"},
	}
	cards := Normalize(rows)
	require.Len(t, cards, 1)
	assert.NotEmpty(t, cards[0].ID)
	assert.Equal(t, "UE", cards[0].Topic)
	assert.Equal(t, "media", cards[0].Difficulty)
	assert.Equal(t, "¿Sede del Parlamento?", cards[0].Question)
}

func TestNormalizePreservesOrder(t *testing.T) {
	rows := []RawFicha{
		{ID: "b", Pregunta: "QB"},
		{ID: "a", Pregunta: "QA"},
		{ID: "c", Pregunta: "QC"},
	}
	cards := Normalize(rows)
	require.Len(t, cards, 3)
	assert.Equal(t, "b", cards[0].ID)
	assert.Equal(t, "a", cards[1].ID)
	assert.Equal(t, "c", cards[2].ID)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fichas.json")
	payload := `[
		{"id": "f1", "tema": "Constitución", "dificultad": "baja", "pregunta": "¿Año?", "respuesta": "1978"},
		{"tema": "UE", "pregunta": ""}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	cards, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "f1", cards[0].ID)
	assert.Equal(t, "baja", cards[0].Difficulty)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fichas.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}
