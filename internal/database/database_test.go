package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Connect("sqlite", ":memory:"))
	t.Cleanup(func() { Close() })
}

func day(t *testing.T, s string) models.Day {
	t.Helper()
	d, err := models.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestSchemaVersionStamped(t *testing.T) {
	setupTestDB(t)

	var version int
	require.NoError(t, DB.Get(&version, "SELECT version FROM schema_meta"))
	assert.Equal(t, SchemaVersion, version)
}

func TestFlashcardRepository(t *testing.T) {
	setupTestDB(t)
	repo := NewFlashcardRepository()

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	cards := []models.Flashcard{
		{ID: "f2", Topic: "UE", Difficulty: "baja", Question: "Q2", Answer: "A2"},
		{ID: "f1", Topic: "Constitución", Difficulty: "media", Question: "Q1", Answer: "A1"},
	}
	require.NoError(t, repo.BulkInsert(cards))

	got, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Catalog order, not id order.
	assert.Equal(t, "f2", got[0].ID)
	assert.Equal(t, "f1", got[1].ID)

	topics, err := repo.ListTopics()
	require.NoError(t, err)
	assert.Equal(t, []string{"Constitución", "UE"}, topics)

	// Re-inserting the same id updates in place.
	require.NoError(t, repo.BulkInsert([]models.Flashcard{
		{ID: "f1", Topic: "Constitución", Difficulty: "alta", Question: "Q1 bis", Answer: "A1"},
	}))
	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestProgressRepositoryRoundTrip(t *testing.T) {
	setupTestDB(t)
	repo := NewProgressRepository()

	store, err := repo.GetStore("ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, store)

	today := day(t, "2024-03-01")
	store = models.ProgressStore{
		"f1": {LastReviewed: today, NextDue: day(t, "2024-03-04"), TimesKnown: 1, CorrectToday: 1},
		"f2": {LastReviewed: today, NextDue: day(t, "2024-03-02")},
		"f3": {}, // everything absent
	}
	require.NoError(t, repo.SaveStore("ana@example.com", store))

	got, err := repo.GetStore("ana@example.com")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, store["f1"], got["f1"])
	assert.True(t, got["f3"].LastReviewed.IsZero())
	assert.True(t, got["f3"].NextDue.IsZero())

	// Upsert overwrites without duplicating rows.
	store["f1"] = models.ProgressEntry{LastReviewed: day(t, "2024-03-04"), NextDue: day(t, "2024-03-11"), TimesKnown: 2, CorrectToday: 2}
	require.NoError(t, repo.SaveStore("ana@example.com", store))
	got, err = repo.GetStore("ana@example.com")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 2, got["f1"].TimesKnown)

	// Stores are scoped per user.
	other, err := repo.GetStore("luis@example.com")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestProgressRepositoryListUsersAndDailyStats(t *testing.T) {
	setupTestDB(t)
	repo := NewProgressRepository()

	today := day(t, "2024-03-01")
	require.NoError(t, repo.SaveStore("ana", models.ProgressStore{
		"f1": {LastReviewed: today, CorrectToday: 1},
		"f2": {LastReviewed: today, CorrectToday: 0},
		"f3": {LastReviewed: day(t, "2024-02-28"), CorrectToday: 1},
	}))
	require.NoError(t, repo.SaveStore("luis", models.ProgressStore{
		"f1": {LastReviewed: today, CorrectToday: 1},
	}))

	users, err := repo.ListUsers()
	require.NoError(t, err)
	assert.Equal(t, []string{"ana", "luis"}, users)

	stats, err := repo.DailyStats("ana", today)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Reviewed)
	assert.Equal(t, 1, stats.Correct)

	stats, err = repo.DailyStats("ana", day(t, "2024-03-02"))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Reviewed)
	assert.Equal(t, 0, stats.Correct)
}

func TestStreakRepository(t *testing.T) {
	setupTestDB(t)
	repo := NewStreakRepository()

	// Unknown user gets a zeroed streak, not an error.
	row, err := repo.Get("ana")
	require.NoError(t, err)
	assert.Equal(t, "ana", row.UserKey)
	assert.Equal(t, 0, row.Current)

	row = models.Streak{UserKey: "ana", Current: 2, Record: 5, LastActivity: day(t, "2024-03-01")}
	require.NoError(t, repo.Save(row))

	got, err := repo.Get("ana")
	require.NoError(t, err)
	assert.Equal(t, row, got)

	row.Current = 3
	row.LastActivity = day(t, "2024-03-02")
	require.NoError(t, repo.Save(row))
	got, err = repo.Get("ana")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Current)
	assert.Equal(t, 5, got.Record)
}
