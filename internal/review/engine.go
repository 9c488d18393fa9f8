package review

import (
	"log"

	"github.com/ChemaTorresGarvia/fichas-backend/internal/events"
	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
)

// IntervalSequence is the fixed ladder of day counts applied after
// consecutive successful recalls, indexed by the pre-increment count:
// the first success schedules 3 days out, the second 7, and so on. Once
// the count runs past the sequence it clamps at the last element, which
// settles into a 10/15 oscillation after the fourth success.
var IntervalSequence = []int{3, 7, 10, 15, 10, 15, 10, 15, 10, 10}

// intervalFor returns the scheduling interval in days for a card that has
// been recalled timesKnown times in a row so far.
func intervalFor(timesKnown int) int {
	if timesKnown < 0 {
		timesKnown = 0
	}
	if timesKnown >= len(IntervalSequence) {
		timesKnown = len(IntervalSequence) - 1
	}
	return IntervalSequence[timesKnown]
}

// Store is the persistence boundary for per-user progress maps. Read
// failures are degraded to an empty store by the engine; write failures
// surface as a non-persisted result, never as a fatal error.
type Store interface {
	GetStore(userKey string) (models.ProgressStore, error)
	SaveStore(userKey string, store models.ProgressStore) error
}

// Catalog supplies the full ordered flashcard catalog
type Catalog interface {
	GetAll() ([]models.Flashcard, error)
}

// Engine decides which flashcards are due on a given date and how a
// review outcome updates the user's progress.
type Engine struct {
	store   Store
	catalog Catalog
	broker  *events.Broker
}

// NewEngine creates a review engine backed by the given store and catalog.
// broker may be nil when no subscribers need change notifications.
func NewEngine(store Store, catalog Catalog, broker *events.Broker) *Engine {
	return &Engine{
		store:   store,
		catalog: catalog,
		broker:  broker,
	}
}

// Eligible reports whether a card with the given progress entry is due on
// today. exists is false when the user has no entry for the card.
//
// Rules: no entry means eligible; a card already reviewed today is not
// eligible again; no next-due date means eligible; otherwise the card is
// eligible once its next-due date has arrived.
func Eligible(entry models.ProgressEntry, exists bool, today models.Day) bool {
	if !exists {
		return true
	}
	if !entry.LastReviewed.IsZero() && entry.LastReviewed.Equal(today) {
		return false
	}
	if entry.NextDue.IsZero() {
		return true
	}
	return !entry.NextDue.After(today)
}

// ComputeDue filters the catalog down to the cards due on today, preserving
// catalog order. It is a pure function of its inputs. Cards without question
// text are malformed and silently excluded.
func ComputeDue(catalog []models.Flashcard, store models.ProgressStore, today models.Day) []models.Flashcard {
	due := make([]models.Flashcard, 0, len(catalog))
	for _, card := range catalog {
		if card.Question == "" {
			continue
		}
		entry, ok := store[card.Key()]
		if Eligible(entry, ok, today) {
			due = append(due, card)
		}
	}
	return due
}

// Apply computes the progress entry resulting from one review outcome.
//
// A successful recall schedules the card intervalFor(TimesKnown) days out
// and increments the consecutive-recall count; a failure schedules it for
// tomorrow and resets the count. Both paths stamp today as the last review.
func Apply(entry models.ProgressEntry, recalled bool, today models.Day) models.ProgressEntry {
	if recalled {
		entry.NextDue = today.AddDays(intervalFor(entry.TimesKnown))
		entry.TimesKnown++
		entry.CorrectToday++
	} else {
		entry.NextDue = today.AddDays(1)
		entry.TimesKnown = 0
		entry.CorrectToday = 0
	}
	entry.LastReviewed = today
	return entry
}

// DueToday returns the user's due-today set. A progress read failure is
// treated as an empty store, which makes every card eligible; no user data
// is lost beyond that session.
func (e *Engine) DueToday(userKey string, today models.Day) ([]models.Flashcard, error) {
	catalog, err := e.catalog.GetAll()
	if err != nil {
		return nil, err
	}
	store, err := e.store.GetStore(userKey)
	if err != nil {
		log.Printf("review: progress read failed for user %q, treating as empty: %v", userKey, err)
		store = models.ProgressStore{}
	}
	return ComputeDue(catalog, store, today), nil
}

// RecordOutcome applies one review outcome for the given card, persists the
// updated store and notifies subscribers. The returned bool reports whether
// the write was durable; on a write failure the computed entry is still
// returned and the session continues.
//
// Calling this twice for the same card on the same day applies the interval
// policy twice. The review flow advances past a card once answered, so the
// engine stays permissive rather than guarding against double invocation.
func (e *Engine) RecordOutcome(userKey, cardKey string, recalled bool, today models.Day) (models.ProgressEntry, bool) {
	store, err := e.store.GetStore(userKey)
	if err != nil {
		log.Printf("review: progress read failed for user %q, treating as empty: %v", userKey, err)
		store = models.ProgressStore{}
	}

	entry := Apply(store[cardKey], recalled, today)
	store[cardKey] = entry

	if err := e.store.SaveStore(userKey, store); err != nil {
		log.Printf("review: failed to persist progress for user %q: %v", userKey, err)
		return entry, false
	}

	if e.broker != nil {
		e.broker.Publish(events.ProgressUpdate{
			UserKey:  userKey,
			CardKey:  cardKey,
			Recalled: recalled,
			Day:      today,
			NextDue:  entry.NextDue,
		})
	}
	return entry, true
}
