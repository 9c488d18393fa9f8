package events

import (
	"sync"

	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
)

// ProgressUpdate describes one recorded review outcome. It is published
// after the outcome has been durably written, so subscribers (streak
// tracker, websocket feed) can refresh derived state.
type ProgressUpdate struct {
	UserKey  string     `json:"user_key"`
	CardKey  string     `json:"card_key"`
	Recalled bool       `json:"recalled"`
	Day      models.Day `json:"day"`
	NextDue  models.Day `json:"next_due"`
}

// Broker is a synchronous in-process subscription registry for cross-view
// refresh: every open view of a user's progress can react to an update.
type Broker struct {
	mu          sync.RWMutex
	subscribers []func(ProgressUpdate)
}

// NewBroker creates an empty broker
func NewBroker() *Broker {
	return &Broker{}
}

// Subscribe registers a callback invoked on every published update.
// Callbacks run synchronously on the publisher's goroutine.
func (b *Broker) Subscribe(fn func(ProgressUpdate)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish delivers the update to all current subscribers
func (b *Broker) Publish(update ProgressUpdate) {
	b.mu.RLock()
	subs := make([]func(ProgressUpdate), len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(update)
	}
}
