package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChemaTorresGarvia/fichas-backend/pkg/models"
)

func TestBrokerDeliversToAllSubscribers(t *testing.T) {
	broker := NewBroker()

	var first, second []ProgressUpdate
	broker.Subscribe(func(u ProgressUpdate) { first = append(first, u) })
	broker.Subscribe(func(u ProgressUpdate) { second = append(second, u) })

	update := ProgressUpdate{UserKey: "ana", CardKey: "f1", Recalled: true, Day: models.NewDay(2024, 3, 1)}
	broker.Publish(update)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, update, first[0])
	assert.Equal(t, update, second[0])
}

func TestBrokerWithoutSubscribers(t *testing.T) {
	broker := NewBroker()
	// Publishing with no subscribers must not panic.
	broker.Publish(ProgressUpdate{UserKey: "ana"})
}

func TestBrokerSubscribeDuringDelivery(t *testing.T) {
	broker := NewBroker()

	delivered := 0
	broker.Subscribe(func(ProgressUpdate) {
		delivered++
		// Late subscribers only see later publishes.
		broker.Subscribe(func(ProgressUpdate) { delivered += 10 })
	})

	broker.Publish(ProgressUpdate{})
	assert.Equal(t, 1, delivered)
	broker.Publish(ProgressUpdate{})
	assert.Equal(t, 12, delivered)
}
