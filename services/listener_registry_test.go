package services

import (
	"testing"
	"time"

	"saathi_server/models"

	"github.com/stretchr/testify/assert"
)

func testConversation(id string) models.Conversation {
	return models.Conversation{
		ConversationID: id,
		ParticipantIDs: []string{"u1", "u2"},
		Messages:       []models.Message{{MessageID: "m1", SenderID: "u1", Text: "hi", Timestamp: 1}},
	}
}

func TestRegistryFanOutInRegistrationOrder(t *testing.T) {
	registry := NewListenerRegistry()

	var order []string
	registry.Subscribe("c1", func(models.Conversation) { order = append(order, "first") })
	registry.Subscribe("c1", func(models.Conversation) { order = append(order, "second") })
	registry.Subscribe("c2", func(models.Conversation) { order = append(order, "other") })

	registry.Notify(testConversation("c1"))

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRegistryUnsubscribeRemovesExactlyOne(t *testing.T) {
	registry := NewListenerRegistry()

	var calls []string
	unsubscribe := registry.Subscribe("c1", func(models.Conversation) { calls = append(calls, "a") })
	registry.Subscribe("c1", func(models.Conversation) { calls = append(calls, "b") })

	unsubscribe()
	// Unsubscribing twice is harmless.
	unsubscribe()

	registry.Notify(testConversation("c1"))
	assert.Equal(t, []string{"b"}, calls)
	assert.Equal(t, 1, registry.ListenerCount("c1"))
}

func TestRegistryNotifyWithoutListenersIsNoop(t *testing.T) {
	registry := NewListenerRegistry()
	registry.Notify(testConversation("c1"))
	assert.Zero(t, registry.ListenerCount("c1"))
}

func TestRegistryAbandonsStuckListener(t *testing.T) {
	registry := NewListenerRegistry()
	registry.DeliveryTimeout = 10 * time.Millisecond

	release := make(chan struct{})
	delivered := false
	registry.Subscribe("c1", func(models.Conversation) { <-release })
	registry.Subscribe("c1", func(models.Conversation) { delivered = true })

	done := make(chan struct{})
	go func() {
		registry.Notify(testConversation("c1"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notify blocked on a stuck listener")
	}
	assert.True(t, delivered)
	close(release)
}
