package services

import (
	"log"
	"sync"
	"time"

	"saathi_server/models"
)

// MessageListener receives the full updated conversation after a message is
// appended. Listeners get a snapshot, not a diff; the registry never hands out
// shared state.
type MessageListener func(conversation models.Conversation)

// ListenerRegistry is the in-process pub/sub for conversation updates. It is
// the contract the socket layer (and any open client session) subscribes
// through: one subscriber list per conversation id, fan-out in registration
// order, unsubscribe closures that remove exactly one registration.
type ListenerRegistry struct {
	mu        sync.Mutex
	nextID    int
	listeners map[string][]registration

	// DeliveryTimeout bounds each listener callback so one stuck consumer
	// cannot wedge the send path. Zero disables the guard.
	DeliveryTimeout time.Duration
}

type registration struct {
	id int
	fn MessageListener
}

// NewListenerRegistry returns a registry with a 5s per-listener delivery guard
func NewListenerRegistry() *ListenerRegistry {
	return &ListenerRegistry{
		listeners:       make(map[string][]registration),
		DeliveryTimeout: 5 * time.Second,
	}
}

// Subscribe registers a listener for one conversation id and returns the
// closure that removes it. Callers must invoke the closure on teardown.
func (r *ListenerRegistry) Subscribe(conversationID string, fn MessageListener) func() {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.listeners[conversationID] = append(r.listeners[conversationID], registration{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		regs := r.listeners[conversationID]
		for i, reg := range regs {
			if reg.id == id {
				r.listeners[conversationID] = append(regs[:i], regs[i+1:]...)
				break
			}
		}
		if len(r.listeners[conversationID]) == 0 {
			delete(r.listeners, conversationID)
		}
	}
}

// ListenerCount reports how many listeners are registered for a conversation
func (r *ListenerRegistry) ListenerCount(conversationID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners[conversationID])
}

// Notify delivers the conversation snapshot to every registered listener in
// registration order. Each listener receives its own deep copy. Delivery is
// synchronous from the sender's point of view; a listener that exceeds the
// delivery timeout is abandoned (its goroutine keeps the stale copy).
func (r *ListenerRegistry) Notify(conversation models.Conversation) {
	r.mu.Lock()
	regs := append([]registration(nil), r.listeners[conversation.ConversationID]...)
	r.mu.Unlock()

	for _, reg := range regs {
		r.deliver(reg.fn, conversation)
	}
}

func (r *ListenerRegistry) deliver(fn MessageListener, conversation models.Conversation) {
	snapshot := copyConversation(conversation)
	if r.DeliveryTimeout <= 0 {
		fn(snapshot)
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(snapshot)
	}()
	select {
	case <-done:
	case <-time.After(r.DeliveryTimeout):
		log.Printf("⚠️ Listener for conversation %s exceeded delivery timeout", conversation.ConversationID)
	}
}

// copySlice keeps empty slices empty instead of collapsing them to nil, so
// delivered snapshots serialize with the same shape as the stored value.
func copySlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func copyConversation(conv models.Conversation) models.Conversation {
	c := conv
	c.ParticipantIDs = copySlice(conv.ParticipantIDs)
	c.Messages = copySlice(conv.Messages)
	c.Participants = make(map[string]models.ParticipantSnapshot, len(conv.Participants))
	for k, v := range conv.Participants {
		c.Participants[k] = v
	}
	c.LastRead = make(map[string]int64, len(conv.LastRead))
	for k, v := range conv.LastRead {
		c.LastRead[k] = v
	}
	return c
}
