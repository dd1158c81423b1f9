package services

import (
	"context"
	"testing"
	"time"

	"saathi_server/models"
	"saathi_server/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedReplyGenerator always answers with the same text
type fixedReplyGenerator struct {
	text string
}

func (g fixedReplyGenerator) ComposeReply(_ models.Conversation, _ models.Message) (string, bool) {
	return g.text, true
}

type chatTestEnv struct {
	profiles      *repository.MemoryProfileRepository
	conversations *repository.MemoryConversationRepository
	service       *ChatService
	scheduled     []func()
}

// newChatTestEnv builds a chat service around one seeded conversation between
// u1 and u2. The scheduler is stubbed: timers are captured instead of firing.
func newChatTestEnv(t *testing.T) *chatTestEnv {
	t.Helper()
	env := &chatTestEnv{
		profiles:      repository.NewMemoryProfileRepository(0),
		conversations: repository.NewMemoryConversationRepository(0),
	}

	ctx := context.Background()
	for _, p := range []models.Profile{
		{UserID: "u1", Name: "Ananya", Email: "a@x.com", Role: models.RoleUser, Status: models.StatusActive},
		{UserID: "u2", Name: "Rahul", Email: "b@x.com", Role: models.RoleUser, Status: models.StatusActive},
	} {
		require.NoError(t, env.profiles.Create(ctx, p))
	}
	require.NoError(t, env.conversations.Create(ctx, models.Conversation{
		ConversationID: "c1",
		ParticipantIDs: []string{"u1", "u2"},
		Participants: map[string]models.ParticipantSnapshot{
			"u1": {Name: "Ananya"},
			"u2": {Name: "Rahul"},
		},
		Messages:  []models.Message{},
		LastRead:  map[string]int64{},
		CreatedAt: "2025-05-01T10:00:00Z",
	}))

	env.service = NewChatService(env.conversations, env.profiles, NewListenerRegistry())
	env.service.Replies = fixedReplyGenerator{text: "hello back"}
	env.service.Schedule = func(d time.Duration, fn func()) {
		env.scheduled = append(env.scheduled, fn)
	}
	return env
}

func TestSendMessageNotifiesEveryListenerOnce(t *testing.T) {
	env := newChatTestEnv(t)
	ctx := context.Background()

	var first, second []models.Conversation
	env.service.Registry.Subscribe("c1", func(c models.Conversation) { first = append(first, c) })
	env.service.Registry.Subscribe("c1", func(c models.Conversation) { second = append(second, c) })

	message, err := env.service.SendMessage(ctx, "c1", "u1", "hello")
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	for _, got := range []models.Conversation{first[0], second[0]} {
		require.NotEmpty(t, got.Messages)
		last := got.Messages[len(got.Messages)-1]
		assert.Equal(t, message.MessageID, last.MessageID)
		assert.Equal(t, "hello", last.Text)
		assert.Equal(t, "u1", last.SenderID)
	}
}

func TestUnsubscribedListenerReceivesNothing(t *testing.T) {
	env := newChatTestEnv(t)

	calls := 0
	unsubscribe := env.service.Registry.Subscribe("c1", func(models.Conversation) { calls++ })
	unsubscribe()

	_, err := env.service.SendMessage(context.Background(), "c1", "u1", "hello")
	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Zero(t, env.service.Registry.ListenerCount("c1"))
}

func TestListenerReceivesSnapshotNotSharedState(t *testing.T) {
	env := newChatTestEnv(t)

	var snapshots []models.Conversation
	env.service.Registry.Subscribe("c1", func(c models.Conversation) { snapshots = append(snapshots, c) })

	_, err := env.service.SendMessage(context.Background(), "c1", "u1", "hello")
	require.NoError(t, err)

	// Mutating the delivered snapshot must not leak into the store.
	snapshots[0].Messages[0].Text = "tampered"

	messages, err := env.service.GetMessages(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "hello", messages[0].Text)
}

func TestSendMessageUnknownConversationFails(t *testing.T) {
	env := newChatTestEnv(t)

	_, err := env.service.SendMessage(context.Background(), "missing", "u1", "hello")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSendMessageFromNonParticipantFails(t *testing.T) {
	env := newChatTestEnv(t)

	_, err := env.service.SendMessage(context.Background(), "c1", "intruder", "hello")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSendMessageEmptyTextFails(t *testing.T) {
	env := newChatTestEnv(t)

	_, err := env.service.SendMessage(context.Background(), "c1", "u1", "   ")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAutoReplyComesFromOtherParticipant(t *testing.T) {
	env := newChatTestEnv(t)
	ctx := context.Background()

	_, err := env.service.SendMessage(ctx, "c1", "u1", "hello")
	require.NoError(t, err)
	require.Len(t, env.scheduled, 1)

	// Fire the captured timer.
	env.scheduled[0]()

	messages, err := env.service.GetMessages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "u1", messages[0].SenderID)
	assert.Equal(t, "u2", messages[1].SenderID)
	assert.Equal(t, "hello back", messages[1].Text)
	assert.LessOrEqual(t, messages[0].Timestamp, messages[1].Timestamp)

	// The simulated reply must not schedule another reply.
	assert.Len(t, env.scheduled, 1)
}

func TestAutoReplyNotifiesListeners(t *testing.T) {
	env := newChatTestEnv(t)

	deliveries := 0
	env.service.Registry.Subscribe("c1", func(models.Conversation) { deliveries++ })

	_, err := env.service.SendMessage(context.Background(), "c1", "u1", "hello")
	require.NoError(t, err)
	env.scheduled[0]()

	assert.Equal(t, 2, deliveries)
}

func TestAutoReplyDroppedWhenRecipientGone(t *testing.T) {
	env := newChatTestEnv(t)
	ctx := context.Background()

	_, err := env.service.SendMessage(ctx, "c1", "u1", "hello")
	require.NoError(t, err)
	require.NoError(t, env.profiles.Delete(ctx, "u2"))

	env.scheduled[0]()

	messages, err := env.service.GetMessages(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestMarkConversationRead(t *testing.T) {
	env := newChatTestEnv(t)
	ctx := context.Background()

	_, err := env.service.SendMessage(ctx, "c1", "u1", "hello")
	require.NoError(t, err)
	env.scheduled[0]()

	conversation, err := env.service.MarkConversationRead(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.NotZero(t, conversation.LastRead["u1"])

	// Only the other participant's messages flip to read.
	for _, message := range conversation.Messages {
		if message.SenderID == "u2" {
			assert.True(t, message.IsRead)
		} else {
			assert.False(t, message.IsRead)
		}
	}
}

func TestConversationLocksAreReaped(t *testing.T) {
	env := newChatTestEnv(t)
	ctx := context.Background()

	// Sends against unknown ids must not leave lock entries behind.
	_, err := env.service.SendMessage(ctx, "missing", "u1", "hello")
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = env.service.SendMessage(ctx, "c1", "u1", "hello")
	require.NoError(t, err)
	_, err = env.service.MarkConversationRead(ctx, "c1", "u1")
	require.NoError(t, err)

	env.service.mu.Lock()
	held := len(env.service.convLocks)
	env.service.mu.Unlock()
	assert.Zero(t, held)
}

func TestMarkConversationReadValidatesParticipant(t *testing.T) {
	env := newChatTestEnv(t)

	_, err := env.service.MarkConversationRead(context.Background(), "c1", "intruder")
	assert.ErrorIs(t, err, models.ErrValidation)
}
