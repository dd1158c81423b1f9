package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"saathi_server/models"
	"saathi_server/repository"

	"github.com/google/uuid"
)

// ChatService owns the message append path. Within one conversation, append
// and listener notification happen under the same per-conversation lock, so
// two concurrent sends can never interleave their append/notify sequences.
type ChatService struct {
	Conversations repository.ConversationRepository
	Profiles      repository.ProfileRepository
	Registry      *ListenerRegistry

	// Replies simulates the other party. Nil disables auto-replies.
	Replies ReplyGenerator
	// ReplyDelay returns the wait before a simulated reply lands.
	ReplyDelay func() time.Duration
	// Schedule runs fn after d. Tests replace it to fire synchronously.
	Schedule func(d time.Duration, fn func())
	// Now supplies message timestamps.
	Now func() time.Time

	mu        sync.Mutex
	convLocks map[string]*convLock
}

// convLock is a refcounted per-conversation mutex. Entries are reaped when the
// last holder releases, so the lock map never accumulates ids.
type convLock struct {
	mu   sync.Mutex
	refs int
}

// NewChatService wires a chat service with the production defaults
func NewChatService(conversations repository.ConversationRepository, profiles repository.ProfileRepository, registry *ListenerRegistry) *ChatService {
	return &ChatService{
		Conversations: conversations,
		Profiles:      profiles,
		Registry:      registry,
		Replies:       CannedReplyGenerator{},
		ReplyDelay:    DefaultReplyDelay,
		Schedule:      func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		Now:           time.Now,
	}
}

func (s *ChatService) lockConversation(conversationID string) *convLock {
	s.mu.Lock()
	if s.convLocks == nil {
		s.convLocks = make(map[string]*convLock)
	}
	lock, ok := s.convLocks[conversationID]
	if !ok {
		lock = &convLock{}
		s.convLocks[conversationID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (s *ChatService) unlockConversation(conversationID string, lock *convLock) {
	lock.mu.Unlock()

	s.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.convLocks, conversationID)
	}
	s.mu.Unlock()
}

// GetConversations returns every conversation, or only the given user's when
// userID is non-empty
func (s *ChatService) GetConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	if userID == "" {
		return s.Conversations.List(ctx)
	}
	return s.Conversations.ListForUser(ctx, userID)
}

// GetMessages returns a conversation's messages ordered by timestamp ascending
func (s *ChatService) GetMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	conversation, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	messages := conversation.Messages
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})
	return messages, nil
}

// SendMessage appends a message from a real participant, notifies listeners,
// and schedules the simulated reply from the other side
func (s *ChatService) SendMessage(ctx context.Context, conversationID, senderID, text string) (*models.Message, error) {
	message, err := s.appendMessage(ctx, conversationID, senderID, text)
	if err != nil {
		return nil, err
	}
	s.scheduleAutoReply(conversationID, *message)
	return message, nil
}

// appendMessage is the single append path for both real and simulated
// messages: validate, append, persist, notify, all under the conversation
// lock.
func (s *ChatService) appendMessage(ctx context.Context, conversationID, senderID, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("message text is empty: %w", models.ErrValidation)
	}

	lock := s.lockConversation(conversationID)
	defer s.unlockConversation(conversationID, lock)

	conversation, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(senderID) {
		return nil, fmt.Errorf("sender %s is not a participant of conversation %s: %w", senderID, conversationID, models.ErrValidation)
	}

	message := models.Message{
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Text:      text,
		Timestamp: s.Now().UnixMilli(),
		IsRead:    false,
	}
	conversation.Messages = append(conversation.Messages, message)

	if err := s.Conversations.Update(ctx, *conversation); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	log.Printf("📩 Message %s appended to conversation %s by %s", message.MessageID, conversationID, senderID)
	s.Registry.Notify(*conversation)
	return &message, nil
}

func (s *ChatService) scheduleAutoReply(conversationID string, inbound models.Message) {
	if s.Replies == nil {
		return
	}
	s.Schedule(s.ReplyDelay(), func() {
		s.deliverAutoReply(conversationID, inbound)
	})
}

// deliverAutoReply fires when the simulated peer's timer elapses. The
// conversation and the recipient are re-checked at fire time; the reply is
// dropped silently when either is gone.
func (s *ChatService) deliverAutoReply(conversationID string, inbound models.Message) {
	ctx := context.Background()

	conversation, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		log.Printf("⚠️ Dropping simulated reply, conversation %s is gone: %v", conversationID, err)
		return
	}
	otherID := conversation.OtherParticipant(inbound.SenderID)
	if otherID == "" {
		log.Printf("⚠️ Dropping simulated reply, no counterpart for sender %s in %s", inbound.SenderID, conversationID)
		return
	}
	if s.Profiles != nil {
		if _, err := s.Profiles.Get(ctx, otherID); err != nil {
			log.Printf("⚠️ Dropping simulated reply, participant %s is gone: %v", otherID, err)
			return
		}
	}

	text, ok := s.Replies.ComposeReply(*conversation, inbound)
	if !ok {
		return
	}
	if _, err := s.appendMessage(ctx, conversationID, otherID, text); err != nil {
		log.Printf("❌ Failed to append simulated reply to %s: %v", conversationID, err)
	}
}

// MarkConversationRead sets the reader's last-read watermark and flips the
// read flag on messages from the other participant
func (s *ChatService) MarkConversationRead(ctx context.Context, conversationID, userID string) (*models.Conversation, error) {
	lock := s.lockConversation(conversationID)
	defer s.unlockConversation(conversationID, lock)

	conversation, err := s.Conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, fmt.Errorf("user %s is not a participant of conversation %s: %w", userID, conversationID, models.ErrValidation)
	}

	if conversation.LastRead == nil {
		conversation.LastRead = make(map[string]int64)
	}
	conversation.LastRead[userID] = s.Now().UnixMilli()
	for i, message := range conversation.Messages {
		if message.SenderID != userID {
			conversation.Messages[i].IsRead = true
		}
	}

	if err := s.Conversations.Update(ctx, *conversation); err != nil {
		return nil, fmt.Errorf("failed to mark conversation read: %w", err)
	}
	return conversation, nil
}
