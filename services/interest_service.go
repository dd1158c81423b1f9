package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"saathi_server/models"
	"saathi_server/repository"

	"github.com/google/uuid"
)

// InterestService drives the interest lifecycle between two profiles:
// none → pending → accepted | declined. All lifecycle operations are
// serialized by one mutex so concurrent accepts cannot create a second
// conversation for the same pair, and so the sent/received lists on the two
// sides never drift apart.
type InterestService struct {
	Profiles      repository.ProfileRepository
	Conversations repository.ConversationRepository
	Notifier      *NotificationService

	// Now supplies conversation creation timestamps.
	Now func() time.Time

	mu sync.Mutex
}

// NewInterestService wires an interest service with the production clock
func NewInterestService(profiles repository.ProfileRepository, conversations repository.ConversationRepository, notifier *NotificationService) *InterestService {
	return &InterestService{
		Profiles:      profiles,
		Conversations: conversations,
		Notifier:      notifier,
		Now:           time.Now,
	}
}

// AcceptResult is what an accept returns: both updated profiles plus the
// conversation the UI navigates to
type AcceptResult struct {
	UpdatedCurrentUser models.Profile `json:"updatedCurrentUser"`
	UpdatedOtherUser   models.Profile `json:"updatedOtherUser"`
	ConversationID     string         `json:"conversationId"`
}

// InterestState is the derived relation between two profiles
type InterestState struct {
	State     string `json:"state"`               // none, pending, accepted, declined
	Direction string `json:"direction,omitempty"` // outgoing or incoming when pending
}

// Send records a one-directional interest from sender to receiver. Both
// profiles are updated atomically so sent/received membership stays in sync.
func (s *InterestService) Send(ctx context.Context, senderID, receiverID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if senderID == receiverID {
		return nil, fmt.Errorf("cannot send interest to own profile: %w", models.ErrValidation)
	}
	sender, err := s.Profiles.Get(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.Profiles.Get(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if sender.HasBlocked(receiverID) || receiver.HasBlocked(senderID) {
		return nil, fmt.Errorf("interest between blocked profiles: %w", models.ErrValidation)
	}
	if contains(sender.InterestsSent, receiverID) {
		return nil, fmt.Errorf("interest from %s to %s is already pending: %w", senderID, receiverID, models.ErrConflict)
	}

	sender.InterestsSent = addToSet(sender.InterestsSent, receiverID)
	receiver.InterestsReceived = addToSet(receiver.InterestsReceived, senderID)
	// A fresh interest clears an earlier decline, the relation is pending again.
	receiver.InterestsDeclined = removeFromSet(receiver.InterestsDeclined, senderID)

	if err := s.Profiles.UpdateMany(ctx, []models.Profile{*sender, *receiver}); err != nil {
		return nil, fmt.Errorf("failed to record interest: %w", err)
	}

	log.Printf("💌 Interest sent: %s -> %s", senderID, receiverID)
	s.Notifier.NotifyInterestReceived(ctx, receiverID, sender.Name)
	return sender, nil
}

// Accept is the composite transition: clear the pending lists on both sides,
// locate or create the single conversation for the pair, and notify the
// original sender. A repeated accept (double-click) returns the existing
// conversation unchanged.
func (s *InterestService) Accept(ctx context.Context, userID, otherUserID string) (*AcceptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := s.Profiles.Get(ctx, otherUserID)
	if err != nil {
		return nil, err
	}

	pending := contains(current.InterestsReceived, otherUserID)

	// The lookup must run before any create to keep at most one conversation
	// per unordered pair.
	existing, err := s.Conversations.FindByParticipants(ctx, userID, otherUserID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	if !pending {
		if existing != nil {
			// Already accepted earlier; idempotent result.
			return &AcceptResult{
				UpdatedCurrentUser: *current,
				UpdatedOtherUser:   *other,
				ConversationID:     existing.ConversationID,
			}, nil
		}
		return nil, fmt.Errorf("no pending interest from %s to %s: %w", otherUserID, userID, models.ErrValidation)
	}

	// The conversation is created before the interest lists are touched. If
	// the create fails, the pending interest is intact and the accept can
	// simply be retried; if the profile write below fails instead, the retry
	// finds the conversation and clears the lists, so the transition is
	// all-or-nothing either way.
	conversation := existing
	if conversation == nil {
		created := models.Conversation{
			ConversationID: uuid.NewString(),
			ParticipantIDs: []string{userID, otherUserID},
			Participants: map[string]models.ParticipantSnapshot{
				userID:      current.Snapshot(),
				otherUserID: other.Snapshot(),
			},
			Messages:  []models.Message{},
			LastRead:  map[string]int64{},
			CreatedAt: s.Now().UTC().Format(time.RFC3339),
		}
		if err := s.Conversations.Create(ctx, created); err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
		conversation = &created
		log.Printf("🎉 Interest accepted: %s ❤️ %s, conversation %s", userID, otherUserID, created.ConversationID)
	}

	current.InterestsReceived = removeFromSet(current.InterestsReceived, otherUserID)
	other.InterestsSent = removeFromSet(other.InterestsSent, userID)

	if err := s.Profiles.UpdateMany(ctx, []models.Profile{*current, *other}); err != nil {
		return nil, fmt.Errorf("failed to accept interest: %w", err)
	}

	s.Notifier.NotifyInterestAccepted(ctx, otherUserID, current.Name)
	return &AcceptResult{
		UpdatedCurrentUser: *current,
		UpdatedOtherUser:   *other,
		ConversationID:     conversation.ConversationID,
	}, nil
}

// Decline moves the sender's id from the decliner's received list to the
// declined list and clears the sender's outgoing entry. No conversation is
// created.
func (s *InterestService) Decline(ctx context.Context, userID, otherUserID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := s.Profiles.Get(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if !contains(current.InterestsReceived, otherUserID) {
		return nil, fmt.Errorf("no pending interest from %s to %s: %w", otherUserID, userID, models.ErrValidation)
	}

	current.InterestsReceived = removeFromSet(current.InterestsReceived, otherUserID)
	current.InterestsDeclined = addToSet(current.InterestsDeclined, otherUserID)
	other.InterestsSent = removeFromSet(other.InterestsSent, userID)

	if err := s.Profiles.UpdateMany(ctx, []models.Profile{*current, *other}); err != nil {
		return nil, fmt.Errorf("failed to decline interest: %w", err)
	}

	log.Printf("💔 Interest declined: %s declined %s", userID, otherUserID)
	s.Notifier.NotifyInterestDeclined(ctx, otherUserID, current.Name)
	return current, nil
}

// StateBetween derives the relation between two profiles from list membership
// and conversation existence, from the first user's point of view
func (s *InterestService) StateBetween(ctx context.Context, userID, otherUserID string) (*InterestState, error) {
	current, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := s.Profiles.Get(ctx, otherUserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Conversations.FindByParticipants(ctx, userID, otherUserID); err == nil {
		return &InterestState{State: models.InterestStateAccepted}, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	switch {
	case contains(current.InterestsSent, otherUserID):
		return &InterestState{State: models.InterestStatePending, Direction: "outgoing"}, nil
	case contains(current.InterestsReceived, otherUserID):
		return &InterestState{State: models.InterestStatePending, Direction: "incoming"}, nil
	case contains(current.InterestsDeclined, otherUserID), contains(other.InterestsDeclined, userID):
		return &InterestState{State: models.InterestStateDeclined}, nil
	}
	return &InterestState{State: models.InterestStateNone}, nil
}
