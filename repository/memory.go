package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"saathi_server/models"
	"saathi_server/utils"
)

// latencySimulator applies an optional delay before every store call so the
// in-memory backend behaves like a network round-trip. Zero latency (the
// default for tests) is a no-op.
type latencySimulator struct {
	latency time.Duration
}

func (l latencySimulator) wait(ctx context.Context) error {
	if l.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(l.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MemoryProfileRepository is the in-memory ProfileRepository. Every read and
// write works on deep copies so callers never alias internal state.
type MemoryProfileRepository struct {
	latencySimulator
	mu       sync.RWMutex
	profiles []models.Profile
}

// NewMemoryProfileRepository returns an empty profile store with the given
// simulated latency per call
func NewMemoryProfileRepository(latency time.Duration) *MemoryProfileRepository {
	return &MemoryProfileRepository{latencySimulator: latencySimulator{latency: latency}}
}

func (r *MemoryProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (r *MemoryProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.UserID == userID {
			clone := cloneProfile(p)
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("profile %q: %w", userID, models.ErrNotFound)
}

func (r *MemoryProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if strings.EqualFold(p.Email, email) {
			clone := cloneProfile(p)
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("profile with email %q: %w", email, models.ErrNotFound)
}

func (r *MemoryProfileRepository) Create(ctx context.Context, profile models.Profile) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.UserID == profile.UserID {
			return fmt.Errorf("profile %q already exists: %w", profile.UserID, models.ErrConflict)
		}
	}
	r.profiles = append(r.profiles, cloneProfile(profile))
	return nil
}

func (r *MemoryProfileRepository) Update(ctx context.Context, profile models.Profile) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(profile)
}

func (r *MemoryProfileRepository) updateLocked(profile models.Profile) error {
	for i, p := range r.profiles {
		if p.UserID == profile.UserID {
			r.profiles[i] = cloneProfile(profile)
			return nil
		}
	}
	return fmt.Errorf("profile %q: %w", profile.UserID, models.ErrNotFound)
}

// UpdateMany verifies every id exists before writing anything, so the batch
// either fully applies or leaves the store untouched.
func (r *MemoryProfileRepository) UpdateMany(ctx context.Context, profiles []models.Profile) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, profile := range profiles {
		found := false
		for _, p := range r.profiles {
			if p.UserID == profile.UserID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("profile %q: %w", profile.UserID, models.ErrNotFound)
		}
	}
	for _, profile := range profiles {
		if err := r.updateLocked(profile); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryProfileRepository) Delete(ctx context.Context, userID string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.profiles {
		if p.UserID == userID {
			r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("profile %q: %w", userID, models.ErrNotFound)
}

// MemoryConversationRepository is the in-memory ConversationRepository
type MemoryConversationRepository struct {
	latencySimulator
	mu            sync.RWMutex
	conversations []models.Conversation
}

// NewMemoryConversationRepository returns an empty conversation store
func NewMemoryConversationRepository(latency time.Duration) *MemoryConversationRepository {
	return &MemoryConversationRepository{latencySimulator: latencySimulator{latency: latency}}
}

func (r *MemoryConversationRepository) List(ctx context.Context) ([]models.Conversation, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Conversation, 0, len(r.conversations))
	for _, c := range r.conversations {
		out = append(out, cloneConversation(c))
	}
	return out, nil
}

func (r *MemoryConversationRepository) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Conversation
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			out = append(out, cloneConversation(c))
		}
	}
	return out, nil
}

func (r *MemoryConversationRepository) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.conversations {
		if c.ConversationID == conversationID {
			clone := cloneConversation(c)
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("conversation %q: %w", conversationID, models.ErrNotFound)
}

// FindByParticipants scans linearly for the unordered pair. Kept linear on
// purpose; at-most-one-per-pair is enforced by the interest lifecycle, not by
// an index.
func (r *MemoryConversationRepository) FindByParticipants(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := utils.PairKey(userA, userB)
	for _, c := range r.conversations {
		if len(c.ParticipantIDs) == 2 && utils.PairKey(c.ParticipantIDs[0], c.ParticipantIDs[1]) == want {
			clone := cloneConversation(c)
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("conversation for pair (%s, %s): %w", userA, userB, models.ErrNotFound)
}

func (r *MemoryConversationRepository) Create(ctx context.Context, conversation models.Conversation) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.conversations {
		if c.ConversationID == conversation.ConversationID {
			return fmt.Errorf("conversation %q already exists: %w", conversation.ConversationID, models.ErrConflict)
		}
	}
	r.conversations = append(r.conversations, cloneConversation(conversation))
	return nil
}

func (r *MemoryConversationRepository) Update(ctx context.Context, conversation models.Conversation) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.conversations {
		if c.ConversationID == conversation.ConversationID {
			r.conversations[i] = cloneConversation(conversation)
			return nil
		}
	}
	return fmt.Errorf("conversation %q: %w", conversation.ConversationID, models.ErrNotFound)
}

// MemoryNotificationRepository is the in-memory NotificationRepository
type MemoryNotificationRepository struct {
	latencySimulator
	mu            sync.RWMutex
	notifications []models.Notification
}

// NewMemoryNotificationRepository returns an empty notification store
func NewMemoryNotificationRepository(latency time.Duration) *MemoryNotificationRepository {
	return &MemoryNotificationRepository{latencySimulator: latencySimulator{latency: latency}}
}

func (r *MemoryNotificationRepository) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *MemoryNotificationRepository) Get(ctx context.Context, notificationID string) (*models.Notification, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.notifications {
		if n.NotificationID == notificationID {
			clone := n
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("notification %q: %w", notificationID, models.ErrNotFound)
}

func (r *MemoryNotificationRepository) Create(ctx context.Context, notification models.Notification) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *MemoryNotificationRepository) Update(ctx context.Context, notification models.Notification) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, n := range r.notifications {
		if n.NotificationID == notification.NotificationID {
			r.notifications[i] = notification
			return nil
		}
	}
	return fmt.Errorf("notification %q: %w", notification.NotificationID, models.ErrNotFound)
}

// --- deep copies ---

// cloneSlice copies a slice without collapsing empty into nil, so the
// empty-vs-absent distinction survives a round-trip through the store.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneProfile(p models.Profile) models.Profile {
	c := p
	c.InterestsSent = cloneSlice(p.InterestsSent)
	c.InterestsReceived = cloneSlice(p.InterestsReceived)
	c.InterestsDeclined = cloneSlice(p.InterestsDeclined)
	c.Shortlisted = cloneSlice(p.Shortlisted)
	c.BlockedUsers = cloneSlice(p.BlockedUsers)
	c.Photos = cloneSlice(p.Photos)
	return c
}

func cloneConversation(conv models.Conversation) models.Conversation {
	c := conv
	c.ParticipantIDs = cloneSlice(conv.ParticipantIDs)
	c.Messages = cloneSlice(conv.Messages)
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
