package repository

import (
	"context"

	"saathi_server/models"
)

// ProfileRepository is the storage boundary for profiles. Implementations must
// return copies the caller can mutate freely.
type ProfileRepository interface {
	List(ctx context.Context) ([]models.Profile, error)
	Get(ctx context.Context, userID string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Create(ctx context.Context, profile models.Profile) error
	Update(ctx context.Context, profile models.Profile) error
	// UpdateMany replaces all given profiles atomically; either every profile
	// exists and is written, or nothing changes.
	UpdateMany(ctx context.Context, profiles []models.Profile) error
	Delete(ctx context.Context, userID string) error
}

// ConversationRepository is the storage boundary for conversations
type ConversationRepository interface {
	List(ctx context.Context) ([]models.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	Get(ctx context.Context, conversationID string) (*models.Conversation, error)
	// FindByParticipants matches the unordered participant pair; returns
	// ErrNotFound when no conversation exists for the pair.
	FindByParticipants(ctx context.Context, userA, userB string) (*models.Conversation, error)
	Create(ctx context.Context, conversation models.Conversation) error
	Update(ctx context.Context, conversation models.Conversation) error
}

// NotificationRepository is the storage boundary for notifications
type NotificationRepository interface {
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	Get(ctx context.Context, notificationID string) (*models.Notification, error)
	Create(ctx context.Context, notification models.Notification) error
	Update(ctx context.Context, notification models.Notification) error
}
