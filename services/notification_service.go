package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"saathi_server/models"
	"saathi_server/repository"

	"github.com/google/uuid"
)

// NotificationService appends notification records on domain events and
// exposes the read/mark-read surface. Notifications are never deleted.
type NotificationService struct {
	Notifications repository.NotificationRepository
}

func (s *NotificationService) notify(ctx context.Context, userID, message string) {
	notification := models.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Message:        message,
		IsRead:         false,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Notifications.Create(ctx, notification); err != nil {
		// Notification delivery is best-effort; the triggering operation
		// already succeeded.
		log.Printf("❌ Failed to store notification for %s: %v", userID, err)
		return
	}
	log.Printf("🔔 Notification for %s: %s", userID, message)
}

// NotifyInterestReceived tells the recipient a new interest arrived
func (s *NotificationService) NotifyInterestReceived(ctx context.Context, recipientID, senderName string) {
	s.notify(ctx, recipientID, fmt.Sprintf("%s has expressed interest in your profile", senderName))
}

// NotifyInterestAccepted tells the original sender their interest was accepted
func (s *NotificationService) NotifyInterestAccepted(ctx context.Context, senderID, accepterName string) {
	s.notify(ctx, senderID, fmt.Sprintf("%s accepted your interest. You can now start a conversation!", accepterName))
}

// NotifyInterestDeclined tells the original sender their interest was declined
func (s *NotificationService) NotifyInterestDeclined(ctx context.Context, senderID, declinerName string) {
	s.notify(ctx, senderID, fmt.Sprintf("%s was not a match this time", declinerName))
}

// NotifyProfileViewed tells a profile owner someone viewed their profile
func (s *NotificationService) NotifyProfileViewed(ctx context.Context, ownerID, viewerName string) {
	s.notify(ctx, ownerID, fmt.Sprintf("%s viewed your profile", viewerName))
}

// NotifyQuizCompleted records the compatibility-quiz completion event
func (s *NotificationService) NotifyQuizCompleted(ctx context.Context, userID string) {
	s.notify(ctx, userID, "You completed the compatibility quiz")
}

// GetNotifications returns a user's notifications, newest first
func (s *NotificationService) GetNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.Notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt > notifications[j].CreatedAt
	})
	return notifications, nil
}

// MarkRead flips a single notification's read flag
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) (*models.Notification, error) {
	notification, err := s.Notifications.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	notification.IsRead = true
	if err := s.Notifications.Update(ctx, *notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// MarkAllRead flips every unread notification for the user
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	notifications, err := s.Notifications.ListForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	updated := 0
	for _, n := range notifications {
		if n.IsRead {
			continue
		}
		n.IsRead = true
		if err := s.Notifications.Update(ctx, n); err != nil {
			return updated, err
		}
		updated++
	}
	log.Printf("✅ Marked %d notifications as read for %s", updated, userID)
	return updated, nil
}
