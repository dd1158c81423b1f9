package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"saathi_server/models"
	"saathi_server/repository"

	"github.com/google/uuid"
)

// AdminSignInAlias is the literal email the back-office uses to reach the
// seeded admin account
const AdminSignInAlias = "admin"

// ProfileService handles account registration, sign-in, and all direct
// profile mutations
type ProfileService struct {
	Profiles repository.ProfileRepository
	Notifier *NotificationService

	// AdminPassword guards the "admin" sign-in alias.
	AdminPassword string
}

// GetProfiles returns every profile
func (s *ProfileService) GetProfiles(ctx context.Context) ([]models.Profile, error) {
	return s.Profiles.List(ctx)
}

// GetProfile returns one profile by id
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.Profiles.Get(ctx, userID)
}

// Register creates a new account. Approval status is forced to pending and
// account status to active regardless of input.
func (s *ProfileService) Register(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return nil, fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	email := strings.TrimSpace(profile.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required: %w", models.ErrValidation)
	}
	if _, err := s.Profiles.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s is already registered: %w", email, models.ErrConflict)
	}

	profile.UserID = uuid.NewString()
	profile.Email = email
	profile.ApprovalStatus = models.ApprovalPending
	profile.Status = models.StatusActive
	if profile.Role == "" {
		profile.Role = models.RoleUser
	}
	profile.InterestsSent = []string{}
	profile.InterestsReceived = []string{}
	profile.InterestsDeclined = []string{}
	profile.Shortlisted = []string{}
	profile.BlockedUsers = []string{}
	profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.Profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to register profile: %w", err)
	}
	log.Printf("✅ Registered profile %s (%s)", profile.UserID, profile.Email)
	return &profile, nil
}

// SignIn resolves an account by case-insensitive email. The literal "admin"
// alias requires the configured admin password; regular accounts match on
// email alone, the way the demo backend authenticates.
func (s *ProfileService) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	if strings.EqualFold(strings.TrimSpace(email), AdminSignInAlias) {
		if s.AdminPassword == "" || password != s.AdminPassword {
			return nil, fmt.Errorf("wrong admin password: %w", models.ErrInvalidCredentials)
		}
		profile, err := s.Profiles.GetByEmail(ctx, repository.AdminEmail)
		if err != nil {
			return nil, fmt.Errorf("admin account missing: %w", models.ErrInvalidCredentials)
		}
		return profile, nil
	}

	profile, err := s.Profiles.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("no account for %s: %w", email, models.ErrInvalidCredentials)
	}
	if profile.Status == models.StatusSuspended {
		return nil, fmt.Errorf("account %s is suspended: %w", profile.UserID, models.ErrInvalidCredentials)
	}
	log.Printf("✅ Signed in %s (%s)", profile.UserID, profile.Email)
	return profile, nil
}

// UpdateProfile replaces the matching profile wholesale, last writer wins.
// Unknown ids surface as not-found instead of silently leaving the store
// unchanged.
func (s *ProfileService) UpdateProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	if err := s.Profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.Profiles.Get(ctx, profile.UserID)
}

// DeleteProfile removes an account
func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	return s.Profiles.Delete(ctx, userID)
}

// Shortlist adds or removes a target from the user's shortlist
func (s *ProfileService) Shortlist(ctx context.Context, userID, targetID string, add bool) (*models.Profile, error) {
	return s.mutateList(ctx, userID, targetID, add, func(p *models.Profile, id string, add bool) {
		if add {
			p.Shortlisted = addToSet(p.Shortlisted, id)
		} else {
			p.Shortlisted = removeFromSet(p.Shortlisted, id)
		}
	})
}

// Block adds or removes a target from the user's block list
func (s *ProfileService) Block(ctx context.Context, userID, targetID string, add bool) (*models.Profile, error) {
	return s.mutateList(ctx, userID, targetID, add, func(p *models.Profile, id string, add bool) {
		if add {
			p.BlockedUsers = addToSet(p.BlockedUsers, id)
		} else {
			p.BlockedUsers = removeFromSet(p.BlockedUsers, id)
		}
	})
}

func (s *ProfileService) mutateList(ctx context.Context, userID, targetID string, add bool, apply func(*models.Profile, string, bool)) (*models.Profile, error) {
	if userID == targetID {
		return nil, fmt.Errorf("cannot target own profile: %w", models.ErrValidation)
	}
	if _, err := s.Profiles.Get(ctx, targetID); err != nil {
		return nil, err
	}
	profile, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	apply(profile, targetID, add)
	if err := s.Profiles.Update(ctx, *profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RecordProfileView notifies the profile owner that someone viewed them
func (s *ProfileService) RecordProfileView(ctx context.Context, ownerID, viewerID string) error {
	if ownerID == viewerID {
		return nil
	}
	if _, err := s.Profiles.Get(ctx, ownerID); err != nil {
		return err
	}
	viewer, err := s.Profiles.Get(ctx, viewerID)
	if err != nil {
		return err
	}
	s.Notifier.NotifyProfileViewed(ctx, ownerID, viewer.Name)
	return nil
}

// QuizCompleted records the compatibility-quiz completion event
func (s *ProfileService) QuizCompleted(ctx context.Context, userID string) error {
	if _, err := s.Profiles.Get(ctx, userID); err != nil {
		return err
	}
	s.Notifier.NotifyQuizCompleted(ctx, userID)
	return nil
}

// SetPhotoStatus moderates one gallery photo (admin back-office)
func (s *ProfileService) SetPhotoStatus(ctx context.Context, userID, photoID, status string) (*models.Profile, error) {
	switch status {
	case models.ApprovalApproved, models.ApprovalPending, models.ApprovalRejected:
	default:
		return nil, fmt.Errorf("unknown photo status %q: %w", status, models.ErrValidation)
	}

	profile, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := false
	for i, photo := range profile.Photos {
		if photo.PhotoID == photoID {
			profile.Photos[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("photo %q on profile %s: %w", photoID, userID, models.ErrNotFound)
	}
	if err := s.Profiles.Update(ctx, *profile); err != nil {
		return nil, err
	}
	log.Printf("✅ Photo %s on %s set to %s", photoID, userID, status)
	return profile, nil
}

// --- de-duplicating list helpers ---

func addToSet(list []string, id string) []string {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

func removeFromSet(list []string, id string) []string {
	out := list[:0]
	for _, existing := range list {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func contains(list []string, id string) bool {
	for _, existing := range list {
		if existing == id {
			return true
		}
	}
	return false
}
