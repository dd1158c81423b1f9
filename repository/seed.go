package repository

import (
	"context"
	"fmt"

	"saathi_server/models"
)

// AdminEmail is the account the literal "admin" sign-in alias resolves to
const AdminEmail = "admin@saathi.app"

// SeedDemoData loads the demo dataset the in-memory backend starts with:
// the back-office admin, a vendor, and a handful of members with photos in
// various moderation states.
func SeedDemoData(ctx context.Context, profiles ProfileRepository) error {
	demo := []models.Profile{
		{
			UserID:         "admin-1",
			Name:           "Platform Admin",
			Email:          AdminEmail,
			Role:           models.RoleAdmin,
			Status:         models.StatusActive,
			ApprovalStatus: models.ApprovalApproved,
			Verified:       true,
			CreatedAt:      "2025-01-01T00:00:00Z",
		},
		{
			UserID:         "u1",
			Name:           "Ananya Sharma",
			Email:          "ananya@example.com",
			Role:           models.RoleUser,
			Status:         models.StatusActive,
			ApprovalStatus: models.ApprovalApproved,
			PhotoURL:       "https://cdn.saathi.app/p/ananya.jpg",
			Online:         true,
			Premium:        true,
			Verified:       true,
			Photos: []models.Photo{
				{PhotoID: "u1-p1", URL: "https://cdn.saathi.app/p/ananya-1.jpg", Status: models.ApprovalApproved},
				{PhotoID: "u1-p2", URL: "https://cdn.saathi.app/p/ananya-2.jpg", Status: models.ApprovalPending},
			},
			CreatedAt: "2025-02-10T09:30:00Z",
		},
		{
			UserID:         "u2",
			Name:           "Rahul Verma",
			Email:          "rahul@example.com",
			Role:           models.RoleUser,
			Status:         models.StatusActive,
			ApprovalStatus: models.ApprovalApproved,
			PhotoURL:       "https://cdn.saathi.app/p/rahul.jpg",
			Verified:       true,
			Photos: []models.Photo{
				{PhotoID: "u2-p1", URL: "https://cdn.saathi.app/p/rahul-1.jpg", Status: models.ApprovalApproved},
			},
			CreatedAt: "2025-02-12T14:00:00Z",
		},
		{
			UserID:         "u3",
			Name:           "Priya Nair",
			Email:          "priya@example.com",
			Role:           models.RoleUser,
			Status:         models.StatusActive,
			ApprovalStatus: models.ApprovalPending,
			Online:         true,
			CreatedAt:      "2025-03-01T08:15:00Z",
		},
		{
			UserID:         "v1",
			Name:           "Royal Banquets",
			Email:          "bookings@royalbanquets.example.com",
			Role:           models.RoleVendor,
			Status:         models.StatusActive,
			ApprovalStatus: models.ApprovalApproved,
			CreatedAt:      "2025-01-20T11:00:00Z",
		},
	}

	for _, profile := range demo {
		// Lists start empty, not absent, so seeded profiles serialize the
		// same way registered ones do.
		profile.InterestsSent = emptyIfNil(profile.InterestsSent)
		profile.InterestsReceived = emptyIfNil(profile.InterestsReceived)
		profile.InterestsDeclined = emptyIfNil(profile.InterestsDeclined)
		profile.Shortlisted = emptyIfNil(profile.Shortlisted)
		profile.BlockedUsers = emptyIfNil(profile.BlockedUsers)
		if err := profiles.Create(ctx, profile); err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", profile.UserID, err)
		}
	}
	return nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
