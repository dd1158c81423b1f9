package repository

import (
	"context"
	"testing"

	"saathi_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileReadsReturnCopies(t *testing.T) {
	repo := NewMemoryProfileRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Profile{
		UserID:        "u1",
		Name:          "Ananya",
		Email:         "a@x.com",
		InterestsSent: []string{"u2"},
	}))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	got.Name = "tampered"
	got.InterestsSent[0] = "tampered"

	fresh, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ananya", fresh.Name)
	assert.Equal(t, []string{"u2"}, fresh.InterestsSent)
}

func TestProfileGetByEmailIsCaseInsensitive(t *testing.T) {
	repo := NewMemoryProfileRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Profile{UserID: "u1", Email: "Ananya@Example.com"}))

	got, err := repo.GetByEmail(ctx, "ananya@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProfileUpdateUnknownIDIsNotFound(t *testing.T) {
	repo := NewMemoryProfileRepository(0)

	err := repo.Update(context.Background(), models.Profile{UserID: "ghost"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProfileCreateDuplicateIsConflict(t *testing.T) {
	repo := NewMemoryProfileRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Profile{UserID: "u1"}))
	err := repo.Create(ctx, models.Profile{UserID: "u1"})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestUpdateManyIsAtomic(t *testing.T) {
	repo := NewMemoryProfileRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Profile{UserID: "u1", Name: "Ananya"}))

	// One unknown id in the batch leaves the known one untouched.
	err := repo.UpdateMany(ctx, []models.Profile{
		{UserID: "u1", Name: "Changed"},
		{UserID: "ghost", Name: "Ghost"},
	})
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ananya", got.Name)

	require.NoError(t, repo.Create(ctx, models.Profile{UserID: "u2", Name: "Rahul"}))
	require.NoError(t, repo.UpdateMany(ctx, []models.Profile{
		{UserID: "u1", Name: "Ananya S"},
		{UserID: "u2", Name: "Rahul V"},
	}))

	got, err = repo.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Rahul V", got.Name)
}

func TestFindByParticipantsIsOrderIndependent(t *testing.T) {
	repo := NewMemoryConversationRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Conversation{
		ConversationID: "c1",
		ParticipantIDs: []string{"u2", "u1"},
	}))

	got, err := repo.FindByParticipants(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ConversationID)

	got, err = repo.FindByParticipants(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ConversationID)

	_, err = repo.FindByParticipants(ctx, "u1", "u3")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConversationReadsReturnCopies(t *testing.T) {
	repo := NewMemoryConversationRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Conversation{
		ConversationID: "c1",
		ParticipantIDs: []string{"u1", "u2"},
		Messages:       []models.Message{{MessageID: "m1", Text: "hi"}},
		LastRead:       map[string]int64{"u1": 1},
	}))

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	got.Messages[0].Text = "tampered"
	got.LastRead["u1"] = 99

	fresh, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "hi", fresh.Messages[0].Text)
	assert.Equal(t, int64(1), fresh.LastRead["u1"])
}

func TestListForUserFiltersByParticipant(t *testing.T) {
	repo := NewMemoryConversationRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Conversation{ConversationID: "c1", ParticipantIDs: []string{"u1", "u2"}}))
	require.NoError(t, repo.Create(ctx, models.Conversation{ConversationID: "c2", ParticipantIDs: []string{"u2", "u3"}}))

	got, err := repo.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ConversationID)
}

func TestSeedDemoDataIncludesAdmin(t *testing.T) {
	repo := NewMemoryProfileRepository(0)
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, repo))

	admin, err := repo.GetByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	// Seeding twice would collide on ids.
	assert.ErrorIs(t, SeedDemoData(ctx, repo), models.ErrConflict)
}

func TestSeededProfilesHaveEmptyNotNilLists(t *testing.T) {
	repo := NewMemoryProfileRepository(0)
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, repo))

	// Seeded and registered profiles must serialize the same way: [] rather
	// than null.
	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	for _, list := range [][]string{
		got.InterestsSent,
		got.InterestsReceived,
		got.InterestsDeclined,
		got.Shortlisted,
		got.BlockedUsers,
	} {
		assert.NotNil(t, list)
		assert.Empty(t, list)
	}
}

func TestCloneKeepsEmptySlicesNonNil(t *testing.T) {
	repo := NewMemoryProfileRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Profile{
		UserID:        "u1",
		InterestsSent: []string{},
	}))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, got.InterestsSent)
}
