package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"saathi_server/models"
	"saathi_server/repository"
	"saathi_server/routes"
	"saathi_server/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	profileRepo := repository.NewMemoryProfileRepository(0)
	conversationRepo := repository.NewMemoryConversationRepository(0)
	notificationRepo := repository.NewMemoryNotificationRepository(0)
	require.NoError(t, repository.SeedDemoData(context.Background(), profileRepo))

	notificationService := &services.NotificationService{Notifications: notificationRepo}
	profileService := &services.ProfileService{
		Profiles:      profileRepo,
		Notifier:      notificationService,
		AdminPassword: "hunter2",
	}
	interestService := services.NewInterestService(profileRepo, conversationRepo, notificationService)
	chatService := services.NewChatService(conversationRepo, profileRepo, services.NewListenerRegistry())
	chatService.Replies = nil // keep HTTP tests deterministic

	r := mux.NewRouter()
	routes.RegisterRoutes(r)
	routes.RegisterAuthRoutes(r, profileService)
	routes.RegisterProfileRoutes(r, profileService)
	routes.RegisterInterestRoutes(r, interestService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterNotificationRoutes(r, notificationService)
	return r
}

func doJSON(t *testing.T, r *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestSignInEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/auth/signin", map[string]string{"email": "ananya@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "u1", profile.UserID)

	rec = doJSON(t, r, http.MethodPost, "/api/auth/signin", map[string]string{"email": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterEndpointForcesPending(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":           "Meera Iyer",
		"email":          "meera@example.com",
		"approvalStatus": "approved",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var response struct {
		Profile models.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.ApprovalPending, response.Profile.ApprovalStatus)
	assert.Equal(t, models.StatusActive, response.Profile.Status)

	// Duplicate email maps to 409.
	rec = doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"name":  "Meera Again",
		"email": "meera@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInterestFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/interests", map[string]string{"senderId": "u1", "receiverId": "u2"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Duplicate send maps to 409.
	rec = doJSON(t, r, http.MethodPost, "/api/interests", map[string]string{"senderId": "u1", "receiverId": "u2"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/interests/respond", map[string]string{
		"userId": "u2", "otherUserId": "u1", "action": "accept",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result services.AcceptResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.ConversationID)

	// The new conversation accepts messages.
	path := fmt.Sprintf("/api/conversations/%s/messages", result.ConversationID)
	rec = doJSON(t, r, http.MethodPost, path, map[string]string{"senderId": "u1", "text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var messages []models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Text)

	// Derived state reads accepted.
	rec = doJSON(t, r, http.MethodGet, "/api/interests/state?userId=u1&otherUserId=u2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), models.InterestStateAccepted)
}

func TestUnknownConversationIs404(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/conversations/missing/messages", map[string]string{"senderId": "u1", "text": "hi"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/conversations/missing/messages", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	r := newTestRouter(t)

	// Sending an interest notifies the recipient.
	rec := doJSON(t, r, http.MethodPost, "/api/interests", map[string]string{"senderId": "u1", "receiverId": "u2"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/notifications?userId=u2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var notifications []models.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)

	rec = doJSON(t, r, http.MethodPatch, "/api/notifications/"+notifications[0].NotificationID+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isRead":true`)
}

func TestPhotoModerationEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPatch, "/api/admin/profiles/u1/photos/u1-p2", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/api/admin/profiles/u1/photos/ghost", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
