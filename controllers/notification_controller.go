package controllers

import (
	"encoding/json"
	"net/http"

	"saathi_server/services"

	"github.com/gorilla/mux"
)

// NotificationController handles the notification read surface
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController creates a new instance of NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// HandleGetNotifications returns a user's notifications, newest first
func (c *NotificationController) HandleGetNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	notifications, err := c.NotificationService.GetNotifications(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// HandleMarkRead flips one notification's read flag
func (c *NotificationController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := mux.Vars(r)["notificationId"]

	notification, err := c.NotificationService.MarkRead(r.Context(), notificationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notification)
}

// HandleMarkAllRead flips every unread notification for a user
func (c *NotificationController) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "Missing required field: userId"}`, http.StatusBadRequest)
		return
	}

	updated, err := c.NotificationService.MarkAllRead(r.Context(), request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"updated": updated,
	})
}
