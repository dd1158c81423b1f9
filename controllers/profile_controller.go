package controllers

import (
	"encoding/json"
	"net/http"

	"saathi_server/models"
	"saathi_server/services"

	"github.com/gorilla/mux"
)

// ProfileController handles requests related to profiles
type ProfileController struct {
	ProfileService *services.ProfileService
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// HandleGetProfiles returns every profile
func (c *ProfileController) HandleGetProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := c.ProfileService.GetProfiles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// HandleGetProfile returns one profile by id
func (c *ProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleUpdateProfile replaces an existing profile wholesale
func (c *ProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	profile.UserID = userID

	updated, err := c.ProfileService.UpdateProfile(r.Context(), profile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"profile": updated,
	})
}

// HandleDeleteProfile removes a profile
func (c *ProfileController) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := c.ProfileService.DeleteProfile(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile deleted successfully"})
}

// HandleShortlist adds or removes a shortlist entry depending on the method
func (c *ProfileController) HandleShortlist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profile, err := c.ProfileService.Shortlist(r.Context(), vars["userId"], vars["targetId"], r.Method == http.MethodPost)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleBlock adds or removes a block entry depending on the method
func (c *ProfileController) HandleBlock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profile, err := c.ProfileService.Block(r.Context(), vars["userId"], vars["targetId"], r.Method == http.MethodPost)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleRecordView records a profile view and notifies the owner
func (c *ProfileController) HandleRecordView(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var request struct {
		ViewerID string `json:"viewerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.ViewerID == "" {
		http.Error(w, `{"error": "Missing required field: viewerId"}`, http.StatusBadRequest)
		return
	}

	if err := c.ProfileService.RecordProfileView(r.Context(), userID, request.ViewerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleQuizCompleted records a compatibility-quiz completion
func (c *ProfileController) HandleQuizCompleted(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := c.ProfileService.QuizCompleted(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleModeratePhoto sets a gallery photo's approval status (admin back-office)
func (c *ProfileController) HandleModeratePhoto(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var request struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Status == "" {
		http.Error(w, `{"error": "Missing required field: status"}`, http.StatusBadRequest)
		return
	}

	profile, err := c.ProfileService.SetPhotoStatus(r.Context(), vars["userId"], vars["photoId"], request.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Photo status updated successfully",
		"profile": profile,
	})
}
