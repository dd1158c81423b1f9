package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"saathi_server/models"
	"saathi_server/services"
)

// AuthController handles sign-in and registration
type AuthController struct {
	ProfileService *services.ProfileService
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(profileService *services.ProfileService) *AuthController {
	return &AuthController{ProfileService: profileService}
}

// HandleSignIn resolves an account from email and password
func (c *AuthController) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.Email == "" {
		http.Error(w, `{"error": "Missing required field: email"}`, http.StatusBadRequest)
		return
	}

	profile, err := c.ProfileService.SignIn(r.Context(), request.Email, request.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleRegister creates a new account in pending approval state
func (c *AuthController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Printf("Failed to decode request body: %v", err)
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	created, err := c.ProfileService.Register(r.Context(), profile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Profile registered successfully",
		"profile": created,
	})
}
