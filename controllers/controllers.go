package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"saathi_server/models"
)

// HealthCheckHandler responds with the service status
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// WelcomeHandler responds with a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Welcome to Saathi"})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the service error kinds to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		log.Printf("❌ Internal error: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
