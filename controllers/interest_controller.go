package controllers

import (
	"encoding/json"
	"net/http"

	"saathi_server/models"
	"saathi_server/services"
)

// InterestController handles the interest lifecycle endpoints
type InterestController struct {
	InterestService *services.InterestService
}

// NewInterestController creates a new instance of InterestController
func NewInterestController(interestService *services.InterestService) *InterestController {
	return &InterestController{InterestService: interestService}
}

// HandleSendInterest records a one-directional interest
func (c *InterestController) HandleSendInterest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SenderID   string `json:"senderId"`
		ReceiverID string `json:"receiverId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.SenderID == "" || request.ReceiverID == "" {
		http.Error(w, `{"error": "Missing required fields: senderId, receiverId"}`, http.StatusBadRequest)
		return
	}

	sender, err := c.InterestService.Send(r.Context(), request.SenderID, request.ReceiverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Interest sent",
		"profile": sender,
	})
}

// HandleRespond accepts or declines a pending interest
func (c *InterestController) HandleRespond(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string `json:"userId"`
		OtherUserID string `json:"otherUserId"`
		Action      string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.OtherUserID == "" {
		http.Error(w, `{"error": "Missing required fields: userId, otherUserId"}`, http.StatusBadRequest)
		return
	}

	switch request.Action {
	case models.InterestActionAccept:
		result, err := c.InterestService.Accept(r.Context(), request.UserID, request.OtherUserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	case models.InterestActionDecline:
		profile, err := c.InterestService.Decline(r.Context(), request.UserID, request.OtherUserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Interest declined",
			"profile": profile,
		})
	default:
		http.Error(w, `{"error": "Invalid action, expected accept or decline"}`, http.StatusBadRequest)
	}
}

// HandleState returns the derived interest state between two profiles
func (c *InterestController) HandleState(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	otherUserID := r.URL.Query().Get("otherUserId")
	if userID == "" || otherUserID == "" {
		http.Error(w, `{"error": "userId and otherUserId are required"}`, http.StatusBadRequest)
		return
	}

	state, err := c.InterestService.StateBetween(r.Context(), userID, otherUserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
