package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"saathi_server/services"

	"github.com/gorilla/mux"
)

// ChatController handles conversation and message endpoints
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleGetConversations returns conversations, optionally scoped to one user
func (c *ChatController) HandleGetConversations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	conversations, err := c.ChatService.GetConversations(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversations)
}

// HandleGetMessages returns a conversation's messages, oldest first
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["conversationId"]

	messages, err := c.ChatService.GetMessages(r.Context(), conversationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// HandleSendMessage appends a message to a conversation
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["conversationId"]

	var request struct {
		SenderID string `json:"senderId"`
		Text     string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.SenderID == "" || request.Text == "" {
		http.Error(w, `{"error": "Missing required fields: senderId, text"}`, http.StatusBadRequest)
		return
	}

	log.Printf("📩 Send message request for conversation %s from %s", conversationID, request.SenderID)

	message, err := c.ChatService.SendMessage(r.Context(), conversationID, request.SenderID, request.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"messageSent": message,
	})
}

// HandleMarkRead marks a conversation read for one participant
func (c *ChatController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["conversationId"]

	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "Missing required field: userId"}`, http.StatusBadRequest)
		return
	}

	conversation, err := c.ChatService.MarkConversationRead(r.Context(), conversationID, request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}
