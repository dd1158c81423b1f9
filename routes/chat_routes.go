package routes

import (
	"saathi_server/controllers"
	"saathi_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for conversations under /api/conversations
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/conversations").Subrouter()
	chatRouter.HandleFunc("", controller.HandleGetConversations).Methods("GET")
	chatRouter.HandleFunc("/{conversationId}/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/{conversationId}/messages", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/{conversationId}/read", controller.HandleMarkRead).Methods("POST")
}
