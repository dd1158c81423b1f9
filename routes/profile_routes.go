package routes

import (
	"saathi_server/controllers"
	"saathi_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterProfileRoutes(r *mux.Router, profileService *services.ProfileService) {
	controller := controllers.NewProfileController(profileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.HandleGetProfiles).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.HandleGetProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.HandleUpdateProfile).Methods("PUT")
	profileRouter.HandleFunc("/{userId}", controller.HandleDeleteProfile).Methods("DELETE")
	profileRouter.HandleFunc("/{userId}/shortlist/{targetId}", controller.HandleShortlist).Methods("POST", "DELETE")
	profileRouter.HandleFunc("/{userId}/block/{targetId}", controller.HandleBlock).Methods("POST", "DELETE")
	profileRouter.HandleFunc("/{userId}/views", controller.HandleRecordView).Methods("POST")
	profileRouter.HandleFunc("/{userId}/quiz-completions", controller.HandleQuizCompleted).Methods("POST")

	// Admin back-office photo moderation
	adminRouter := r.PathPrefix("/api/admin").Subrouter()
	adminRouter.HandleFunc("/profiles/{userId}/photos/{photoId}", controller.HandleModeratePhoto).Methods("PATCH")
}
