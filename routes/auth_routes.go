package routes

import (
	"saathi_server/controllers"
	"saathi_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up routes for sign-in and registration under /api/auth
func RegisterAuthRoutes(r *mux.Router, profileService *services.ProfileService) {
	controller := controllers.NewAuthController(profileService)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/signin", controller.HandleSignIn).Methods("POST")
	authRouter.HandleFunc("/register", controller.HandleRegister).Methods("POST")
}
