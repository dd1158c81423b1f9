package routes

import (
	"saathi_server/controllers"
	"saathi_server/services"

	"github.com/gorilla/mux"
)

// RegisterMediaRoutes sets up routes for photo presigning under /api/media
func RegisterMediaRoutes(r *mux.Router, mediaService *services.MediaService) {
	controller := controllers.NewMediaController(mediaService)

	mediaRouter := r.PathPrefix("/api/media").Subrouter()
	mediaRouter.HandleFunc("/upload-url", controller.HandleUploadURL).Methods("POST")
	mediaRouter.HandleFunc("/read-url", controller.HandleReadURL).Methods("GET")
}
