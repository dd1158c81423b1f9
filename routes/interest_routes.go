package routes

import (
	"saathi_server/controllers"
	"saathi_server/services"

	"github.com/gorilla/mux"
)

// RegisterInterestRoutes sets up routes for the interest lifecycle under /api/interests
func RegisterInterestRoutes(r *mux.Router, interestService *services.InterestService) {
	controller := controllers.NewInterestController(interestService)

	interestRouter := r.PathPrefix("/api/interests").Subrouter()
	interestRouter.HandleFunc("", controller.HandleSendInterest).Methods("POST")
	interestRouter.HandleFunc("/respond", controller.HandleRespond).Methods("POST")
	interestRouter.HandleFunc("/state", controller.HandleState).Methods("GET")
}
