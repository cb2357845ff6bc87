package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/helpers"
)

// NewRouter initializes the HTTP router with all application routes.
// metricsHandler may be nil, in which case /metrics is not served.
func NewRouter(eventController *controllers.EventController, registrationController *controllers.RegistrationController, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/current", eventController.GetCurrentEvent)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", registrationController.SubmitForEvent)
	mux.HandleFunc("POST /registrations", registrationController.Submit)

	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
