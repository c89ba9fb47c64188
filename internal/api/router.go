package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/events-hub-be/internal/api/handlers"
	"github.com/isdelr/events-hub-be/internal/services"
)

// NewRouter creates and configures a new Chi router. allowedOrigins
// defaults to every origin when empty.
func NewRouter(eventService services.EventServiceProvider, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	eventHandler := handlers.NewEventHandler(eventService)

	r.Get("/healthz", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.GetAll)
			r.Get("/{eventId}", eventHandler.Get)
		})
	})

	return r
}
