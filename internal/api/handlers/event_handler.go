package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/isdelr/events-hub-be/internal/services"
	"github.com/rs/zerolog/log"
)

// EventHandler handles HTTP requests related to events.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetAll handles the request to list every event.
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.GetAllEvents(r.Context())
	if err != nil {
		log.Error().Err(err).Str("requestId", middleware.GetReqID(r.Context())).Msg("Failed to retrieve events")
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// Get handles the request to get a single event by its ID.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventId")

	event, err := h.service.GetEventByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("eventId", id).Str("requestId", middleware.GetReqID(r.Context())).Msg("Failed to retrieve event")
		respondStoreError(w, err)
		return
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	respondJSON(w, http.StatusOK, event)
}

func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyEventID):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrStoreTimeout):
		respondError(w, http.StatusGatewayTimeout, "event store timed out")
	case errors.Is(err, services.ErrStoreUnavailable):
		respondError(w, http.StatusServiceUnavailable, "event store unavailable")
	default:
		respondError(w, http.StatusInternalServerError, "failed to retrieve events")
	}
}
