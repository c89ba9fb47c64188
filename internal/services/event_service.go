package services

import (
	"context"
	"time"

	"github.com/isdelr/events-hub-be/internal/database"
	"github.com/isdelr/events-hub-be/internal/models"
)

// EventsCollection is the default collection holding event documents.
const EventsCollection = "events"

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	// GetEventByID returns nil, nil when no event has the given ID.
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
}

// EventService reads events from the document store.
type EventService struct {
	store      database.DocumentStore
	collection string
	timeout    time.Duration
}

// NewEventService creates a new EventService. An empty collection means
// EventsCollection; a zero timeout leaves deadlines to the store client.
func NewEventService(store database.DocumentStore, collection string, timeout time.Duration) *EventService {
	if collection == "" {
		collection = EventsCollection
	}
	return &EventService{store: store, collection: collection, timeout: timeout}
}

// GetAllEvents returns every stored event in store order. An empty
// collection yields an empty, non-nil slice.
func (s *EventService) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	docs, err := s.store.GetAll(ctx, s.collection)
	if err != nil {
		return nil, storeError("list events", err)
	}

	events := make([]models.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, models.EventFromDocument(doc.ID, doc.Data))
	}
	return events, nil
}

// GetEventByID returns the event with the given ID, or nil if it does not exist.
func (s *EventService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	if id == "" {
		return nil, ErrEmptyEventID
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	doc, found, err := s.store.Get(ctx, s.collection, id)
	if err != nil {
		return nil, storeError("get event "+id, err)
	}
	if !found {
		return nil, nil
	}

	event := models.EventFromDocument(doc.ID, doc.Data)
	return &event, nil
}

// callContext detaches the store call from the caller's cancellation, so an
// aborted request lets the round-trip finish, and applies the store timeout.
func (s *EventService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}
