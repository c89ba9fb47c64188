package services

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/isdelr/events-hub-be/internal/database"
	"github.com/isdelr/events-hub-be/internal/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func seededStore(t *testing.T) *database.MemoryStore {
	t.Helper()
	store := database.NewMemoryStore()
	store.Put(EventsCollection, "evt1", map[string]interface{}{
		"title":   "Hack Night",
		"likes":   int64(3),
		"likedBy": []interface{}{"u1", "u2", "u3"},
	})
	return store
}

// blockingStore never answers until its context is done.
type blockingStore struct{}

func (blockingStore) GetAll(ctx context.Context, _ string) ([]database.Document, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingStore) Get(ctx context.Context, _, _ string) (*database.Document, bool, error) {
	<-ctx.Done()
	return nil, false, ctx.Err()
}

func TestGetEventByID(t *testing.T) {
	svc := NewEventService(seededStore(t), "", 0)

	got, err := svc.GetEventByID(context.Background(), "evt1")
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	want := &models.Event{
		ID:      "evt1",
		Title:   "Hack Night",
		Likes:   3,
		LikedBy: []string{"u1", "u2", "u3"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetEventByID = %+v, want %+v", got, want)
	}
}

func TestGetEventByIDAbsent(t *testing.T) {
	svc := NewEventService(seededStore(t), "", 0)

	got, err := svc.GetEventByID(context.Background(), "evt404")
	if err != nil {
		t.Fatalf("absent event returned error: %v", err)
	}
	if got != nil {
		t.Errorf("GetEventByID(evt404) = %+v, want nil", got)
	}
}

func TestGetEventByIDEmpty(t *testing.T) {
	svc := NewEventService(seededStore(t), "", 0)

	if _, err := svc.GetEventByID(context.Background(), ""); !errors.Is(err, ErrEmptyEventID) {
		t.Errorf("err = %v, want ErrEmptyEventID", err)
	}
}

func TestGetAllEvents(t *testing.T) {
	store := seededStore(t)
	generated := store.Put(EventsCollection, "", map[string]interface{}{"title": "Career Fair"})
	store.Put("other", "x", map[string]interface{}{"title": "not an event"})

	svc := NewEventService(store, "", 0)
	events, err := svc.GetAllEvents(context.Background())
	if err != nil {
		t.Fatalf("GetAllEvents: %v", err)
	}

	var ids []string
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	if !reflect.DeepEqual(ids, []string{"evt1", generated}) {
		t.Errorf("ids = %v, want [evt1 %s]", ids, generated)
	}
	if events[0].Title != "Hack Night" || events[1].Title != "Career Fair" {
		t.Errorf("unexpected titles: %+v", events)
	}
}

func TestGetAllEventsEmpty(t *testing.T) {
	svc := NewEventService(database.NewMemoryStore(), "", 0)

	events, err := svc.GetAllEvents(context.Background())
	if err != nil {
		t.Fatalf("GetAllEvents: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("GetAllEvents = %#v, want empty non-nil slice", events)
	}
}

func TestCustomCollection(t *testing.T) {
	store := database.NewMemoryStore()
	store.Put("staging-events", "s1", map[string]interface{}{"title": "Staged"})

	svc := NewEventService(store, "staging-events", 0)
	got, err := svc.GetEventByID(context.Background(), "s1")
	if err != nil || got == nil || got.Title != "Staged" {
		t.Errorf("GetEventByID = %+v, %v", got, err)
	}
}

func TestStoreErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		want     error
	}{
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), ErrStoreUnavailable},
		{"generic", errors.New("boom"), ErrStoreUnavailable},
		{"grpc deadline", status.Error(codes.DeadlineExceeded, "slow"), ErrStoreTimeout},
		{"context deadline", context.DeadlineExceeded, ErrStoreTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededStore(t)
			store.FailWith(tt.storeErr)
			svc := NewEventService(store, "", 0)

			events, err := svc.GetAllEvents(context.Background())
			if !errors.Is(err, tt.want) || events != nil {
				t.Errorf("GetAllEvents = %v, %v; want nil, %v", events, err, tt.want)
			}
			if !errors.Is(err, tt.storeErr) {
				t.Errorf("GetAllEvents error %v does not wrap %v", err, tt.storeErr)
			}

			event, err := svc.GetEventByID(context.Background(), "evt1")
			if !errors.Is(err, tt.want) || event != nil {
				t.Errorf("GetEventByID = %v, %v; want nil, %v", event, err, tt.want)
			}
		})
	}
}

func TestStoreTimeout(t *testing.T) {
	svc := NewEventService(blockingStore{}, "", 20*time.Millisecond)

	if _, err := svc.GetAllEvents(context.Background()); !errors.Is(err, ErrStoreTimeout) {
		t.Errorf("GetAllEvents err = %v, want ErrStoreTimeout", err)
	}
	if _, err := svc.GetEventByID(context.Background(), "evt1"); !errors.Is(err, ErrStoreTimeout) {
		t.Errorf("GetEventByID err = %v, want ErrStoreTimeout", err)
	}
}

func TestCanceledRequestStillCompletes(t *testing.T) {
	svc := NewEventService(seededStore(t), "", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := svc.GetEventByID(ctx, "evt1")
	if err != nil || got == nil {
		t.Errorf("GetEventByID with canceled context = %+v, %v", got, err)
	}
}

func TestConcurrentReads(t *testing.T) {
	store := seededStore(t)
	for i := 0; i < 10; i++ {
		store.Put(EventsCollection, "", map[string]interface{}{"likes": i})
	}
	svc := NewEventService(store, "", time.Second)

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			events, err := svc.GetAllEvents(context.Background())
			if err != nil {
				errs <- err
				return
			}
			if len(events) != 11 {
				errs <- errors.New("wrong event count")
			}
		}()
		go func() {
			defer wg.Done()
			event, err := svc.GetEventByID(context.Background(), "evt1")
			if err != nil {
				errs <- err
				return
			}
			if event == nil || event.Title != "Hack Night" {
				errs <- errors.New("wrong event")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestGetAllMatchesStoreContents(t *testing.T) {
	store := database.NewMemoryStore()
	var want []string
	for i := 0; i < 25; i++ {
		want = append(want, store.Put(EventsCollection, "", map[string]interface{}{"likes": i}))
	}
	svc := NewEventService(store, "", 0)

	events, err := svc.GetAllEvents(context.Background())
	if err != nil {
		t.Fatalf("GetAllEvents: %v", err)
	}

	var got []string
	seen := map[string]bool{}
	for _, e := range events {
		if seen[e.ID] {
			t.Errorf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
		got = append(got, e.ID)
	}
	sort.Strings(got)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}
