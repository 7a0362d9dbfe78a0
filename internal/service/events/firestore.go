package events

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/zipparents/backend/internal/platform/logging"
	"github.com/zipparents/backend/internal/service/user"
)

const eventsCollection = "events"

// firestoreEvent maps to the Firestore document structure.
type firestoreEvent struct {
	HostUID     string    `firestore:"host_uid"`
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	ZipCode     string    `firestore:"zip_code"`
	Location    string    `firestore:"location"`
	StartsAt    time.Time `firestore:"starts_at"`
	EndsAt      time.Time `firestore:"ends_at"`
	Capacity    int       `firestore:"capacity"`
	Attendees   []string  `firestore:"attendees"`
	Canceled    bool      `firestore:"canceled"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func (fe *firestoreEvent) decode(id string) *Event {
	return &Event{
		ID:          id,
		HostUID:     fe.HostUID,
		Title:       fe.Title,
		Description: fe.Description,
		ZipCode:     fe.ZipCode,
		Location:    fe.Location,
		StartsAt:    fe.StartsAt,
		EndsAt:      fe.EndsAt,
		Capacity:    fe.Capacity,
		Attendees:   fe.Attendees,
		Canceled:    fe.Canceled,
		CreatedAt:   fe.CreatedAt,
		UpdatedAt:   fe.UpdatedAt,
	}
}

func encode(e *Event) firestoreEvent {
	return firestoreEvent{
		HostUID:     e.HostUID,
		Title:       e.Title,
		Description: e.Description,
		ZipCode:     e.ZipCode,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    e.Capacity,
		Attendees:   e.Attendees,
		Canceled:    e.Canceled,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// FirestoreStore implements Service using Firestore with transactions for
// attendance changes.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Create validates and stores a new event with the host as first attendee.
func (s *FirestoreStore) Create(ctx context.Context, hostUID string, params CreateParams) (*Event, error) {
	if !user.IsValidZip(params.ZipCode) {
		return nil, ErrInvalidZip
	}
	if !params.EndsAt.After(params.StartsAt) {
		return nil, ErrInvalidTime
	}

	now := time.Now().UTC()
	e := &Event{
		ID:          uuid.NewString(),
		HostUID:     hostUID,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		ZipCode:     params.ZipCode,
		Location:    strings.TrimSpace(params.Location),
		StartsAt:    params.StartsAt.UTC(),
		EndsAt:      params.EndsAt.UTC(),
		Capacity:    params.Capacity,
		Attendees:   []string{hostUID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.client.Collection(eventsCollection).Doc(e.ID).Create(ctx, encode(e))
	if err != nil {
		applog.LogAuditEvent(ctx, "create", hostUID, "event", e.ID, "failure", nil)
		return nil, err
	}
	applog.LogAuditEvent(ctx, "create", hostUID, "event", e.ID, "success", nil)
	return e, nil
}

// Get retrieves an event by ID.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*Event, error) {
	doc, err := s.client.Collection(eventsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fe firestoreEvent
	if err := doc.DataTo(&fe); err != nil {
		return nil, err
	}
	return fe.decode(id), nil
}

// ListUpcoming returns non-canceled events in the zip area ending in the
// future, soonest first. Canceled and past events are filtered client-side;
// the zip prefix is the only range filter Firestore allows in one query.
func (s *FirestoreStore) ListUpcoming(ctx context.Context, zipPrefix string, limit int) ([]*Event, error) {
	iter := s.client.Collection(eventsCollection).
		Where("zip_code", ">=", zipPrefix).
		Where("zip_code", "<", zipPrefix+"\uf8ff").
		Documents(ctx)
	defer iter.Stop()

	now := time.Now().UTC()
	var events []*Event
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var fe firestoreEvent
		if err := doc.DataTo(&fe); err != nil {
			return nil, err
		}
		e := fe.decode(doc.Ref.ID)
		if e.Canceled || e.EndsAt.Before(now) {
			continue
		}
		events = append(events, e)
	}

	sortByStart(events)
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// Join adds uid to the attendee set inside a transaction so capacity cannot
// be oversubscribed by concurrent joins.
func (s *FirestoreStore) Join(ctx context.Context, id, uid string) (*Event, error) {
	return s.mutate(ctx, id, "join", uid, func(e *Event) error {
		if e.Canceled {
			return ErrCanceled
		}
		if e.Attending(uid) {
			return ErrAlreadyJoined
		}
		if e.Full() {
			return ErrEventFull
		}
		e.Attendees = append(e.Attendees, uid)
		return nil
	})
}

// Leave removes uid from the attendee set. The host cannot leave their own
// event; they cancel it instead.
func (s *FirestoreStore) Leave(ctx context.Context, id, uid string) (*Event, error) {
	return s.mutate(ctx, id, "leave", uid, func(e *Event) error {
		if e.HostUID == uid {
			return ErrHostLeaving
		}
		if !e.Attending(uid) {
			return ErrNotAttending
		}
		kept := e.Attendees[:0]
		for _, a := range e.Attendees {
			if a != uid {
				kept = append(kept, a)
			}
		}
		e.Attendees = kept
		return nil
	})
}

// Cancel marks the event canceled. Only the host may cancel.
func (s *FirestoreStore) Cancel(ctx context.Context, id, hostUID string) error {
	_, err := s.mutate(ctx, id, "cancel", hostUID, func(e *Event) error {
		if e.HostUID != hostUID {
			return ErrNotHost
		}
		e.Canceled = true
		return nil
	})
	return err
}

// mutate runs a read-modify-write transaction against one event document.
func (s *FirestoreStore) mutate(ctx context.Context, id, action, uid string, fn func(*Event) error) (*Event, error) {
	docRef := s.client.Collection(eventsCollection).Doc(id)

	var result *Event
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fe firestoreEvent
		if err := doc.DataTo(&fe); err != nil {
			return err
		}
		e := fe.decode(id)
		if err := fn(e); err != nil {
			return err
		}
		e.UpdatedAt = time.Now().UTC()
		if err := tx.Set(docRef, encode(e)); err != nil {
			return err
		}
		result = e
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, action, uid, "event", id, "failure", nil)
		return nil, err
	}
	applog.LogAuditEvent(ctx, action, uid, "event", id, "success", nil)
	return result, nil
}

func sortByStart(events []*Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartsAt.Before(events[j].StartsAt)
	})
}
