package events

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zipparents/backend/internal/service/user"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu     sync.Mutex
	events map[string]*Event
}

// NewMockService creates a new mock event store.
func NewMockService() *MockService {
	return &MockService{events: make(map[string]*Event)}
}

func (m *MockService) Create(_ context.Context, hostUID string, params CreateParams) (*Event, error) {
	if !user.IsValidZip(params.ZipCode) {
		return nil, ErrInvalidZip
	}
	if !params.EndsAt.After(params.StartsAt) {
		return nil, ErrInvalidTime
	}

	m.mu.Lock()
	defer m.mu.Unlock()

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
	m.events[e.ID] = e
	cp := copyEvent(e)
	return cp, nil
}

func (m *MockService) Get(_ context.Context, id string) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyEvent(e), nil
}

func (m *MockService) ListUpcoming(_ context.Context, zipPrefix string, limit int) ([]*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	var out []*Event
	for _, e := range m.events {
		if e.Canceled || e.EndsAt.Before(now) || !strings.HasPrefix(e.ZipCode, zipPrefix) {
			continue
		}
		out = append(out, copyEvent(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockService) Join(_ context.Context, id, uid string) (*Event, error) {
	return m.mutate(id, func(e *Event) error {
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

func (m *MockService) Leave(_ context.Context, id, uid string) (*Event, error) {
	return m.mutate(id, func(e *Event) error {
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

func (m *MockService) Cancel(_ context.Context, id, hostUID string) error {
	_, err := m.mutate(id, func(e *Event) error {
		if e.HostUID != hostUID {
			return ErrNotHost
		}
		e.Canceled = true
		return nil
	})
	return err
}

func (m *MockService) mutate(id string, fn func(*Event) error) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(e); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Now().UTC()
	return copyEvent(e), nil
}

func copyEvent(e *Event) *Event {
	cp := *e
	cp.Attendees = append([]string(nil), e.Attendees...)
	return &cp
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
