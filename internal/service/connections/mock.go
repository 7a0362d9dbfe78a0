package connections

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu    sync.Mutex
	conns map[string]*Connection
}

// NewMockService creates a new mock connection store.
func NewMockService() *MockService {
	return &MockService{conns: make(map[string]*Connection)}
}

// Seed inserts a connection directly.
func (m *MockService) Seed(c *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	if cp.ID == "" {
		cp.ID = PairID(c.RequesterUID, c.RecipientUID)
	}
	m.conns[cp.ID] = &cp
}

func (m *MockService) Request(_ context.Context, requesterUID, recipientUID string) (*Connection, error) {
	if requesterUID == recipientUID {
		return nil, ErrSelfConnection
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := PairID(requesterUID, recipientUID)
	if existing, ok := m.conns[id]; ok && existing.Status != StatusDeclined {
		return nil, ErrAlreadyExists
	}

	c := &Connection{
		ID:           id,
		RequesterUID: requesterUID,
		RecipientUID: recipientUID,
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	m.conns[id] = c
	cp := *c
	return &cp, nil
}

func (m *MockService) Respond(_ context.Context, id, uid string, accept bool) (*Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conns[id]
	if !ok {
		return nil, ErrNotFound
	}
	if c.RecipientUID != uid {
		return nil, ErrNotRecipient
	}
	if c.Status != StatusPending {
		return nil, ErrNotPending
	}
	if accept {
		c.Status = StatusAccepted
	} else {
		c.Status = StatusDeclined
	}
	c.RespondedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}

func (m *MockService) Remove(_ context.Context, id, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conns[id]
	if !ok || (c.RequesterUID != uid && c.RecipientUID != uid) {
		return ErrNotFound
	}
	delete(m.conns, id)
	return nil
}

func (m *MockService) Get(_ context.Context, id string) (*Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conns[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockService) ListForUser(_ context.Context, uid string, limit int) ([]*Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Connection
	for _, c := range m.conns {
		if c.RequesterUID == uid || c.RecipientUID == uid {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lastActivity(out[i]).After(lastActivity(out[j]))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockService) Connected(_ context.Context, a, b string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conns[PairID(a, b)]
	return ok && c.Status == StatusAccepted, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
