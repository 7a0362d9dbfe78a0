package user

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu    sync.RWMutex
	users map[string]*User

	// FailWith, when set, makes every mutation return this error. Lets
	// handler tests exercise backend-failure paths.
	FailWith error
}

// NewMockService creates a new mock service.
func NewMockService() *MockService {
	return &MockService{users: make(map[string]*User)}
}

// Put seeds a user record directly, bypassing invariant checks.
func (m *MockService) Put(u *User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.UID] = &cp
}

func (m *MockService) Ensure(_ context.Context, uid string, params CreateParams) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if u, exists := m.users[uid]; exists {
		cp := *u
		return &cp, nil
	}

	now := time.Now().UTC()
	u := &User{
		UID:                uid,
		Email:              strings.ToLower(strings.TrimSpace(params.Email)),
		EmailVerified:      params.EmailVerified,
		VerificationStatus: VerificationUnverified,
		Privacy:            DefaultPrivacySettings(),
		LastActive:         now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	m.users[uid] = u
	cp := *u
	return &cp, nil
}

func (m *MockService) Get(_ context.Context, uid string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, exists := m.users[uid]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockService) Merge(_ context.Context, uid string, params UpdateParams) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	if err := validateUpdate(params); err != nil {
		return nil, err
	}
	u, exists := m.users[uid]
	if !exists {
		return nil, ErrNotFound
	}

	applyUpdate(u, params)
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (m *MockService) Touch(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.users[uid]
	if !exists {
		return ErrNotFound
	}
	u.LastActive = time.Now().UTC()
	return nil
}

func (m *MockService) ListByZipPrefix(_ context.Context, prefix string, limit int) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*User
	for _, u := range m.users {
		if strings.HasPrefix(u.ZipCode, prefix) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockService) List(_ context.Context, limit int) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*User
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockService) ListByVerificationStatus(_ context.Context, vs VerificationStatus, limit int) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*User
	for _, u := range m.users {
		if u.VerificationStatus == vs {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Clear removes all users (useful for test cleanup).
func (m *MockService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[string]*User)
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
