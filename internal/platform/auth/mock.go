package auth

import (
	"context"
)

// MockVerifier provides fake token verification for tests.
type MockVerifier struct {
	User  *User
	Error error
}

// Verify returns the configured user or error.
func (m *MockVerifier) Verify(_ context.Context, _ string) (*User, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// TestUser returns a standard test user.
func TestUser() *User {
	return &User{
		UID:           "test-user-123",
		Email:         "test@example.com",
		EmailVerified: true,
	}
}

// TestAdmin returns a test user carrying the admin claim.
func TestAdmin() *User {
	return &User{
		UID:           "test-admin-123",
		Email:         "admin@example.com",
		EmailVerified: true,
		Admin:         true,
	}
}

// Compile-time interface check
var _ Verifier = (*MockVerifier)(nil)
