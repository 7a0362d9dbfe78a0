package user

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
	ErrInvalidZip    = errors.New("zip code must be exactly 5 digits")
)

// DecodeError reports a stored document that does not match the expected
// shape. The store decodes documents at the boundary instead of trusting
// loosely-typed data further in.
type DecodeError struct {
	UID   string
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode user %s: field %s: %v", e.UID, e.Field, e.Err)
	}
	return fmt.Sprintf("decode user %s: %v", e.UID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PrivacySettings controls what a projected public profile exposes.
type PrivacySettings struct {
	ShowEmail         bool
	ShowPhone         bool
	ShowExactLocation bool
	ProfileVisibility ProfileVisibility
}

// DefaultPrivacySettings returns the settings applied when a user never
// touched the privacy step.
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		ShowEmail:         false,
		ShowPhone:         false,
		ShowExactLocation: false,
		ProfileVisibility: VisibilityPublic,
	}
}

// User is the authoritative account record, one document per uid.
type User struct {
	UID                 string
	Email               string
	DisplayName         string
	Bio                 string
	ZipCode             string
	PhoneNumber         string
	PhotoURL            string
	AgeRange            AgeRange
	Interests           []string
	ChildrenAgeRanges   []ChildAgeRange
	RelationshipStatus  RelationshipStatus
	EmailVerified       bool
	AgeVerified         bool
	VerificationStatus  VerificationStatus
	Privacy             PrivacySettings
	OnboardingCompleted bool
	ProfileCompleteness int // percent of optional fields populated
	LastActive          time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CreateParams for creating the initial user record at first sign-in.
type CreateParams struct {
	Email         string
	EmailVerified bool
}

// UpdateParams for partial merge updates. Nil fields are left untouched.
type UpdateParams struct {
	DisplayName         *string
	Bio                 *string
	ZipCode             *string
	PhoneNumber         *string
	PhotoURL            *string
	AgeRange            *AgeRange
	Interests           []string
	ChildrenAgeRanges   []ChildAgeRange
	RelationshipStatus  *RelationshipStatus
	Privacy             *PrivacySettings
	OnboardingCompleted *bool
	ProfileCompleteness *int
	VerificationStatus  *VerificationStatus
	AgeVerified         *bool
}

// Service defines user record operations.
//
// Implementations must enforce:
//   - ZipCode: exactly five digits once set (ErrInvalidZip otherwise)
//   - Interests and ChildrenAgeRanges: deduplicated sets
type Service interface {
	// Ensure returns the user record, creating a minimal one on first sign-in.
	Ensure(ctx context.Context, uid string, params CreateParams) (*User, error)
	Get(ctx context.Context, uid string) (*User, error)
	// Merge applies a partial update and returns the updated record.
	Merge(ctx context.Context, uid string, params UpdateParams) (*User, error)
	// Touch bumps lastActive. Best-effort; callers ignore failures.
	Touch(ctx context.Context, uid string) error
	// ListByZipPrefix returns users whose zip code starts with the given
	// digits, for discovery. Results are unordered; ranking happens upstream.
	ListByZipPrefix(ctx context.Context, prefix string, limit int) ([]*User, error)
	// List returns users ordered by creation time, newest first, for the
	// moderation panel.
	List(ctx context.Context, limit int) ([]*User, error)
	// ListByVerificationStatus returns users with the given status, for the
	// verification review queue.
	ListByVerificationStatus(ctx context.Context, status VerificationStatus, limit int) ([]*User, error)
}

// Completeness returns the percentage of optional profile fields populated.
// Required onboarding fields are excluded; only fields the user may leave
// blank count.
func Completeness(u *User) int {
	optional := []bool{
		u.Bio != "",
		u.PhoneNumber != "",
		u.PhotoURL != "",
		u.RelationshipStatus != "",
	}
	filled := 0
	for _, ok := range optional {
		if ok {
			filled++
		}
	}
	return filled * 100 / len(optional)
}

// validateUpdate checks invariants shared by every store implementation.
func validateUpdate(params UpdateParams) error {
	if params.ZipCode != nil && !IsValidZip(*params.ZipCode) {
		return ErrInvalidZip
	}
	return nil
}
