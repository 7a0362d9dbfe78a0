package onboarding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	applog "github.com/zipparents/backend/internal/platform/logging"
	"github.com/zipparents/backend/internal/service/user"
)

// ErrIncomplete indicates submission was attempted with fields that do not
// pass every step's validation.
var ErrIncomplete = errors.New("onboarding fields incomplete")

// PhotoStore is the slice of the photo service submission needs: one upload
// and the compensating delete.
type PhotoStore interface {
	Upload(ctx context.Context, uid, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectURL string) error
}

// Submitter performs the final wizard submission: at most one photo upload
// plus exactly one merge write against the user record.
type Submitter struct {
	users  user.Service
	photos PhotoStore
	cfg    Config
}

// NewSubmitter wires a submitter. photos may be nil when photo upload is not
// configured; staged photos are then rejected.
func NewSubmitter(users user.Service, photos PhotoStore, cfg Config) *Submitter {
	return &Submitter{users: users, photos: photos, cfg: cfg}
}

// Submit validates the full accumulated state and commits it. The photo
// upload and the document merge are treated as one logical unit: if the merge
// fails after the photo was uploaded, the uploaded object is deleted again.
// On any error the caller keeps its state and may retry; nothing is retried
// automatically here.
func (s *Submitter) Submit(ctx context.Context, uid string, st State) (*user.User, error) {
	if !Valid(st, s.cfg) {
		return nil, ErrIncomplete
	}

	current, err := s.users.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	f := st.Fields
	privacy := f.Privacy
	if privacy == nil {
		defaults := user.DefaultPrivacySettings()
		privacy = &defaults
	}

	var photoURL string
	if f.Photo != nil {
		if s.photos == nil {
			return nil, errors.New("photo upload not configured")
		}
		url, err := s.photos.Upload(ctx, uid, f.Photo.ContentType, f.Photo.Data)
		if err != nil {
			return nil, fmt.Errorf("upload photo: %w", err)
		}
		photoURL = url
	}

	interests := user.NormalizeSet(f.Interests)
	children := user.NormalizeSet(f.ChildrenAgeRanges)

	completed := true
	completeness := completenessAfter(current, f, photoURL)
	params := user.UpdateParams{
		DisplayName:         &f.DisplayName,
		Bio:                 &f.Bio,
		ZipCode:             &f.ZipCode,
		AgeRange:            &f.AgeRange,
		Interests:           interests,
		ChildrenAgeRanges:   children,
		RelationshipStatus:  &f.RelationshipStatus,
		Privacy:             privacy,
		OnboardingCompleted: &completed,
		ProfileCompleteness: &completeness,
	}
	if photoURL != "" {
		params.PhotoURL = &photoURL
	}

	updated, err := s.users.Merge(ctx, uid, params)
	if err != nil {
		// The photo and the document update are one logical unit; roll the
		// orphaned upload back so a retry starts clean.
		if photoURL != "" {
			if delErr := s.photos.Delete(ctx, photoURL); delErr != nil {
				applog.LogWarn(ctx, "failed to clean up photo after merge failure",
					zap.String("uid", uid), zap.Error(delErr))
			}
		}
		return nil, fmt.Errorf("save profile: %w", err)
	}

	applog.LogAuditEvent(ctx, "onboarding_complete", uid, "user", uid, "success",
		map[string]any{"completeness": completeness})
	return updated, nil
}

// completenessAfter computes the percentage of optional fields that will be
// populated once the submission lands. PhoneNumber is only editable on the
// profile screen, so the stored value carries over; an existing photo counts
// when no new one was staged.
func completenessAfter(current *user.User, f Fields, photoURL string) int {
	if photoURL == "" {
		photoURL = current.PhotoURL
	}
	u := user.User{
		Bio:                f.Bio,
		PhoneNumber:        current.PhoneNumber,
		PhotoURL:           photoURL,
		RelationshipStatus: f.RelationshipStatus,
	}
	return user.Completeness(&u)
}
