package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/zipparents/backend/internal/platform/logging"
)

const usersCollection = "users"

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	var decodeErr *DecodeError
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidZip):
		return "invalid_zip"
	case errors.As(err, &decodeErr):
		return "decode_error"
	default:
		return "internal_error"
	}
}

// firestoreUser maps to the Firestore document structure.
type firestoreUser struct {
	Email               string    `firestore:"email"`
	DisplayName         string    `firestore:"display_name"`
	Bio                 string    `firestore:"bio"`
	ZipCode             string    `firestore:"zip_code"`
	PhoneNumber         string    `firestore:"phone_number"`
	PhotoURL            string    `firestore:"photo_url"`
	AgeRange            string    `firestore:"age_range"`
	Interests           []string  `firestore:"interests"`
	ChildrenAgeRanges   []string  `firestore:"children_age_ranges"`
	RelationshipStatus  string    `firestore:"relationship_status"`
	EmailVerified       bool      `firestore:"email_verified"`
	AgeVerified         bool      `firestore:"age_verified"`
	VerificationStatus  string    `firestore:"verification_status"`
	ShowEmail           bool      `firestore:"show_email"`
	ShowPhone           bool      `firestore:"show_phone"`
	ShowExactLocation   bool      `firestore:"show_exact_location"`
	ProfileVisibility   string    `firestore:"profile_visibility"`
	OnboardingCompleted bool      `firestore:"onboarding_completed"`
	ProfileCompleteness int       `firestore:"profile_completeness"`
	LastActive          time.Time `firestore:"last_active"`
	CreatedAt           time.Time `firestore:"created_at"`
	UpdatedAt           time.Time `firestore:"updated_at"`
}

// decode validates the stored shape before handing it to the rest of the
// service. Shape mismatches surface as a typed DecodeError instead of leaking
// loosely-typed data.
func (fu *firestoreUser) decode(uid string) (*User, error) {
	if fu.ZipCode != "" && !IsValidZip(fu.ZipCode) {
		return nil, &DecodeError{UID: uid, Field: "zip_code", Err: ErrInvalidZip}
	}
	if fu.AgeRange != "" && !AgeRange(fu.AgeRange).IsValid() {
		return nil, &DecodeError{UID: uid, Field: "age_range", Err: errors.New("unknown value " + fu.AgeRange)}
	}
	if fu.RelationshipStatus != "" && !RelationshipStatus(fu.RelationshipStatus).IsValid() {
		return nil, &DecodeError{UID: uid, Field: "relationship_status", Err: errors.New("unknown value " + fu.RelationshipStatus)}
	}
	vstatus := VerificationStatus(fu.VerificationStatus)
	if fu.VerificationStatus == "" {
		vstatus = VerificationUnverified
	} else if !vstatus.IsValid() {
		return nil, &DecodeError{UID: uid, Field: "verification_status", Err: errors.New("unknown value " + fu.VerificationStatus)}
	}
	visibility := ProfileVisibility(fu.ProfileVisibility)
	if fu.ProfileVisibility == "" {
		visibility = VisibilityPublic
	} else if !visibility.IsValid() {
		return nil, &DecodeError{UID: uid, Field: "profile_visibility", Err: errors.New("unknown value " + fu.ProfileVisibility)}
	}

	children := make([]ChildAgeRange, 0, len(fu.ChildrenAgeRanges))
	for _, c := range fu.ChildrenAgeRanges {
		car := ChildAgeRange(c)
		if !car.IsValid() {
			return nil, &DecodeError{UID: uid, Field: "children_age_ranges", Err: errors.New("unknown value " + c)}
		}
		children = append(children, car)
	}

	return &User{
		UID:                uid,
		Email:              fu.Email,
		DisplayName:        fu.DisplayName,
		Bio:                fu.Bio,
		ZipCode:            fu.ZipCode,
		PhoneNumber:        fu.PhoneNumber,
		PhotoURL:           fu.PhotoURL,
		AgeRange:           AgeRange(fu.AgeRange),
		Interests:          NormalizeSet(fu.Interests),
		ChildrenAgeRanges:  NormalizeSet(children),
		RelationshipStatus: RelationshipStatus(fu.RelationshipStatus),
		EmailVerified:      fu.EmailVerified,
		AgeVerified:        fu.AgeVerified,
		VerificationStatus: vstatus,
		Privacy: PrivacySettings{
			ShowEmail:         fu.ShowEmail,
			ShowPhone:         fu.ShowPhone,
			ShowExactLocation: fu.ShowExactLocation,
			ProfileVisibility: visibility,
		},
		OnboardingCompleted: fu.OnboardingCompleted,
		ProfileCompleteness: fu.ProfileCompleteness,
		LastActive:          fu.LastActive,
		CreatedAt:           fu.CreatedAt,
		UpdatedAt:           fu.UpdatedAt,
	}, nil
}

func encode(u *User) firestoreUser {
	children := make([]string, 0, len(u.ChildrenAgeRanges))
	for _, c := range u.ChildrenAgeRanges {
		children = append(children, string(c))
	}
	return firestoreUser{
		Email:               u.Email,
		DisplayName:         u.DisplayName,
		Bio:                 u.Bio,
		ZipCode:             u.ZipCode,
		PhoneNumber:         u.PhoneNumber,
		PhotoURL:            u.PhotoURL,
		AgeRange:            string(u.AgeRange),
		Interests:           u.Interests,
		ChildrenAgeRanges:   children,
		RelationshipStatus:  string(u.RelationshipStatus),
		EmailVerified:       u.EmailVerified,
		AgeVerified:         u.AgeVerified,
		VerificationStatus:  string(u.VerificationStatus),
		ShowEmail:           u.Privacy.ShowEmail,
		ShowPhone:           u.Privacy.ShowPhone,
		ShowExactLocation:   u.Privacy.ShowExactLocation,
		ProfileVisibility:   string(u.Privacy.ProfileVisibility),
		OnboardingCompleted: u.OnboardingCompleted,
		ProfileCompleteness: u.ProfileCompleteness,
		LastActive:          u.LastActive,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Ensure returns the user record, creating a minimal one inside a transaction
// on first sign-in so two concurrent first requests cannot both create it.
func (s *FirestoreStore) Ensure(ctx context.Context, uid string, params CreateParams) (*User, error) {
	docRef := s.client.Collection(usersCollection).Doc(uid)
	now := time.Now().UTC()

	var result *User

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			var fu firestoreUser
			if err := doc.DataTo(&fu); err != nil {
				return &DecodeError{UID: uid, Err: err}
			}
			result, err = fu.decode(uid)
			return err
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

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
		if err := tx.Set(docRef, encode(u)); err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "ensure", uid, "user", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	return result, nil
}

// Get retrieves and decodes a user record by uid.
func (s *FirestoreStore) Get(ctx context.Context, uid string) (*User, error) {
	doc, err := s.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fu firestoreUser
	if err := doc.DataTo(&fu); err != nil {
		return nil, &DecodeError{UID: uid, Err: err}
	}
	return fu.decode(uid)
}

// Merge applies a partial update inside a transaction and returns the updated
// record.
func (s *FirestoreStore) Merge(ctx context.Context, uid string, params UpdateParams) (*User, error) {
	if err := validateUpdate(params); err != nil {
		return nil, err
	}
	docRef := s.client.Collection(usersCollection).Doc(uid)

	var result *User

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var fu firestoreUser
		if err := doc.DataTo(&fu); err != nil {
			return &DecodeError{UID: uid, Err: err}
		}
		u, err := fu.decode(uid)
		if err != nil {
			return err
		}

		applyUpdate(u, params)
		u.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, encode(u)); err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "update", uid, "user", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "update", uid, "user", uid, "success", nil)

	return result, nil
}

// Touch bumps lastActive with a field-level update, outside any transaction.
func (s *FirestoreStore) Touch(ctx context.Context, uid string) error {
	_, err := s.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "last_active", Value: time.Now().UTC()},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// ListByZipPrefix queries users whose zip code starts with the given digits
// using a Firestore range scan. "\uf8ff" is the standard high-codepoint
// sentinel for prefix queries.
func (s *FirestoreStore) ListByZipPrefix(ctx context.Context, prefix string, limit int) ([]*User, error) {
	q := s.client.Collection(usersCollection).
		Where("zip_code", ">=", prefix).
		Where("zip_code", "<", prefix+"\uf8ff").
		Limit(limit)
	return s.runQuery(ctx, q)
}

// List returns users ordered by creation time, newest first.
func (s *FirestoreStore) List(ctx context.Context, limit int) ([]*User, error) {
	q := s.client.Collection(usersCollection).
		OrderBy("created_at", firestore.Desc).
		Limit(limit)
	return s.runQuery(ctx, q)
}

// ListByVerificationStatus returns users with the given status, oldest request
// first so the review queue is fair.
func (s *FirestoreStore) ListByVerificationStatus(ctx context.Context, vs VerificationStatus, limit int) ([]*User, error) {
	q := s.client.Collection(usersCollection).
		Where("verification_status", "==", string(vs)).
		OrderBy("updated_at", firestore.Asc).
		Limit(limit)
	return s.runQuery(ctx, q)
}

func (s *FirestoreStore) runQuery(ctx context.Context, q firestore.Query) ([]*User, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var users []*User
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var fu firestoreUser
		if err := doc.DataTo(&fu); err != nil {
			return nil, &DecodeError{UID: doc.Ref.ID, Err: err}
		}
		u, err := fu.decode(doc.Ref.ID)
		if err != nil {
			// A single corrupt document must not take down the whole
			// listing; log and skip it.
			applog.LogWarn(ctx, "skipping undecodable user document")
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// applyUpdate merges non-nil params into the record.
func applyUpdate(u *User, params UpdateParams) {
	if params.DisplayName != nil {
		u.DisplayName = strings.TrimSpace(*params.DisplayName)
	}
	if params.Bio != nil {
		u.Bio = strings.TrimSpace(*params.Bio)
	}
	if params.ZipCode != nil {
		u.ZipCode = *params.ZipCode
	}
	if params.PhoneNumber != nil {
		u.PhoneNumber = strings.TrimSpace(*params.PhoneNumber)
	}
	if params.PhotoURL != nil {
		u.PhotoURL = *params.PhotoURL
	}
	if params.AgeRange != nil {
		u.AgeRange = *params.AgeRange
	}
	if params.Interests != nil {
		u.Interests = NormalizeSet(params.Interests)
	}
	if params.ChildrenAgeRanges != nil {
		u.ChildrenAgeRanges = NormalizeSet(params.ChildrenAgeRanges)
	}
	if params.RelationshipStatus != nil {
		u.RelationshipStatus = *params.RelationshipStatus
	}
	if params.Privacy != nil {
		u.Privacy = *params.Privacy
	}
	if params.OnboardingCompleted != nil {
		u.OnboardingCompleted = *params.OnboardingCompleted
	}
	if params.ProfileCompleteness != nil {
		u.ProfileCompleteness = *params.ProfileCompleteness
	}
	if params.VerificationStatus != nil {
		u.VerificationStatus = *params.VerificationStatus
	}
	if params.AgeVerified != nil {
		u.AgeVerified = *params.AgeVerified
	}
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
