package profiles

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zipparents/backend/internal/platform/auth"
	"github.com/zipparents/backend/internal/service/photos"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

// Register registers profile endpoints.
func Register(api huma.API, users usersvc.Service, photoStore photos.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get current user's profile",
		Description: "Retrieves the full account record for the authenticated user, creating a minimal one on first sign-in.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		viewer := auth.UserFromContext(ctx)

		u, err := users.Ensure(ctx, viewer.UID, usersvc.CreateParams{
			Email:         viewer.Email,
			EmailVerified: viewer.EmailVerified,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		_ = users.Touch(ctx, viewer.UID)
		return &ProfileGetOutput{Body: ToProfile(u)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/profile",
		Summary:     "Update current user's profile",
		Description: "Updates fields on the authenticated user's profile. Only provided fields are updated.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileUpdateOutput, error) {
		viewer := auth.UserFromContext(ctx)
		if !hasProfileUpdateFields(input) {
			return nil, huma.Error422UnprocessableEntity("at least one field must be provided")
		}

		params := usersvc.UpdateParams{
			DisplayName: input.Body.DisplayName,
			Bio:         input.Body.Bio,
			ZipCode:     input.Body.ZipCode,
			PhoneNumber: input.Body.PhoneNumber,
			Interests:   input.Body.Interests,
		}
		if input.Body.AgeRange != nil {
			ar := usersvc.AgeRange(*input.Body.AgeRange)
			params.AgeRange = &ar
		}
		if input.Body.ChildrenAgeRanges != nil {
			ages := make([]usersvc.ChildAgeRange, len(input.Body.ChildrenAgeRanges))
			for i, v := range input.Body.ChildrenAgeRanges {
				ages[i] = usersvc.ChildAgeRange(v)
				if !ages[i].IsValid() {
					return nil, huma.Error422UnprocessableEntity("invalid child age range: " + v)
				}
			}
			params.ChildrenAgeRanges = ages
		}
		if input.Body.RelationshipStatus != nil {
			rs := usersvc.RelationshipStatus(*input.Body.RelationshipStatus)
			params.RelationshipStatus = &rs
		}

		u, err := users.Merge(ctx, viewer.UID, params)
		if err != nil {
			return nil, mapServiceError(err)
		}

		// Optional fields may have changed; keep the stored percentage honest.
		completeness := usersvc.Completeness(u)
		if completeness != u.ProfileCompleteness {
			if u, err = users.Merge(ctx, viewer.UID, usersvc.UpdateParams{ProfileCompleteness: &completeness}); err != nil {
				return nil, mapServiceError(err)
			}
		}
		return &ProfileUpdateOutput{Body: ToProfile(u)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-privacy",
		Method:      http.MethodPut,
		Path:        "/profile/privacy",
		Summary:     "Replace privacy settings",
		Description: "Replaces the authenticated user's privacy settings as one unit.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *PrivacyUpdateInput) (*PrivacyUpdateOutput, error) {
		viewer := auth.UserFromContext(ctx)

		privacy := usersvc.PrivacySettings{
			ShowEmail:         input.Body.ShowEmail,
			ShowPhone:         input.Body.ShowPhone,
			ShowExactLocation: input.Body.ShowExactLocation,
			ProfileVisibility: usersvc.ProfileVisibility(input.Body.ProfileVisibility),
		}
		u, err := users.Merge(ctx, viewer.UID, usersvc.UpdateParams{Privacy: &privacy})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &PrivacyUpdateOutput{Body: ToProfile(u)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-public-profile",
		Method:      http.MethodGet,
		Path:        "/profiles/{uid}",
		Summary:     "Get another parent's public profile",
		Description: "Returns the redacted view the profile owner's privacy settings allow. Responds 404 when the profile is hidden from this viewer.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *PublicProfileGetInput) (*PublicProfileGetOutput, error) {
		viewer := auth.UserFromContext(ctx)

		viewerRecord, err := users.Get(ctx, viewer.UID)
		if err != nil && !errors.Is(err, usersvc.ErrNotFound) {
			return nil, mapServiceError(err)
		}
		v := &usersvc.Viewer{UID: viewer.UID}
		if viewerRecord != nil {
			v.VerificationStatus = viewerRecord.VerificationStatus
		}

		target, err := users.Get(ctx, input.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		p := usersvc.Project(target, v)
		if p == nil {
			// Hidden and nonexistent profiles are indistinguishable on purpose.
			return nil, huma.Error404NotFound("profile not found")
		}
		return &PublicProfileGetOutput{Body: ToPublicProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "upload-profile-photo",
		Method:      http.MethodPut,
		Path:        "/profile/photo",
		Summary:     "Upload a profile photo",
		Description: "Stores the request body as the user's profile photo. JPEG, PNG, or WebP up to 5 MiB.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *PhotoUploadInput) (*PhotoUploadOutput, error) {
		viewer := auth.UserFromContext(ctx)

		if err := photos.Validate(input.ContentType, len(input.RawBody)); err != nil {
			return nil, mapServiceError(err)
		}
		url, err := photoStore.Upload(ctx, viewer.UID, input.ContentType, input.RawBody)
		if err != nil {
			return nil, mapServiceError(err)
		}

		current, err := users.Get(ctx, viewer.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		with := *current
		with.PhotoURL = url
		completeness := usersvc.Completeness(&with)
		if _, err := users.Merge(ctx, viewer.UID, usersvc.UpdateParams{
			PhotoURL:            &url,
			ProfileCompleteness: &completeness,
		}); err != nil {
			return nil, mapServiceError(err)
		}

		out := &PhotoUploadOutput{}
		out.Body.PhotoURL = url
		return out, nil
	})
}

func hasProfileUpdateFields(input *ProfileUpdateInput) bool {
	return input.Body.DisplayName != nil ||
		input.Body.Bio != nil ||
		input.Body.ZipCode != nil ||
		input.Body.PhoneNumber != nil ||
		input.Body.AgeRange != nil ||
		input.Body.Interests != nil ||
		input.Body.ChildrenAgeRanges != nil ||
		input.Body.RelationshipStatus != nil
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, usersvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, usersvc.ErrInvalidZip):
		return huma.Error422UnprocessableEntity("zip code must be exactly 5 digits")
	case errors.Is(err, photos.ErrInvalidType):
		return huma.Error415UnsupportedMediaType("photo must be JPEG, PNG, or WebP")
	case errors.Is(err, photos.ErrTooLarge):
		return huma.NewError(http.StatusRequestEntityTooLarge, "photo exceeds the 5 MiB limit")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
