// Package onboarding exposes the four-step profile wizard over HTTP. The
// wizard state lives in the user document; each step submission validates and
// persists that step's fields, and completion runs the full submitter.
package onboarding

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zipparents/backend/internal/http/v1/profiles"
	"github.com/zipparents/backend/internal/platform/auth"
	onboardingsvc "github.com/zipparents/backend/internal/service/onboarding"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

// Register registers onboarding endpoints.
func Register(api huma.API, users usersvc.Service, submitter *onboardingsvc.Submitter, cfg onboardingsvc.Config) {
	huma.Register(api, huma.Operation{
		OperationID: "get-onboarding-state",
		Method:      http.MethodGet,
		Path:        "/onboarding",
		Summary:     "Get onboarding state",
		Description: "Returns the step a returning user should resume on and the fields collected so far.",
		Tags:        []string{"Onboarding"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *StateGetInput) (*StateGetOutput, error) {
		viewer := auth.UserFromContext(ctx)

		u, err := users.Ensure(ctx, viewer.UID, usersvc.CreateParams{
			Email:         viewer.Email,
			EmailVerified: viewer.EmailVerified,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}

		st := onboardingsvc.State{Fields: fieldsFromUser(u)}
		return &StateGetOutput{Body: State{
			Step:      onboardingsvc.ResumeStep(st, cfg),
			Completed: u.OnboardingCompleted,
			Fields:    toFields(st.Fields),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-onboarding-step",
		Method:      http.MethodPost,
		Path:        "/onboarding/steps/{step}",
		Summary:     "Submit one wizard step",
		Description: "Validates the step's fields and persists them. Field errors come back as 422 with one detail per field.",
		Tags:        []string{"Onboarding"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *StepSubmitInput) (*StepSubmitOutput, error) {
		viewer := auth.UserFromContext(ctx)

		u, err := users.Ensure(ctx, viewer.UID, usersvc.CreateParams{
			Email:         viewer.Email,
			EmailVerified: viewer.EmailVerified,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}

		fields := fieldsFromUser(u)
		applyStepInput(&fields, input)

		st := onboardingsvc.Advance(onboardingsvc.State{Step: input.Step, Fields: fields}, cfg)
		if len(st.Errors) > 0 {
			return nil, fieldErrors(st.Errors)
		}

		if _, err := users.Merge(ctx, viewer.UID, stepParams(fields, input)); err != nil {
			return nil, mapServiceError(err)
		}
		return &StepSubmitOutput{Body: State{
			Step:      st.Step,
			Completed: u.OnboardingCompleted,
			Fields:    toFields(st.Fields),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "complete-onboarding",
		Method:      http.MethodPost,
		Path:        "/onboarding/complete",
		Summary:     "Complete onboarding",
		Description: "Validates every step against the stored fields and commits the profile, optionally uploading a photo first.",
		Tags:        []string{"Onboarding"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CompleteInput) (*CompleteOutput, error) {
		viewer := auth.UserFromContext(ctx)

		u, err := users.Ensure(ctx, viewer.UID, usersvc.CreateParams{
			Email:         viewer.Email,
			EmailVerified: viewer.EmailVerified,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}

		fields := fieldsFromUser(u)
		if input.Body.Photo != nil {
			fields.Photo = &onboardingsvc.Photo{
				ContentType: input.Body.Photo.ContentType,
				Data:        input.Body.Photo.Data,
			}
		}

		st := onboardingsvc.State{Step: onboardingsvc.StepPrivacy, Fields: fields}
		updated, err := submitter.Submit(ctx, viewer.UID, st)
		if err != nil {
			if errors.Is(err, onboardingsvc.ErrIncomplete) {
				// Point at the first step that still fails so the client can
				// send the user back there.
				failed := onboardingsvc.ResumeStep(st, cfg)
				check := onboardingsvc.Advance(onboardingsvc.State{Step: failed, Fields: fields}, cfg)
				return nil, fieldErrors(check.Errors)
			}
			return nil, mapServiceError(err)
		}
		return &CompleteOutput{Body: profiles.ToProfile(updated)}, nil
	})
}

// applyStepInput overlays provided fields onto the stored ones. Absent fields
// keep their stored values, so a step can be re-submitted partially.
func applyStepInput(f *onboardingsvc.Fields, input *StepSubmitInput) {
	b := input.Body
	if b.DisplayName != nil {
		f.DisplayName = *b.DisplayName
	}
	if b.ZipCode != nil {
		f.ZipCode = *b.ZipCode
	}
	if b.AgeRange != nil {
		f.AgeRange = usersvc.AgeRange(*b.AgeRange)
	}
	if b.Bio != nil {
		f.Bio = *b.Bio
	}
	if b.RelationshipStatus != nil {
		f.RelationshipStatus = usersvc.RelationshipStatus(*b.RelationshipStatus)
	}
	if b.ChildrenAgeRanges != nil {
		ages := make([]usersvc.ChildAgeRange, len(b.ChildrenAgeRanges))
		for i, v := range b.ChildrenAgeRanges {
			ages[i] = usersvc.ChildAgeRange(v)
		}
		f.ChildrenAgeRanges = ages
	}
	if b.Interests != nil {
		f.Interests = b.Interests
	}
	if b.Privacy != nil {
		f.Privacy = &usersvc.PrivacySettings{
			ShowEmail:         b.Privacy.ShowEmail,
			ShowPhone:         b.Privacy.ShowPhone,
			ShowExactLocation: b.Privacy.ShowExactLocation,
			ProfileVisibility: usersvc.ProfileVisibility(b.Privacy.ProfileVisibility),
		}
	}
}

// stepParams builds the merge for only the fields this request provided.
func stepParams(f onboardingsvc.Fields, input *StepSubmitInput) usersvc.UpdateParams {
	b := input.Body
	params := usersvc.UpdateParams{}
	if b.DisplayName != nil {
		params.DisplayName = &f.DisplayName
	}
	if b.ZipCode != nil {
		params.ZipCode = &f.ZipCode
	}
	if b.AgeRange != nil {
		params.AgeRange = &f.AgeRange
	}
	if b.Bio != nil {
		params.Bio = &f.Bio
	}
	if b.RelationshipStatus != nil {
		params.RelationshipStatus = &f.RelationshipStatus
	}
	if b.ChildrenAgeRanges != nil {
		params.ChildrenAgeRanges = f.ChildrenAgeRanges
	}
	if b.Interests != nil {
		params.Interests = f.Interests
	}
	if b.Privacy != nil {
		params.Privacy = f.Privacy
	}
	return params
}

// fieldErrors turns the validator's error map into a 422 with one detail per
// field.
func fieldErrors(errs map[string]string) error {
	details := make([]error, 0, len(errs))
	for field, msg := range errs {
		details = append(details, &huma.ErrorDetail{
			Message:  msg,
			Location: "body." + field,
		})
	}
	return huma.Error422UnprocessableEntity("validation failed", details...)
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, usersvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, usersvc.ErrInvalidZip):
		return huma.Error422UnprocessableEntity("zip code must be exactly 5 digits")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
