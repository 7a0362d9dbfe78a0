// Package verification lets a parent request age verification. Review happens
// in the admin panel.
package verification

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zipparents/backend/internal/platform/auth"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

// RequestInput for POST /verification (no body needed)
type RequestInput struct{}

// RequestOutput for POST /verification
type RequestOutput struct {
	Body struct {
		VerificationStatus string `json:"verificationStatus" doc:"New verification status" example:"pending"`
	}
}

// Register registers the verification request endpoint.
func Register(api huma.API, users usersvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID:   "request-verification",
		Method:        http.MethodPost,
		Path:          "/verification",
		Summary:       "Request age verification",
		Description:   "Moves the authenticated user into the verification review queue. Already-verified users get 409.",
		Tags:          []string{"Verification"},
		DefaultStatus: http.StatusAccepted,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *RequestInput) (*RequestOutput, error) {
		viewer := auth.UserFromContext(ctx)

		u, err := users.Get(ctx, viewer.UID)
		if err != nil {
			if errors.Is(err, usersvc.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		switch u.VerificationStatus {
		case usersvc.VerificationVerified:
			return nil, huma.Error409Conflict("already verified")
		case usersvc.VerificationPending:
			return nil, huma.Error409Conflict("verification already pending")
		}

		pending := usersvc.VerificationPending
		if _, err := users.Merge(ctx, viewer.UID, usersvc.UpdateParams{VerificationStatus: &pending}); err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}

		out := &RequestOutput{}
		out.Body.VerificationStatus = string(pending)
		return out, nil
	})
}
