// Package admin exposes the moderation panel: the report queue, the
// verification review queue, and a user listing. Every operation requires the
// admin custom claim.
package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zipparents/backend/internal/platform/auth"
	"github.com/zipparents/backend/internal/platform/timeutil"
	"github.com/zipparents/backend/internal/service/moderation"
	usersvc "github.com/zipparents/backend/internal/service/user"
)

// ReportListInput for GET /admin/reports
type ReportListInput struct {
	Limit int `query:"limit" default:"50" minimum:"1" maximum:"200" doc:"Maximum reports returned"`
}

// ReportListOutput for GET /admin/reports
type ReportListOutput struct {
	Body struct {
		Reports []AdminReport `json:"reports" doc:"Open reports, oldest first"`
	}
}

// ReportResolveInput for POST /admin/reports/{id}/resolve
type ReportResolveInput struct {
	ID   string `path:"id" format:"uuid" doc:"Report ID"`
	Body struct {
		Actioned   bool   `json:"actioned"                   doc:"True when action was taken against the subject" example:"true"`
		Resolution string `json:"resolution" maxLength:"2000" doc:"Moderator note"`
	}
}

// ReportResolveOutput for POST /admin/reports/{id}/resolve
type ReportResolveOutput struct {
	Body AdminReport
}

// UserListInput for GET /admin/users
type UserListInput struct {
	Limit int `query:"limit" default:"50" minimum:"1" maximum:"200" doc:"Maximum users returned"`
}

// UserListOutput for GET /admin/users
type UserListOutput struct {
	Body struct {
		Users []UserSummary `json:"users" doc:"Users, newest sign-up first"`
	}
}

// VerificationQueueInput for GET /admin/verifications
type VerificationQueueInput struct {
	Limit int `query:"limit" default:"50" minimum:"1" maximum:"200" doc:"Maximum entries returned"`
}

// VerificationQueueOutput for GET /admin/verifications
type VerificationQueueOutput struct {
	Body struct {
		Users []UserSummary `json:"users" doc:"Users awaiting verification review, oldest request first"`
	}
}

// VerificationReviewInput for POST /admin/verifications/{uid}
type VerificationReviewInput struct {
	UID  string `path:"uid" minLength:"1" maxLength:"128" doc:"User under review"`
	Body struct {
		Approve bool `json:"approve" doc:"True to verify, false to reject" example:"true"`
	}
}

// VerificationReviewOutput for POST /admin/verifications/{uid}
type VerificationReviewOutput struct {
	Body UserSummary
}

// adminSecurity is the security requirement shared by every admin operation.
var adminSecurity = []map[string][]string{
	{"bearerAuth": {}, auth.AdminSecurity: {}},
}

// Register registers admin endpoints.
func Register(api huma.API, users usersvc.Service, reports moderation.Reports) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-reports",
		Method:      http.MethodGet,
		Path:        "/admin/reports",
		Summary:     "List open reports",
		Description: "Returns unresolved reports, oldest first.",
		Tags:        []string{"Admin"},
		Security:    adminSecurity,
	}, func(ctx context.Context, input *ReportListInput) (*ReportListOutput, error) {
		list, err := reports.ListOpen(ctx, input.Limit)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		out := &ReportListOutput{}
		out.Body.Reports = make([]AdminReport, len(list))
		for i, r := range list {
			out.Body.Reports[i] = toReport(r)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-resolve-report",
		Method:      http.MethodPost,
		Path:        "/admin/reports/{id}/resolve",
		Summary:     "Resolve a report",
		Description: "Closes a report as actioned or dismissed.",
		Tags:        []string{"Admin"},
		Security:    adminSecurity,
	}, func(ctx context.Context, input *ReportResolveInput) (*ReportResolveOutput, error) {
		admin := auth.UserFromContext(ctx)

		r, err := reports.Resolve(ctx, input.ID, admin.UID, input.Body.Actioned, input.Body.Resolution)
		if err != nil {
			switch {
			case errors.Is(err, moderation.ErrReportNotFound):
				return nil, huma.Error404NotFound("report not found")
			case errors.Is(err, moderation.ErrAlreadyClosed):
				return nil, huma.Error409Conflict("report already resolved")
			default:
				return nil, huma.Error500InternalServerError("internal error")
			}
		}
		return &ReportResolveOutput{Body: toReport(r)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-list-users",
		Method:      http.MethodGet,
		Path:        "/admin/users",
		Summary:     "List users",
		Description: "Returns users ordered by sign-up time, newest first.",
		Tags:        []string{"Admin"},
		Security:    adminSecurity,
	}, func(ctx context.Context, input *UserListInput) (*UserListOutput, error) {
		list, err := users.List(ctx, input.Limit)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		out := &UserListOutput{}
		out.Body.Users = make([]UserSummary, len(list))
		for i, u := range list {
			out.Body.Users[i] = toSummary(u)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-list-verifications",
		Method:      http.MethodGet,
		Path:        "/admin/verifications",
		Summary:     "List pending verification requests",
		Tags:        []string{"Admin"},
		Security:    adminSecurity,
	}, func(ctx context.Context, input *VerificationQueueInput) (*VerificationQueueOutput, error) {
		list, err := users.ListByVerificationStatus(ctx, usersvc.VerificationPending, input.Limit)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		out := &VerificationQueueOutput{}
		out.Body.Users = make([]UserSummary, len(list))
		for i, u := range list {
			out.Body.Users[i] = toSummary(u)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-review-verification",
		Method:      http.MethodPost,
		Path:        "/admin/verifications/{uid}",
		Summary:     "Approve or reject a verification request",
		Tags:        []string{"Admin"},
		Security:    adminSecurity,
	}, func(ctx context.Context, input *VerificationReviewInput) (*VerificationReviewOutput, error) {
		u, err := users.Get(ctx, input.UID)
		if err != nil {
			if errors.Is(err, usersvc.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		if u.VerificationStatus != usersvc.VerificationPending {
			return nil, huma.Error409Conflict("no pending verification request")
		}

		newStatus := usersvc.VerificationRejected
		verified := false
		if input.Body.Approve {
			newStatus = usersvc.VerificationVerified
			verified = true
		}
		updated, err := users.Merge(ctx, input.UID, usersvc.UpdateParams{
			VerificationStatus: &newStatus,
			AgeVerified:        &verified,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &VerificationReviewOutput{Body: toSummary(updated)}, nil
	})
}

func toSummary(u *usersvc.User) UserSummary {
	return UserSummary{
		UID:                 u.UID,
		Email:               u.Email,
		DisplayName:         u.DisplayName,
		ZipCode:             u.ZipCode,
		VerificationStatus:  string(u.VerificationStatus),
		OnboardingCompleted: u.OnboardingCompleted,
		LastActive:          timeutil.Time{Time: u.LastActive},
		CreatedAt:           timeutil.Time{Time: u.CreatedAt},
	}
}
