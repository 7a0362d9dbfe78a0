// Package reports lets parents flag other users for moderator review.
package reports

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/zipparents/backend/internal/platform/auth"
	"github.com/zipparents/backend/internal/platform/timeutil"
	"github.com/zipparents/backend/internal/service/moderation"
)

// Report is a filed complaint as returned to the reporter.
type Report struct {
	ID         string        `json:"id"         doc:"Report ID"`
	SubjectUID string        `json:"subjectUid" doc:"Reported user"      example:"user-456"`
	Kind       string        `json:"kind"       doc:"Report category"    example:"harassment"`
	Status     string        `json:"status"     doc:"Queue status"       example:"open"`
	CreatedAt  timeutil.Time `json:"createdAt"  doc:"Filing timestamp"   example:"2024-01-15T10:30:00.000Z"`
}

// ReportFileInput for POST /reports
type ReportFileInput struct {
	Body struct {
		SubjectUID string `json:"subjectUid" minLength:"1" maxLength:"128"  required:"true" doc:"User being reported" example:"user-456"`
		Kind       string `json:"kind"       required:"true" enum:"profile,message,event,harassment,other" doc:"Report category" example:"harassment"`
		Details    string `json:"details"    maxLength:"2000"                               doc:"What happened"`
	}
}

// ReportFileOutput for POST /reports (201 Created)
type ReportFileOutput struct {
	Body Report
}

// Register registers the user-facing report endpoint.
func Register(api huma.API, reports moderation.Reports) {
	huma.Register(api, huma.Operation{
		OperationID:   "file-report",
		Method:        http.MethodPost,
		Path:          "/reports",
		Summary:       "Report a user",
		Description:   "Files a report for moderator review.",
		Tags:          []string{"Moderation"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ReportFileInput) (*ReportFileOutput, error) {
		user := auth.UserFromContext(ctx)

		kind := moderation.ReportKind(input.Body.Kind)
		if !kind.IsValid() {
			return nil, huma.Error422UnprocessableEntity("invalid report kind")
		}
		r, err := reports.File(ctx, user.UID, input.Body.SubjectUID, kind, input.Body.Details)
		if err != nil {
			if errors.Is(err, moderation.ErrSelfReport) {
				return nil, huma.Error422UnprocessableEntity("cannot report yourself")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &ReportFileOutput{Body: Report{
			ID:         r.ID,
			SubjectUID: r.SubjectUID,
			Kind:       string(r.Kind),
			Status:     string(r.Status),
			CreatedAt:  timeutil.Time{Time: r.CreatedAt},
		}}, nil
	})
}
