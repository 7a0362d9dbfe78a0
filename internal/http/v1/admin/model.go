package admin

import (
	"github.com/zipparents/backend/internal/platform/timeutil"
	"github.com/zipparents/backend/internal/service/moderation"
)

// AdminReport is a complaint as shown in the moderation queue.
type AdminReport struct {
	ID          string        `json:"id"          doc:"Report ID"`
	ReporterUID string        `json:"reporterUid" doc:"Who filed it"      example:"user-123"`
	SubjectUID  string        `json:"subjectUid"  doc:"Reported user"     example:"user-456"`
	Kind        string        `json:"kind"        doc:"Report category"   example:"harassment"`
	Details     string        `json:"details"     doc:"What happened"`
	Status      string        `json:"status"      doc:"Queue status"      example:"open"`
	Resolution  string        `json:"resolution"  doc:"Moderator note"`
	ResolvedBy  string        `json:"resolvedBy"  doc:"Moderator who closed it"`
	CreatedAt   timeutil.Time `json:"createdAt"   doc:"Filing timestamp"  example:"2024-01-15T10:30:00.000Z"`
	ResolvedAt  timeutil.Time `json:"resolvedAt"  doc:"Closing timestamp"`
}

func toReport(r *moderation.Report) AdminReport {
	return AdminReport{
		ID:          r.ID,
		ReporterUID: r.ReporterUID,
		SubjectUID:  r.SubjectUID,
		Kind:        string(r.Kind),
		Details:     r.Details,
		Status:      string(r.Status),
		Resolution:  r.Resolution,
		ResolvedBy:  r.ResolvedBy,
		CreatedAt:   timeutil.Time{Time: r.CreatedAt},
		ResolvedAt:  timeutil.Time{Time: r.ResolvedAt},
	}
}

// UserSummary is the compact listing the admin panel shows.
type UserSummary struct {
	UID                 string        `json:"uid"                 doc:"Firebase user ID"        example:"user-123"`
	Email               string        `json:"email"               doc:"Email address"`
	DisplayName         string        `json:"displayName"         doc:"Display name"`
	ZipCode             string        `json:"zipCode"             doc:"Five-digit zip code"`
	VerificationStatus  string        `json:"verificationStatus"  doc:"Age verification status" example:"pending"`
	OnboardingCompleted bool          `json:"onboardingCompleted" doc:"Whether the wizard was finished"`
	LastActive          timeutil.Time `json:"lastActive"          doc:"Last activity timestamp"`
	CreatedAt           timeutil.Time `json:"createdAt"           doc:"Sign-up timestamp"`
}
