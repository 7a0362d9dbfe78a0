package moderation

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrReportNotFound = errors.New("report not found")
	ErrSelfReport     = errors.New("cannot report yourself")
	ErrAlreadyClosed  = errors.New("report already resolved")
)

// ReportKind categorizes what is being reported.
type ReportKind string

const (
	ReportKindProfile    ReportKind = "profile"
	ReportKindMessage    ReportKind = "message"
	ReportKindEvent      ReportKind = "event"
	ReportKindHarassment ReportKind = "harassment"
	ReportKindOther      ReportKind = "other"
)

// IsValid reports whether the value is a defined report kind.
func (k ReportKind) IsValid() bool {
	switch k {
	case ReportKindProfile, ReportKindMessage, ReportKindEvent, ReportKindHarassment, ReportKindOther:
		return true
	}
	return false
}

// ReportStatus tracks a report through the moderation queue.
type ReportStatus string

const (
	ReportOpen      ReportStatus = "open"
	ReportActioned  ReportStatus = "actioned"
	ReportDismissed ReportStatus = "dismissed"
)

// Report is one user-filed complaint about another user.
type Report struct {
	ID          string
	ReporterUID string
	SubjectUID  string
	Kind        ReportKind
	Details     string
	Status      ReportStatus
	Resolution  string
	ResolvedBy  string
	CreatedAt   time.Time
	ResolvedAt  time.Time
}

// Reports defines the report queue operations.
type Reports interface {
	File(ctx context.Context, reporterUID, subjectUID string, kind ReportKind, details string) (*Report, error)
	Get(ctx context.Context, id string) (*Report, error)
	// ListOpen returns unresolved reports, oldest first.
	ListOpen(ctx context.Context, limit int) ([]*Report, error)
	// Resolve closes a report with an action or dismissal. adminUID is
	// recorded for the audit trail.
	Resolve(ctx context.Context, id, adminUID string, actioned bool, resolution string) (*Report, error)
}
