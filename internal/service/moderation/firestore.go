package moderation

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/zipparents/backend/internal/platform/logging"
)

const reportsCollection = "reports"

// firestoreReport maps to the Firestore document structure.
type firestoreReport struct {
	ReporterUID string    `firestore:"reporter_uid"`
	SubjectUID  string    `firestore:"subject_uid"`
	Kind        string    `firestore:"kind"`
	Details     string    `firestore:"details"`
	Status      string    `firestore:"status"`
	Resolution  string    `firestore:"resolution"`
	ResolvedBy  string    `firestore:"resolved_by"`
	CreatedAt   time.Time `firestore:"created_at"`
	ResolvedAt  time.Time `firestore:"resolved_at"`
}

func (fr *firestoreReport) decode(id string) *Report {
	return &Report{
		ID:          id,
		ReporterUID: fr.ReporterUID,
		SubjectUID:  fr.SubjectUID,
		Kind:        ReportKind(fr.Kind),
		Details:     fr.Details,
		Status:      ReportStatus(fr.Status),
		Resolution:  fr.Resolution,
		ResolvedBy:  fr.ResolvedBy,
		CreatedAt:   fr.CreatedAt,
		ResolvedAt:  fr.ResolvedAt,
	}
}

func encode(r *Report) firestoreReport {
	return firestoreReport{
		ReporterUID: r.ReporterUID,
		SubjectUID:  r.SubjectUID,
		Kind:        string(r.Kind),
		Details:     r.Details,
		Status:      string(r.Status),
		Resolution:  r.Resolution,
		ResolvedBy:  r.ResolvedBy,
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

// FirestoreStore implements Reports using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed report store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// File creates a new open report.
func (s *FirestoreStore) File(ctx context.Context, reporterUID, subjectUID string, kind ReportKind, details string) (*Report, error) {
	if reporterUID == subjectUID {
		return nil, ErrSelfReport
	}

	r := &Report{
		ID:          uuid.NewString(),
		ReporterUID: reporterUID,
		SubjectUID:  subjectUID,
		Kind:        kind,
		Details:     strings.TrimSpace(details),
		Status:      ReportOpen,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.client.Collection(reportsCollection).Doc(r.ID).Create(ctx, encode(r)); err != nil {
		applog.LogAuditEvent(ctx, "report", reporterUID, "report", r.ID, "failure", nil)
		return nil, err
	}
	applog.LogAuditEvent(ctx, "report", reporterUID, "report", r.ID, "success",
		map[string]any{"kind": string(kind)})
	return r, nil
}

// Get retrieves a report by ID.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*Report, error) {
	doc, err := s.client.Collection(reportsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	var fr firestoreReport
	if err := doc.DataTo(&fr); err != nil {
		return nil, err
	}
	return fr.decode(doc.Ref.ID), nil
}

// ListOpen returns unresolved reports, oldest first so nothing starves.
func (s *FirestoreStore) ListOpen(ctx context.Context, limit int) ([]*Report, error) {
	iter := s.client.Collection(reportsCollection).
		Where("status", "==", string(ReportOpen)).
		OrderBy("created_at", firestore.Asc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []*Report
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var fr firestoreReport
		if err := doc.DataTo(&fr); err != nil {
			return nil, err
		}
		out = append(out, fr.decode(doc.Ref.ID))
	}
	return out, nil
}

// Resolve closes a report inside a transaction so two moderators cannot both
// action it.
func (s *FirestoreStore) Resolve(ctx context.Context, id, adminUID string, actioned bool, resolution string) (*Report, error) {
	docRef := s.client.Collection(reportsCollection).Doc(id)

	var result *Report
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrReportNotFound
			}
			return err
		}
		var fr firestoreReport
		if err := doc.DataTo(&fr); err != nil {
			return err
		}
		r := fr.decode(id)
		if r.Status != ReportOpen {
			return ErrAlreadyClosed
		}
		if actioned {
			r.Status = ReportActioned
		} else {
			r.Status = ReportDismissed
		}
		r.Resolution = strings.TrimSpace(resolution)
		r.ResolvedBy = adminUID
		r.ResolvedAt = time.Now().UTC()
		if err := tx.Set(docRef, encode(r)); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "resolve", adminUID, "report", id, "failure", nil)
		return nil, err
	}
	applog.LogAuditEvent(ctx, "resolve", adminUID, "report", id, "success", nil)
	return result, nil
}

// Compile-time interface check
var _ Reports = (*FirestoreStore)(nil)
