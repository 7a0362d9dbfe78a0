package moderation

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockReports implements Reports in memory for unit tests.
type MockReports struct {
	mu      sync.Mutex
	reports map[string]*Report
}

// NewMockReports creates a new mock report store.
func NewMockReports() *MockReports {
	return &MockReports{reports: make(map[string]*Report)}
}

func (m *MockReports) File(_ context.Context, reporterUID, subjectUID string, kind ReportKind, details string) (*Report, error) {
	if reporterUID == subjectUID {
		return nil, ErrSelfReport
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := &Report{
		ID:          uuid.NewString(),
		ReporterUID: reporterUID,
		SubjectUID:  subjectUID,
		Kind:        kind,
		Details:     strings.TrimSpace(details),
		Status:      ReportOpen,
		CreatedAt:   time.Now().UTC(),
	}
	m.reports[r.ID] = r
	cp := *r
	return &cp, nil
}

func (m *MockReports) Get(_ context.Context, id string) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockReports) ListOpen(_ context.Context, limit int) ([]*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Report
	for _, r := range m.reports {
		if r.Status == ReportOpen {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockReports) Resolve(_ context.Context, id, adminUID string, actioned bool, resolution string) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	if r.Status != ReportOpen {
		return nil, ErrAlreadyClosed
	}
	if actioned {
		r.Status = ReportActioned
	} else {
		r.Status = ReportDismissed
	}
	r.Resolution = strings.TrimSpace(resolution)
	r.ResolvedBy = adminUID
	r.ResolvedAt = time.Now().UTC()
	cp := *r
	return &cp, nil
}

// Compile-time interface check
var _ Reports = (*MockReports)(nil)
