package kv

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/storage"
)

// ReportRepository appends incident reports to both an in-memory collection
// and the persisted complaints collection. Reads merge the two copies and
// de-duplicate by report ID keeping the first occurrence. The merge order is
// in-memory first, then persisted; it is NOT guaranteed chronological and
// callers must not rely on it being sorted.
type ReportRepository struct {
	store  port.Store
	logger *zap.Logger

	mu      sync.Mutex
	reports []domain.IncidentReport
}

// NewReportRepository constructs an empty report repository over the store.
func NewReportRepository(store port.Store, logger *zap.Logger) *ReportRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportRepository{store: store, logger: logger}
}

// Save appends the report to both collections. No validation happens here;
// the submitting service owns that.
func (r *ReportRepository) Save(ctx context.Context, report domain.IncidentReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var persisted []domain.IncidentReport
	if err := r.store.ReadCollection(ctx, storage.KeyComplaints, &persisted); err != nil {
		return err
	}

	persisted = append(persisted, report)
	if err := r.store.WriteCollection(ctx, storage.KeyComplaints, persisted); err != nil {
		return err
	}

	r.reports = append(r.reports, report)
	return nil
}

// FindBySubmitter returns the merged, de-duplicated reports for one account.
func (r *ReportRepository) FindBySubmitter(ctx context.Context, accountID string) ([]domain.IncidentReport, error) {
	merged, err := r.merge(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.IncidentReport, 0, len(merged))
	for _, report := range merged {
		if report.SubmitterID == accountID {
			filtered = append(filtered, report)
		}
	}
	return filtered, nil
}

// FindAll returns every merged, de-duplicated report.
func (r *ReportRepository) FindAll(ctx context.Context) ([]domain.IncidentReport, error) {
	return r.merge(ctx)
}

// UpdateStatus rewrites the persisted collection with the matching report's
// status replaced. Any of the known statuses may be written; the repository
// does not enforce a transition graph. Unknown IDs are a silent no-op.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var persisted []domain.IncidentReport
	if err := r.store.ReadCollection(ctx, storage.KeyComplaints, &persisted); err != nil {
		return err
	}

	changed := false
	for i := range persisted {
		if persisted[i].ID == id {
			persisted[i].Status = status
			changed = true
		}
	}
	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].Status = status
		}
	}

	if !changed {
		return nil
	}
	return r.store.WriteCollection(ctx, storage.KeyComplaints, persisted)
}

func (r *ReportRepository) merge(ctx context.Context) ([]domain.IncidentReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var persisted []domain.IncidentReport
	if err := r.store.ReadCollection(ctx, storage.KeyComplaints, &persisted); err != nil {
		return nil, err
	}

	merged := make([]domain.IncidentReport, 0, len(r.reports)+len(persisted))
	seen := make(map[string]bool, len(r.reports)+len(persisted))

	for _, report := range r.reports {
		if !seen[report.ID] {
			seen[report.ID] = true
			merged = append(merged, report)
		}
	}
	for _, report := range persisted {
		if !seen[report.ID] {
			seen[report.ID] = true
			merged = append(merged, report)
		}
	}
	return merged, nil
}
