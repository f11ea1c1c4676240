package port

import (
	"context"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

// ReportRepository persists incident reports. Save performs no validation;
// that responsibility belongs to the calling service. Read operations merge
// the in-memory and persisted copies and de-duplicate by report ID keeping
// the first occurrence. Merge order is not guaranteed chronological.
type ReportRepository interface {
	Save(ctx context.Context, report domain.IncidentReport) error
	FindBySubmitter(ctx context.Context, accountID string) ([]domain.IncidentReport, error)
	FindAll(ctx context.Context) ([]domain.IncidentReport, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error
}
