package port

import (
	"context"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

// AlertRepository persists SOS alerts with the same dual-copy append
// semantics as reports. Resolve flips the matching record to resolved and is
// an idempotent no-op when the ID is unknown or already resolved.
type AlertRepository interface {
	Save(ctx context.Context, alert domain.SOSAlert) error
	FindAll(ctx context.Context) ([]domain.SOSAlert, error)
	Resolve(ctx context.Context, alertID string) error
}
