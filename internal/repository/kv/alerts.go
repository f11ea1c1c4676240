package kv

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/storage"
)

// AlertRepository mirrors the ReportRepository append semantics for SOS
// alerts. Reads de-duplicate by alert ID keeping the first occurrence, the
// same policy as reports.
type AlertRepository struct {
	store  port.Store
	logger *zap.Logger

	mu     sync.Mutex
	alerts []domain.SOSAlert
}

// NewAlertRepository constructs an empty alert repository over the store.
func NewAlertRepository(store port.Store, logger *zap.Logger) *AlertRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertRepository{store: store, logger: logger}
}

// Save appends the alert to both the in-memory and persisted collections.
func (r *AlertRepository) Save(ctx context.Context, alert domain.SOSAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var persisted []domain.SOSAlert
	if err := r.store.ReadCollection(ctx, storage.KeySOSAlerts, &persisted); err != nil {
		return err
	}

	persisted = append(persisted, alert)
	if err := r.store.WriteCollection(ctx, storage.KeySOSAlerts, persisted); err != nil {
		return err
	}

	r.alerts = append(r.alerts, alert)
	return nil
}

// FindAll returns every merged, de-duplicated alert.
func (r *AlertRepository) FindAll(ctx context.Context) ([]domain.SOSAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var persisted []domain.SOSAlert
	if err := r.store.ReadCollection(ctx, storage.KeySOSAlerts, &persisted); err != nil {
		return nil, err
	}

	merged := make([]domain.SOSAlert, 0, len(r.alerts)+len(persisted))
	seen := make(map[string]bool, len(r.alerts)+len(persisted))

	for _, alert := range r.alerts {
		if !seen[alert.ID] {
			seen[alert.ID] = true
			merged = append(merged, alert)
		}
	}
	for _, alert := range persisted {
		if !seen[alert.ID] {
			seen[alert.ID] = true
			merged = append(merged, alert)
		}
	}
	return merged, nil
}

// Resolve rewrites the persisted collection with the matching alert flipped
// to resolved. Resolving an unknown or already-resolved alert is a no-op;
// the operation is idempotent by construction.
func (r *AlertRepository) Resolve(ctx context.Context, alertID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var persisted []domain.SOSAlert
	if err := r.store.ReadCollection(ctx, storage.KeySOSAlerts, &persisted); err != nil {
		return err
	}

	changed := false
	for i := range persisted {
		if persisted[i].ID == alertID && persisted[i].Status != domain.AlertStatusResolved {
			persisted[i].Status = domain.AlertStatusResolved
			changed = true
		}
	}
	for i := range r.alerts {
		if r.alerts[i].ID == alertID {
			r.alerts[i].Status = domain.AlertStatusResolved
		}
	}

	if !changed {
		return nil
	}
	return r.store.WriteCollection(ctx, storage.KeySOSAlerts, persisted)
}
