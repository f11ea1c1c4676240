package kv

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/storage"
)

// SafetyStatusStore persists the campus-wide safety level under the
// campusSafetyStatus scalar key.
type SafetyStatusStore struct {
	store  port.Store
	logger *zap.Logger
}

// NewSafetyStatusStore constructs the safety level scalar wrapper.
func NewSafetyStatusStore(store port.Store, logger *zap.Logger) *SafetyStatusStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SafetyStatusStore{store: store, logger: logger}
}

// Level returns the stored safety level. An absent or unparseable value
// falls back to normal.
func (s *SafetyStatusStore) Level(ctx context.Context) (domain.SafetyLevel, error) {
	raw, ok, err := s.store.ReadScalar(ctx, storage.KeyCampusSafetyStatus)
	if err != nil {
		return domain.SafetyNormal, err
	}
	if !ok {
		return domain.SafetyNormal, nil
	}

	level, valid := domain.ParseSafetyLevel(raw)
	if !valid {
		s.logger.Warn("stored safety level is not a known value, treating as normal",
			zap.String("value", raw),
		)
	}
	return level, nil
}

// SetLevel validates and stores the safety level.
func (s *SafetyStatusStore) SetLevel(ctx context.Context, level domain.SafetyLevel) error {
	if _, valid := domain.ParseSafetyLevel(string(level)); !valid {
		return fmt.Errorf("unknown safety level %q", level)
	}
	return s.store.WriteScalar(ctx, storage.KeyCampusSafetyStatus, string(level))
}
