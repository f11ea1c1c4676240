package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
)

// SafetyService exposes the campus-wide safety level to every view and lets
// administrators change it.
type SafetyService struct {
	store  port.SafetyStatusStore
	logger *zap.Logger
}

// NewSafetyService constructs a safety service.
func NewSafetyService(store port.SafetyStatusStore, log *zap.Logger) *SafetyService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SafetyService{store: store, logger: log}
}

// Level returns the current campus safety level.
func (s *SafetyService) Level(ctx context.Context) (domain.SafetyLevel, error) {
	return s.store.Level(ctx)
}

// SetLevel validates and stores a new campus safety level.
func (s *SafetyService) SetLevel(ctx context.Context, raw string) (domain.SafetyLevel, error) {
	level, ok := domain.ParseSafetyLevel(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown safety level %q", ErrValidation, raw)
	}
	if err := s.store.SetLevel(ctx, level); err != nil {
		return "", fmt.Errorf("store safety level: %w", err)
	}
	s.logger.Info("campus safety level changed", zap.String("level", string(level)))
	return level, nil
}
