package port

import (
	"context"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

// SafetyStatusStore persists the campus-wide safety level scalar.
type SafetyStatusStore interface {
	Level(ctx context.Context) (domain.SafetyLevel, error)
	SetLevel(ctx context.Context, level domain.SafetyLevel) error
}
