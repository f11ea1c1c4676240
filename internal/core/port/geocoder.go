package port

import (
	"context"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

// ReverseGeocoder maps coordinates to a human-readable address. The service
// is treated as unreliable: callers absorb failures and fall back to an
// unresolved address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, coords domain.Coordinates) (string, error)
}
