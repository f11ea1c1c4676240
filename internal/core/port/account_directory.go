package port

import (
	"context"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
)

// AccountDirectory exposes lookup and mutation behavior for accounts. The
// directory is seeded with the fixed administrator record at startup and
// merged once with persisted accounts on first access.
type AccountDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Register(ctx context.Context, account domain.Account) error
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error)
}
