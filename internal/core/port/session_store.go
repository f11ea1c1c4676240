package port

import "context"

// SessionStore persists the current-session email scalar. Clear removes the
// scalar only; there is no token to invalidate.
type SessionStore interface {
	CurrentEmail(ctx context.Context) (string, bool, error)
	SetCurrentEmail(ctx context.Context, email string) error
	Clear(ctx context.Context) error
}
