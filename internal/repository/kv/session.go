package kv

import (
	"context"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/storage"
)

// SessionStore persists the current-session email under the
// currentUserEmail scalar key.
type SessionStore struct {
	store port.Store
}

// NewSessionStore constructs the session scalar wrapper.
func NewSessionStore(store port.Store) *SessionStore {
	return &SessionStore{store: store}
}

// CurrentEmail reads the session scalar, reporting absence via ok.
func (s *SessionStore) CurrentEmail(ctx context.Context) (string, bool, error) {
	return s.store.ReadScalar(ctx, storage.KeyCurrentUserEmail)
}

// SetCurrentEmail records the logged-in account's email.
func (s *SessionStore) SetCurrentEmail(ctx context.Context, email string) error {
	return s.store.WriteScalar(ctx, storage.KeyCurrentUserEmail, email)
}

// Clear removes the session scalar only. There is no token to invalidate.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.store.DeleteScalar(ctx, storage.KeyCurrentUserEmail)
}
