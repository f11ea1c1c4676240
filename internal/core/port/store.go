package port

import "context"

// Store wraps a key-value backend that persists JSON-encoded collections and
// bare string scalars under fixed key names. There is no schema versioning
// and no transactionality: concurrent writers to the same key race on
// read-modify-write with last-write-wins.
//
// ReadCollection must not fail on a missing or malformed payload; adapters
// log a diagnostic and leave out pointing at an empty collection. Errors are
// reserved for backend IO failures.
type Store interface {
	ReadCollection(ctx context.Context, key string, out any) error
	WriteCollection(ctx context.Context, key string, value any) error
	ReadScalar(ctx context.Context, key string) (string, bool, error)
	WriteScalar(ctx context.Context, key, value string) error
	DeleteScalar(ctx context.Context, key string) error
}
