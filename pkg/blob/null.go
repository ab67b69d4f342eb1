package blob

import "context"

// NullStore is a no-op store that never persists anything. Useful for
// tests and for running the editor without persistence.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store { return &NullStore{} }

// Get always reports a miss.
func (NullStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (NullStore) Set(ctx context.Context, key string, data []byte) error { return nil }

// Delete does nothing.
func (NullStore) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (NullStore) Close() error { return nil }

var _ Store = (*NullStore)(nil)
