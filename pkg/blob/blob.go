// Package blob defines the opaque blob store the engine persists into,
// with file, Redis, MongoDB and null backends, and the fixed-key
// Persister that implements the engine's load/save contract.
//
// The engine never sees backend errors on load: a missing or unparsable
// blob is treated as absence of saved state and the caller starts from
// an empty default graph.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("blob store closed")

// Store is the interface for blob storage backends.
type Store interface {
	// Get retrieves a blob. The second return value reports whether the
	// key existed; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a blob, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a blob. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hex digest of data. Backends that map keys to
// filenames use it to avoid unsafe characters.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
