// Package observability provides hooks for instrumenting the engine
// without coupling it to any logging or metrics backend.
//
// The package uses a simple hooks pattern: hook interfaces per event
// category, no-op default implementations, and registration at startup.
// Libraries call hooks to emit events; main decides where they go
// (charm log in the CLI, nothing in tests).
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Store hooks
// =============================================================================

// StoreHooks receives events from graph store mutations.
type StoreHooks interface {
	// OnMutation records a structural mutation (kind is the mutation
	// name, id the affected node or edge id, empty when not applicable).
	OnMutation(ctx context.Context, kind, id string)

	// OnNotify records one subscriber notification pass.
	OnNotify(ctx context.Context, kind string, subscribers int)

	// OnUndo records an undo attempt. applied is false for the
	// insufficient-history no-op case.
	OnUndo(ctx context.Context, applied bool)
}

// =============================================================================
// Layout hooks
// =============================================================================

// LayoutHooks receives events from layout runs.
type LayoutHooks interface {
	OnLayoutStart(ctx context.Context, nodeCount, edgeCount int)
	OnLayoutComplete(ctx context.Context, nodeCount int, duration time.Duration)
}

// =============================================================================
// Persistence hooks
// =============================================================================

// PersistHooks receives events from debounced persistence.
type PersistHooks interface {
	// OnSaveScheduled records a (re)scheduled deferred save.
	OnSaveScheduled(ctx context.Context)

	// OnSave records a completed save attempt.
	OnSave(ctx context.Context, size int, err error)

	// OnLoad records a load attempt. found is false when the store was
	// empty or the blob was unparsable.
	OnLoad(ctx context.Context, found bool)
}

// =============================================================================
// No-op implementations
// =============================================================================

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnMutation(context.Context, string, string) {}
func (NoopStoreHooks) OnNotify(context.Context, string, int)      {}
func (NoopStoreHooks) OnUndo(context.Context, bool)               {}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, int, int)              {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, int, time.Duration) {}

// NoopPersistHooks is a no-op implementation of PersistHooks.
type NoopPersistHooks struct{}

func (NoopPersistHooks) OnSaveScheduled(context.Context)    {}
func (NoopPersistHooks) OnSave(context.Context, int, error) {}
func (NoopPersistHooks) OnLoad(context.Context, bool)       {}

// =============================================================================
// Global hook registry
// =============================================================================

var (
	storeHooks   StoreHooks   = NoopStoreHooks{}
	layoutHooks  LayoutHooks  = NoopLayoutHooks{}
	persistHooks PersistHooks = NoopPersistHooks{}
	hooksMu      sync.RWMutex
)

// SetStoreHooks registers custom store hooks. Call once at startup.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetLayoutHooks registers custom layout hooks. Call once at startup.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetPersistHooks registers custom persistence hooks. Call once at startup.
func SetPersistHooks(h PersistHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		persistHooks = h
	}
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Persist returns the registered persistence hooks.
func Persist() PersistHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return persistHooks
}

// Reset restores all hooks to their no-op defaults. Primarily for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storeHooks = NoopStoreHooks{}
	layoutHooks = NoopLayoutHooks{}
	persistHooks = NoopPersistHooks{}
}
