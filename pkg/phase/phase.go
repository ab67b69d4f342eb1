// Package phase defines the reconciliation contract every presentation
// engine of the mindweave engine implements, and the registry that
// selects the active engine.
//
// An engine turns graph state into some fixed output - an outline
// list, a generated document, an editable tree - by rendering onto a
// Surface. Render is called repeatedly as state changes and must be
// idempotent. The contract converts a naive clear-and-redraw strategy
// into a minimal diff keyed by stable entity identity:
//
//   - the first render of an entity id creates its representation and
//     the surface remembers the id→representation association
//   - later renders update only data-bound fields, and a field that
//     currently holds interactive input focus is never overwritten -
//     the user's in-progress edit wins until focus is lost
//   - entities removed from state have their representation destroyed;
//     added entities get a new one; reordering reorders representations
//     without destroying them
//   - full-surface teardown is permitted only when switching engines
package phase

import (
	"github.com/mindweave/mindweave/pkg/graph"
)

// Rep is the visual representation of one entity on a surface.
type Rep interface {
	// Set overwrites a data-bound field's displayed value. If the field
	// currently holds input focus the overwrite is deferred: the
	// displayed value stays untouched and the new value is applied when
	// focus is released.
	Set(field, value string)

	// Get returns the currently displayed value of a field.
	Get(field string) string

	// Focused reports whether the field holds interactive input focus.
	Focused(field string) bool
}

// Surface owns representations keyed by stable entity id. Presentation
// engines render onto it; input collaborators feed focus and edits into
// it.
type Surface interface {
	// Rep returns the existing representation for an entity id.
	Rep(id string) (Rep, bool)

	// Create makes a new representation for an entity id and records
	// the association. Creating an existing id returns the existing
	// representation.
	Create(id string) Rep

	// Destroy removes an entity's representation.
	Destroy(id string)

	// Order re-orders representations to match ids without destroying
	// or recreating them. Ids without a representation are ignored.
	Order(ids []string)

	// Clear tears down every representation. Only the registry calls
	// this, and only when the active engine changes.
	Clear()
}

// Engine is the capability every presentation engine implements.
type Engine interface {
	// ID names the engine for registry selection.
	ID() string

	// Render reconciles the surface with the given state. Callable
	// repeatedly and idempotently; engines must not mutate state.
	Render(s Surface, state graph.Document)
}

// Entity is one unit of renderable state: a stable id plus the
// data-bound field values an engine derives from the graph.
type Entity struct {
	ID     string
	Fields map[string]string
}

// Reconcile updates a surface to match the given entities, in order.
// It creates missing representations, updates fields through Rep.Set
// (which preserves focused fields), destroys representations whose
// entity disappeared, and finally reorders to match the entity order.
//
// Engines built on Reconcile satisfy the package contract without
// re-implementing the diff discipline.
func Reconcile(s Surface, entities []Entity) {
	want := make(map[string]bool, len(entities))
	ids := make([]string, len(entities))
	for i, e := range entities {
		want[e.ID] = true
		ids[i] = e.ID
	}

	for _, e := range entities {
		rep, ok := s.Rep(e.ID)
		if !ok {
			rep = s.Create(e.ID)
		}
		for field, value := range e.Fields {
			rep.Set(field, value)
		}
	}

	for _, id := range surfaceIDs(s, entities) {
		if !want[id] {
			s.Destroy(id)
		}
	}

	s.Order(ids)
}

// Lister is implemented by surfaces that can enumerate their
// representation ids. TextSurface implements it; Reconcile uses it to
// find stale representations.
type Lister interface {
	IDs() []string
}

func surfaceIDs(s Surface, entities []Entity) []string {
	if l, ok := s.(Lister); ok {
		return l.IDs()
	}
	// Without enumeration only the given entities can be checked; stale
	// reps on exotic surfaces are the surface's own concern.
	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}
	return ids
}
