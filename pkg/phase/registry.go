package phase

import (
	"github.com/mindweave/mindweave/pkg/graph"
)

// Registry composes presentation engines, tracks which one is active
// and dispatches render calls to it. Engine selection is a flat state
// machine: one state per registered engine id, transitions through
// SetActive, no terminal state.
type Registry struct {
	engines []Engine // registration order, for Engines()
	byID    map[string]Engine
	surface Surface
	active  string
}

// NewRegistry creates a registry over a shared surface with a default
// active engine. The default id must belong to one of the engines;
// otherwise the first registered engine becomes active.
func NewRegistry(surface Surface, defaultID string, engines ...Engine) *Registry {
	r := &Registry{
		byID:    make(map[string]Engine, len(engines)),
		surface: surface,
	}
	for _, e := range engines {
		if _, dup := r.byID[e.ID()]; dup {
			continue
		}
		r.byID[e.ID()] = e
		r.engines = append(r.engines, e)
	}
	if _, ok := r.byID[defaultID]; ok {
		r.active = defaultID
	} else if len(r.engines) > 0 {
		r.active = r.engines[0].ID()
	}
	return r
}

// Active returns the active engine id.
func (r *Registry) Active() string { return r.active }

// Engines returns registered engine ids in registration order.
func (r *Registry) Engines() []string {
	ids := make([]string, len(r.engines))
	for i, e := range r.engines {
		ids[i] = e.ID()
	}
	return ids
}

// SetActive switches the active engine. This is the one place a full
// surface teardown happens; switching to the current engine or to an
// unknown id is a no-op.
func (r *Registry) SetActive(id string) {
	if id == r.active {
		return
	}
	if _, ok := r.byID[id]; !ok {
		return
	}
	r.surface.Clear()
	r.active = id
}

// Render forwards state to the active engine. No-op when the registry
// holds no engines.
func (r *Registry) Render(state graph.Document) {
	if e, ok := r.byID[r.active]; ok {
		e.Render(r.surface, state)
	}
}

// Surface exposes the shared surface for input collaborators (focus,
// edits) and for reading the rendered output.
func (r *Registry) Surface() Surface { return r.surface }
