// Package editor implements the interactive tree-editor presentation
// engine: an editable list of nodes whose title field accepts input
// focus.
//
// This engine is the reason the reconciliation contract exists. While a
// title is being edited, upstream changes to the same node keep
// arriving (a debounced layout run, an undo, another engine committing
// an edit); the focused field must keep showing the in-progress text
// until focus is released. The engine therefore mutates the store only
// through the public API, and trusts the surface to defer overwrites of
// the focused field.
package editor

import (
	"strconv"

	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/phase"
	"github.com/mindweave/mindweave/pkg/store"
)

// EngineID is the registry id of this engine.
const EngineID = "editor"

// Representation fields written by this engine. FieldTitle is editable.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldType    = "type"
	FieldDepth   = "depth"
)

// Engine renders the editable tree and routes edits back into the
// store.
type Engine struct {
	store    *store.Store
	priority layout.PriorityFunc
}

// New creates an editor engine bound to a store.
func New(st *store.Store) *Engine {
	return &Engine{store: st, priority: st.Blueprints().Priority}
}

// ID implements phase.Engine.
func (e *Engine) ID() string { return EngineID }

// Render implements phase.Engine.
func (e *Engine) Render(s phase.Surface, state graph.Document) {
	rows := phase.Walk(state, e.priority)
	entities := make([]phase.Entity, len(rows))
	for i, r := range rows {
		entities[i] = phase.Entity{
			ID: r.Node.ID,
			Fields: map[string]string{
				FieldTitle:   r.Node.Title,
				FieldContent: r.Node.Content,
				FieldType:    r.Node.Type,
				FieldDepth:   strconv.Itoa(r.Depth),
			},
		}
	}
	phase.Reconcile(s, entities)
}

var _ phase.Engine = (*Engine)(nil)

// BeginEdit gives the node's title field input focus. From here on,
// re-renders leave the displayed title alone.
func (e *Engine) BeginEdit(s *phase.TextSurface, id string) {
	e.store.Select(id)
	s.Focus(id, FieldTitle)
}

// Type replaces the in-progress title text.
func (e *Engine) Type(s *phase.TextSurface, id, text string) {
	s.Input(id, FieldTitle, text)
}

// Commit writes the in-progress title into the store and releases
// focus. The store mutation triggers a re-render, which now may
// overwrite the field again - with the value just committed.
func (e *Engine) Commit(s *phase.TextSurface, id string) {
	rep, ok := s.Rep(id)
	if !ok {
		return
	}
	title := rep.Get(FieldTitle)
	s.Blur(id)
	e.store.UpdateNode(id, store.NodeUpdate{Title: &title})
}

// Cancel discards the in-progress edit and releases focus; a deferred
// upstream value, if any, is applied. The next render restores the
// store's title.
func (e *Engine) Cancel(s *phase.TextSurface, id string) {
	s.Blur(id)
	e.Render(s, e.store.Document())
}

// AddChild creates a node of the given type under parent and returns
// its id. With an empty parent the node becomes a new root. A type the
// parent's blueprint does not allow is substituted with the first
// allowed one.
func (e *Engine) AddChild(parent, typ string) string {
	if p, ok := e.store.Node(parent); ok {
		typ = e.store.Blueprints().ChildType(p.Type, typ)
	}
	id := e.store.AddNode(store.NodeConfig{Type: typ})
	if parent != "" {
		e.store.AddEdge(parent, id, "", nil)
	}
	return id
}

// Delete removes a node through the store; cascade rules apply.
func (e *Engine) Delete(id string) { e.store.DeleteNode(id) }
