// Package store implements the graph store: the single source of truth
// for nodes, edges, selection, viewport and history, and the only
// mutation surface of the engine.
//
// The store follows a single-threaded, cooperative model: every
// mutation and every subscriber notification runs synchronously within
// the call that triggered it. There is no locking; collaborators that
// need concurrency must serialize their calls.
//
// The mutation contract degrades silently instead of failing: invalid
// edge requests are ignored, operations on unknown ids are no-ops, and
// undo with insufficient history does nothing. The graph is never left
// in a half-mutated state a presentation engine cannot render.
package store

import (
	"context"
	"time"

	"github.com/mindweave/mindweave/pkg/blob"
	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/history"
	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/observability"
	"github.com/mindweave/mindweave/pkg/sched"
	"github.com/mindweave/mindweave/pkg/viewport"
)

// MutationKind names a structural change for subscriber dispatch.
type MutationKind string

// Mutation kinds delivered to subscribers.
const (
	MutationAddNode    MutationKind = "add-node"
	MutationUpdateNode MutationKind = "update-node"
	MutationDeleteNode MutationKind = "delete-node"
	MutationAddEdge    MutationKind = "add-edge"
	MutationDeleteEdge MutationKind = "delete-edge"
	MutationUndo       MutationKind = "undo"
	MutationLayout     MutationKind = "layout"
)

// Mutation describes one structural change. ID is the affected node or
// edge id, empty where not applicable (undo, layout).
type Mutation struct {
	Kind MutationKind
	ID   string
}

// SubscriberFunc receives mutations. Callbacks run synchronously before
// the mutating call returns, in registration order. A callback that
// mutates the store re-enters this same synchronous path; nested
// notification deeper than maxNotifyDepth is suppressed to keep
// re-entrancy bounded.
type SubscriberFunc func(Mutation)

// Handle identifies a subscription for Unsubscribe.
type Handle int

// maxNotifyDepth bounds re-entrant notification. Mutations past the
// limit still apply; only their fan-out is dropped.
const maxNotifyDepth = 8

// DefaultAutosaveDelay is the persistence quiescence window.
const DefaultAutosaveDelay = 1000 * time.Millisecond

// Options configures a store. Zero-value fields fall back to sensible
// defaults: built-in blueprints, default spacing, a 50-entry history,
// no persistence.
type Options struct {
	Title         string
	Blueprints    *graph.Blueprints
	Layout        *layout.Engine
	History       *history.Stack
	Persister     *blob.Persister
	Scheduler     sched.Scheduler
	AutosaveDelay time.Duration
}

// Store owns the mutable graph state. Create one per document with New
// and pass it by reference to every consumer; there is no package-level
// instance.
type Store struct {
	ctx context.Context

	doc        graph.Document
	blueprints *graph.Blueprints
	layoutEng  *layout.Engine
	hist       *history.Stack

	persister *blob.Persister
	debounce  *sched.Debouncer

	subs        []subscriber
	nextHandle  Handle
	notifyDepth int
}

type subscriber struct {
	handle Handle
	fn     SubscriberFunc
}

// New creates a store. When a persister is configured, the previously
// saved document is restored; a missing or unparsable blob starts an
// empty default graph.
func New(ctx context.Context, opts Options) *Store {
	if opts.Blueprints == nil {
		opts.Blueprints = graph.NewBlueprints()
	}
	if opts.Layout == nil {
		opts.Layout = layout.New(layout.DefaultSpacing)
	}
	if opts.History == nil {
		opts.History = history.New(history.DefaultCapacity)
	}
	if opts.AutosaveDelay <= 0 {
		opts.AutosaveDelay = DefaultAutosaveDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = sched.NewTimer()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s := &Store{
		ctx:        ctx,
		blueprints: opts.Blueprints,
		layoutEng:  opts.Layout,
		hist:       opts.History,
		persister:  opts.Persister,
	}

	if opts.Persister != nil {
		if loaded := opts.Persister.Load(ctx); loaded != nil {
			s.doc = *loaded
		}
	}
	if s.doc.Meta.Version == 0 {
		s.doc = graph.NewDocument(opts.Title)
	}
	if s.doc.Viewport.Scale == 0 {
		s.doc.Viewport.Scale = 1
	}

	if opts.Persister != nil {
		s.debounce = sched.NewDebouncer(opts.Scheduler, opts.AutosaveDelay, s.saveNow)
	}
	return s
}

// Blueprints returns the blueprint registry the store applies to new
// nodes.
func (s *Store) Blueprints() *graph.Blueprints { return s.blueprints }

// Document returns a deep copy of the full graph state for rendering,
// export or persistence.
func (s *Store) Document() graph.Document { return s.doc.Clone() }

// Title returns the document title.
func (s *Store) Title() string { return s.doc.Meta.Title }

// =============================================================================
// Node operations
// =============================================================================

// NodeConfig describes a node to create. Unset title/content fall back
// to the blueprint defaults for Type; an empty Type becomes "topic".
type NodeConfig struct {
	Title    string
	Content  string
	Type     string
	Position graph.Position
	Style    map[string]string
	Meta     graph.Metadata
}

// AddNode creates a node, selects it and returns its id. It always
// succeeds: ids are generated, never supplied.
func (s *Store) AddNode(cfg NodeConfig) string {
	s.snapshot()

	n := graph.Node{
		ID:       graph.NewID(),
		Title:    cfg.Title,
		Content:  cfg.Content,
		Type:     cfg.Type,
		Position: cfg.Position,
		Style:    cfg.Style,
		Meta:     cfg.Meta,
	}
	s.blueprints.Apply(&n)
	if n.Meta == nil {
		n.Meta = graph.Metadata{}
	}

	s.doc.Nodes = append(s.doc.Nodes, n)
	s.doc.Selected = n.ID
	s.mutated(Mutation{Kind: MutationAddNode, ID: n.ID})
	return n.ID
}

// NodeUpdate describes a shallow merge into an existing node. Nil
// fields are left untouched; map fields replace the node's maps.
type NodeUpdate struct {
	Title    *string
	Content  *string
	Type     *string
	Position *graph.Position
	Style    map[string]string
	Meta     graph.Metadata
}

// UpdateNode shallow-merges updates into the node. No-op when the id is
// unknown.
func (s *Store) UpdateNode(id string, u NodeUpdate) {
	i := s.nodeIndex(id)
	if i < 0 {
		return
	}
	s.snapshot()

	n := &s.doc.Nodes[i]
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Type != nil {
		n.Type = *u.Type
	}
	if u.Position != nil {
		n.Position = *u.Position
	}
	if u.Style != nil {
		n.Style = u.Style
	}
	if u.Meta != nil {
		n.Meta = u.Meta
	}
	s.mutated(Mutation{Kind: MutationUpdateNode, ID: id})
}

// DeleteNode removes the node and every edge referencing it as source
// or target, and clears the selection if it pointed at the node. No-op
// when the id is unknown.
func (s *Store) DeleteNode(id string) {
	i := s.nodeIndex(id)
	if i < 0 {
		return
	}
	s.snapshot()

	s.doc.Nodes = append(s.doc.Nodes[:i], s.doc.Nodes[i+1:]...)

	kept := s.doc.Edges[:0]
	for _, e := range s.doc.Edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	s.doc.Edges = kept

	if s.doc.Selected == id {
		s.doc.Selected = ""
	}
	s.mutated(Mutation{Kind: MutationDeleteNode, ID: id})
}

// Node returns a copy of the node and whether it exists.
func (s *Store) Node(id string) (graph.Node, bool) {
	if i := s.nodeIndex(id); i >= 0 {
		return graph.CloneNode(s.doc.Nodes[i]), true
	}
	return graph.Node{}, false
}

// Nodes returns a deep copy of all nodes in insertion order.
func (s *Store) Nodes() []graph.Node { return graph.CloneNodes(s.doc.Nodes) }

// =============================================================================
// Edge operations
// =============================================================================

// AddEdge creates a directed edge and returns its id. Requests are
// silently rejected - returning an empty id - when source equals
// target, when either endpoint is unknown, or when an edge with the
// same ordered pair already exists. Callers needing confirmation check
// state before or after.
func (s *Store) AddEdge(source, target, typ string, meta graph.Metadata) string {
	if source == target {
		return ""
	}
	if s.nodeIndex(source) < 0 || s.nodeIndex(target) < 0 {
		return ""
	}
	for _, e := range s.doc.Edges {
		if e.Source == source && e.Target == target {
			return ""
		}
	}
	s.snapshot()

	e := graph.Edge{
		ID:     graph.NewID(),
		Source: source,
		Target: target,
		Type:   typ,
		Weight: graph.DefaultEdgeWeight,
		Meta:   meta,
	}
	s.doc.Edges = append(s.doc.Edges, e)
	s.mutated(Mutation{Kind: MutationAddEdge, ID: e.ID})
	return e.ID
}

// DeleteEdge removes the edge from source to target. No-op when no such
// edge exists.
func (s *Store) DeleteEdge(source, target string) {
	for i, e := range s.doc.Edges {
		if e.Source == source && e.Target == target {
			s.snapshot()
			id := e.ID
			s.doc.Edges = append(s.doc.Edges[:i], s.doc.Edges[i+1:]...)
			s.mutated(Mutation{Kind: MutationDeleteEdge, ID: id})
			return
		}
	}
}

// Edges returns a deep copy of all edges in insertion order.
func (s *Store) Edges() []graph.Edge { return graph.CloneEdges(s.doc.Edges) }

// Children returns the nodes reachable by one outgoing edge from id, in
// edge insertion order. Edges whose target no longer exists are
// silently dropped.
func (s *Store) Children(id string) []graph.Node {
	var out []graph.Node
	for _, e := range s.doc.Edges {
		if e.Source != id {
			continue
		}
		if i := s.nodeIndex(e.Target); i >= 0 {
			out = append(out, graph.CloneNode(s.doc.Nodes[i]))
		}
	}
	return out
}

// Parents returns the nodes with one incoming edge to id, in edge
// insertion order, silently dropping dangling references.
func (s *Store) Parents(id string) []graph.Node {
	var out []graph.Node
	for _, e := range s.doc.Edges {
		if e.Target != id {
			continue
		}
		if i := s.nodeIndex(e.Source); i >= 0 {
			out = append(out, graph.CloneNode(s.doc.Nodes[i]))
		}
	}
	return out
}

// =============================================================================
// Selection and viewport
// =============================================================================

// Select sets the selected node. Selecting an unknown id clears the
// selection. Selection is presentation state: it does not notify
// subscribers, push history or schedule a save.
func (s *Store) Select(id string) {
	if id != "" && s.nodeIndex(id) < 0 {
		id = ""
	}
	s.doc.Selected = id
}

// Selected returns the selected node id, empty when none.
func (s *Store) Selected() string { return s.doc.Selected }

// Viewport returns a transform over the live viewport state. Pan and
// zoom through it are presentation changes: no notification, no
// history, no save.
func (s *Store) Viewport() viewport.Transform {
	return viewport.New(&s.doc.Viewport)
}

// =============================================================================
// Layout, undo, persistence
// =============================================================================

// AutoLayout recomputes every node position with the layout engine.
// Derived positions are not undoable, but subscribers are notified and
// a save is scheduled.
func (s *Store) AutoLayout() {
	start := time.Now()
	observability.Layout().OnLayoutStart(s.ctx, len(s.doc.Nodes), len(s.doc.Edges))

	pos := s.layoutEng.AutoLayout(s.doc.Nodes, s.doc.Edges)
	for i := range s.doc.Nodes {
		if p, ok := pos[s.doc.Nodes[i].ID]; ok {
			s.doc.Nodes[i].Position = p
		}
	}

	observability.Layout().OnLayoutComplete(s.ctx, len(s.doc.Nodes), time.Since(start))
	s.scheduleSave()
	s.notify(Mutation{Kind: MutationLayout})
}

// Undo restores the node/edge sets from before the most recent
// structural mutation and clears the selection; the viewport is left
// untouched. No-op when fewer than two snapshots exist.
func (s *Store) Undo() {
	snap, ok := s.hist.Undo()
	observability.Store().OnUndo(s.ctx, ok)
	if !ok {
		return
	}
	s.doc.Nodes = snap.Nodes
	s.doc.Edges = snap.Edges
	s.doc.Selected = ""
	s.scheduleSave()
	s.notify(Mutation{Kind: MutationUndo})
}

// HistoryLen reports the number of snapshots currently held.
func (s *Store) HistoryLen() int { return s.hist.Len() }

// Flush forces any pending debounced save to run immediately. The
// engine gives no flush-on-exit guarantee; callers that need one (the
// CLI does) call Flush themselves.
func (s *Store) Flush() {
	if s.debounce != nil {
		s.debounce.Flush()
	}
}

// =============================================================================
// Subscriptions
// =============================================================================

// Subscribe registers a callback for structural mutations and returns a
// handle for Unsubscribe.
func (s *Store) Subscribe(fn SubscriberFunc) Handle {
	s.nextHandle++
	s.subs = append(s.subs, subscriber{handle: s.nextHandle, fn: fn})
	return s.nextHandle
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (s *Store) Unsubscribe(h Handle) {
	for i, sub := range s.subs {
		if sub.handle == h {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// =============================================================================
// Internals
// =============================================================================

func (s *Store) nodeIndex(id string) int {
	for i, n := range s.doc.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// snapshot pushes the pre-mutation state. Called immediately before
// every structural mutation is applied.
func (s *Store) snapshot() {
	s.hist.Push(s.doc.Nodes, s.doc.Edges)
}

// mutated records, persists and fans out a structural mutation.
func (s *Store) mutated(m Mutation) {
	observability.Store().OnMutation(s.ctx, string(m.Kind), m.ID)
	s.scheduleSave()
	s.notify(m)
}

func (s *Store) notify(m Mutation) {
	if s.notifyDepth >= maxNotifyDepth {
		return
	}
	s.notifyDepth++
	defer func() { s.notifyDepth-- }()

	observability.Store().OnNotify(s.ctx, string(m.Kind), len(s.subs))
	// Iterate a copy so callbacks can subscribe/unsubscribe mid-pass.
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	for _, sub := range subs {
		sub.fn(m)
	}
}

func (s *Store) scheduleSave() {
	if s.debounce == nil {
		return
	}
	observability.Persist().OnSaveScheduled(s.ctx)
	s.debounce.Trigger()
}

func (s *Store) saveNow() {
	if s.persister == nil {
		return
	}
	_ = s.persister.Save(s.ctx, s.doc.Clone())
}
