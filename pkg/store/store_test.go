package store

import (
	"context"
	"testing"
	"time"

	"github.com/mindweave/mindweave/pkg/blob"
	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/sched"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(context.Background(), Options{Title: "test"})
}

func strptr(s string) *string { return &s }

// =============================================================================
// Node operations
// =============================================================================

func TestAddNodeGeneratesUniqueIDs(t *testing.T) {
	s := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.AddNode(NodeConfig{Title: "n"})
		if id == "" {
			t.Fatal("AddNode returned empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestAddNodeAppliesBlueprintAndSelects(t *testing.T) {
	s := newTestStore(t)

	id := s.AddNode(NodeConfig{})
	n, ok := s.Node(id)
	if !ok {
		t.Fatal("node not found after AddNode")
	}
	if n.Type != graph.TypeTopic {
		t.Errorf("type = %q, want %q (empty type falls back to topic)", n.Type, graph.TypeTopic)
	}
	if n.Title != "New Topic" {
		t.Errorf("title = %q, want blueprint default", n.Title)
	}
	if n.Meta == nil {
		t.Error("meta should be initialized, not nil")
	}
	if s.Selected() != id {
		t.Errorf("selected = %q, want the new node %q", s.Selected(), id)
	}
}

func TestUpdateNodeShallowMerge(t *testing.T) {
	s := newTestStore(t)
	id := s.AddNode(NodeConfig{Title: "before", Content: "body", Type: graph.TypeNote})

	s.UpdateNode(id, NodeUpdate{Title: strptr("after")})

	n, _ := s.Node(id)
	if n.Title != "after" {
		t.Errorf("title = %q, want %q", n.Title, "after")
	}
	if n.Content != "body" {
		t.Errorf("content = %q, nil field must stay untouched", n.Content)
	}
	if n.Type != graph.TypeNote {
		t.Errorf("type = %q, nil field must stay untouched", n.Type)
	}
}

func TestUpdateNodeUnknownIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.AddNode(NodeConfig{Title: "a"})
	before := s.HistoryLen()

	s.UpdateNode("missing", NodeUpdate{Title: strptr("x")})

	if s.HistoryLen() != before {
		t.Error("no-op update must not push history")
	}
}

func TestDeleteNodeCascadesEdgesAndClearsSelection(t *testing.T) {
	s := newTestStore(t)
	a := s.AddNode(NodeConfig{Title: "a"})
	b := s.AddNode(NodeConfig{Title: "b"})
	c := s.AddNode(NodeConfig{Title: "c"})
	s.AddEdge(a, b, "", nil)
	s.AddEdge(b, c, "", nil)
	s.AddEdge(a, c, "", nil)

	s.Select(b)
	s.DeleteNode(b)

	if _, ok := s.Node(b); ok {
		t.Fatal("node b should be gone")
	}
	for _, e := range s.Edges() {
		if e.Source == b || e.Target == b {
			t.Errorf("edge %s->%s references deleted node", e.Source, e.Target)
		}
	}
	if len(s.Edges()) != 1 {
		t.Errorf("edges = %d, want 1 (only a->c survives)", len(s.Edges()))
	}
	if s.Selected() != "" {
		t.Errorf("selected = %q, want cleared", s.Selected())
	}
}

// =============================================================================
// Edge operations
// =============================================================================

func TestAddEdgeRejections(t *testing.T) {
	s := newTestStore(t)
	a := s.AddNode(NodeConfig{Title: "a"})
	b := s.AddNode(NodeConfig{Title: "b"})

	tests := []struct {
		name   string
		source string
		target string
	}{
		{"self loop", a, a},
		{"unknown source", "missing", b},
		{"unknown target", a, "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id := s.AddEdge(tt.source, tt.target, "", nil); id != "" {
				t.Errorf("AddEdge(%q, %q) = %q, want rejection", tt.source, tt.target, id)
			}
			if len(s.Edges()) != 0 {
				t.Errorf("edges = %d, want 0", len(s.Edges()))
			}
		})
	}
}

func TestAddEdgeDedupAndReverse(t *testing.T) {
	s := newTestStore(t)
	a := s.AddNode(NodeConfig{Title: "a"})
	b := s.AddNode(NodeConfig{Title: "b"})

	if id := s.AddEdge(a, b, "", nil); id == "" {
		t.Fatal("first edge should be accepted")
	}
	if id := s.AddEdge(a, b, "", nil); id != "" {
		t.Error("duplicate ordered pair should be rejected")
	}
	// The reverse direction is a different ordered pair.
	if id := s.AddEdge(b, a, "", nil); id == "" {
		t.Error("reverse edge should be accepted")
	}
	if len(s.Edges()) != 2 {
		t.Errorf("edges = %d, want 2", len(s.Edges()))
	}
}

func TestAddEdgeDefaultWeight(t *testing.T) {
	s := newTestStore(t)
	a := s.AddNode(NodeConfig{Title: "a"})
	b := s.AddNode(NodeConfig{Title: "b"})
	s.AddEdge(a, b, "", nil)

	if w := s.Edges()[0].Weight; w != graph.DefaultEdgeWeight {
		t.Errorf("weight = %v, want %v", w, graph.DefaultEdgeWeight)
	}
}

func TestDeleteEdge(t *testing.T) {
	s := newTestStore(t)
	a := s.AddNode(NodeConfig{Title: "a"})
	b := s.AddNode(NodeConfig{Title: "b"})
	s.AddEdge(a, b, "", nil)

	s.DeleteEdge(a, b)
	if len(s.Edges()) != 0 {
		t.Fatalf("edges = %d, want 0", len(s.Edges()))
	}

	before := s.HistoryLen()
	s.DeleteEdge(a, b) // already gone
	if s.HistoryLen() != before {
		t.Error("deleting a missing edge must not push history")
	}
}

func TestChildrenAndParentsInEdgeOrder(t *testing.T) {
	s := newTestStore(t)
	root := s.AddNode(NodeConfig{Title: "root"})
	c1 := s.AddNode(NodeConfig{Title: "c1"})
	c2 := s.AddNode(NodeConfig{Title: "c2"})
	s.AddEdge(root, c2, "", nil) // insertion order, not creation order
	s.AddEdge(root, c1, "", nil)

	kids := s.Children(root)
	if len(kids) != 2 || kids[0].ID != c2 || kids[1].ID != c1 {
		t.Errorf("children order = %v, want [c2 c1]", kids)
	}

	parents := s.Parents(c1)
	if len(parents) != 1 || parents[0].ID != root {
		t.Errorf("parents = %v, want [root]", parents)
	}
}

// =============================================================================
// Selection
// =============================================================================

func TestSelectUnknownClearsWithoutSideEffects(t *testing.T) {
	s := newTestStore(t)
	id := s.AddNode(NodeConfig{Title: "a"})
	histBefore := s.HistoryLen()

	var notified int
	s.Subscribe(func(Mutation) { notified++ })

	s.Select(id)
	s.Select("missing")

	if s.Selected() != "" {
		t.Errorf("selected = %q, want cleared", s.Selected())
	}
	if notified != 0 {
		t.Errorf("selection notified %d subscribers, want 0", notified)
	}
	if s.HistoryLen() != histBefore {
		t.Error("selection must not push history")
	}
}

// =============================================================================
// Subscriptions
// =============================================================================

func TestSubscribersRunInRegistrationOrder(t *testing.T) {
	s := newTestStore(t)

	var order []string
	s.Subscribe(func(m Mutation) { order = append(order, "first:"+string(m.Kind)) })
	s.Subscribe(func(m Mutation) { order = append(order, "second:"+string(m.Kind)) })

	s.AddNode(NodeConfig{Title: "a"})

	want := []string{"first:add-node", "second:add-node"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := newTestStore(t)

	var calls int
	h := s.Subscribe(func(Mutation) { calls++ })
	s.AddNode(NodeConfig{Title: "a"})
	s.Unsubscribe(h)
	s.AddNode(NodeConfig{Title: "b"})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestReentrantMutationIsBounded(t *testing.T) {
	s := newTestStore(t)

	// A subscriber that mutates on every notification would recurse
	// forever without the depth guard.
	var depth int
	s.Subscribe(func(m Mutation) {
		if m.Kind == MutationAddNode {
			depth++
			s.AddNode(NodeConfig{Title: "again"})
		}
	})

	s.AddNode(NodeConfig{Title: "seed"})

	if depth > maxNotifyDepth {
		t.Errorf("re-entrant depth = %d, want <= %d", depth, maxNotifyDepth)
	}
	// Mutations past the guard still apply; only fan-out is dropped.
	if len(s.Nodes()) <= maxNotifyDepth {
		t.Errorf("nodes = %d, mutations must apply even when fan-out stops", len(s.Nodes()))
	}
}

func TestMutationKinds(t *testing.T) {
	s := newTestStore(t)
	var kinds []MutationKind
	s.Subscribe(func(m Mutation) { kinds = append(kinds, m.Kind) })

	a := s.AddNode(NodeConfig{Title: "a"})
	b := s.AddNode(NodeConfig{Title: "b"})
	s.AddEdge(a, b, "", nil)
	s.UpdateNode(a, NodeUpdate{Title: strptr("a2")})
	s.DeleteEdge(a, b)
	s.DeleteNode(b)
	s.AutoLayout()
	s.Undo()

	want := []MutationKind{
		MutationAddNode, MutationAddNode, MutationAddEdge,
		MutationUpdateNode, MutationDeleteEdge, MutationDeleteNode,
		MutationLayout, MutationUndo,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %q, want %q", i, kinds[i], want[i])
		}
	}
}

// =============================================================================
// Undo
// =============================================================================

func TestUndoRestoresEntryBeneathTop(t *testing.T) {
	// The top snapshot is the pre-state of the most recent edit; undo
	// discards it and restores the snapshot beneath.
	s := newTestStore(t)
	a := s.AddNode(NodeConfig{Title: "a"})
	b := s.AddNode(NodeConfig{Title: "b"})
	s.AddEdge(a, b, "", nil)
	// Stack now holds {}, {a}, {a,b}; live state is {a,b}+edge.

	s.Undo()

	if len(s.Edges()) != 0 {
		t.Errorf("edges = %d after undo, want 0", len(s.Edges()))
	}
	if len(s.Nodes()) != 1 {
		t.Errorf("nodes = %d after undo, want 1", len(s.Nodes()))
	}
	if _, ok := s.Node(a); !ok {
		t.Error("node a must survive the undo")
	}
	if s.Selected() != "" {
		t.Errorf("selected = %q, undo must clear selection", s.Selected())
	}
}

func TestUndoWithoutHistoryIsNoOp(t *testing.T) {
	s := newTestStore(t)
	a := s.AddNode(NodeConfig{Title: "a"}) // one snapshot only

	var notified int
	s.Subscribe(func(Mutation) { notified++ })
	s.Undo()

	if _, ok := s.Node(a); !ok {
		t.Error("no-op undo must not change the graph")
	}
	if notified != 0 {
		t.Errorf("no-op undo notified %d subscribers, want 0", notified)
	}
}

func TestUndoDoesNotTouchViewport(t *testing.T) {
	s := newTestStore(t)
	s.AddNode(NodeConfig{Title: "a"})
	s.AddNode(NodeConfig{Title: "b"})

	vp := s.Viewport()
	vp.Pan(42, 17)
	s.Undo()

	doc := s.Document()
	if doc.Viewport.X != 42 || doc.Viewport.Y != 17 {
		t.Errorf("viewport = %+v, want pan preserved across undo", doc.Viewport)
	}
}

func TestAutoLayoutIsNotUndoable(t *testing.T) {
	s := newTestStore(t)
	a := s.AddNode(NodeConfig{Title: "a"})
	b := s.AddNode(NodeConfig{Title: "b"})
	s.AddEdge(a, b, "", nil)

	before := s.HistoryLen()
	s.AutoLayout()
	if s.HistoryLen() != before {
		t.Error("layout must not push history")
	}
}

// =============================================================================
// Persistence
// =============================================================================

func newPersistedStore(t *testing.T, dir string, manual *sched.Manual) *Store {
	t.Helper()
	fs, err := blob.NewFileStore(dir)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return New(context.Background(), Options{
		Title:         "persisted",
		Persister:     blob.NewPersister(fs),
		Scheduler:     manual,
		AutosaveDelay: 100 * time.Millisecond,
	})
}

func TestAutosaveDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	manual := sched.NewManual()
	s := newPersistedStore(t, dir, manual)

	s.AddNode(NodeConfig{Title: "a"})
	manual.Advance(50 * time.Millisecond)
	s.AddNode(NodeConfig{Title: "b"}) // resets the quiet window

	if manual.Pending() != 1 {
		t.Fatalf("pending saves = %d, want 1 (burst coalesced)", manual.Pending())
	}

	// Nothing on disk yet: the window has not elapsed since the last edit.
	manual.Advance(50 * time.Millisecond)
	if got := loadedNodeCount(t, dir); got != 0 {
		t.Fatalf("premature save: %d nodes on disk", got)
	}

	manual.Advance(50 * time.Millisecond)
	if got := loadedNodeCount(t, dir); got != 2 {
		t.Fatalf("saved nodes = %d, want 2", got)
	}
}

func TestFlushSavesImmediately(t *testing.T) {
	dir := t.TempDir()
	manual := sched.NewManual()
	s := newPersistedStore(t, dir, manual)

	s.AddNode(NodeConfig{Title: "a"})
	s.Flush()

	if got := loadedNodeCount(t, dir); got != 1 {
		t.Fatalf("saved nodes = %d, want 1", got)
	}
	if manual.Pending() != 0 {
		t.Errorf("pending = %d after flush, want 0", manual.Pending())
	}
}

func TestLoadRestoresAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	manual := sched.NewManual()
	s := newPersistedStore(t, dir, manual)
	id := s.AddNode(NodeConfig{Title: "kept"})
	s.Flush()

	reopened := newPersistedStore(t, dir, sched.NewManual())
	n, ok := reopened.Node(id)
	if !ok {
		t.Fatal("node not restored from disk")
	}
	if n.Title != "kept" {
		t.Errorf("title = %q, want %q", n.Title, "kept")
	}
}

func TestCorruptBlobFallsBackToEmptyGraph(t *testing.T) {
	dir := t.TempDir()
	fs, err := blob.NewFileStore(dir)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	if err := fs.Set(context.Background(), blob.DocumentKey, []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}

	s := New(context.Background(), Options{
		Title:     "fresh",
		Persister: blob.NewPersister(fs),
		Scheduler: sched.NewManual(),
	})
	if len(s.Nodes()) != 0 {
		t.Errorf("nodes = %d, want empty default graph", len(s.Nodes()))
	}
	if s.Title() != "fresh" {
		t.Errorf("title = %q, want fallback document title", s.Title())
	}
}

func loadedNodeCount(t *testing.T, dir string) int {
	t.Helper()
	fs, err := blob.NewFileStore(dir)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	doc := blob.NewPersister(fs).Load(context.Background())
	if doc == nil {
		return 0
	}
	return len(doc.Nodes)
}

// =============================================================================
// End-to-end flows
// =============================================================================

func TestAddTwoChildrenAndUndoFlow(t *testing.T) {
	s := newTestStore(t)
	root := s.AddNode(NodeConfig{Title: "R", Type: graph.TypeRoot})
	c1 := s.AddNode(NodeConfig{Title: "C1"})
	s.AddEdge(root, c1, "", nil)
	c2 := s.AddNode(NodeConfig{Title: "C2"})
	s.AddEdge(root, c2, "", nil)

	// First undo restores the state before C2 was added: C2 and its
	// edge are both gone, C1's edge survives.
	s.Undo()

	if _, ok := s.Node(c2); ok {
		t.Fatal("C2 should be gone after undo")
	}
	kids := s.Children(root)
	if len(kids) != 1 || kids[0].ID != c1 {
		t.Errorf("children = %v, want [C1]", kids)
	}

	// Second undo steps back past the first edge as well.
	s.Undo()
	if len(s.Edges()) != 0 {
		t.Errorf("edges = %d after second undo, want 0", len(s.Edges()))
	}
	if _, ok := s.Node(c1); !ok {
		t.Error("C1 must survive")
	}
	if _, ok := s.Node(root); !ok {
		t.Error("R must survive")
	}
}

func TestDeleteSubtreeRootKeepsOrphans(t *testing.T) {
	// Deleting a node cascades its edges but never its descendants:
	// children become orphan roots.
	s := newTestStore(t)
	root := s.AddNode(NodeConfig{Title: "R"})
	mid := s.AddNode(NodeConfig{Title: "M"})
	leaf := s.AddNode(NodeConfig{Title: "L"})
	s.AddEdge(root, mid, "", nil)
	s.AddEdge(mid, leaf, "", nil)

	s.DeleteNode(mid)

	if _, ok := s.Node(leaf); !ok {
		t.Fatal("leaf must survive deletion of its parent")
	}
	if len(s.Edges()) != 0 {
		t.Errorf("edges = %d, want 0", len(s.Edges()))
	}
	if len(s.Parents(leaf)) != 0 {
		t.Error("leaf should be an orphan root now")
	}
}
