package phase

import (
	"testing"

	"github.com/mindweave/mindweave/pkg/graph"
)

// stubEngine records renders and writes one rep per node.
type stubEngine struct {
	id      string
	renders int
}

func (e *stubEngine) ID() string { return e.id }

func (e *stubEngine) Render(s Surface, state graph.Document) {
	e.renders++
	entities := make([]Entity, len(state.Nodes))
	for i, n := range state.Nodes {
		entities[i] = Entity{ID: n.ID, Fields: map[string]string{"title": n.Title}}
	}
	Reconcile(s, entities)
}

func docWith(titles ...string) graph.Document {
	doc := graph.NewDocument("t")
	for _, title := range titles {
		doc.Nodes = append(doc.Nodes, graph.Node{ID: "id-" + title, Title: title})
	}
	return doc
}

func TestRegistryDispatchesToActive(t *testing.T) {
	a := &stubEngine{id: "a"}
	b := &stubEngine{id: "b"}
	r := NewRegistry(NewTextSurface(), "a", a, b)

	r.Render(docWith("x"))

	if a.renders != 1 || b.renders != 0 {
		t.Errorf("renders a=%d b=%d, want 1/0", a.renders, b.renders)
	}
}

func TestRegistryDefaultFallsBackToFirst(t *testing.T) {
	a := &stubEngine{id: "a"}
	r := NewRegistry(NewTextSurface(), "nonexistent", a)
	if r.Active() != "a" {
		t.Errorf("active = %q, want first engine", r.Active())
	}
}

func TestRegistryDuplicateIDsSkipped(t *testing.T) {
	a := &stubEngine{id: "a"}
	dup := &stubEngine{id: "a"}
	r := NewRegistry(NewTextSurface(), "a", a, dup)

	if len(r.Engines()) != 1 {
		t.Fatalf("engines = %v, want one", r.Engines())
	}
	r.Render(docWith("x"))
	if dup.renders != 0 {
		t.Error("duplicate engine must never receive renders")
	}
}

func TestSetActiveClearsSurfaceOnce(t *testing.T) {
	surface := NewTextSurface()
	a := &stubEngine{id: "a"}
	b := &stubEngine{id: "b"}
	r := NewRegistry(surface, "a", a, b)

	r.Render(docWith("x", "y"))
	if surface.Len() != 2 {
		t.Fatalf("reps = %d, want 2", surface.Len())
	}

	// Switching engines is the one permitted full teardown.
	r.SetActive("b")
	if surface.Len() != 0 {
		t.Errorf("reps = %d after switch, want 0", surface.Len())
	}
	if r.Active() != "b" {
		t.Errorf("active = %q, want b", r.Active())
	}
}

func TestSetActiveNoOpCases(t *testing.T) {
	surface := NewTextSurface()
	a := &stubEngine{id: "a"}
	r := NewRegistry(surface, "a", a)
	r.Render(docWith("x"))

	r.SetActive("a") // same engine
	if surface.Len() != 1 {
		t.Error("switching to the current engine must not clear")
	}

	r.SetActive("unknown")
	if surface.Len() != 1 || r.Active() != "a" {
		t.Error("switching to an unknown engine must be a no-op")
	}
}
