package layout

import (
	"testing"

	"github.com/mindweave/mindweave/pkg/graph"
)

func buildNodes(ids ...string) []graph.Node {
	out := make([]graph.Node, len(ids))
	for i, id := range ids {
		out[i] = graph.Node{ID: id, Title: id}
	}
	return out
}

func edge(source, target string) graph.Edge {
	return graph.Edge{ID: source + "->" + target, Source: source, Target: target}
}

func TestAutoLayoutRootChildScenario(t *testing.T) {
	e := New(DefaultSpacing)
	nodes := buildNodes("R", "C")
	edges := []graph.Edge{edge("R", "C")}

	pos := e.AutoLayout(nodes, edges)

	// C is the only leaf, placed at y=0; R centers on its single child.
	if got := pos["R"]; got != (graph.Position{X: 0, Y: 0}) {
		t.Errorf("R = %+v, want {0 0}", got)
	}
	if got := pos["C"]; got != (graph.Position{X: DefaultSpacing.X, Y: 0}) {
		t.Errorf("C = %+v, want {%v 0}", got, DefaultSpacing.X)
	}
}

func TestAutoLayoutParentCentersOnChildren(t *testing.T) {
	e := New(Spacing{X: 100, Y: 50})
	nodes := buildNodes("R", "A", "B", "C")
	edges := []graph.Edge{edge("R", "A"), edge("R", "B"), edge("R", "C")}

	pos := e.AutoLayout(nodes, edges)

	// Three leaves stack at y = 0, 50, 100; R centers on first/last.
	wantY := []float64{0, 50, 100}
	for i, id := range []string{"A", "B", "C"} {
		if pos[id].Y != wantY[i] {
			t.Errorf("%s.Y = %v, want %v", id, pos[id].Y, wantY[i])
		}
		if pos[id].X != 100 {
			t.Errorf("%s.X = %v, want 100", id, pos[id].X)
		}
	}
	if pos["R"].Y != 50 {
		t.Errorf("R.Y = %v, want midpoint 50", pos["R"].Y)
	}
}

func TestAutoLayoutDeterminism(t *testing.T) {
	e := New(DefaultSpacing)
	nodes := buildNodes("a", "b", "c", "d", "e")
	edges := []graph.Edge{
		edge("a", "b"), edge("a", "c"), edge("c", "d"), edge("c", "e"),
	}

	first := e.AutoLayout(nodes, edges)
	second := e.AutoLayout(nodes, edges)

	if len(first) != len(second) {
		t.Fatalf("run sizes differ: %d vs %d", len(first), len(second))
	}
	for id, p := range first {
		if second[id] != p {
			t.Errorf("%s: %+v vs %+v, runs must be identical", id, p, second[id])
		}
	}
}

func TestAutoLayoutCycleTerminates(t *testing.T) {
	e := New(DefaultSpacing)
	nodes := buildNodes("A", "B")
	edges := []graph.Edge{edge("A", "B"), edge("B", "A")}

	pos := e.AutoLayout(nodes, edges)

	// Fully cyclic: no zero-incoming root exists, first node in
	// insertion order becomes the fallback root.
	if len(pos) != 2 {
		t.Fatalf("positions = %d, want every node placed", len(pos))
	}
	if pos["A"].X != 0 {
		t.Errorf("A.X = %v, want 0 (fallback root)", pos["A"].X)
	}
	if pos["B"].X != DefaultSpacing.X {
		t.Errorf("B.X = %v, want %v", pos["B"].X, DefaultSpacing.X)
	}
}

func TestAutoLayoutMultipleRootsStack(t *testing.T) {
	e := New(Spacing{X: 100, Y: 50})
	nodes := buildNodes("r1", "c1", "r2")
	edges := []graph.Edge{edge("r1", "c1")}

	pos := e.AutoLayout(nodes, edges)

	// Second root starts one spacing.Y below the first branch.
	if pos["r1"].Y != 0 || pos["c1"].Y != 0 {
		t.Errorf("first branch at y=%v/%v, want 0/0", pos["r1"].Y, pos["c1"].Y)
	}
	if pos["r2"].Y <= pos["c1"].Y {
		t.Errorf("r2.Y = %v, must sit below the first branch", pos["r2"].Y)
	}
	if pos["r2"].X != 0 {
		t.Errorf("r2.X = %v, want 0", pos["r2"].X)
	}
}

func TestAutoLayoutCycleBehindRoot(t *testing.T) {
	// A cycle component not reachable from any zero-incoming root is
	// swept afterward so every node still gets a position.
	e := New(DefaultSpacing)
	nodes := buildNodes("root", "x", "y")
	edges := []graph.Edge{edge("x", "y"), edge("y", "x")}

	pos := e.AutoLayout(nodes, edges)
	if len(pos) != 3 {
		t.Fatalf("positions = %d, want 3", len(pos))
	}
}

func TestAutoLayoutSkipsDanglingEdges(t *testing.T) {
	e := New(DefaultSpacing)
	nodes := buildNodes("a", "b")
	edges := []graph.Edge{edge("a", "b"), edge("a", "ghost"), edge("ghost", "b")}

	pos := e.AutoLayout(nodes, edges)

	if len(pos) != 2 {
		t.Fatalf("positions = %d, want 2", len(pos))
	}
	// The dangling incoming edge to b must not hide b's real parent.
	if pos["b"].X != DefaultSpacing.X {
		t.Errorf("b.X = %v, want %v", pos["b"].X, DefaultSpacing.X)
	}
	if _, ok := pos["ghost"]; ok {
		t.Error("ghost must not receive a position")
	}
}

func TestAutoLayoutEmptyGraph(t *testing.T) {
	e := New(DefaultSpacing)
	if pos := e.AutoLayout(nil, nil); len(pos) != 0 {
		t.Errorf("positions = %d, want 0", len(pos))
	}
}

func TestNewFallsBackOnInvalidSpacing(t *testing.T) {
	e := New(Spacing{X: -1, Y: 0})
	if e.Spacing != DefaultSpacing {
		t.Errorf("spacing = %+v, want %+v", e.Spacing, DefaultSpacing)
	}
}
