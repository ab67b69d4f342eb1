// Package layout computes node positions for a mind map using a
// deterministic centered tree layout.
//
// Roots (nodes with no incoming edge) are laid out left to right by
// depth: x grows with distance from the root, and a running vertical
// counter advances once per leaf so siblings never overlap within a
// branch. A parent is centered on the midpoint of its first and last
// laid-out child.
//
// The algorithm is a simplified centering scheme: independent root
// branches are stacked sequentially and no width is reserved across
// branches, so a dense subtree can sit close to an unrelated sibling
// branch. This is accepted behavior, not a defect.
//
// The traversal carries an explicit visited set keyed by node id, so
// cyclic graphs terminate: the edge that closes a cycle simply does not
// recurse.
package layout

import (
	"github.com/mindweave/mindweave/pkg/graph"
)

// Spacing is the distance between depth columns (X) and leaf rows (Y)
// in world units.
type Spacing struct {
	X float64 `toml:"x" json:"x"`
	Y float64 `toml:"y" json:"y"`
}

// DefaultSpacing is used when no configuration is supplied.
var DefaultSpacing = Spacing{X: 200, Y: 100}

// Engine computes positions from node/edge sets. It is a pure function
// over its inputs: it never mutates the graph and two runs over the
// same input produce identical positions.
type Engine struct {
	Spacing Spacing
}

// New creates an engine. Non-positive spacing components fall back to
// DefaultSpacing.
func New(s Spacing) *Engine {
	if s.X <= 0 {
		s.X = DefaultSpacing.X
	}
	if s.Y <= 0 {
		s.Y = DefaultSpacing.Y
	}
	return &Engine{Spacing: s}
}

// AutoLayout returns a position for every node, keyed by id.
//
// Roots are nodes with no incoming edge, taken in insertion order. A
// non-empty graph with no such root (fully cyclic) falls back to the
// first node in insertion order as the sole root; any nodes still
// unreached after the root passes (cycle components hidden behind other
// roots) are swept in insertion order and laid out as additional roots,
// so every node always receives a finite position.
func (e *Engine) AutoLayout(nodes []graph.Node, edges []graph.Edge) map[string]graph.Position {
	pos := make(map[string]graph.Position, len(nodes))
	if len(nodes) == 0 {
		return pos
	}

	children := make(map[string][]string, len(nodes))
	incoming := make(map[string]int, len(nodes))
	exists := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		exists[n.ID] = true
	}
	for _, ed := range edges {
		if !exists[ed.Source] || !exists[ed.Target] {
			continue
		}
		children[ed.Source] = append(children[ed.Source], ed.Target)
		incoming[ed.Target]++
	}

	var roots []string
	for _, n := range nodes {
		if incoming[n.ID] == 0 {
			roots = append(roots, n.ID)
		}
	}
	if len(roots) == 0 {
		roots = []string{nodes[0].ID}
	}

	visited := make(map[string]bool, len(nodes))
	nextY := 0.0
	first := true

	layoutRoot := func(id string) {
		if visited[id] {
			return
		}
		if !first {
			nextY += e.Spacing.Y // inter-root spacing
		}
		first = false
		e.place(id, 0, children, visited, pos, &nextY)
	}

	for _, id := range roots {
		layoutRoot(id)
	}
	// Sweep components only reachable through a cycle.
	for _, n := range nodes {
		layoutRoot(n.ID)
	}

	return pos
}

// place lays out the subtree under id and returns its y coordinate.
// nextY is the running leaf counter shared across the whole run.
func (e *Engine) place(id string, depth int, children map[string][]string, visited map[string]bool, pos map[string]graph.Position, nextY *float64) float64 {
	visited[id] = true
	x := float64(depth) * e.Spacing.X

	var childYs []float64
	for _, c := range children[id] {
		if visited[c] {
			continue
		}
		childYs = append(childYs, e.place(c, depth+1, children, visited, pos, nextY))
	}

	var y float64
	if len(childYs) == 0 {
		// Leaf: no outgoing edges, or every child already placed.
		y = *nextY
		*nextY += e.Spacing.Y
	} else {
		y = (childYs[0] + childYs[len(childYs)-1]) / 2
	}

	pos[id] = graph.Position{X: x, Y: y}
	return y
}
