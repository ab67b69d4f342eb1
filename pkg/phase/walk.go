package phase

import (
	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/layout"
)

// Row is one node of a depth-first walk with its tree depth.
type Row struct {
	Node  graph.Node
	Depth int
}

// Walk flattens the graph depth-first for list-shaped presentations.
// Roots are nodes with no incoming edge in insertion order (first node
// as fallback for fully cyclic graphs); siblings are ordered by the
// deterministic comparator (blueprint priority, then title, then id).
// A visited set keeps cyclic graphs finite; nodes reachable only
// through a cycle are appended as extra roots so every node appears
// exactly once.
func Walk(state graph.Document, priority layout.PriorityFunc) []Row {
	if len(state.Nodes) == 0 {
		return nil
	}

	byID := make(map[string]graph.Node, len(state.Nodes))
	incoming := make(map[string]int, len(state.Nodes))
	children := make(map[string][]graph.Node, len(state.Nodes))
	for _, n := range state.Nodes {
		byID[n.ID] = n
	}
	for _, e := range state.Edges {
		child, ok := byID[e.Target]
		if !ok {
			continue
		}
		if _, ok := byID[e.Source]; !ok {
			continue
		}
		children[e.Source] = append(children[e.Source], child)
		incoming[e.Target]++
	}
	for id := range children {
		layout.SortSiblings(children[id], priority)
	}

	var roots []graph.Node
	for _, n := range state.Nodes {
		if incoming[n.ID] == 0 {
			roots = append(roots, n)
		}
	}
	if len(roots) == 0 {
		roots = []graph.Node{state.Nodes[0]}
	}

	rows := make([]Row, 0, len(state.Nodes))
	visited := make(map[string]bool, len(state.Nodes))

	var walk func(n graph.Node, depth int)
	walk = func(n graph.Node, depth int) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true
		rows = append(rows, Row{Node: n, Depth: depth})
		for _, c := range children[n.ID] {
			walk(c, depth+1)
		}
	}

	for _, r := range roots {
		walk(r, 0)
	}
	for _, n := range state.Nodes {
		walk(n, 0)
	}
	return rows
}
