package layout

import (
	"slices"
	"strings"

	"github.com/mindweave/mindweave/pkg/graph"
)

// PriorityFunc maps a node type to its blueprint-defined ordering rank.
// Lower ranks sort first. graph.Blueprints.Priority satisfies this.
type PriorityFunc func(nodeType string) int

// CompareSiblings orders two nodes deterministically for presentation:
// blueprint priority first, then case-sensitive title, then id. The id
// tiebreak makes the order total, so document generation and outline
// rendering are stable across runs.
func CompareSiblings(a, b graph.Node, priority PriorityFunc) int {
	if priority != nil {
		if pa, pb := priority(a.Type), priority(b.Type); pa != pb {
			return pa - pb
		}
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// SortSiblings sorts nodes in place using CompareSiblings.
func SortSiblings(nodes []graph.Node, priority PriorityFunc) {
	slices.SortFunc(nodes, func(a, b graph.Node) int {
		return CompareSiblings(a, b, priority)
	})
}
