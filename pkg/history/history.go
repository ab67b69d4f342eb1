// Package history implements the bounded undo stack of the mindweave
// engine.
//
// A snapshot is a deep copy of the node and edge sets, captured by the
// store immediately *before* a structural mutation is applied. The top
// of the stack therefore always holds the state that preceded the most
// recent edit. Undo pops that top entry and restores the entry beneath
// it; with fewer than two entries there is nothing to go back to and
// Undo is a no-op.
//
// Selection and viewport are deliberately not part of a snapshot: only
// structural node/edge mutations are undoable.
package history

import (
	"github.com/mindweave/mindweave/pkg/graph"
)

// DefaultCapacity bounds the stack: when full, the oldest snapshot is
// evicted before a new one is pushed.
const DefaultCapacity = 50

// Snapshot is an immutable deep copy of the node/edge sets.
type Snapshot struct {
	Nodes []graph.Node
	Edges []graph.Edge
}

// Stack is a bounded LIFO stack of snapshots with FIFO eviction at
// capacity. The zero value is not usable - use New.
//
// Stack is not safe for concurrent use; the engine's single-threaded
// mutation model makes external synchronization unnecessary.
type Stack struct {
	entries  []Snapshot
	capacity int
}

// New creates an empty stack. A capacity below 1 falls back to
// DefaultCapacity.
func New(capacity int) *Stack {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity}
}

// Len returns the number of snapshots currently held.
func (s *Stack) Len() int { return len(s.entries) }

// Capacity returns the maximum number of snapshots held.
func (s *Stack) Capacity() int { return s.capacity }

// Push deep-copies the given node/edge sets onto the stack. When the
// stack is at capacity the oldest entry is evicted first.
func (s *Stack) Push(nodes []graph.Node, edges []graph.Edge) {
	if len(s.entries) >= s.capacity {
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, Snapshot{
		Nodes: graph.CloneNodes(nodes),
		Edges: graph.CloneEdges(edges),
	})
}

// Undo discards the most recent snapshot and returns a deep copy of the
// one beneath it. The returned snapshot stays on the stack so a
// subsequent Undo steps back one further edit.
//
// Returns ok=false without modifying the stack when fewer than two
// snapshots are held: the top entry is the pre-state of the last edit,
// and there is no earlier state to restore.
func (s *Stack) Undo() (Snapshot, bool) {
	if len(s.entries) < 2 {
		return Snapshot{}, false
	}
	s.entries = s.entries[:len(s.entries)-1]
	top := s.entries[len(s.entries)-1]
	return Snapshot{
		Nodes: graph.CloneNodes(top.Nodes),
		Edges: graph.CloneEdges(top.Edges),
	}, true
}

// Clear drops all snapshots.
func (s *Stack) Clear() { s.entries = nil }
