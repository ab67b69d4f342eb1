// Package graph defines the core data model of the mindweave engine:
// typed nodes, directed edges, node blueprints and the serializable
// document format that persistence and export operate on.
//
// The types here are pure data. Mutation rules (id uniqueness, edge
// validation, cascade deletes) live in pkg/store, which owns the only
// mutable instance of this model at runtime.
package graph

import (
	"github.com/google/uuid"
)

// Metadata stores arbitrary key-value pairs attached to nodes or the
// document. Metadata maps are never nil once a node has passed through
// the store - they are initialized to empty maps on creation.
type Metadata map[string]any

// Position is a point in world coordinates.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a vertex of the mind map. Type names a registered Blueprint;
// unspecified fields are filled from the blueprint at creation time.
//
// The zero value is not usable on its own - nodes are created through
// the store, which assigns the ID and blueprint defaults.
type Node struct {
	ID       string            `json:"id" bson:"id"`
	Title    string            `json:"title" bson:"title"`
	Content  string            `json:"content,omitempty" bson:"content,omitempty"`
	Type     string            `json:"type" bson:"type"`
	Position Position          `json:"position" bson:"position"`
	Style    map[string]string `json:"style,omitempty" bson:"style,omitempty"`
	Meta     Metadata          `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Edge is a directed relation between two nodes.
type Edge struct {
	ID     string   `json:"id" bson:"id"`
	Source string   `json:"source" bson:"source"`
	Target string   `json:"target" bson:"target"`
	Type   string   `json:"type,omitempty" bson:"type,omitempty"`
	Weight float64  `json:"weight" bson:"weight"`
	Meta   Metadata `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DefaultEdgeWeight is assigned when an edge is created without an
// explicit weight.
const DefaultEdgeWeight = 1.0

// Viewport is the affine world→screen transform state: a translation
// plus a uniform scale.
type Viewport struct {
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Scale float64 `json:"scale" bson:"scale"`
}

// NewID returns a fresh unique identifier for a node or edge.
func NewID() string { return uuid.NewString() }

// CloneNode returns a deep copy of n. Style and Meta maps are copied so
// the clone can be mutated independently; history snapshots rely on this.
func CloneNode(n Node) Node {
	c := n
	if n.Style != nil {
		c.Style = make(map[string]string, len(n.Style))
		for k, v := range n.Style {
			c.Style[k] = v
		}
	}
	c.Meta = CloneMeta(n.Meta)
	return c
}

// CloneEdge returns a deep copy of e.
func CloneEdge(e Edge) Edge {
	c := e
	c.Meta = CloneMeta(e.Meta)
	return c
}

// CloneMeta returns a shallow copy of a metadata map, or nil for nil.
func CloneMeta(m Metadata) Metadata {
	if m == nil {
		return nil
	}
	c := make(Metadata, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// CloneNodes deep-copies a node slice preserving order.
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = CloneNode(n)
	}
	return out
}

// CloneEdges deep-copies an edge slice preserving order.
func CloneEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = CloneEdge(e)
	}
	return out
}
