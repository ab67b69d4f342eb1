// Package viewport implements the affine mapping between world and
// screen coordinates: a translation plus a uniform scale. It is
// independent of graph content and never notifies subscribers or
// pushes history - pan and zoom are presentation state, not edits.
package viewport

import (
	"github.com/mindweave/mindweave/pkg/graph"
)

// Scale bounds for Zoom.
const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Transform wraps a graph.Viewport with pan/zoom operations and the
// coordinate conversions presentation engines need.
//
// Transform mutates the Viewport it embeds; the store hands out a
// pointer into its live state so changes are visible immediately.
type Transform struct {
	V *graph.Viewport
}

// New returns a transform over the given viewport state. A zero scale
// is normalized to 1.
func New(v *graph.Viewport) Transform {
	if v.Scale == 0 {
		v.Scale = 1
	}
	return Transform{V: v}
}

// Pan translates the viewport additively by (dx, dy) screen units.
func (t Transform) Pan(dx, dy float64) {
	t.V.X += dx
	t.V.Y += dy
}

// Zoom adjusts the scale by delta, clamped to [MinScale, MaxScale],
// keeping the world point under screen coordinate (cx, cy) visually
// stationary.
func (t Transform) Zoom(delta, cx, cy float64) {
	old := t.V.Scale
	next := clamp(old+delta, MinScale, MaxScale)
	if next == old {
		return
	}
	ratio := next / old
	t.V.X = cx - (cx-t.V.X)*ratio
	t.V.Y = cy - (cy-t.V.Y)*ratio
	t.V.Scale = next
}

// ScreenToWorld converts a screen coordinate to world space.
func (t Transform) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - t.V.X) / t.V.Scale, (sy - t.V.Y) / t.V.Scale
}

// WorldToScreen converts a world coordinate to screen space. It is the
// exact inverse of ScreenToWorld.
func (t Transform) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*t.V.Scale + t.V.X, wy*t.V.Scale + t.V.Y
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
