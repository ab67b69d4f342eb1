// Package outline implements the outline-list presentation engine: the
// graph flattened into an indented bullet list, one representation per
// node.
package outline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/phase"
)

// EngineID is the registry id of this engine.
const EngineID = "outline"

// Representation fields written by this engine.
const (
	FieldLine  = "line"
	FieldDepth = "depth"
)

var (
	styleBullet   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleNormal   = lipgloss.NewStyle()
)

// Engine renders the outline list.
type Engine struct {
	// Priority orders siblings; typically graph.Blueprints.Priority.
	Priority layout.PriorityFunc
}

// New creates an outline engine ordering siblings with the given
// priority function.
func New(priority layout.PriorityFunc) *Engine {
	return &Engine{Priority: priority}
}

// ID implements phase.Engine.
func (e *Engine) ID() string { return EngineID }

// Render implements phase.Engine.
func (e *Engine) Render(s phase.Surface, state graph.Document) {
	rows := phase.Walk(state, e.Priority)
	entities := make([]phase.Entity, len(rows))
	for i, r := range rows {
		entities[i] = phase.Entity{
			ID: r.Node.ID,
			Fields: map[string]string{
				FieldLine:  r.Node.Title,
				FieldDepth: fmt.Sprintf("%d", r.Depth),
			},
		}
	}
	phase.Reconcile(s, entities)
}

var _ phase.Engine = (*Engine)(nil)

// View renders the surface to styled terminal text. The selected node
// is highlighted; selection is read at view time so it never forces a
// re-reconcile.
func View(s *phase.TextSurface, selected string) string {
	var b strings.Builder
	for _, id := range s.IDs() {
		rep, ok := s.Rep(id)
		if !ok {
			continue
		}
		depth := 0
		fmt.Sscanf(rep.Get(FieldDepth), "%d", &depth)
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(styleBullet.Render("• "))
		line := rep.Get(FieldLine)
		if id == selected {
			b.WriteString(styleSelected.Render(line))
		} else {
			b.WriteString(styleNormal.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
