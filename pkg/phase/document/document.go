// Package document implements the generated-document presentation
// engine and the pure HTML generator behind it.
//
// Document generation is a pure function of the graph consumed through
// a read-only snapshot: the same document always produces the same
// HTML, with sections ordered by the deterministic sibling comparator.
package document

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/phase"
)

// EngineID is the registry id of this engine.
const EngineID = "document"

// Representation fields written by this engine.
const (
	FieldHeading = "heading"
	FieldBody    = "body"
)

// maxHeadingLevel caps section nesting at <h6>.
const maxHeadingLevel = 6

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; }
section { margin-left: calc(var(--depth) * 1rem); }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Sections}}<section style="--depth: {{.Depth}}">
{{.Heading}}
{{if .Body}}<p>{{.Body}}</p>
{{end}}</section>
{{end}}</body>
</html>
`))

type page struct {
	Title    string
	Sections []section
}

// section carries one node of the walk. Heading is pre-rendered: the
// heading level varies with depth, and template actions cannot appear
// inside tag names.
type section struct {
	Heading template.HTML
	Body    string
	Depth   int
}

// Generate renders the graph to a standalone HTML page. It is a pure
// function: it reads the snapshot and never touches the store.
func Generate(state graph.Document, priority layout.PriorityFunc) (string, error) {
	p := page{Title: state.Meta.Title}
	if p.Title == "" {
		p.Title = "Mind Map"
	}
	for _, r := range phase.Walk(state, priority) {
		level := r.Depth + 2
		if level > maxHeadingLevel {
			level = maxHeadingLevel
		}
		p.Sections = append(p.Sections, section{
			Heading: template.HTML(fmt.Sprintf("<h%d>%s</h%d>",
				level, template.HTMLEscapeString(r.Node.Title), level)),
			Body:  r.Node.Content,
			Depth: r.Depth,
		})
	}
	var b strings.Builder
	if err := pageTmpl.Execute(&b, p); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return b.String(), nil
}

// Engine maintains a live preview of the generated document: one
// representation per node carrying its heading and body, reconciled
// instead of regenerated so an edit in another engine never tears the
// preview down.
type Engine struct {
	Priority layout.PriorityFunc
}

// New creates a document engine.
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
				FieldHeading: r.Node.Title,
				FieldBody:    r.Node.Content,
			},
		}
	}
	phase.Reconcile(s, entities)
}

var _ phase.Engine = (*Engine)(nil)
