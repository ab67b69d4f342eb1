// Package export renders a mind map document to external formats:
// Graphviz DOT text and PNG rasterization of it.
//
// Export is read-only: it consumes a document snapshot and never
// touches the store.
package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/layout"
	"github.com/mindweave/mindweave/pkg/phase"
)

// DOT renders the document as a Graphviz digraph. Output is
// deterministic: nodes appear in sibling-comparator walk order and
// edges in insertion order, so the same document always produces the
// same bytes.
func DOT(state graph.Document, priority layout.PriorityFunc) string {
	var b strings.Builder
	b.WriteString("digraph mindmap {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n")

	for _, r := range phase.Walk(state, priority) {
		fmt.Fprintf(&b, "  %s [label=%s];\n",
			quote(r.Node.ID), quote(r.Node.Title))
	}
	for _, e := range state.Edges {
		fmt.Fprintf(&b, "  %s -> %s;\n", quote(e.Source), quote(e.Target))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderPNG rasterizes DOT text to a PNG file via graphviz.
func RenderPNG(ctx context.Context, dot, path string) error {
	g, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer g.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse dot: %w", err)
	}
	defer parsed.Close()

	if err := g.RenderFilename(ctx, parsed, graphviz.PNG, path); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

// quote escapes a string as a DOT double-quoted id.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
