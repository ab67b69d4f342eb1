package document

import (
	"strings"
	"testing"

	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/phase"
)

func sampleState() graph.Document {
	d := graph.NewDocument("My Map")
	d.Nodes = []graph.Node{
		{ID: "r", Title: "Overview", Type: graph.TypeRoot, Content: "intro"},
		{ID: "a", Title: "Details <script>", Type: graph.TypeTopic},
	}
	d.Edges = []graph.Edge{{ID: "e", Source: "r", Target: "a"}}
	return d
}

func TestGenerateProducesHeadingsByDepth(t *testing.T) {
	prio := graph.NewBlueprints().Priority
	html, err := Generate(sampleState(), prio)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.Contains(html, "<h1>My Map</h1>") {
		t.Error("missing page title")
	}
	if !strings.Contains(html, "<h2>Overview</h2>") {
		t.Error("root should render as h2")
	}
	if !strings.Contains(html, "<h3>Details &lt;script&gt;</h3>") {
		t.Errorf("child should render as escaped h3:\n%s", html)
	}
	if !strings.Contains(html, "<p>intro</p>") {
		t.Error("node content should render as a paragraph")
	}
}

func TestGenerateCapsHeadingLevel(t *testing.T) {
	prio := graph.NewBlueprints().Priority
	d := graph.NewDocument("deep")

	prev := ""
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		d.Nodes = append(d.Nodes, graph.Node{ID: id, Title: id, Type: graph.TypeTopic})
		if prev != "" {
			d.Edges = append(d.Edges, graph.Edge{ID: prev + id, Source: prev, Target: id})
		}
		prev = id
	}

	html, err := Generate(d, prio)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Contains(html, "<h7>") {
		t.Error("heading level must cap at h6")
	}
	if !strings.Contains(html, "<h6>h</h6>") {
		t.Errorf("deepest node should clamp to h6:\n%s", html)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	prio := graph.NewBlueprints().Priority
	state := sampleState()

	first, err := Generate(state, prio)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, _ := Generate(state, prio)
	if first != second {
		t.Error("same state produced different HTML")
	}
}

func TestEngineReconcilesHeadingAndBody(t *testing.T) {
	prio := graph.NewBlueprints().Priority
	s := phase.NewTextSurface()
	e := New(prio)

	e.Render(s, sampleState())

	if s.Len() != 2 {
		t.Fatalf("reps = %d, want 2", s.Len())
	}
	rep, _ := s.Rep("r")
	if rep.Get(FieldHeading) != "Overview" || rep.Get(FieldBody) != "intro" {
		t.Errorf("fields = %q/%q", rep.Get(FieldHeading), rep.Get(FieldBody))
	}

	ids := s.IDs()
	if ids[0] != "r" || ids[1] != "a" {
		t.Errorf("order = %v, want walk order", ids)
	}
}
