// Package suggest provides the simulated "suggest next step"
// intelligence stub.
//
// The stub resolves after a fixed delay with a canned suggestion
// derived from the selected node. There is no cancellation token and
// overlapping calls are not deduplicated: concurrent callers each get
// an independent delayed response. Both are accepted limitations of the
// stub - a real provider would replace this package wholesale.
package suggest

import (
	"fmt"
	"time"

	"github.com/mindweave/mindweave/pkg/graph"
)

// DefaultDelay is the simulated thinking time.
const DefaultDelay = 1500 * time.Millisecond

// Suggestion is a proposed next node.
type Suggestion struct {
	Title string
	Type  string
}

// Suggester produces delayed suggestions.
type Suggester struct {
	Delay time.Duration
}

// New creates a suggester. A non-positive delay falls back to
// DefaultDelay.
func New(delay time.Duration) *Suggester {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Suggester{Delay: delay}
}

// NextStep delivers a suggestion for expanding the given node to fn
// after the fixed delay. Each call schedules independently.
func (s *Suggester) NextStep(node graph.Node, fn func(Suggestion)) {
	time.AfterFunc(s.Delay, func() {
		fn(suggestFor(node))
	})
}

func suggestFor(node graph.Node) Suggestion {
	switch node.Type {
	case graph.TypeTask:
		return Suggestion{Title: fmt.Sprintf("Break down %q", node.Title), Type: graph.TypeTask}
	case graph.TypeNote:
		return Suggestion{Title: fmt.Sprintf("Source for %q", node.Title), Type: graph.TypeNote}
	default:
		return Suggestion{Title: fmt.Sprintf("Expand on %q", node.Title), Type: graph.TypeTopic}
	}
}
