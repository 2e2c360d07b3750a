package mission

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Handler is one stage of the pipeline. It reads and mutates the mission
// context it receives; an error aborts the run and propagates untouched to
// the runner, which is the single place failures become envelopes.
type Handler func(ctx context.Context, mc *Context) error

type node struct {
	name    string
	handler Handler
}

// Graph is a fixed, linear sequence of named stages. Nodes run strictly in
// insertion order; no node is skipped or reordered. A graph is single-pass:
// build one per mission run.
type Graph struct {
	nodes    []node
	executed bool
}

func NewGraph() *Graph {
	return &Graph{}
}

// AddNode appends a stage. Order of calls is order of execution.
func (g *Graph) AddNode(name string, handler Handler) *Graph {
	g.nodes = append(g.nodes, node{name: name, handler: handler})
	return g
}

// Run executes all stages in order, threading the same context instance
// through each. The first stage error aborts the run.
func (g *Graph) Run(ctx context.Context, mc *Context) error {
	if g.executed {
		return fmt.Errorf("graph already executed; build a fresh graph per mission run")
	}
	g.executed = true

	for _, n := range g.nodes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("mission cancelled before stage %s: %w", n.name, err)
		}

		start := time.Now()
		if err := n.handler(ctx, mc); err != nil {
			return fmt.Errorf("stage %s: %w", n.name, err)
		}
		slog.Debug("stage completed",
			"mission_id", mc.ID,
			"stage", n.name,
			"duration_ms", time.Since(start).Milliseconds())
	}

	return nil
}
