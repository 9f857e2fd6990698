package testutil

import (
	"fmt"

	"github.com/vk/pipecheck/internal/pipeline"
)

// PipelineBuilder assembles pipelines for tests in declaration order.
type PipelineBuilder struct {
	p pipeline.Pipeline
}

// NewPipeline starts an empty pipeline with non-nil node and edge lists.
func NewPipeline() *PipelineBuilder {
	return &PipelineBuilder{p: pipeline.Pipeline{
		Nodes: []pipeline.Node{},
		Edges: []pipeline.Edge{},
	}}
}

// Node appends a node laid out on a simple grid.
func (b *PipelineBuilder) Node(id, nodeType string) *PipelineBuilder {
	i := len(b.p.Nodes)
	b.p.Nodes = append(b.p.Nodes, pipeline.Node{
		ID:       id,
		Type:     nodeType,
		Position: pipeline.Position{X: float64(i%4) * 250, Y: float64(i/4) * 150},
		Data:     map[string]any{"id": id, "nodeType": nodeType},
	})
	return b
}

// Edge appends an edge with editor-style id and handles.
func (b *PipelineBuilder) Edge(source, target string) *PipelineBuilder {
	b.p.Edges = append(b.p.Edges, pipeline.Edge{
		ID:           fmt.Sprintf("reactflow__edge-%s-%s", source, target),
		Source:       source,
		Target:       target,
		SourceHandle: source + "-output",
		TargetHandle: target + "-input",
	})
	return b
}

// Build returns a copy of the assembled pipeline.
func (b *PipelineBuilder) Build() *pipeline.Pipeline {
	out := pipeline.Pipeline{
		Nodes: append([]pipeline.Node{}, b.p.Nodes...),
		Edges: append([]pipeline.Edge{}, b.p.Edges...),
	}
	return &out
}
