// Package analysis turns a decoded pipeline into the report returned to the
// editor: counts, node-type histogram, DAG verdict and a readable message
// naming one cycle when there is one.
package analysis

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vk/pipecheck/internal/ctxlog"
	"github.com/vk/pipecheck/internal/dag"
	"github.com/vk/pipecheck/internal/metrics"
	"github.com/vk/pipecheck/internal/pipeline"
)

const (
	// MessageValid is reported for acyclic pipelines.
	MessageValid = "Pipeline is a valid DAG"
	// messageCyclePrefix precedes the rendered cycle path.
	messageCyclePrefix = "Pipeline contains a cycle: "
	// unknownCycle stands in for the path when no cycle could be located.
	unknownCycle = "unknown"
	// CycleSeparator joins the ids of a cycle path in messages.
	CycleSeparator = " -> "
)

// Analysis is the report for one pipeline.
type Analysis struct {
	NumNodes         int            `json:"num_nodes" yaml:"num_nodes"`
	NumEdges         int            `json:"num_edges" yaml:"num_edges"`
	IsDAG            bool           `json:"is_dag" yaml:"is_dag"`
	Message          string         `json:"message" yaml:"message"`
	NodeTypes        map[string]int `json:"node_types" yaml:"node_types"`
	HasCycle         bool           `json:"has_cycle" yaml:"has_cycle"`
	Cycle            []string       `json:"cycle,omitempty" yaml:"cycle,omitempty"`
	IsolatedNodes    []string       `json:"isolated_nodes,omitempty" yaml:"isolated_nodes,omitempty"`
	HasIsolatedNodes bool           `json:"has_isolated_nodes" yaml:"has_isolated_nodes"`

	// Order is the topological order (partial for cyclic pipelines). It is
	// kept for the CLI and not serialized.
	Order []string `json:"-" yaml:"-"`
}

// Analyzer produces Analysis reports. It holds no per-request state and is
// safe for concurrent use.
type Analyzer struct {
	recorder metrics.Recorder
	tracer   trace.Tracer
}

// New returns an Analyzer reporting to recorder. A nil recorder discards
// observations.
func New(recorder metrics.Recorder) *Analyzer {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &Analyzer{
		recorder: recorder,
		tracer:   otel.Tracer("github.com/vk/pipecheck/internal/analysis"),
	}
}

// Analyze validates p and builds its report. It never fails: cyclicity is
// data, and a cycle that cannot be located is reported with a fallback
// message.
func (a *Analyzer) Analyze(ctx context.Context, p *pipeline.Pipeline) *Analysis {
	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "analysis.Analyze", trace.WithAttributes(
		attribute.Int("pipeline.nodes", len(p.Nodes)),
		attribute.Int("pipeline.edges", len(p.Edges)),
	))
	defer span.End()

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Analyzing pipeline.", "nodes", len(p.Nodes), "edges", len(p.Edges))

	refs := make([]dag.EdgeRef, len(p.Edges))
	for i, e := range p.Edges {
		refs[i] = dag.EdgeRef{Source: e.Source, Target: e.Target}
	}
	res := dag.Check(p.NodeIDs(), refs)

	isolated := p.IsolatedNodes()
	out := &Analysis{
		NumNodes:         len(p.Nodes),
		NumEdges:         len(p.Edges),
		IsDAG:            res.Acyclic,
		NodeTypes:        p.TypeCounts(),
		HasCycle:         !res.Acyclic,
		Cycle:            res.Cycle,
		IsolatedNodes:    isolated,
		HasIsolatedNodes: len(isolated) > 0,
		Order:            res.Order,
	}
	out.Message = Message(res.Acyclic, res.Cycle)

	if !res.Acyclic && res.Cycle == nil {
		logger.Warn("Pipeline is not a DAG but no cycle could be located.", "ordered", len(res.Order), "nodes", len(p.Nodes))
		span.SetStatus(codes.Error, "cycle reported but not located")
	}

	span.SetAttributes(
		attribute.Bool("pipeline.is_dag", res.Acyclic),
		attribute.Int("pipeline.cycle_length", len(res.Cycle)),
	)
	elapsed := time.Since(start)
	a.recorder.Analyzed(out.NumNodes, out.NumEdges, out.HasCycle, elapsed)
	logger.Debug("Pipeline analyzed.", "is_dag", out.IsDAG, "cycle", out.Cycle, "elapsed", elapsed)

	return out
}

// Message renders the human-readable verdict for an acyclicity result.
func Message(acyclic bool, cycle []string) string {
	if acyclic {
		return MessageValid
	}
	if len(cycle) == 0 {
		return messageCyclePrefix + unknownCycle
	}
	return messageCyclePrefix + strings.Join(cycle, CycleSeparator)
}
