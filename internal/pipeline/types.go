package pipeline

// Position is the canvas location of a node. It is opaque to validation.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a single vertex of a pipeline as submitted by the editor.
type Node struct {
	ID       string         `json:"id" yaml:"id"`
	Type     string         `json:"type" yaml:"type"`
	Position Position       `json:"position" yaml:"position"`
	Data     map[string]any `json:"data" yaml:"data"`
}

// Edge connects the output of Source to the input of Target. ID and the
// handle labels are optional and only meaningful to the editor.
type Edge struct {
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Source       string `json:"source" yaml:"source"`
	Target       string `json:"target" yaml:"target"`
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
}

// Pipeline is one request-scoped graph: an ordered node list and an ordered
// edge list.
type Pipeline struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// NodeIDs returns the node identifiers in declaration order.
func (p *Pipeline) NodeIDs() []string {
	ids := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// TypeCounts groups nodes by their declared type.
func (p *Pipeline) TypeCounts() map[string]int {
	counts := make(map[string]int)
	for _, n := range p.Nodes {
		counts[n.Type]++
	}
	return counts
}

// IsolatedNodes returns the ids of nodes that no edge names as either
// endpoint, in declaration order. Edges pointing at unknown ids still count
// as touching their known endpoint.
func (p *Pipeline) IsolatedNodes() []string {
	connected := make(map[string]struct{}, len(p.Edges)*2)
	for _, e := range p.Edges {
		connected[e.Source] = struct{}{}
		connected[e.Target] = struct{}{}
	}

	var isolated []string
	for _, n := range p.Nodes {
		if _, ok := connected[n.ID]; !ok {
			isolated = append(isolated, n.ID)
		}
	}
	return isolated
}
