package dag

// size returns the number of distinct nodes in the graph.
func (g *Graph) size() int {
	return len(g.order)
}

// nodes returns a copy of the node ids in declaration order.
func (g *Graph) nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// has reports whether id is a node of the graph.
func (g *Graph) has(id string) bool {
	_, ok := g.inDegree[id]
	return ok
}

// successors returns a copy of the direct successors of id in edge-list
// order. The list may contain ids that are not nodes of the graph.
func (g *Graph) successors(id string) []string {
	succ := g.adjacency[id]
	out := make([]string, len(succ))
	copy(out, succ)
	return out
}

// inDegreeOf returns the number of edges targeting id, and false if id is
// not a node of the graph.
func (g *Graph) inDegreeOf(id string) (int, bool) {
	d, ok := g.inDegree[id]
	return d, ok
}

// Check decides acyclicity and, only when the graph is cyclic, locates one
// cycle for diagnostics.
func (g *Graph) Check() Result {
	order, acyclic := g.Sort()
	res := Result{Acyclic: acyclic, Order: order}
	if !acyclic {
		res.Cycle = g.FindCycle()
	}
	return res
}

// Check builds a graph from nodes and edges and checks it.
func Check(nodes []string, edges []EdgeRef) Result {
	return Build(nodes, edges).Check()
}
