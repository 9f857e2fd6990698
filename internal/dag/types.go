package dag

// EdgeRef is a directed connection from Source to Target, by node id.
type EdgeRef struct {
	Source string
	Target string
}

// Graph is the adjacency view of one pipeline. It is immutable once built.
type Graph struct {
	// order lists every node id once, in first-declaration order.
	order []string
	// adjacency maps each node id to its successors in edge-list order.
	adjacency map[string][]string
	// inDegree maps each node id to the number of edges that target it.
	inDegree map[string]int
	// danglingIn counts, per node id, the edges included in inDegree whose
	// source is not a node. Nothing can ever release them during Sort.
	danglingIn map[string]int
}

// Result is the outcome of Check.
type Result struct {
	// Acyclic reports whether every node could be placed in a total order.
	Acyclic bool
	// Order is the Kahn order. It is partial when the graph has a cycle.
	Order []string
	// Cycle is a closed walk such as [a b c a]. It is nil for acyclic
	// graphs, and may be nil for a cyclic one if no back-edge was found.
	Cycle []string
}
