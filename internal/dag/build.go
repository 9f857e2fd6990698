package dag

// Build constructs the adjacency and in-degree maps for the given nodes and
// edges. Every node id gets an entry in both maps before any edge is read.
// When an id is declared twice, the first declaration wins.
func Build(nodes []string, edges []EdgeRef) *Graph {
	g := &Graph{
		order:      make([]string, 0, len(nodes)),
		adjacency:  make(map[string][]string, len(nodes)),
		inDegree:   make(map[string]int, len(nodes)),
		danglingIn: make(map[string]int),
	}

	for _, id := range nodes {
		if _, exists := g.inDegree[id]; exists {
			continue
		}
		g.order = append(g.order, id)
		g.adjacency[id] = []string{}
		g.inDegree[id] = 0
	}

	for _, e := range edges {
		_, knownSource := g.adjacency[e.Source]
		if knownSource {
			g.adjacency[e.Source] = append(g.adjacency[e.Source], e.Target)
		}
		if _, ok := g.inDegree[e.Target]; ok {
			g.inDegree[e.Target]++
			if !knownSource {
				g.danglingIn[e.Target]++
			}
		}
	}

	return g
}
