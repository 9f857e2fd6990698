package dag

// Sort orders the graph with Kahn's algorithm. The queue is seeded with the
// zero in-degree nodes in declaration order and is strictly FIFO, so the
// order is reproducible. The second return value is true iff every node was
// ordered. The graph itself is not modified.
//
// Edges from unknown sources are discounted from the working in-degrees:
// they would otherwise hold their target back forever and be mistaken for
// a cycle.
func (g *Graph) Sort() ([]string, bool) {
	if len(g.order) == 0 {
		return []string{}, true
	}

	remaining := make(map[string]int, len(g.inDegree))
	for id, d := range g.inDegree {
		remaining[id] = d - g.danglingIn[id]
	}

	queue := make([]string, 0, len(g.order))
	for _, id := range g.order {
		if remaining[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(g.order))
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		sorted = append(sorted, current)

		for _, next := range g.adjacency[current] {
			d, known := remaining[next]
			if !known {
				continue
			}
			d--
			remaining[next] = d
			if d == 0 {
				queue = append(queue, next)
			}
		}
	}

	return sorted, len(sorted) == len(g.order)
}

// IsAcyclic reports whether the graph has no cycles.
func (g *Graph) IsAcyclic() bool {
	_, ok := g.Sort()
	return ok
}
