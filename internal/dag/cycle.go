package dag

// frame is one level of the depth-first traversal: the node being expanded
// and the index of its next successor to look at.
type frame struct {
	id   string
	next int
}

// search holds the state of one FindCycle call.
type search struct {
	g       *Graph
	visited map[string]bool
	// onStack maps ids on the current path to their depth in stack.
	onStack map[string]int
	stack   []frame
}

// FindCycle returns one cycle as a closed walk, e.g. [b c d b], or nil if
// the graph is acyclic. Roots are tried in declaration order and successors
// in adjacency order; the first back-edge found wins. The traversal uses an
// explicit stack, so path length is not limited by goroutine stack size.
func (g *Graph) FindCycle() []string {
	s := &search{
		g:       g,
		visited: make(map[string]bool, len(g.order)),
		onStack: make(map[string]int),
	}

	for _, root := range g.order {
		if s.visited[root] {
			continue
		}
		if cycle := s.from(root); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (s *search) from(root string) []string {
	s.enter(root)

	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		succ := s.g.adjacency[top.id]
		if top.next == len(succ) {
			s.leave()
			continue
		}

		next := succ[top.next]
		top.next++

		if !s.g.has(next) {
			continue
		}
		if depth, ok := s.onStack[next]; ok {
			return s.cycleFrom(depth)
		}
		if !s.visited[next] {
			s.enter(next)
		}
	}
	return nil
}

func (s *search) enter(id string) {
	s.visited[id] = true
	s.onStack[id] = len(s.stack)
	s.stack = append(s.stack, frame{id: id})
}

// leave pops the top frame. The node stays visited and is never expanded
// again.
func (s *search) leave() {
	top := s.stack[len(s.stack)-1]
	delete(s.onStack, top.id)
	s.stack = s.stack[:len(s.stack)-1]
}

// cycleFrom closes the walk from the stack frame at depth back to itself.
func (s *search) cycleFrom(depth int) []string {
	cycle := make([]string, 0, len(s.stack)-depth+1)
	for _, f := range s.stack[depth:] {
		cycle = append(cycle, f.id)
	}
	return append(cycle, s.stack[depth].id)
}
