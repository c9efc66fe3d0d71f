package template

// FeedbackLoops finds regulation cycles: vertex u regulates v when u's output
// edge feeds v. It runs a three-colour DFS from every unvisited vertex in
// index order and reports one loop per back edge, listed in regulation order
// starting from the vertex the back edge returns to.
func (t *Template) FeedbackLoops() [][]string {
	colors := make([]color, len(t.vertices))
	parent := make([]int, len(t.vertices))
	for i := range parent {
		parent[i] = -1
	}

	var loops [][]string
	var visit func(v int)
	visit = func(v int) {
		colors[v] = gray
		if out := t.vertices[v].Output; out >= 0 {
			for _, next := range t.edges[out].Dsts {
				switch colors[next] {
				case gray:
					loops = append(loops, t.extractLoop(parent, next, v))
				case white:
					parent[next] = v
					visit(next)
				}
			}
		}
		colors[v] = black
	}

	for v := range t.vertices {
		if colors[v] == white {
			visit(v)
		}
	}
	return loops
}

// extractLoop walks parent pointers from end back to start
func (t *Template) extractLoop(parent []int, start, end int) []string {
	var rev []int
	for v := end; v != start && v != -1; v = parent[v] {
		rev = append(rev, v)
	}
	loop := []string{t.vertices[start].ID}
	for i := len(rev) - 1; i >= 0; i-- {
		loop = append(loop, t.vertices[rev[i]].ID)
	}
	return loop
}
