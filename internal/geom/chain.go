package geom

import "log/slog"

// connected reports whether any endpoint of a meets any endpoint of b.
func connected(a, b Shape, tol float64) bool {
	as, ae := a.StartPoint(), a.EndPoint()
	bs, be := b.StartPoint(), b.EndPoint()
	return as.Coincident(bs, tol) || as.Coincident(be, tol) ||
		ae.Coincident(bs, tol) || ae.Coincident(be, tol)
}

// Chains partitions shapes into maximal groups linked by coincident
// endpoints. Each group is walked depth first, starting from a shape with at
// most one neighbour when the group has one, so simple open and closed
// chains come out in path order. Shapes touching more than two others form
// junctions that this walk cannot order: the whole group stays one chain in
// visiting order and the junction is logged.
func Chains(shapes []Shape, tol float64) [][]Shape {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	n := len(shapes)
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if connected(shapes[i], shapes[j], tol) {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}
	for i, nb := range adj {
		if len(nb) > 2 {
			slog.Warn("shape joins more than two neighbours, chain order is best effort",
				"shape", i, "kind", shapes[i].Kind().String(), "neighbours", len(nb))
		}
	}

	visited := make([]bool, n)
	var chains [][]Shape
	var visit func(i int, chain []Shape) []Shape
	visit = func(i int, chain []Shape) []Shape {
		visited[i] = true
		chain = append(chain, shapes[i])
		for _, j := range adj[i] {
			if !visited[j] {
				chain = visit(j, chain)
			}
		}
		return chain
	}
	for i := 0; i < n; i++ {
		if !visited[i] {
			chains = append(chains, visit(chainStart(i, adj), nil))
		}
	}
	return chains
}

// chainStart returns the lowest-index shape with at most one neighbour in
// the component containing i, or i when every member has two or more.
func chainStart(i int, adj [][]int) int {
	seen := map[int]bool{i: true}
	stack := []int{i}
	start := -1
	for len(stack) > 0 {
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(adj[k]) <= 1 && (start < 0 || k < start) {
			start = k
		}
		for _, j := range adj[k] {
			if !seen[j] {
				seen[j] = true
				stack = append(stack, j)
			}
		}
	}
	if start < 0 {
		return i
	}
	return start
}

// ChainPolyshapes wraps every chain found by Chains into a Polyshape.
func ChainPolyshapes(shapes []Shape, tol float64) []*Polyshape {
	chains := Chains(shapes, tol)
	out := make([]*Polyshape, 0, len(chains))
	for _, c := range chains {
		out = append(out, NewPolyshape(tol, c...))
	}
	return out
}
