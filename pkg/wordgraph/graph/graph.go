// Package graph builds the word graph: a directed multigraph whose nodes are
// merged word occurrences and whose edge weights start as occurrence counts.
package graph

// Edge is an outgoing edge of a tail node.
type Edge struct {
	Head   NodeID
	Weight float64
}

type adjacency struct {
	order  []NodeID
	weight map[NodeID]float64
}

// Graph maps tail nodes to weighted head nodes. Tails and the heads of each
// tail keep first-insertion order, which makes every traversal deterministic.
type Graph struct {
	order []NodeID
	adj   map[NodeID]*adjacency
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[NodeID]*adjacency)}
}

func (g *Graph) heads(tail NodeID) *adjacency {
	a, ok := g.adj[tail]
	if !ok {
		a = &adjacency{weight: make(map[NodeID]float64)}
		g.adj[tail] = a
		g.order = append(g.order, tail)
	}
	return a
}

// Increment adds one occurrence to the edge tail -> head.
func (g *Graph) Increment(tail, head NodeID) {
	a := g.heads(tail)
	if _, ok := a.weight[head]; !ok {
		a.order = append(a.order, head)
	}
	a.weight[head]++
}

// Set stores weight on the edge tail -> head, creating it if needed.
func (g *Graph) Set(tail, head NodeID, weight float64) {
	a := g.heads(tail)
	if _, ok := a.weight[head]; !ok {
		a.order = append(a.order, head)
	}
	a.weight[head] = weight
}

// Weight returns the weight of tail -> head.
func (g *Graph) Weight(tail, head NodeID) (float64, bool) {
	a, ok := g.adj[tail]
	if !ok {
		return 0, false
	}
	w, ok := a.weight[head]
	return w, ok
}

// HasTail reports whether tail has outgoing edges.
func (g *Graph) HasTail(tail NodeID) bool {
	_, ok := g.adj[tail]
	return ok
}

// Heads returns the outgoing edges of tail in insertion order.
func (g *Graph) Heads(tail NodeID) []Edge {
	a, ok := g.adj[tail]
	if !ok {
		return nil
	}
	edges := make([]Edge, len(a.order))
	for i, h := range a.order {
		edges[i] = Edge{Head: h, Weight: a.weight[h]}
	}
	return edges
}

// AnyHead reports whether some head of tail satisfies match.
func (g *Graph) AnyHead(tail NodeID, match func(NodeID) bool) bool {
	a, ok := g.adj[tail]
	if !ok {
		return false
	}
	for _, h := range a.order {
		if match(h) {
			return true
		}
	}
	return false
}

// Total returns the summed weight of the outgoing edges of tail.
func (g *Graph) Total(tail NodeID) float64 {
	a, ok := g.adj[tail]
	if !ok {
		return 0
	}
	var total float64
	for _, h := range a.order {
		total += a.weight[h]
	}
	return total
}

// Tails returns every node with outgoing edges in insertion order.
func (g *Graph) Tails() []NodeID {
	out := make([]NodeID, len(g.order))
	copy(out, g.order)
	return out
}

// Nodes returns every tail and head, each once, in first-seen order.
func (g *Graph) Nodes() []NodeID {
	seen := make(map[NodeID]struct{}, len(g.order))
	var out []NodeID
	add := func(id NodeID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, t := range g.order {
		add(t)
		for _, h := range g.adj[t].order {
			add(h)
		}
	}
	return out
}

// Len returns the number of tail nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, a := range g.adj {
		n += len(a.order)
	}
	return n
}

// Clone returns a deep copy with the same ordering.
func (g *Graph) Clone() *Graph {
	out := New()
	for _, t := range g.order {
		for _, e := range g.Heads(t) {
			out.Set(t, e.Head, e.Weight)
		}
	}
	return out
}
