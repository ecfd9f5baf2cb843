package search

import (
	"fmt"
	"math"

	"github.com/cognicore/wordgraph/pkg/wordgraph/graph"
	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
)

// Heuristic estimates the remaining cost of a path that currently ends at
// its last node. Markers are not part of path.
type Heuristic func(path []graph.NodeID) float64

// LengthVerbHeuristic charges penalty when path is shorter than minLength and
// again when it holds no verb.
func LengthVerbHeuristic(minLength int, penalty float64) Heuristic {
	return func(path []graph.NodeID) float64 {
		var h float64
		if len(path) < minLength {
			h += penalty
		}
		if !HasVerb(path) {
			h += penalty
		}
		return h
	}
}

// Best runs an A* search from the start to the end marker and returns the
// single best path between them. Open nodes with equal estimates are taken
// in the order they were first opened. Edge weights must be non-negative;
// a graph holding a negative weight is rejected with ErrInvalidInput.
func Best(g *graph.Graph, h Heuristic) ([]graph.NodeID, error) {
	for _, tail := range g.Tails() {
		for _, e := range g.Heads(tail) {
			if e.Weight < 0 {
				return nil, fmt.Errorf("edge %s -> %s weight %v: %w", tail, e.Head, e.Weight, internalerr.ErrInvalidInput)
			}
		}
	}
	if h == nil {
		h = func([]graph.NodeID) float64 { return 0 }
	}

	origin := make(map[graph.NodeID]graph.NodeID)
	score := map[graph.NodeID]float64{graph.Start: 0}
	esteem := map[graph.NodeID]float64{graph.Start: h(nil)}
	open := []graph.NodeID{graph.Start}
	limit := len(g.Nodes()) + 1

	for len(open) > 0 {
		at := 0
		for i, id := range open[1:] {
			if esteem[id] < esteem[open[at]] {
				at = i + 1
			}
		}
		current := open[at]
		if current == graph.End {
			return trace(current, origin, limit), nil
		}
		open = append(open[:at], open[at+1:]...)

		for _, e := range g.Heads(current) {
			tentative := score[current] + e.Weight
			known, ok := score[e.Head]
			if !ok {
				known = math.Inf(1)
			}
			if tentative >= known {
				continue
			}
			origin[e.Head] = current
			score[e.Head] = tentative
			esteem[e.Head] = tentative + h(trace(e.Head, origin, limit))
			if !contains(open, e.Head) {
				open = append(open, e.Head)
			}
		}
	}

	return nil, internalerr.ErrNoPath
}

// trace walks origin back from id and returns the word nodes on the way,
// id included, in start-to-id order.
func trace(id graph.NodeID, origin map[graph.NodeID]graph.NodeID, limit int) []graph.NodeID {
	var reversed []graph.NodeID
	for steps := 0; steps < limit; steps++ {
		if !id.IsMarker() {
			reversed = append(reversed, id)
		}
		prev, ok := origin[id]
		if !ok {
			break
		}
		id = prev
	}
	path := make([]graph.NodeID, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path
}

func contains(ids []graph.NodeID, id graph.NodeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
