package search

import (
	"container/heap"
	"context"
	"time"

	"github.com/cognicore/wordgraph/pkg/wordgraph/graph"
)

// partial is a fringe entry: a path from the start marker and its summed cost.
type partial struct {
	path []graph.NodeID
	cost float64
	seq  int
}

// fringe pops the cheapest partial path first; equal costs pop in insertion
// order.
type fringe []*partial

func (f fringe) Len() int { return len(f) }

func (f fringe) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f fringe) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *fringe) Push(x any) { *f = append(*f, x.(*partial)) }

func (f *fringe) Pop() any {
	old := *f
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return p
}

// Search runs a lowest-cost-first search from the start marker and returns up
// to maxResults candidates of at least minLength nodes that contain a verb.
//
// A popped path is tested for acceptance while its extensions are generated,
// before any of them is explored, so a short prefix can be accepted ahead of
// a cheaper completion. Results come back in acceptance order; sorting by
// cost is left to the caller.
func Search(g *graph.Graph, maxResults, minLength int) []Candidate {
	results, _ := SearchContext(context.Background(), g, maxResults, minLength)
	return results
}

// SearchContext is Search with a cancellation and deadline check before
// every pop. When ctx ends, or its deadline has passed, the candidates
// accepted so far are returned with the context error.
func SearchContext(ctx context.Context, g *graph.Graph, maxResults, minLength int) ([]Candidate, error) {
	var results []Candidate
	if maxResults <= 0 || g.Len() == 0 {
		return results, nil
	}

	seq := 0
	f := &fringe{{seq: seq}}
	queued := map[string]struct{}{"": {}}
	accepted := make(map[string]struct{})

	for f.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
			return results, context.DeadlineExceeded
		}

		best := heap.Pop(f).(*partial)
		bestKey := pathKey(best.path)
		delete(queued, bestKey)

		tail := graph.Start
		if len(best.path) > 0 {
			tail = best.path[len(best.path)-1]
		}
		if !g.HasTail(tail) {
			// dead end: stop with what has been accepted
			return results, nil
		}

		onPath := make(map[graph.NodeID]struct{}, len(best.path))
		for _, id := range best.path {
			onPath[id] = struct{}{}
		}
		acceptable := len(best.path) >= minLength && HasVerb(best.path)

		for _, e := range g.Heads(tail) {
			if _, seen := onPath[e.Head]; seen {
				continue
			}

			if e.Head != graph.End {
				ext := make([]graph.NodeID, len(best.path)+1)
				copy(ext, best.path)
				ext[len(best.path)] = e.Head
				key := pathKey(ext)
				if _, ok := queued[key]; !ok {
					seq++
					heap.Push(f, &partial{path: ext, cost: best.cost + e.Weight, seq: seq})
					queued[key] = struct{}{}
				}
			}

			if !acceptable {
				continue
			}
			if _, ok := accepted[bestKey]; !ok {
				accepted[bestKey] = struct{}{}
				results = append(results, Candidate{
					Path: best.path,
					Cost: best.cost / float64(len(best.path)),
				})
			}
			if len(results) >= maxResults {
				return results, nil
			}
		}
	}

	return results, nil
}
