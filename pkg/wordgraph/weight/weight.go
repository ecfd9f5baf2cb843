// Package weight turns raw edge occurrence counts into traversal costs.
// Lower cost means a more favoured continuation.
package weight

import (
	"fmt"
	"strings"

	"github.com/cognicore/wordgraph/pkg/wordgraph/graph"
	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
)

// Scheme selects a weighting function.
type Scheme int

const (
	// Naive weighs an edge by its share of the tail's outgoing mass.
	Naive Scheme = iota
	// Advanced weighs an edge by in-sentence co-occurrence salience.
	Advanced
)

// String implements fmt.Stringer.
func (s Scheme) String() string {
	switch s {
	case Naive:
		return "naive"
	case Advanced:
		return "advanced"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// ParseScheme maps a name to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "naive":
		return Naive, nil
	case "advanced", "salience":
		return Advanced, nil
	default:
		return Naive, fmt.Errorf("weighting scheme %q: %w", name, internalerr.ErrInvalidConfig)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Apply runs the weighting selected by scheme. The table is only consulted
// by Advanced.
func Apply(scheme Scheme, g *graph.Graph, table graph.Table) (*graph.Graph, error) {
	switch scheme {
	case Naive:
		return NaiveWeights(g), nil
	case Advanced:
		return AdvancedWeights(g, table), nil
	default:
		return nil, fmt.Errorf("apply %s: %w", scheme, internalerr.ErrInvalidConfig)
	}
}

// NaiveWeights gives each edge the cost 1 - count/total, where total is the
// outgoing count mass of its tail. A sole outgoing edge costs 0.
func NaiveWeights(g *graph.Graph) *graph.Graph {
	out := graph.New()
	for _, tail := range g.Tails() {
		total := g.Total(tail)
		for _, e := range g.Heads(tail) {
			out.Set(tail, e.Head, 1-e.Weight/total)
		}
	}
	return out
}

// AdvancedWeights scores each edge t -> h by how often and how closely t
// precedes h within the same sentence:
//
//	strength = sum over same-sentence pairs with pos_t < pos_h of 1/(pos_t - pos_h)
//	strength = (|R_t| + |R_h|) / strength        (when non-zero)
//	salience = strength / (|R_t| * |R_h|)
//	cost     = 1 - salience
//
// where R_t and R_h are the occurrence sets of t and h. Markers have no
// occurrences, so their edges get cost 1.
func AdvancedWeights(g *graph.Graph, table graph.Table) *graph.Graph {
	out := graph.New()
	for _, tail := range g.Tails() {
		tailRefs := table.Get(tail)
		for _, e := range g.Heads(tail) {
			headRefs := table.Get(e.Head)
			out.Set(tail, e.Head, 1-salience(tailRefs, headRefs))
		}
	}
	return out
}

func salience(tailRefs, headRefs []graph.Occurrence) float64 {
	var strength float64
	for _, a := range tailRefs {
		for _, b := range headRefs {
			if a.Sentence == b.Sentence && a.Position < b.Position {
				strength += 1 / float64(a.Position-b.Position)
			}
		}
	}
	if strength == 0 {
		return 0
	}
	strength = float64(len(tailRefs)+len(headRefs)) / strength
	return strength / float64(len(tailRefs)*len(headRefs))
}
