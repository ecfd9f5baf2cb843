// Package search enumerates compression candidates over a weighted word
// graph.
package search

import (
	"strings"

	"github.com/cognicore/wordgraph/pkg/wordgraph/graph"
)

// Candidate is an accepted path between the start and end markers, with its
// length-normalized cost.
type Candidate struct {
	Path []graph.NodeID
	Cost float64
}

// Len returns the number of nodes on the path.
func (c Candidate) Len() int {
	return len(c.Path)
}

// Words returns the surface forms along the path.
func (c Candidate) Words() []string {
	return graph.Surfaces(c.Path)
}

// Text joins the surface forms with spaces.
func (c Candidate) Text() string {
	return strings.Join(c.Words(), " ")
}

// Equal reports whether both candidates follow the same node sequence.
func (c Candidate) Equal(other Candidate) bool {
	if len(c.Path) != len(other.Path) {
		return false
	}
	for i := range c.Path {
		if c.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}

// HasVerb reports whether some node on path carries a verb tag.
func HasVerb(path []graph.NodeID) bool {
	for _, id := range path {
		if id.IsVerb() {
			return true
		}
	}
	return false
}

func pathKey(path []graph.NodeID) string {
	var b strings.Builder
	for i, id := range path {
		if i > 0 {
			b.WriteByte(0)
		}
		b.WriteString(string(id))
	}
	return b.String()
}
