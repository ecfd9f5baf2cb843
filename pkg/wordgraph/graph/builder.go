package graph

import (
	"strconv"

	"github.com/cognicore/wordgraph/pkg/wordgraph/token"
)

// Builder folds annotated sentences into a word graph one sentence at a time.
// Merging is greedy and order dependent: earlier sentences shape later merges.
// The disambiguator counter belongs to the builder, so separate builders never
// share identifiers.
type Builder struct {
	graph     *Graph
	table     Table
	byBase    map[string][]NodeID
	next      int
	sentences int
}

// NewBuilder creates a builder with an empty graph and table.
func NewBuilder() *Builder {
	return &Builder{
		graph:  New(),
		table:  NewTable(),
		byBase: make(map[string][]NodeID),
	}
}

// Build folds all sentences into a fresh graph and occurrence table.
func Build(sentences []token.Sentence) (*Graph, Table) {
	b := NewBuilder()
	for _, sent := range sentences {
		b.Add(sent)
	}
	return b.Graph(), b.Table()
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Table returns the occurrence table built so far.
func (b *Builder) Table() Table {
	return b.table
}

// Sentences returns how many sentences have been added, empty ones included.
func (b *Builder) Sentences() int {
	return b.sentences
}

// Add folds one sentence into the graph. An empty sentence still consumes a
// sentence index but adds no edges.
func (b *Builder) Add(sent token.Sentence) {
	idx := b.sentences
	b.sentences++
	if len(sent) == 0 {
		return
	}

	pred := Start
	for pos, tok := range sent {
		curr := tok.Key()
		succ := string(End)
		if pos < len(sent)-1 {
			succ = sent[pos+1].Key()
		}

		node := b.resolve(pred, tok, curr, succ)
		b.graph.Increment(pred, node)
		b.table.Add(node, Occurrence{Sentence: idx, Position: pos})
		pred = node
	}
	b.graph.Increment(pred, End)
}

// resolve picks the node the token at hand is merged into, or creates one.
func (b *Builder) resolve(pred NodeID, tok token.Token, curr, succ string) NodeID {
	candidates := b.byBase[curr]
	if len(candidates) == 0 {
		return b.fresh(curr)
	}

	score := b.overlap(pred, curr, succ)
	best := b.pick(candidates)

	// a stop word with no supporting context is never merged
	if tok.Stop && score == 0 {
		return b.fresh(curr)
	}
	return best
}

// overlap scores how well the lexical signature curr fits between pred and
// succ: half a point when pred already leads into a curr node, half a point
// when some curr node already leads into a succ node.
func (b *Builder) overlap(pred NodeID, curr, succ string) float64 {
	var score float64
	if b.graph.AnyHead(pred, func(h NodeID) bool { return h.Base() == curr }) {
		score += 0.5
	}
	for _, tail := range b.byBase[curr] {
		if b.graph.AnyHead(tail, func(h NodeID) bool { return h.Base() == succ }) {
			score += 0.5
			break
		}
	}
	return score
}

// pick returns the candidate with most occurrences; ties go to the greatest
// identifier.
func (b *Builder) pick(candidates []NodeID) NodeID {
	best := candidates[0]
	bestCount := b.table.Count(best)
	for _, c := range candidates[1:] {
		n := b.table.Count(c)
		if n > bestCount || (n == bestCount && c > best) {
			best, bestCount = c, n
		}
	}
	return best
}

func (b *Builder) fresh(base string) NodeID {
	id := NodeID(base + ":" + strconv.Itoa(b.next))
	b.next++
	b.byBase[base] = append(b.byBase[base], id)
	return id
}
