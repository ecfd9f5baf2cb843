package graph

import (
	"sort"
)

// Occurrence locates one token by sentence index and position within it.
type Occurrence struct {
	Sentence int
	Position int
}

func (o Occurrence) less(other Occurrence) bool {
	if o.Sentence != other.Sentence {
		return o.Sentence < other.Sentence
	}
	return o.Position < other.Position
}

// Table maps each node to the occurrences folded into it. Entries are kept
// sorted and free of duplicates.
type Table map[NodeID][]Occurrence

// NewTable creates an empty occurrence table.
func NewTable() Table {
	return make(Table)
}

// Add records occ for id.
func (t Table) Add(id NodeID, occ Occurrence) {
	refs := t[id]
	i := sort.Search(len(refs), func(i int) bool { return !refs[i].less(occ) })
	if i < len(refs) && refs[i] == occ {
		return
	}
	refs = append(refs, Occurrence{})
	copy(refs[i+1:], refs[i:])
	refs[i] = occ
	t[id] = refs
}

// Get returns the occurrences of id in (sentence, position) order.
func (t Table) Get(id NodeID) []Occurrence {
	return t[id]
}

// Count returns how many occurrences were folded into id.
func (t Table) Count(id NodeID) int {
	return len(t[id])
}

// SentencesOf returns the distinct sentence indices id occurs in.
func (t Table) SentencesOf(id NodeID) []int {
	var out []int
	for _, occ := range t[id] {
		if len(out) == 0 || out[len(out)-1] != occ.Sentence {
			out = append(out, occ.Sentence)
		}
	}
	return out
}

// Nodes returns the table keys sorted lexicographically.
func (t Table) Nodes() []NodeID {
	out := make([]NodeID, 0, len(t))
	for id := range t {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
