package graph

import (
	"strings"

	"github.com/cognicore/wordgraph/pkg/wordgraph/token"
)

// NodeID identifies a graph node: surface:tag:marker[:disambiguator].
type NodeID string

// Synthetic sentence boundary markers.
const (
	Start NodeID = "<START>"
	End   NodeID = "<END>"
)

// IsMarker reports whether id is the start or end marker.
func (id NodeID) IsMarker() bool {
	return id == Start || id == End
}

// Base returns the identifier without its disambiguator. Markers are their
// own base.
func (id NodeID) Base() string {
	base, _ := id.split()
	return base
}

// Disambiguator returns the numeric suffix, or "" when there is none.
func (id NodeID) Disambiguator() string {
	_, d := id.split()
	return d
}

// Surface returns the word form of the node.
func (id NodeID) Surface() string {
	if id.IsMarker() {
		return ""
	}
	base := id.Base()
	markerAt := strings.LastIndex(base, ":")
	if markerAt < 0 {
		return base
	}
	tagAt := strings.LastIndex(base[:markerAt], ":")
	if tagAt < 0 {
		return base[:markerAt]
	}
	return base[:tagAt]
}

// Tag returns the grammatical tag fragment of the node.
func (id NodeID) Tag() string {
	if id.IsMarker() {
		return ""
	}
	base := id.Base()
	markerAt := strings.LastIndex(base, ":")
	if markerAt < 0 {
		return ""
	}
	tagAt := strings.LastIndex(base[:markerAt], ":")
	return base[tagAt+1 : markerAt]
}

// IsStop reports whether the node was built from a stop word.
func (id NodeID) IsStop() bool {
	return strings.HasSuffix(id.Base(), ":"+token.StopMarker)
}

// IsVerb reports whether the node carries a verb-form tag.
func (id NodeID) IsVerb() bool {
	return token.IsVerb(id.Tag())
}

func (id NodeID) split() (string, string) {
	s := string(id)
	if id.IsMarker() {
		return s, ""
	}
	i := strings.LastIndex(s, ":")
	if i <= 0 || !isDigits(s[i+1:]) {
		return s, ""
	}
	prefix := s[:i]
	if strings.HasSuffix(prefix, ":"+token.StopMarker) || strings.HasSuffix(prefix, ":"+token.ContentMarker) {
		return prefix, s[i+1:]
	}
	return s, ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Surfaces strips node metadata from a path, returning the word forms.
func Surfaces(path []NodeID) []string {
	words := make([]string, 0, len(path))
	for _, id := range path {
		if id.IsMarker() {
			continue
		}
		words = append(words, id.Surface())
	}
	return words
}
