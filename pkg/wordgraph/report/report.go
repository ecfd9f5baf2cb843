// Package report renders ranked compression candidates for people and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
	"github.com/cognicore/wordgraph/pkg/wordgraph/search"
)

// Format selects an output rendering.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	HTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return Text, nil
	case Text, JSON, HTML:
		return f, nil
	default:
		return "", fmt.Errorf("output format %q: %w", name, internalerr.ErrInvalidConfig)
	}
}

// Entry is one ranked line of a report.
type Entry struct {
	Rank  int      `json:"rank"`
	Cost  float64  `json:"cost"`
	Words string   `json:"words"`
	Nodes []string `json:"nodes"`
}

// Sorted returns a copy of cands ordered by ascending cost. Equal costs keep
// their acceptance order.
func Sorted(cands []search.Candidate) []search.Candidate {
	out := make([]search.Candidate, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Cost < out[j].Cost })
	return out
}

// Entries ranks cands by cost and keeps at most limit of them (0 keeps all).
func Entries(cands []search.Candidate, limit int) []Entry {
	sorted := Sorted(cands)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	entries := make([]Entry, len(sorted))
	for i, c := range sorted {
		nodes := make([]string, len(c.Path))
		for j, id := range c.Path {
			nodes[j] = string(id)
		}
		entries[i] = Entry{
			Rank:  i + 1,
			Cost:  c.Cost,
			Words: c.Text(),
			Nodes: nodes,
		}
	}
	return entries
}

// Write renders cands in the given format.
func Write(w io.Writer, format Format, cands []search.Candidate, limit int) error {
	switch format {
	case Text, "":
		return WriteText(w, cands, limit)
	case JSON:
		return WriteJSON(w, cands, limit)
	case HTML:
		return WriteHTML(w, cands, limit)
	default:
		return fmt.Errorf("write %q: %w", format, internalerr.ErrInvalidConfig)
	}
}

// WriteText prints one line per candidate: rank, cost to three decimals and
// the surface words.
func WriteText(w io.Writer, cands []search.Candidate, limit int) error {
	for _, e := range Entries(cands, limit) {
		if _, err := fmt.Fprintf(w, "      %3d. (cost: %.3f) %s\n", e.Rank, e.Cost, e.Words); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON prints the ranked entries as an indented JSON array.
func WriteJSON(w io.Writer, cands []search.Candidate, limit int) error {
	entries := Entries(cands, limit)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
