package report

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/wordgraph/pkg/wordgraph/search"
)

// WriteHTML renders the ranked entries as an ordered list. Words go through
// the html renderer, so markup in surfaces is escaped.
func WriteHTML(w io.Writer, cands []search.Candidate, limit int) error {
	list := element(atom.Ol, html.Attribute{Key: "class", Val: "summaries"})
	for _, e := range Entries(cands, limit) {
		item := element(atom.Li, html.Attribute{Key: "data-cost", Val: fmt.Sprintf("%.3f", e.Cost)})

		cost := element(atom.Span, html.Attribute{Key: "class", Val: "cost"})
		cost.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprintf("%.3f", e.Cost)})
		item.AppendChild(cost)

		words := element(atom.Span, html.Attribute{Key: "class", Val: "words"})
		words.AppendChild(&html.Node{Type: html.TextNode, Data: e.Words})
		item.AppendChild(words)

		list.AppendChild(item)
	}

	if err := html.Render(w, list); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}
