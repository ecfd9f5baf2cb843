// Package token defines the annotated word tokens consumed by the graph
// builder. Annotation itself (sentence splitting, tagging, stop-word
// classification) happens upstream; this package only models and decodes it.
package token

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
)

// Stop-word markers used in the textual key form.
const (
	StopMarker    = "*"
	ContentMarker = "_"
)

// Token is one annotated, non-punctuation word of a sentence.
type Token struct {
	Surface string // lowercase surface form
	Tag     string // coarse grammatical tag, e.g. NNP, VBD
	Stop    bool   // stop-word flag
}

// Sentence is the ordered token sequence between the start and end markers.
type Sentence []Token

// New builds a token, lowercasing the surface form.
func New(surface, tag string, stop bool) Token {
	return Token{Surface: strings.ToLower(surface), Tag: tag, Stop: stop}
}

// Validate checks that the token survives a round trip through its key form:
// surface and tag must be non-empty and free of whitespace, and the tag must
// not contain a colon.
func (t Token) Validate() error {
	switch {
	case t.Surface == "" || strings.IndexFunc(t.Surface, unicode.IsSpace) >= 0:
		return fmt.Errorf("token %q: surface must be one non-empty word: %w", t.Surface, internalerr.ErrInvalidInput)
	case t.Tag == "" || strings.IndexFunc(t.Tag, unicode.IsSpace) >= 0 || strings.Contains(t.Tag, ":"):
		return fmt.Errorf("token %q: invalid tag %q: %w", t.Surface, t.Tag, internalerr.ErrInvalidInput)
	}
	return nil
}

// Marker returns the stop-word marker for the token.
func (t Token) Marker() string {
	if t.Stop {
		return StopMarker
	}
	return ContentMarker
}

// Key returns the base key surface:tag:marker.
func (t Token) Key() string {
	return t.Surface + ":" + t.Tag + ":" + t.Marker()
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return t.Key()
}

// IsVerb reports whether the token carries a verb-form tag.
func (t Token) IsVerb() bool {
	return IsVerb(t.Tag)
}

// IsVerb reports whether tag belongs to the verb family (VB, VBD, VBZ, ...).
func IsVerb(tag string) bool {
	return strings.HasPrefix(tag, "VB")
}

// Parse decodes a token written as surface:TAG:marker. The split happens on
// the last two colons so surfaces containing colons are kept intact.
func Parse(field string) (Token, error) {
	field = strings.TrimSpace(field)
	markerAt := strings.LastIndex(field, ":")
	if markerAt < 0 {
		return Token{}, fmt.Errorf("token %q: missing tag and marker: %w", field, internalerr.ErrInvalidInput)
	}
	tagAt := strings.LastIndex(field[:markerAt], ":")
	if tagAt <= 0 {
		return Token{}, fmt.Errorf("token %q: missing surface or tag: %w", field, internalerr.ErrInvalidInput)
	}

	surface := field[:tagAt]
	tag := field[tagAt+1 : markerAt]
	marker := field[markerAt+1:]
	if tag == "" {
		return Token{}, fmt.Errorf("token %q: empty tag: %w", field, internalerr.ErrInvalidInput)
	}

	var stop bool
	switch marker {
	case StopMarker:
		stop = true
	case ContentMarker:
	default:
		return Token{}, fmt.Errorf("token %q: unknown marker %q: %w", field, marker, internalerr.ErrInvalidInput)
	}

	return New(surface, tag, stop), nil
}

// ParseSentence decodes a whitespace separated line of tokens.
func ParseSentence(line string) (Sentence, error) {
	fields := strings.Fields(line)
	sent := make(Sentence, 0, len(fields))
	for _, f := range fields {
		tok, err := Parse(f)
		if err != nil {
			return nil, err
		}
		sent = append(sent, tok)
	}
	return sent, nil
}

// MustParseSentences decodes each line with ParseSentence and panics on error.
// Intended for fixtures and examples.
func MustParseSentences(lines ...string) []Sentence {
	out := make([]Sentence, 0, len(lines))
	for _, line := range lines {
		sent, err := ParseSentence(line)
		if err != nil {
			panic(err)
		}
		out = append(out, sent)
	}
	return out
}

// Keys returns the base keys of the sentence in order.
func (s Sentence) Keys() []string {
	keys := make([]string, len(s))
	for i, t := range s {
		keys[i] = t.Key()
	}
	return keys
}

// Validate checks every token of the sentence.
func (s Sentence) Validate() error {
	for i, t := range s {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("position %d: %w", i, err)
		}
	}
	return nil
}

// String joins the surface forms with spaces.
func (s Sentence) String() string {
	words := make([]string, len(s))
	for i, t := range s {
		words[i] = t.Surface
	}
	return strings.Join(words, " ")
}
