// Package ingest decodes annotated sentences produced by an upstream tagger.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
	"github.com/cognicore/wordgraph/pkg/wordgraph/token"
)

// Format names an input encoding.
type Format string

const (
	// Tagged is one sentence per line of surface:TAG:marker fields.
	Tagged Format = "tagged"
	// JSONL is one sentence object per line.
	JSONL Format = "jsonl"
)

// ParseFormat validates an input format name. Empty selects Tagged.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return Tagged, nil
	case Tagged, JSONL:
		return f, nil
	default:
		return "", fmt.Errorf("input format %q: %w", name, internalerr.ErrInvalidConfig)
	}
}

const maxLine = 1 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return sc
}

// ReadTagged reads one sentence per line. Blank lines and lines starting
// with # are skipped.
func ReadTagged(r io.Reader) ([]token.Sentence, error) {
	var out []token.Sentence
	sc := newScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sent, err := token.ParseSentence(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, sent)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tagged input: %w", err)
	}
	return out, nil
}

// Record is the JSONL shape of one sentence.
type Record struct {
	Tokens []RecordToken `json:"tokens"`
}

// RecordToken is one annotated word of a Record.
type RecordToken struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
	Stop bool   `json:"stop"`
}

// Sentence converts the record. Tokens need a single-word text and a tag.
func (rec Record) Sentence() (token.Sentence, error) {
	sent := make(token.Sentence, 0, len(rec.Tokens))
	for _, t := range rec.Tokens {
		sent = append(sent, token.New(strings.TrimSpace(t.Text), strings.TrimSpace(t.Tag), t.Stop))
	}
	if err := sent.Validate(); err != nil {
		return nil, err
	}
	return sent, nil
}

// ReadJSONL reads one Record per line. Malformed lines are logged and
// skipped; input without a single valid record is an error.
func ReadJSONL(r io.Reader) ([]token.Sentence, error) {
	var out []token.Sentence
	sc := newScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d: %v", n, err)
			continue
		}
		sent, err := rec.Sentence()
		if err != nil {
			log.Printf("Warning: skipping invalid sentence at line %d: %v", n, err)
			continue
		}
		out = append(out, sent)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl input: %w", err)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid sentences found: %w", internalerr.ErrInvalidInput)
	}
	return out, nil
}

// Read dispatches on format.
func Read(r io.Reader, format Format) ([]token.Sentence, error) {
	switch format {
	case Tagged, "":
		return ReadTagged(r)
	case JSONL:
		return ReadJSONL(r)
	default:
		return nil, fmt.Errorf("input format %q: %w", format, internalerr.ErrInvalidConfig)
	}
}

// LoadFile opens path and reads it in the given format.
func LoadFile(path string, format Format) ([]token.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sents, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return sents, nil
}
