// Package wordgraph compresses a set of related sentences into short
// summary candidates by merging them into a word graph and searching it for
// cheap verb-bearing paths.
//
// A Compressor runs the three stages in order:
//
//	graph.Build     sentences -> count graph + occurrence table
//	weight.Apply    count graph -> cost graph
//	search.Search   cost graph -> candidates
//
// Each run is independent; a Compressor may be shared between goroutines.
package wordgraph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/wordgraph/pkg/wordgraph/graph"
	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
	"github.com/cognicore/wordgraph/pkg/wordgraph/report"
	"github.com/cognicore/wordgraph/pkg/wordgraph/search"
	"github.com/cognicore/wordgraph/pkg/wordgraph/store"
	"github.com/cognicore/wordgraph/pkg/wordgraph/token"
	"github.com/cognicore/wordgraph/pkg/wordgraph/weight"
)

// Options configures a Compressor.
type Options struct {
	Scheme     weight.Scheme
	MaxResults int
	MinLength  int
	// Budget bounds the search stage; zero means no bound.
	Budget time.Duration
	// Store receives every run when set.
	Store store.Store
}

// DefaultOptions returns naive weighting with 5 results of at least 8 nodes.
func DefaultOptions() Options {
	return Options{
		Scheme:     weight.Naive,
		MaxResults: 5,
		MinLength:  8,
	}
}

// Validate rejects negative limits and unknown schemes.
func (o Options) Validate() error {
	if o.MaxResults < 0 {
		return fmt.Errorf("max results %d: %w", o.MaxResults, internalerr.ErrInvalidConfig)
	}
	if o.MinLength < 0 {
		return fmt.Errorf("min length %d: %w", o.MinLength, internalerr.ErrInvalidConfig)
	}
	if o.Budget < 0 {
		return fmt.Errorf("budget %s: %w", o.Budget, internalerr.ErrInvalidConfig)
	}
	switch o.Scheme {
	case weight.Naive, weight.Advanced:
	default:
		return fmt.Errorf("scheme %s: %w", o.Scheme, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Compressor is the pipeline facade.
type Compressor struct {
	opts Options
}

// New validates opts and creates a Compressor.
func New(opts Options) (*Compressor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Compressor{opts: opts}, nil
}

// Options returns the settings the Compressor was built with.
func (c *Compressor) Options() Options {
	return c.opts
}

// Timings records how long each stage took.
type Timings struct {
	Build  time.Duration
	Weight time.Duration
	Search time.Duration
}

// Result is the outcome of one Compress call.
type Result struct {
	// RunID is set when the run was saved to a store.
	RunID    string
	Graph    *graph.Graph
	Table    graph.Table
	Weighted *graph.Graph
	// Candidates are sorted by ascending cost.
	Candidates []search.Candidate
	// Truncated is set when the budget ran out before the search finished.
	Truncated bool
	Timings   Timings
}

// Compress runs the pipeline over sentences. Tokens must pass
// token.Validate so a stored run can be replayed. Cancellation of ctx aborts the
// search with ctx's error; an exhausted budget keeps the candidates found so
// far and sets Result.Truncated.
func (c *Compressor) Compress(ctx context.Context, sentences []token.Sentence) (Result, error) {
	for i, sent := range sentences {
		if err := sent.Validate(); err != nil {
			return Result{}, fmt.Errorf("sentence %d: %w", i, err)
		}
	}

	var res Result

	start := time.Now()
	res.Graph, res.Table = graph.Build(sentences)
	res.Timings.Build = time.Since(start)

	start = time.Now()
	weighted, err := weight.Apply(c.opts.Scheme, res.Graph, res.Table)
	if err != nil {
		return Result{}, err
	}
	res.Weighted = weighted
	res.Timings.Weight = time.Since(start)

	searchCtx := ctx
	if c.opts.Budget > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, c.opts.Budget)
		defer cancel()
	}

	start = time.Now()
	cands, err := search.SearchContext(searchCtx, weighted, c.opts.MaxResults, c.opts.MinLength)
	res.Timings.Search = time.Since(start)
	if err != nil {
		if ctx.Err() != nil || !errors.Is(err, context.DeadlineExceeded) {
			return Result{}, fmt.Errorf("search: %w", err)
		}
		res.Truncated = true
	}
	res.Candidates = report.Sorted(cands)

	if c.opts.Store != nil {
		id, err := c.opts.Store.SaveRun(ctx, c.runRecord(sentences, res))
		if err != nil {
			return Result{}, fmt.Errorf("save run: %w", err)
		}
		res.RunID = id
	}
	return res, nil
}

func (c *Compressor) runRecord(sentences []token.Sentence, res Result) store.Run {
	run := store.Run{
		Scheme:     c.opts.Scheme.String(),
		MaxResults: c.opts.MaxResults,
		MinLength:  c.opts.MinLength,
		Sentences:  make([]string, len(sentences)),
		Nodes:      len(res.Graph.Nodes()),
		Edges:      res.Graph.EdgeCount(),
		Candidates: make([]store.Candidate, len(res.Candidates)),
	}
	for i, s := range sentences {
		run.Sentences[i] = strings.Join(s.Keys(), " ")
	}
	for i, cand := range res.Candidates {
		path := make([]string, len(cand.Path))
		for j, id := range cand.Path {
			path[j] = string(id)
		}
		run.Candidates[i] = store.Candidate{Path: path, Cost: cand.Cost}
	}
	return run
}

// Candidates converts the stored candidates of run back to search results.
func Candidates(run store.Run) []search.Candidate {
	out := make([]search.Candidate, len(run.Candidates))
	for i, c := range run.Candidates {
		path := make([]graph.NodeID, len(c.Path))
		for j, id := range c.Path {
			path[j] = graph.NodeID(id)
		}
		out[i] = search.Candidate{Path: path, Cost: c.Cost}
	}
	return out
}

// Replay rebuilds the input sentences of a stored run.
func Replay(run store.Run) ([]token.Sentence, error) {
	out := make([]token.Sentence, len(run.Sentences))
	for i, line := range run.Sentences {
		sent, err := token.ParseSentence(line)
		if err != nil {
			return nil, fmt.Errorf("run %s sentence %d: %w", run.ID, i, err)
		}
		out[i] = sent
	}
	return out, nil
}
