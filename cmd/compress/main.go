// Command compress reads tagged sentences and prints summary candidates.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cognicore/wordgraph/pkg/wordgraph"
	"github.com/cognicore/wordgraph/pkg/wordgraph/config"
	"github.com/cognicore/wordgraph/pkg/wordgraph/ingest"
	"github.com/cognicore/wordgraph/pkg/wordgraph/report"
	"github.com/cognicore/wordgraph/pkg/wordgraph/store"
	"github.com/cognicore/wordgraph/pkg/wordgraph/store/memstore"
	"github.com/cognicore/wordgraph/pkg/wordgraph/store/sqlite"
	"github.com/cognicore/wordgraph/pkg/wordgraph/weight"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("compress", flag.ContinueOnError)
	var (
		inputPath  = fs.String("input", "", "Input file (required)")
		inputFmt   = fs.String("format", "tagged", "Input format: tagged or jsonl")
		configPath = fs.String("config", "", "YAML config file (optional)")
		verbose    = fs.Bool("v", false, "Log stage timings")
	)
	fs.String("scheme", "", "Weighting scheme: naive or advanced")
	fs.Int("results", config.DefaultMaxResults, "Maximum number of candidates")
	fs.Int("min-len", config.DefaultMinLength, "Minimum candidate length in nodes")
	fs.Duration("budget", 0, "Search time budget (0 = unbounded)")
	fs.String("db", "", "SQLite run history (default in-memory)")
	fs.String("output", "", "Output format: text, json or html")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *inputPath == "" {
		return errors.New("--input required")
	}

	cfg, err := resolveConfig(*configPath, fs)
	if err != nil {
		return err
	}
	format, err := ingest.ParseFormat(*inputFmt)
	if err != nil {
		return err
	}
	outFmt, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	sentences, err := ingest.LoadFile(*inputPath, format)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}

	st, err := openStore(ctx, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	comp, err := wordgraph.New(wordgraph.Options{
		Scheme:     cfg.Weighting.Scheme,
		MaxResults: cfg.Search.MaxResults,
		MinLength:  cfg.Search.MinLength,
		Budget:     cfg.Search.Budget,
		Store:      st,
	})
	if err != nil {
		return err
	}

	res, err := comp.Compress(ctx, sentences)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Read %d sentences from %s", len(sentences), *inputPath)
		log.Printf("Build: %d nodes, %d edges in %s", len(res.Graph.Nodes()), res.Graph.EdgeCount(), res.Timings.Build)
		log.Printf("Weight (%s): %s", cfg.Weighting.Scheme, res.Timings.Weight)
		log.Printf("Search: %d candidates in %s", len(res.Candidates), res.Timings.Search)
	}
	if res.Truncated {
		log.Printf("Warning: search budget %s exhausted, results are partial", cfg.Search.Budget)
	}
	if cfg.Store.Path != "" {
		log.Printf("Saved run %s to %s", res.RunID, cfg.Store.Path)
	}

	return report.Write(stdout, outFmt, res.Candidates, cfg.Search.MaxResults)
}

// resolveConfig layers defaults, the config file, the environment and the
// flags that were set explicitly, in that order.
func resolveConfig(path string, fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		if flagErr != nil {
			return
		}
		value := f.Value.String()
		switch f.Name {
		case "scheme":
			cfg.Weighting.Scheme, flagErr = weight.ParseScheme(value)
		case "results":
			cfg.Search.MaxResults, flagErr = strconv.Atoi(value)
		case "min-len":
			cfg.Search.MinLength, flagErr = strconv.Atoi(value)
		case "budget":
			cfg.Search.Budget, flagErr = time.ParseDuration(value)
		case "db":
			cfg.Store.Path = value
		case "output":
			cfg.Output.Format = value
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore(ctx context.Context, path string) (store.Store, error) {
	if path == "" {
		return memstore.New(), nil
	}
	return sqlite.Open(ctx, path)
}
