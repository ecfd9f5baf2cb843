// Command runs lists, shows and deletes stored compression runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cognicore/wordgraph/pkg/wordgraph"
	"github.com/cognicore/wordgraph/pkg/wordgraph/report"
	"github.com/cognicore/wordgraph/pkg/wordgraph/store"
	"github.com/cognicore/wordgraph/pkg/wordgraph/store/sqlite"
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
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	var (
		dbPath = fs.String("db", "", "SQLite run history (required)")
		list   = fs.Int("list", 10, "List the N newest runs (0 = all)")
		show   = fs.String("show", "", "Show one run by ID")
		del    = fs.String("delete", "", "Delete one run by ID")
		output = fs.String("output", "text", "Candidate format for -show: text, json or html")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		return errors.New("--db required")
	}

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	switch {
	case *del != "":
		if err := st.DeleteRun(ctx, *del); err != nil {
			return err
		}
		log.Printf("Deleted run %s", *del)
		return nil
	case *show != "":
		format, err := report.ParseFormat(*output)
		if err != nil {
			return err
		}
		r, err := st.GetRun(ctx, *show)
		if err != nil {
			return err
		}
		return showRun(stdout, r, format)
	default:
		runs, err := st.ListRuns(ctx, *list)
		if err != nil {
			return err
		}
		return listRuns(stdout, runs)
	}
}

func listRuns(w io.Writer, runs []store.Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSCHEME\tSENTENCES\tNODES\tEDGES\tBEST")
	for _, r := range runs {
		best := "-"
		if cands := report.Entries(wordgraph.Candidates(r), 1); len(cands) > 0 {
			best = cands[0].Words
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Scheme,
			len(r.Sentences), r.Nodes, r.Edges, best)
	}
	return tw.Flush()
}

func showRun(w io.Writer, r store.Run, format report.Format) error {
	if format == report.Text {
		fmt.Fprintf(w, "Run %s (%s)\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "  scheme=%s max_results=%d min_length=%d nodes=%d edges=%d\n",
			r.Scheme, r.MaxResults, r.MinLength, r.Nodes, r.Edges)
		sentences, err := wordgraph.Replay(r)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "  Sentences:")
		for i, s := range sentences {
			fmt.Fprintf(w, "    %d. %s\n", i+1, strings.TrimSpace(s.String()))
		}
		fmt.Fprintln(w, "  Candidates:")
	}
	return report.Write(w, format, wordgraph.Candidates(r), 0)
}
