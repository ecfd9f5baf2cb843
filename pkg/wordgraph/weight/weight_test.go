package weight

import (
	"errors"
	"math"
	"testing"

	"github.com/cognicore/wordgraph/pkg/wordgraph/graph"
	"github.com/cognicore/wordgraph/pkg/wordgraph/internalerr"
	"github.com/cognicore/wordgraph/pkg/wordgraph/token"
)

type Edge = graph.Edge

type tailEdges struct {
	tail  graph.NodeID
	heads []Edge
}

var clinton = []string{
	"the:DT:* wife:NN:_ of:IN:* a:DT:* former:JJ:* u.s.:NNP:_ president:NN:_ bill:NNP:_ clinton:NNP:_ hillary:NNP:_ clinton:NNP:_ visited:VBD:_ china:NNP:_ last:JJ:* monday:NNP:_",
	"hillary:NNP:_ clinton:NNP:_ wanted:VBD:_ to:TO:* visit:VB:_ china:NNP:_ last:JJ:* month:NN:_ but:CC:* postponed:VBD:_ her:PRP$:* plans:NNS:_ till:IN:_ monday:NNP:_ last:JJ:* week:NN:_",
	"hillary:NNP:_ clinton:NNP:_ paid:VBD:_ a:DT:* visit:NN:_ to:IN:* the:DT:* people:NNP:_ republic:NNP:_ of:IN:* china:NNP:_ on:IN:* monday:NNP:_",
	"last:JJ:* week:NN:_ the:DT:* secretary:NNP:_ state:NNP:_ ms.:NNP:_ clinton:NNP:_ visited:VBD:_ chinese:JJ:_ officials:NNS:_",
}

var naiveExpected = []tailEdges{
	{"<START>", []Edge{{Head: "the:DT:*:0", Weight: 0.75}, {Head: "hillary:NNP:_:9", Weight: 0.5}, {Head: "last:JJ:*:12", Weight: 0.75}}},
	{"the:DT:*:0", []Edge{{Head: "wife:NN:_:1", Weight: 0.0}}},
	{"wife:NN:_:1", []Edge{{Head: "of:IN:*:2", Weight: 0.0}}},
	{"of:IN:*:2", []Edge{{Head: "a:DT:*:3", Weight: 0.0}}},
	{"a:DT:*:3", []Edge{{Head: "former:JJ:*:4", Weight: 0.0}}},
	{"former:JJ:*:4", []Edge{{Head: "u.s.:NNP:_:5", Weight: 0.0}}},
	{"u.s.:NNP:_:5", []Edge{{Head: "president:NN:_:6", Weight: 0.0}}},
	{"president:NN:_:6", []Edge{{Head: "bill:NNP:_:7", Weight: 0.0}}},
	{"bill:NNP:_:7", []Edge{{Head: "clinton:NNP:_:8", Weight: 0.0}}},
	{"clinton:NNP:_:8", []Edge{{Head: "hillary:NNP:_:9", Weight: 0.8}, {Head: "visited:VBD:_:10", Weight: 0.6}, {Head: "wanted:VBD:_:14", Weight: 0.8}, {Head: "paid:VBD:_:25", Weight: 0.8}}},
	{"hillary:NNP:_:9", []Edge{{Head: "clinton:NNP:_:8", Weight: 0.0}}},
	{"visited:VBD:_:10", []Edge{{Head: "china:NNP:_:11", Weight: 0.5}, {Head: "chinese:JJ:_:38", Weight: 0.5}}},
	{"china:NNP:_:11", []Edge{{Head: "last:JJ:*:12", Weight: 0.33333333333333337}, {Head: "on:IN:*:33", Weight: 0.6666666666666667}}},
	{"last:JJ:*:12", []Edge{{Head: "monday:NNP:_:13", Weight: 0.6666666666666667}, {Head: "month:NN:_:17", Weight: 0.6666666666666667}, {Head: "week:NN:_:24", Weight: 0.6666666666666667}}},
	{"monday:NNP:_:13", []Edge{{Head: "<END>", Weight: 0.33333333333333337}, {Head: "last:JJ:*:23", Weight: 0.6666666666666667}}},
	{"wanted:VBD:_:14", []Edge{{Head: "to:TO:*:15", Weight: 0.0}}},
	{"to:TO:*:15", []Edge{{Head: "visit:VB:_:16", Weight: 0.0}}},
	{"visit:VB:_:16", []Edge{{Head: "china:NNP:_:11", Weight: 0.0}}},
	{"month:NN:_:17", []Edge{{Head: "but:CC:*:18", Weight: 0.0}}},
	{"but:CC:*:18", []Edge{{Head: "postponed:VBD:_:19", Weight: 0.0}}},
	{"postponed:VBD:_:19", []Edge{{Head: "her:PRP$:*:20", Weight: 0.0}}},
	{"her:PRP$:*:20", []Edge{{Head: "plans:NNS:_:21", Weight: 0.0}}},
	{"plans:NNS:_:21", []Edge{{Head: "till:IN:_:22", Weight: 0.0}}},
	{"till:IN:_:22", []Edge{{Head: "monday:NNP:_:13", Weight: 0.0}}},
	{"last:JJ:*:23", []Edge{{Head: "week:NN:_:24", Weight: 0.0}}},
	{"week:NN:_:24", []Edge{{Head: "<END>", Weight: 0.5}, {Head: "the:DT:*:34", Weight: 0.5}}},
	{"paid:VBD:_:25", []Edge{{Head: "a:DT:*:26", Weight: 0.0}}},
	{"a:DT:*:26", []Edge{{Head: "visit:NN:_:27", Weight: 0.0}}},
	{"visit:NN:_:27", []Edge{{Head: "to:IN:*:28", Weight: 0.0}}},
	{"to:IN:*:28", []Edge{{Head: "the:DT:*:29", Weight: 0.0}}},
	{"the:DT:*:29", []Edge{{Head: "people:NNP:_:30", Weight: 0.0}}},
	{"people:NNP:_:30", []Edge{{Head: "republic:NNP:_:31", Weight: 0.0}}},
	{"republic:NNP:_:31", []Edge{{Head: "of:IN:*:32", Weight: 0.0}}},
	{"of:IN:*:32", []Edge{{Head: "china:NNP:_:11", Weight: 0.0}}},
	{"on:IN:*:33", []Edge{{Head: "monday:NNP:_:13", Weight: 0.0}}},
	{"the:DT:*:34", []Edge{{Head: "secretary:NNP:_:35", Weight: 0.0}}},
	{"secretary:NNP:_:35", []Edge{{Head: "state:NNP:_:36", Weight: 0.0}}},
	{"state:NNP:_:36", []Edge{{Head: "ms.:NNP:_:37", Weight: 0.0}}},
	{"ms.:NNP:_:37", []Edge{{Head: "clinton:NNP:_:8", Weight: 0.0}}},
	{"chinese:JJ:_:38", []Edge{{Head: "officials:NNS:_:39", Weight: 0.0}}},
	{"officials:NNS:_:39", []Edge{{Head: "<END>", Weight: 0.0}}},
}

var advancedExpected = []tailEdges{
	{"<START>", []Edge{{Head: "the:DT:*:0", Weight: 1}, {Head: "hillary:NNP:_:9", Weight: 1}, {Head: "last:JJ:*:12", Weight: 1}}},
	{"the:DT:*:0", []Edge{{Head: "wife:NN:_:1", Weight: 3.0}}},
	{"wife:NN:_:1", []Edge{{Head: "of:IN:*:2", Weight: 3.0}}},
	{"of:IN:*:2", []Edge{{Head: "a:DT:*:3", Weight: 3.0}}},
	{"a:DT:*:3", []Edge{{Head: "former:JJ:*:4", Weight: 3.0}}},
	{"former:JJ:*:4", []Edge{{Head: "u.s.:NNP:_:5", Weight: 3.0}}},
	{"u.s.:NNP:_:5", []Edge{{Head: "president:NN:_:6", Weight: 3.0}}},
	{"president:NN:_:6", []Edge{{Head: "bill:NNP:_:7", Weight: 3.0}}},
	{"bill:NNP:_:7", []Edge{{Head: "clinton:NNP:_:8", Weight: 1.9}}},
	{"clinton:NNP:_:8", []Edge{{Head: "hillary:NNP:_:9", Weight: 1.5333333333333332}, {Head: "visited:VBD:_:10", Weight: 1.3}, {Head: "wanted:VBD:_:14", Weight: 2.2}, {Head: "paid:VBD:_:25", Weight: 2.2}}},
	{"hillary:NNP:_:9", []Edge{{Head: "clinton:NNP:_:8", Weight: 1.1777777777777778}}},
	{"visited:VBD:_:10", []Edge{{Head: "china:NNP:_:11", Weight: 1.8333333333333335}, {Head: "chinese:JJ:_:38", Weight: 2.5}}},
	{"china:NNP:_:11", []Edge{{Head: "last:JJ:*:12", Weight: 1.3333333333333333}, {Head: "on:IN:*:33", Weight: 2.333333333333333}}},
	{"last:JJ:*:12", []Edge{{Head: "monday:NNP:_:13", Weight: 1.5833333333333335}, {Head: "month:NN:_:17", Weight: 2.333333333333333}, {Head: "week:NN:_:24", Weight: 1.75}}},
	{"monday:NNP:_:13", []Edge{{Head: "<END>", Weight: 1}, {Head: "last:JJ:*:23", Weight: 2.333333333333333}}},
	{"wanted:VBD:_:14", []Edge{{Head: "to:TO:*:15", Weight: 3.0}}},
	{"to:TO:*:15", []Edge{{Head: "visit:VB:_:16", Weight: 3.0}}},
	{"visit:VB:_:16", []Edge{{Head: "china:NNP:_:11", Weight: 2.333333333333333}}},
	{"month:NN:_:17", []Edge{{Head: "but:CC:*:18", Weight: 3.0}}},
	{"but:CC:*:18", []Edge{{Head: "postponed:VBD:_:19", Weight: 3.0}}},
	{"postponed:VBD:_:19", []Edge{{Head: "her:PRP$:*:20", Weight: 3.0}}},
	{"her:PRP$:*:20", []Edge{{Head: "plans:NNS:_:21", Weight: 3.0}}},
	{"plans:NNS:_:21", []Edge{{Head: "till:IN:_:22", Weight: 3.0}}},
	{"till:IN:_:22", []Edge{{Head: "monday:NNP:_:13", Weight: 2.333333333333333}}},
	{"last:JJ:*:23", []Edge{{Head: "week:NN:_:24", Weight: 2.5}}},
	{"week:NN:_:24", []Edge{{Head: "<END>", Weight: 1}, {Head: "the:DT:*:34", Weight: 2.5}}},
	{"paid:VBD:_:25", []Edge{{Head: "a:DT:*:26", Weight: 3.0}}},
	{"a:DT:*:26", []Edge{{Head: "visit:NN:_:27", Weight: 3.0}}},
	{"visit:NN:_:27", []Edge{{Head: "to:IN:*:28", Weight: 3.0}}},
	{"to:IN:*:28", []Edge{{Head: "the:DT:*:29", Weight: 3.0}}},
	{"the:DT:*:29", []Edge{{Head: "people:NNP:_:30", Weight: 3.0}}},
	{"people:NNP:_:30", []Edge{{Head: "republic:NNP:_:31", Weight: 3.0}}},
	{"republic:NNP:_:31", []Edge{{Head: "of:IN:*:32", Weight: 3.0}}},
	{"of:IN:*:32", []Edge{{Head: "china:NNP:_:11", Weight: 2.333333333333333}}},
	{"on:IN:*:33", []Edge{{Head: "monday:NNP:_:13", Weight: 2.333333333333333}}},
	{"the:DT:*:34", []Edge{{Head: "secretary:NNP:_:35", Weight: 3.0}}},
	{"secretary:NNP:_:35", []Edge{{Head: "state:NNP:_:36", Weight: 3.0}}},
	{"state:NNP:_:36", []Edge{{Head: "ms.:NNP:_:37", Weight: 3.0}}},
	{"ms.:NNP:_:37", []Edge{{Head: "clinton:NNP:_:8", Weight: 2.2}}},
	{"chinese:JJ:_:38", []Edge{{Head: "officials:NNS:_:39", Weight: 3.0}}},
	{"officials:NNS:_:39", []Edge{{Head: "<END>", Weight: 1}}},
}

const epsilon = 1e-12

func buildClinton() (*graph.Graph, graph.Table) {
	return graph.Build(token.MustParseSentences(clinton...))
}

func assertWeights(t *testing.T, got *graph.Graph, want []tailEdges) {
	t.Helper()
	tails := got.Tails()
	if len(tails) != len(want) {
		t.Fatalf("expected %d tails, got %d", len(want), len(tails))
	}
	for i, w := range want {
		if tails[i] != w.tail {
			t.Fatalf("tail %d = %q, want %q", i, tails[i], w.tail)
		}
		heads := got.Heads(w.tail)
		if len(heads) != len(w.heads) {
			t.Fatalf("%q: expected %d heads, got %d", w.tail, len(w.heads), len(heads))
		}
		for j, e := range w.heads {
			if heads[j].Head != e.Head {
				t.Errorf("%q head %d = %q, want %q", w.tail, j, heads[j].Head, e.Head)
			}
			if math.Abs(heads[j].Weight-e.Weight) > epsilon {
				t.Errorf("%q -> %q cost = %v, want %v", w.tail, e.Head, heads[j].Weight, e.Weight)
			}
		}
	}
}

func TestNaiveWeightsScenario(t *testing.T) {
	g, _ := buildClinton()
	assertWeights(t, NaiveWeights(g), naiveExpected)
}

func TestAdvancedWeightsScenario(t *testing.T) {
	g, table := buildClinton()
	assertWeights(t, AdvancedWeights(g, table), advancedExpected)
}

func TestWeightsEmpty(t *testing.T) {
	if NaiveWeights(graph.New()).Len() != 0 {
		t.Error("naive weighting of an empty graph should be empty")
	}
	if AdvancedWeights(graph.New(), graph.NewTable()).Len() != 0 {
		t.Error("advanced weighting of an empty graph should be empty")
	}
}

func TestNaiveNormalization(t *testing.T) {
	g, _ := buildClinton()
	w := NaiveWeights(g)
	for _, tail := range w.Tails() {
		heads := w.Heads(tail)
		var mass float64
		for _, e := range heads {
			if e.Weight < 0 || e.Weight > 1 {
				t.Errorf("%q -> %q cost %v outside [0,1]", tail, e.Head, e.Weight)
			}
			mass += 1 - e.Weight
		}
		if math.Abs(mass-1) > 1e-9 {
			t.Errorf("%q: sum of (1 - cost) = %v, want 1", tail, mass)
		}
		if len(heads) == 1 && heads[0].Weight != 0 {
			t.Errorf("%q: sole edge cost = %v, want exactly 0", tail, heads[0].Weight)
		}
	}
}

func TestWeightsDoNotMutateInput(t *testing.T) {
	g, table := buildClinton()
	before := g.Clone()

	NaiveWeights(g)
	AdvancedWeights(g, table)

	for _, tail := range before.Tails() {
		for _, e := range before.Heads(tail) {
			if w, _ := g.Weight(tail, e.Head); w != e.Weight {
				t.Fatalf("%q -> %q changed from %v to %v", tail, e.Head, e.Weight, w)
			}
		}
	}
}

func TestAdvancedFavoursCloseCooccurrence(t *testing.T) {
	g, table := buildClinton()
	w := AdvancedWeights(g, table)

	near, _ := w.Weight("hillary:NNP:_:9", "clinton:NNP:_:8")
	rare, _ := w.Weight("wanted:VBD:_:14", "to:TO:*:15")
	if near >= rare {
		t.Errorf("frequent adjacent pair should be cheaper: %v >= %v", near, rare)
	}
	if start, _ := w.Weight(graph.Start, "hillary:NNP:_:9"); start != 1 {
		t.Errorf("edges out of the start marker should cost 1, got %v", start)
	}
}

func TestApply(t *testing.T) {
	g, table := buildClinton()

	naive, err := Apply(Naive, g, table)
	if err != nil {
		t.Fatalf("Apply naive: %v", err)
	}
	assertWeights(t, naive, naiveExpected)

	advanced, err := Apply(Advanced, g, table)
	if err != nil {
		t.Fatalf("Apply advanced: %v", err)
	}
	assertWeights(t, advanced, advancedExpected)

	if _, err := Apply(Scheme(42), g, table); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("unknown scheme error = %v", err)
	}
}

func TestParseScheme(t *testing.T) {
	for name, want := range map[string]Scheme{"": Naive, "naive": Naive, "Advanced": Advanced, " salience ": Advanced} {
		got, err := ParseScheme(name)
		if err != nil || got != want {
			t.Errorf("ParseScheme(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseScheme("random"); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	var s Scheme
	if err := s.UnmarshalText([]byte("advanced")); err != nil || s != Advanced {
		t.Errorf("UnmarshalText = %v, %v", s, err)
	}
	text, _ := Advanced.MarshalText()
	if string(text) != "advanced" {
		t.Errorf("MarshalText = %q", text)
	}
}
