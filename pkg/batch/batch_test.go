package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/liserjrqlxue/pichia/pkg/motif"
	"github.com/liserjrqlxue/pichia/pkg/plasmid"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func aox1Plasmid(cds string) string {
	return "AGATCTAACATC" + strings.Repeat("A", 916) + "TTATTCGAAACG" + cds + "GTTTGTAGCCTT"
}

func analyzer(t *testing.T, workers int) *Analyzer {
	t.Helper()
	reg, err := motif.NewDefault()
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewAnalyzer(reg, workers)
	if err != nil {
		t.Fatal(err)
	}
	a.Logger = quiet
	return a
}

func TestAnalyzeIsolatesFailures(t *testing.T) {
	a := analyzer(t, 2)
	sources := []plasmid.Source{
		{ID: "first.fa", Seq: aox1Plasmid("ATGAAATAA")},
		{ID: "second.fa", Seq: strings.Repeat("ACGT", 300)},
		{ID: "third.fa", Seq: aox1Plasmid("ATGCACCACTAA")},
	}
	b := a.Analyze(context.Background(), sources)

	if len(b.Records) != 2 || b.Records[0].Source != "first.fa" || b.Records[1].Source != "third.fa" {
		t.Fatalf("records = %v", sources2ids(b.Records))
	}
	if len(b.Failures) != 1 {
		t.Fatalf("failures = %+v", b.Failures)
	}
	f := b.Failures[0]
	if f.Index != 1 || f.Source != "second.fa" || f.Kind != plasmid.KindPromoterNotFound {
		t.Fatalf("failure = %+v", f)
	}
	if !errors.Is(f.Err, plasmid.ErrPromoterNotFound) || f.Reason == "" {
		t.Fatalf("failure error = %v", f.Err)
	}
	if b.RunID.String() == "" {
		t.Fatal("missing run id")
	}
}

func TestAnalyzeKeepsInputOrder(t *testing.T) {
	var sources []plasmid.Source
	for i := 0; i < 64; i++ {
		cds := "ATG" + strings.Repeat("AAA", i) + "TAA"
		if i%5 == 0 {
			cds = "CCC"
		}
		sources = append(sources, plasmid.Source{ID: fmt.Sprint(i), Seq: aox1Plasmid(cds)})
	}
	for _, workers := range []int{0, 1, 3, 16, 100} {
		b := analyzer(t, workers).Analyze(context.Background(), sources)
		if len(b.Records)+len(b.Failures) != len(sources) {
			t.Fatalf("workers=%d: %d records, %d failures", workers, len(b.Records), len(b.Failures))
		}
		prev := -1
		for _, r := range b.Records {
			var i int
			fmt.Sscan(r.Source, &i)
			if i <= prev {
				t.Fatalf("workers=%d: %d after %d", workers, i, prev)
			}
			if len(r.Mature) != 1+i {
				t.Fatalf("workers=%d: record %d mature length %d", workers, i, len(r.Mature))
			}
			prev = i
		}
		for _, f := range b.Failures {
			if f.Index%5 != 0 || f.Kind != plasmid.KindStartCodonNotFound {
				t.Fatalf("workers=%d: unexpected failure %+v", workers, f)
			}
		}
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	b := analyzer(t, 4).Analyze(context.Background(), nil)
	if len(b.Records) != 0 || len(b.Failures) != 0 {
		t.Fatalf("batch = %+v", b)
	}
}

func TestAnalyzeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sources := []plasmid.Source{{ID: "a", Seq: aox1Plasmid("ATGTAA")}, {ID: "b", Seq: aox1Plasmid("ATGTAA")}}
	b := analyzer(t, 1).Analyze(ctx, sources)
	if len(b.Records) != 0 || len(b.Failures) != 2 {
		t.Fatalf("records %d failures %d", len(b.Records), len(b.Failures))
	}
	for _, f := range b.Failures {
		if f.Kind != plasmid.KindCanceled {
			t.Fatalf("failure %+v", f)
		}
	}
}

func TestNewAnalyzerRejectsBrokenRegistry(t *testing.T) {
	if _, err := NewAnalyzer(&motif.Registry{}, 1); !errors.Is(err, motif.ErrInvalidMotif) {
		t.Fatalf("err = %v", err)
	}
}

type fakeSearcher map[string][]plasmid.Homolog

func (f fakeSearcher) Search(_ context.Context, query string) ([]plasmid.Homolog, error) {
	hits, ok := f[query]
	if !ok {
		return nil, errors.New("no such query")
	}
	return hits, nil
}

func TestAnnotate(t *testing.T) {
	b := &Batch{Records: []*plasmid.Record{
		{Source: "a", Mature: "MK"},
		{Source: "b", Mature: ""},
		{Source: "c", Mature: "MH"},
	}}
	s := fakeSearcher{"MK": {{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	if err := Annotate(context.Background(), s, b, 2, quiet); err != nil {
		t.Fatal(err)
	}
	if len(b.Records[0].Homologs) != 2 || b.Records[0].Homologs[0].ID != "1" {
		t.Fatalf("a: %+v", b.Records[0].Homologs)
	}
	if b.Records[1].Homologs != nil || b.Records[1].HomologsError != "" {
		t.Fatal("empty chain was searched")
	}
	if b.Records[2].HomologsError == "" {
		t.Fatal("search error not recorded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Annotate(ctx, s, b, 0, quiet); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled err = %v", err)
	}
}

func sources2ids(rs []*plasmid.Record) []string {
	var ids []string
	for _, r := range rs {
		ids = append(ids, r.Source)
	}
	return ids
}
