// Package batch runs the plasmid pipeline over many sources.
//
// Records are independent, so Analyze fans them out over a worker pool; the
// resulting Batch keeps input order no matter which worker finishes first.
// A failing source is recorded and skipped, never aborting the batch.
package batch

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/liserjrqlxue/pichia/pkg/motif"
	"github.com/liserjrqlxue/pichia/pkg/plasmid"
)

// Failure is one source that did not yield a record.
type Failure struct {
	Index  int    `json:"index"`
	Source string `json:"source"`
	Kind   string `json:"kind"`
	Err    error  `json:"-"`
	Reason string `json:"reason"`
}

// Batch is the result of one run, in input order.
type Batch struct {
	RunID    uuid.UUID         `json:"run_id"`
	Started  time.Time         `json:"started"`
	Elapsed  time.Duration     `json:"elapsed"`
	Records  []*plasmid.Record `json:"records"`
	Failures []Failure         `json:"failures"`
}

type Analyzer struct {
	Registry *motif.Registry
	// Workers is the pool size, runtime.NumCPU() when < 1
	Workers int
	Options []plasmid.Option
	Logger  *slog.Logger
}

// NewAnalyzer validates reg up front so a broken registry fails at startup
// rather than once per record.
func NewAnalyzer(reg *motif.Registry, workers int, opts ...plasmid.Option) (*Analyzer, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{Registry: reg, Workers: workers, Options: opts}, nil
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

type result struct {
	rec *plasmid.Record
	err error
}

// Analyze builds one record per source. Cancelling ctx stops dispatch;
// sources not yet started are reported as failures with the context error.
func (a *Analyzer) Analyze(ctx context.Context, sources []plasmid.Source) *Batch {
	b := &Batch{RunID: uuid.New(), Started: time.Now()}
	log := a.logger().With("run", b.RunID.String())

	workers := a.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	results := make([]result, len(sources))
	jobs := make(chan int, workers*2)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec, err := plasmid.New(a.Registry, sources[i], a.Options...)
				results[i] = result{rec: rec, err: err}
			}
		}()
	}

	dispatched := 0
feed:
	for i := range sources {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
			dispatched++
		}
	}
	close(jobs)
	wg.Wait()

	for i := dispatched; i < len(sources); i++ {
		results[i].err = &plasmid.Error{Source: sources[i].ID, Stage: "dispatch", Err: ctx.Err()}
	}

	for i, r := range results {
		if r.err != nil {
			f := Failure{Index: i, Source: sources[i].ID, Kind: plasmid.Kind(r.err), Err: r.err, Reason: r.err.Error()}
			log.Warn("skip plasmid", "source", f.Source, "kind", f.Kind, "err", r.err)
			b.Failures = append(b.Failures, f)
			continue
		}
		log.Debug("plasmid",
			"source", r.rec.Source,
			"promoter", r.rec.Promoter,
			"pathway", r.rec.Pathway,
			"length", r.rec.Properties.Length,
			"pI", r.rec.PI,
		)
		b.Records = append(b.Records, r.rec)
	}
	b.Elapsed = time.Since(b.Started)
	log.Info("Done", "records", len(b.Records), "failures", len(b.Failures), "elapsed", b.Elapsed)
	return b
}
