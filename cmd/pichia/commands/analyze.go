package commands

import (
	"errors"
	"io"
	"time"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/spf13/cobra"

	"github.com/liserjrqlxue/pichia/pkg/batch"
	"github.com/liserjrqlxue/pichia/pkg/config"
	"github.com/liserjrqlxue/pichia/pkg/fasta"
	"github.com/liserjrqlxue/pichia/pkg/motif"
	"github.com/liserjrqlxue/pichia/pkg/plasmid"
	"github.com/liserjrqlxue/pichia/pkg/report"
)

func analyzeCmd() *cobra.Command {
	var list string
	cmd := &cobra.Command{
		Use:   "analyze [flags] <fasta|folder>...",
		Short: "Infer the expressed protein of each plasmid",
		Long: "Classify the promoter of every plasmid, extract and translate its coding\n" +
			"region, trim the secretion signal and report the mature protein.\n" +
			"Folders are scanned for .fa/.fasta files, optionally gzipped.",
		PreRunE: bind(map[string]string{
			"workers":        "workers",
			"format":         "format",
			"output":         "output",
			"both-strands":   "both-strands",
			"plot-dir":       "plot-dir",
			"plot-format":    "plot-format",
			"blast":          "blast.enabled",
			"blast-db":       "blast.database",
			"blast-max-hits": "blast.max-hits",
			"blast-cache":    "blast.cache-dir",
			"blast-email":    "blast.email",
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			t0 := time.Now()
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			paths := args
			if list != "" {
				paths = append(paths, fasta.ReadList(list)...)
			}
			if len(paths) == 0 {
				return errors.New("no input: give FASTA files, folders or --list")
			}

			files, err := fasta.Expand(paths)
			if err != nil {
				return err
			}
			sources, readErrs := fasta.ReadAll(files)
			for path, err := range readErrs {
				logger.Warn("skip file", "path", path, "err", err)
			}

			reg, err := motif.NewDefault()
			if err != nil {
				return err
			}
			analyzer, err := batch.NewAnalyzer(reg, cfg.Workers, plasmid.WithBothStrands(cfg.BothStrands))
			if err != nil {
				return err
			}
			analyzer.Logger = logger
			b := analyzer.Analyze(cmd.Context(), sources)

			if cfg.Blast.Enabled {
				client := cfg.Blast.Client()
				client.Logger = logger
				if err := batch.Annotate(cmd.Context(), client, b, cfg.Blast.MaxHits, logger); err != nil {
					return err
				}
			}

			if err := writeReport(cmd.OutOrStdout(), cfg, b); err != nil {
				return err
			}
			if cfg.PlotDir != "" {
				plots, err := report.PlotAll(b.Records, cfg.PlotDir, cfg.PlotFormat)
				if err != nil {
					return err
				}
				logger.Info("titration plots", "dir", cfg.PlotDir, "count", len(plots))
			}
			logger.Info("Done", "files", len(files), "records", len(b.Records), "failures", len(b.Failures), "elapsed", time.Since(t0))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&list, "list", "l", "", "file listing FASTA paths, one per line")
	f.IntP("workers", "t", 0, "worker goroutines (default NumCPU)")
	f.StringP("format", "f", report.TSV, "report format: tsv, json, text or fasta")
	f.StringP("output", "o", "-", "report file, - for stdout")
	f.Bool("both-strands", false, "also try the reverse complement when no promoter is found")
	f.String("plot-dir", "", "write a titration plot per record into this folder")
	f.String("plot-format", "png", "titration plot format: png, svg or pdf")
	f.Bool("blast", false, "search mature proteins against NCBI BLAST")
	f.String("blast-db", "", "BLAST database")
	f.Int("blast-max-hits", 0, "hits kept per record")
	f.String("blast-cache", "", "folder caching BLAST results")
	f.String("blast-email", "", "contact address sent to NCBI")
	return cmd
}

// writeReport writes the report to cfg.Output, or stdout for "-". Failures go
// to <output>.failures.tsv next to a file report.
func writeReport(stdout io.Writer, cfg config.Config, b *batch.Batch) error {
	if cfg.Output == "-" {
		return report.Write(stdout, b, cfg.Format)
	}
	out := osUtil.Create(cfg.Output)
	defer simpleUtil.DeferClose(out)
	if err := report.Write(out, b, cfg.Format); err != nil {
		return err
	}
	if len(b.Failures) == 0 || cfg.Format == report.JSON {
		return nil
	}
	failures := osUtil.Create(cfg.Output + ".failures.tsv")
	defer simpleUtil.DeferClose(failures)
	return report.WriteFailures(failures, b.Failures)
}
