// Package report renders an analysis batch. The pipeline only exposes data;
// every format lives here.
package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/liserjrqlxue/goUtil/fmtUtil"

	"github.com/liserjrqlxue/pichia/pkg/batch"
	"github.com/liserjrqlxue/pichia/pkg/plasmid"
)

const (
	TSV   = "tsv"
	JSON  = "json"
	Text  = "text"
	FASTA = "fasta"
)

// Formats lists the names accepted by Write.
var Formats = []string{TSV, JSON, Text, FASTA}

var ErrUnknownFormat = errors.New("unknown report format")

// LineWidth of wrapped protein sequences.
const LineWidth = 60

// Write renders b to w in format.
func Write(w io.Writer, b *batch.Batch, format string) error {
	switch format {
	case TSV:
		return WriteTSV(w, b.Records)
	case JSON:
		return WriteJSON(w, b)
	case Text:
		return WriteText(w, b.Records)
	case FASTA:
		return WriteFASTA(w, b.Records)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Header of the TSV report.
var Header = []string{
	"source",
	"header",
	"strand",
	"promoter",
	"coding_length",
	"pathway",
	"length",
	"mass_kda",
	"pi",
	"his_tag",
	"coding_gc",
	"seqhash",
	"top_hit",
	"mature",
}

// WriteTSV writes one row per record.
func WriteTSV(w io.Writer, records []*plasmid.Record) error {
	bw := bufio.NewWriter(w)
	fmtUtil.Fprintln(bw, strings.Join(Header, "\t"))
	for _, r := range records {
		fmtUtil.Fprintf(
			bw,
			"%s\t%s\t%s\t%s\t%d\t%s\t%d\t%.2f\t%.2f\t%s\t%.2f\t%s\t%s\t%s\n",
			r.Source,
			r.Header,
			r.Strand,
			r.Promoter,
			r.CodingLength,
			r.Pathway,
			r.Properties.Length,
			r.MassKDa,
			r.PI,
			strconv.FormatBool(r.HasTag),
			r.CodingGC,
			r.SeqHash,
			topHit(r),
			r.Mature,
		)
	}
	return bw.Flush()
}

func topHit(r *plasmid.Record) string {
	if len(r.Homologs) == 0 {
		return ""
	}
	h := r.Homologs[0]
	if h.Organism == "" {
		return fmt.Sprintf("%s %s", h.Accession, h.Description)
	}
	return fmt.Sprintf("%s %s [%s]", h.Accession, h.Description, h.Organism)
}

// WriteFailures writes the sources that did not yield a record.
func WriteFailures(w io.Writer, failures []batch.Failure) error {
	bw := bufio.NewWriter(w)
	fmtUtil.Fprintln(bw, "index\tsource\tkind\treason")
	for _, f := range failures {
		fmtUtil.Fprintf(bw, "%d\t%s\t%s\t%s\n", f.Index, f.Source, f.Kind, f.Reason)
	}
	return bw.Flush()
}

// WriteJSON writes the whole batch, failures included.
func WriteJSON(w io.Writer, b *batch.Batch) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// WriteText writes the mature protein of each record followed by its
// properties.
func WriteText(w io.Writer, records []*plasmid.Record) error {
	bw := bufio.NewWriter(w)
	for i, r := range records {
		if i > 0 {
			fmtUtil.Fprintln(bw)
		}
		fmtUtil.Fprintf(bw, ">%s\n", r.Header)
		for _, line := range Wrap(r.Mature, LineWidth) {
			fmtUtil.Fprintln(bw, line)
		}
		fmtUtil.Fprintln(bw)
		fmtUtil.Fprintln(bw, r.Properties.String())
		fmtUtil.Fprintf(bw, "Promoter: %s\nPathway: %s\nStrand: %s\n", r.Promoter, r.Pathway, r.Strand)
		for j, h := range r.Homologs {
			fmtUtil.Fprintf(bw, "Hit %d: %s %s [%s] %.3g\n", j+1, h.Accession, h.Description, h.Organism, h.EValue)
		}
		if r.HomologsError != "" {
			fmtUtil.Fprintf(bw, "Hits: %s\n", r.HomologsError)
		}
	}
	return bw.Flush()
}

// Wrap splits s into lines of at most width characters.
func Wrap(s string, width int) []string {
	if width < 1 || len(s) <= width {
		return []string{s}
	}
	lines := make([]string, 0, (len(s)+width-1)/width)
	for len(s) > width {
		lines = append(lines, s[:width])
		s = s[width:]
	}
	return append(lines, s)
}
