package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/liserjrqlxue/pichia/pkg/batch"
	"github.com/liserjrqlxue/pichia/pkg/plasmid"
	"github.com/liserjrqlxue/pichia/pkg/protein"
)

func record(t *testing.T, source, mature string) *plasmid.Record {
	t.Helper()
	props, err := protein.Analyze(mature)
	if err != nil {
		t.Fatal(err)
	}
	return &plasmid.Record{
		Source:       source,
		Header:       source + " test construct",
		Strand:       "+",
		Length:       1000,
		Promoter:     plasmid.AOX1,
		CodingLength: 3*len(mature) + 3,
		Pathway:      plasmid.Cytoplasmic,
		Translated:   mature,
		Mature:       mature,
		Properties:   props,
	}
}

func testBatch(t *testing.T) *batch.Batch {
	long := strings.Repeat("MKAL", 30) + "HHHHHH"
	b := &batch.Batch{Records: []*plasmid.Record{record(t, "a.fa", "MK"), record(t, "b/c.fa", long)}}
	b.Records[1].Homologs = []plasmid.Homolog{{Accession: "P00698", Description: "Lysozyme C", Organism: "Gallus gallus", EValue: 1e-50}}
	b.Failures = []batch.Failure{{Index: 2, Source: "d.fa", Kind: plasmid.KindPromoterNotFound, Reason: "d.fa: promoter: not found"}}
	return b
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testBatch(t), TSV); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != strings.Join(Header, "\t") {
		t.Fatalf("header = %q", lines[0])
	}
	for i, line := range lines {
		if n := len(strings.Split(line, "\t")); n != len(Header) {
			t.Fatalf("line %d has %d columns", i, n)
		}
	}
	row := strings.Split(lines[1], "\t")
	if row[0] != "a.fa" || row[3] != "AOX1" || row[5] != "Cytoplasmic" || row[6] != "2" || row[9] != "false" || row[13] != "MK" {
		t.Fatalf("row = %q", row)
	}
	row = strings.Split(lines[2], "\t")
	if row[9] != "true" || row[12] != "P00698 Lysozyme C [Gallus gallus]" {
		t.Fatalf("row = %q", row)
	}
}

func TestWriteFailures(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFailures(&buf, testBatch(t).Failures); err != nil {
		t.Fatal(err)
	}
	want := "index\tsource\tkind\treason\n2\td.fa\tPromoterNotFound\td.fa: promoter: not found\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testBatch(t), JSON); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Records  []map[string]any `json:"records"`
		Failures []struct {
			Source string `json:"source"`
			Kind   string `json:"kind"`
		} `json:"failures"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Records) != 2 || len(got.Failures) != 1 || got.Failures[0].Kind != plasmid.KindPromoterNotFound {
		t.Fatalf("got %+v", got)
	}
	first := got.Records[0]
	if first["mature"] != "MK" || first["promoter"] != "AOX1" || first["length"] != float64(2) || first["plasmid_length"] != float64(1000) {
		t.Fatalf("first = %v", first)
	}
	if _, ok := first["DNA"]; ok {
		t.Fatal("raw DNA leaked into JSON")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testBatch(t), Text); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		">a.fa test construct\nMK\n\nMass:",
		"Length: 2 amino acids\nNot tagged\npI: ",
		"His tag is present",
		"Promoter: AOX1\nPathway: Cytoplasmic\nStrand: +\n",
		"Hit 1: P00698 Lysozyme C [Gallus gallus]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > LineWidth && !strings.HasPrefix(line, ">") && !strings.HasPrefix(line, "Hit") {
			t.Errorf("line longer than %d: %q", LineWidth, line)
		}
	}
}

func TestWriteFASTA(t *testing.T) {
	b := testBatch(t)
	var buf bytes.Buffer
	if err := Write(&buf, b, FASTA); err != nil {
		t.Fatal(err)
	}
	var (
		headers []string
		seqs    []string
	)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.HasPrefix(line, ">") {
			headers = append(headers, line)
			seqs = append(seqs, "")
			continue
		}
		if len(line) > LineWidth {
			t.Errorf("line longer than %d: %q", LineWidth, line)
		}
		seqs[len(seqs)-1] += line
	}
	if len(headers) != 2 || !strings.HasPrefix(headers[0], ">a.fa a.fa test construct") {
		t.Fatalf("headers = %q", headers)
	}
	for i, r := range b.Records {
		if !strings.EqualFold(seqs[i], r.Mature) {
			t.Errorf("record %d = %q, want %q", i, seqs[i], r.Mature)
		}
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, testBatch(t), "xlsx"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v", err)
	}
}

func TestWrap(t *testing.T) {
	for _, tt := range []struct {
		s     string
		width int
		want  []string
	}{
		{"", 60, []string{""}},
		{"ABCDEF", 3, []string{"ABC", "DEF"}},
		{"ABCDEFG", 3, []string{"ABC", "DEF", "G"}},
		{"ABC", 0, []string{"ABC"}},
	} {
		got := Wrap(tt.s, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("Wrap(%q, %d) = %q", tt.s, tt.width, got)
		}
	}
}

func TestPlotAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	paths, err := PlotAll(testBatch(t).Records, dir, "svg")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || filepath.Base(paths[1]) != "b_c.fa.titration.svg" {
		t.Fatalf("paths = %v", paths)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Fatalf("%s: %v", p, err)
		}
	}
}
