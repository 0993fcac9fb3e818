// Package plasmid turns one pPICZ/pGAPZ expression plasmid into the
// recombinant protein it expresses.
//
// New runs the whole pipeline in one pass: promoter, coding region, frame
// and translation, secretion pathway and trimming, protein properties. It
// either returns a complete Record or a *Error naming the failed stage.
package plasmid

import (
	"github.com/bebop/poly/seqhash"

	"github.com/liserjrqlxue/pichia/pkg/motif"
	"github.com/liserjrqlxue/pichia/pkg/protein"
	"github.com/liserjrqlxue/pichia/pkg/util"
)

// Source is one input: identifier (file name), FASTA header without '>'
// and the raw sequence with line breaks removed.
type Source struct {
	ID     string
	Header string
	Seq    string
}

// Homolog is one remote homology search hit attached after analysis.
type Homolog struct {
	ID          string  `json:"id"`
	Accession   string  `json:"accession"`
	Description string  `json:"description"`
	Organism    string  `json:"organism"`
	EValue      float64 `json:"evalue"`
}

// Record is the derived state of one plasmid.
type Record struct {
	Source  string `json:"source"`
	Header  string `json:"header"`
	Strand  string `json:"strand"`
	Length  int    `json:"plasmid_length"`
	SeqHash string `json:"seqhash,omitempty"`
	DNA     string `json:"-"`

	Promoter     PromoterKind  `json:"promoter"`
	Coding       *util.Feature `json:"-"`
	CodingLength int           `json:"coding_length"`
	// coding DNA from the first start codon
	Frame    string  `json:"-"`
	CodingGC float64 `json:"coding_gc"`

	Pathway    Pathway `json:"pathway"`
	Translated string  `json:"translated"`
	Signal     string  `json:"signal,omitempty"`
	Mature     string  `json:"mature"`

	protein.Properties

	Homologs      []Homolog `json:"homologs,omitempty"`
	HomologsError string    `json:"homologs_error,omitempty"`
}

type options struct {
	bothStrands bool
}

type Option func(*options)

// WithBothStrands retries promoter classification on the reverse complement.
func WithBothStrands(on bool) Option {
	return func(o *options) { o.bothStrands = on }
}

// New builds a Record from src.
func New(reg *motif.Registry, src Source, opts ...Option) (*Record, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	fail := func(stage string, err error) (*Record, error) {
		return nil, &Error{Source: src.ID, Stage: stage, Err: err}
	}

	r := &Record{
		Source: src.ID,
		Header: src.Header,
		Strand: "+",
		DNA:    util.NormalizeSequence(src.Seq),
	}

	var err error
	r.Promoter, err = ClassifyPromoter(reg, r.DNA)
	if err != nil && o.bothStrands {
		rc := util.ReverseComplement(r.DNA)
		if kind, rcErr := ClassifyPromoter(reg, rc); rcErr == nil {
			r.DNA, r.Strand, r.Promoter, err = rc, "-", kind, nil
		}
	}
	if err != nil {
		return fail("promoter", err)
	}
	r.Length = len(r.DNA)

	r.Coding, err = ExtractCodingRegion(reg, r.DNA, r.Promoter)
	if err != nil {
		return fail("coding region", err)
	}

	r.CodingLength = r.Coding.Len()

	r.Translated, r.Frame, err = util.Translate(r.Coding.Seq)
	if err != nil {
		return fail("translation", err)
	}
	r.CodingGC = util.GCContent(r.Frame)

	r.Pathway = ClassifySecretion(reg, r.DNA)
	r.Mature, r.Signal = TrimSignal(r.Translated, r.Pathway)

	r.Properties, err = protein.Analyze(r.Mature)
	if err != nil {
		return fail("properties", err)
	}

	// fingerprint only; unhashable input leaves it empty
	if hash, err := seqhash.Hash(r.DNA, "DNA", true, true); err == nil {
		r.SeqHash = hash
	}
	return r, nil
}
