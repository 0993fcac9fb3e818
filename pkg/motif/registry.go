package motif

import "fmt"

// Promoter anchors for one expression construct family.
type Promoter struct {
	Name        string
	Signature   *Motif
	CodingStart string
	CodingEnd   string
}

// Signal is a secretion signal/pro-sequence from its start codon through the
// shared Glu-Ala-Glu-Ala end anchor.
type Signal struct {
	Name  string
	Motif *Motif
}

// Registry is read-only after construction. Promoters and Signals are tried
// in order; the first match wins.
type Registry struct {
	Promoters []Promoter
	Signals   []Signal
}

// names used in records and reports
const (
	AOX1 = "AOX1"
	GAP  = "GAP"

	Alpha = "Alpha"
	Ost1  = "Ost1"

	SignalEnd = "GAGGCTGAAGCT"
)

type motifDef struct {
	name, prefix string
	gap          int
	suffix       string
}

var (
	promoterDefs = []struct {
		motifDef
		start, end string
	}{
		{motifDef{AOX1, "AGATCTAACATC", 916, "TTATTCGAAACG"}, "TTATTCGAAACG", "GTTTGTAGCCTT"},
		{motifDef{GAP, "AGATCTTTTTTG", 459, "TTGAACAACTAT"}, "TATTTCGAAACG", "GTTTTAGCCTTA"},
	}
	// 89 and 92 codons from ATG through EAEA
	signalDefs = []motifDef{
		{Alpha, "ATGAGATTTCCT", 243, SignalEnd},
		{Ost1, "ATGAGGCAGGTT", 252, SignalEnd},
	}
)

// NewDefault returns the registry for pPICZ/pGAPZ constructs.
func NewDefault() (*Registry, error) {
	r := new(Registry)
	for _, p := range promoterDefs {
		m, err := New(p.name, p.prefix, p.gap, p.suffix)
		if err != nil {
			return nil, err
		}
		r.Promoters = append(r.Promoters, Promoter{Name: p.name, Signature: m, CodingStart: p.start, CodingEnd: p.end})
	}
	for _, s := range signalDefs {
		m, err := New(s.name, s.prefix, s.gap, s.suffix)
		if err != nil {
			return nil, err
		}
		r.Signals = append(r.Signals, Signal{Name: s.name, Motif: m})
	}
	return r, r.Validate()
}

// Validate reports a registry that cannot classify anything. Callers should
// treat a failure as fatal at startup.
func (r *Registry) Validate() error {
	if r == nil || len(r.Promoters) == 0 {
		return fmt.Errorf("%w: registry has no promoters", ErrInvalidMotif)
	}
	seen := make(map[string]bool)
	for _, p := range r.Promoters {
		if p.Signature == nil || p.Signature.re == nil {
			return fmt.Errorf("%w: promoter %s has no compiled signature", ErrInvalidMotif, p.Name)
		}
		if p.CodingStart == "" || p.CodingEnd == "" {
			return fmt.Errorf("%w: promoter %s has empty coding anchors", ErrInvalidMotif, p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate name %s", ErrInvalidMotif, p.Name)
		}
		seen[p.Name] = true
	}
	for _, s := range r.Signals {
		if s.Motif == nil || s.Motif.re == nil {
			return fmt.Errorf("%w: signal %s has no compiled motif", ErrInvalidMotif, s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate name %s", ErrInvalidMotif, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Promoter returns the promoter entry by name.
func (r *Registry) Promoter(name string) (Promoter, bool) {
	for _, p := range r.Promoters {
		if p.Name == name {
			return p, true
		}
	}
	return Promoter{}, false
}
