package plasmid

import (
	"fmt"

	"github.com/liserjrqlxue/pichia/pkg/motif"
	"github.com/liserjrqlxue/pichia/pkg/util"
)

// PromoterKind is AOX1 (methanol inducible, pPICZ) or GAP (constitutive, pGAPZ).
type PromoterKind string

const (
	AOX1 PromoterKind = motif.AOX1
	GAP  PromoterKind = motif.GAP
)

// Pathway is the secretion route implied by the signal peptide.
type Pathway string

const (
	Alpha       Pathway = motif.Alpha
	Ost1        Pathway = motif.Ost1
	Cytoplasmic Pathway = "Cytoplasmic"
)

// propeptide lengths removed from the translation, residues
var trimLength = map[Pathway]int{
	Alpha:       89,
	Ost1:        92,
	Cytoplasmic: 0,
}

// TrimLength is the number of leading residues removed for p.
func TrimLength(p Pathway) int {
	return trimLength[p]
}

// ClassifyPromoter returns the first registry promoter whose signature
// occurs in dna.
func ClassifyPromoter(reg *motif.Registry, dna string) (PromoterKind, error) {
	for _, p := range reg.Promoters {
		if p.Signature.Match(dna) {
			return PromoterKind(p.Name), nil
		}
	}
	return "", ErrPromoterNotFound
}

// ExtractCodingRegion returns the span between the promoter's coding anchors:
// first start anchor, then the first end anchor after it.
func ExtractCodingRegion(reg *motif.Registry, dna string, kind PromoterKind) (*util.Feature, error) {
	p, ok := reg.Promoter(string(kind))
	if !ok {
		return nil, fmt.Errorf("%w: no anchors for promoter %q", ErrCodingRegionNotFound, kind)
	}
	cds, ok := util.Between("cds", dna, p.CodingStart, p.CodingEnd)
	if !ok {
		return nil, fmt.Errorf("%w: %s anchors %s..%s", ErrCodingRegionNotFound, kind, p.CodingStart, p.CodingEnd)
	}
	return cds, nil
}

// ClassifySecretion matches the signal anchors against the plasmid DNA.
// No match is the cytoplasmic default, not an error.
func ClassifySecretion(reg *motif.Registry, dna string) Pathway {
	for _, s := range reg.Signals {
		if s.Motif.Match(dna) {
			return Pathway(s.Name)
		}
	}
	return Cytoplasmic
}

// TrimSignal removes the pathway propeptide. A translation shorter than the
// propeptide leaves an empty mature chain.
func TrimSignal(translated string, p Pathway) (mature, signal string) {
	n := util.Min(TrimLength(p), len(translated))
	return translated[n:], translated[:n]
}
