package protein

import "math"

// bisection bounds
const (
	PHMin     = 0.0
	PHMax     = 14.0
	Tolerance = 1e-4
	MaxIter   = 200
)

type group struct {
	name     string
	residue  byte // 0 for a terminus
	pKa      float64
	positive bool
}

// Biopython IsoelectricPoint reference pKa values, without the
// terminal-residue corrections so the result depends on composition only.
var groups = [...]group{
	{"N-term", 0, 7.5, true},
	{"K", 'K', 10.0, true},
	{"R", 'R', 12.0, true},
	{"H", 'H', 5.98, true},
	{"C-term", 0, 3.55, false},
	{"D", 'D', 4.05, false},
	{"E", 'E', 4.45, false},
	{"C", 'C', 9.0, false},
	{"Y", 'Y', 10.0, false},
}

// Charges counts the ionizable groups of one chain, termini included.
type Charges [len(groups)]int

// CountCharges counts D, E, C, Y, H, K, R plus one N- and one C-terminus.
func CountCharges(seq string) Charges {
	var c Charges
	index := make(map[byte]int, len(groups))
	for i, g := range groups {
		if g.residue == 0 {
			c[i] = 1
			continue
		}
		index[g.residue] = i
	}
	for i := 0; i < len(seq); i++ {
		if j, ok := index[seq[i]]; ok {
			c[j]++
		}
	}
	return c
}

// Count returns the number of groups of the named kind, e.g. "K" or "N-term".
func (c Charges) Count(name string) int {
	for i, g := range groups {
		if g.name == name {
			return c[i]
		}
	}
	return 0
}

// NetCharge at pH by Henderson-Hasselbalch; decreasing in pH.
func (c Charges) NetCharge(pH float64) float64 {
	var charge float64
	for i, g := range groups {
		if c[i] == 0 {
			continue
		}
		if g.positive {
			charge += float64(c[i]) / (1 + math.Pow(10, pH-g.pKa))
		} else {
			charge -= float64(c[i]) / (1 + math.Pow(10, g.pKa-pH))
		}
	}
	return charge
}

// IsoelectricPoint bisects [PHMin, PHMax] for the zero of NetCharge.
func (c Charges) IsoelectricPoint() float64 {
	lo, hi := PHMin, PHMax
	for i := 0; i < MaxIter && hi-lo > Tolerance; i++ {
		mid := (lo + hi) / 2
		if c.NetCharge(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// IsoelectricPoint of a sequence. Residues without an ionizable side chain
// do not contribute; an empty sequence is balanced by its termini alone.
func IsoelectricPoint(seq string) float64 {
	return CountCharges(seq).IsoelectricPoint()
}
