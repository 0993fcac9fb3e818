package protein

import (
	"errors"
	"fmt"
)

// Water is added once per chain for the terminal H and OH.
const Water = 18.000

var ErrUnknownResidue = errors.New("unknown residue")

// monoisotopic residue masses, Da
var residueMass = map[byte]float64{
	'A': 71.03711,
	'R': 156.10111,
	'N': 114.04293,
	'D': 115.02694,
	'C': 103.00919,
	'Q': 128.05858,
	'E': 129.04259,
	'G': 57.02146,
	'H': 137.05891,
	'I': 113.08406,
	'L': 113.08406,
	'K': 128.09496,
	'M': 131.04049,
	'F': 147.06841,
	'P': 97.05276,
	'S': 87.03203,
	'T': 101.04768,
	'W': 186.07931,
	'Y': 163.06333,
	'V': 99.06841,
}

// ResidueMass returns the monoisotopic mass of one residue.
func ResidueMass(aa byte) (float64, bool) {
	m, ok := residueMass[aa]
	return m, ok
}

// Mass returns the monoisotopic mass in daltons. An empty sequence weighs
// one water.
func Mass(seq string) (float64, error) {
	mass := Water
	for i := 0; i < len(seq); i++ {
		m, ok := residueMass[seq[i]]
		if !ok {
			return 0, fmt.Errorf("%w: %q at %d", ErrUnknownResidue, seq[i], i+1)
		}
		mass += m
	}
	return mass, nil
}
