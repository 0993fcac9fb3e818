// Package protein computes properties of a mature protein chain:
// monoisotopic mass, isoelectric point, His-tag presence and a titration
// curve.
package protein

import (
	"fmt"
	"strings"
)

// HisTag is the affinity tag searched anywhere in the chain.
const HisTag = "HHHHHH"

type Properties struct {
	Length  int     `json:"length"`
	Mass    float64 `json:"mass_da"`
	MassKDa float64 `json:"mass_kda"`
	PI      float64 `json:"pi"`
	HasTag  bool    `json:"his_tag"`
}

// HasHisTag reports six consecutive histidines anywhere in seq.
func HasHisTag(seq string) bool {
	return strings.Contains(seq, HisTag)
}

// Analyze computes all properties of a mature sequence.
func Analyze(seq string) (Properties, error) {
	mass, err := Mass(seq)
	if err != nil {
		return Properties{}, err
	}
	return Properties{
		Length:  len(seq),
		Mass:    mass,
		MassKDa: mass / 1000,
		PI:      IsoelectricPoint(seq),
		HasTag:  HasHisTag(seq),
	}, nil
}

func (p Properties) String() string {
	tag := "Not tagged"
	if p.HasTag {
		tag = "His tag is present"
	}
	return fmt.Sprintf("Mass: %5.2f kDa\nLength: %d amino acids\n%s\npI: %.2f", p.MassKDa, p.Length, tag, p.PI)
}
