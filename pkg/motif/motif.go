// Package motif holds the anchor patterns that identify Pichia expression
// constructs: promoter signatures, coding-region boundaries and secretion
// signal boundaries.
//
// A Motif is an exact prefix, a fixed-length gap of any bases, and an exact
// suffix. Gap lengths are exact: spacing is fixed by the construct.
package motif

import (
	"errors"
	"fmt"
	"regexp"
)

// RE2 refuses counted repetitions above 1000.
const maxGap = 1000

var ErrInvalidMotif = errors.New("invalid motif")

type Motif struct {
	Name   string
	Prefix string
	Gap    int
	Suffix string

	re *regexp.Regexp
}

// New builds and compiles a motif.
func New(name, prefix string, gap int, suffix string) (*Motif, error) {
	m := &Motif{Name: name, Prefix: prefix, Gap: gap, Suffix: suffix}
	if err := m.compile(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Motif) compile() error {
	switch {
	case m.Prefix == "" || m.Suffix == "":
		return fmt.Errorf("%w %s: empty prefix or suffix", ErrInvalidMotif, m.Name)
	case m.Gap < 0 || m.Gap > maxGap:
		return fmt.Errorf("%w %s: gap %d outside [0,%d]", ErrInvalidMotif, m.Name, m.Gap, maxGap)
	}
	re, err := regexp.Compile(m.Pattern())
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidMotif, m.Name, err)
	}
	m.re = re
	return nil
}

// Pattern is the regular expression form, e.g. AGATCT.{916}TTATTC.
func (m *Motif) Pattern() string {
	return regexp.QuoteMeta(m.Prefix) + fmt.Sprintf(".{%d}", m.Gap) + regexp.QuoteMeta(m.Suffix)
}

// Len is the total matched length.
func (m *Motif) Len() int {
	return len(m.Prefix) + m.Gap + len(m.Suffix)
}

// Find returns the leftmost match as [start, end), or ok=false.
func (m *Motif) Find(seq string) (start, end int, ok bool) {
	loc := m.re.FindStringIndex(seq)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

func (m *Motif) Match(seq string) bool {
	return m.re.MatchString(seq)
}

func (m *Motif) String() string {
	return fmt.Sprintf("%s(%s-%d-%s)", m.Name, m.Prefix, m.Gap, m.Suffix)
}
