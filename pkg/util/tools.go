package util

import (
	"strings"

	"github.com/bebop/poly/checks"
	"github.com/bebop/poly/transform"
	"github.com/liserjrqlxue/goUtil/textUtil"
)

// LoadInputSeq reads a plain sequence file, one or more lines, no header
func LoadInputSeq(path string) string {
	var sequence strings.Builder
	for _, line := range textUtil.File2Array(path) {
		sequence.WriteString(strings.TrimSpace(line))
	}
	return NormalizeSequence(sequence.String())
}

// NormalizeSequence removes embedded whitespace and upper-cases a DNA sequence.
func NormalizeSequence(seq string) string {
	if strings.ContainsAny(seq, blank) {
		seq = strings.Join(strings.Fields(seq), "")
	}
	return strings.ToUpper(seq)
}

// GCContent returns the GC fraction of seq, 0 for an empty sequence.
func GCContent(seq string) float64 {
	if seq == "" {
		return 0
	}
	return checks.GcContent(seq)
}

func ReverseComplement(seq string) string {
	return transform.ReverseComplement(seq)
}

func Min(x, y int) int {
	if y < x {
		return y
	}
	return x
}
