package util

import (
	"errors"
	"fmt"
	"strings"
)

// 密码子表 (标准遗传密码)
var CodonTable = map[string]string{
	"TTT": "F", "TTC": "F", "TTA": "L", "TTG": "L",
	"CTT": "L", "CTC": "L", "CTA": "L", "CTG": "L",
	"ATT": "I", "ATC": "I", "ATA": "I", "ATG": "M",
	"GTT": "V", "GTC": "V", "GTA": "V", "GTG": "V",
	"TCT": "S", "TCC": "S", "TCA": "S", "TCG": "S",
	"CCT": "P", "CCC": "P", "CCA": "P", "CCG": "P",
	"ACT": "T", "ACC": "T", "ACA": "T", "ACG": "T",
	"GCT": "A", "GCC": "A", "GCA": "A", "GCG": "A",
	"TAT": "Y", "TAC": "Y", "TAA": "*", "TAG": "*",
	"CAT": "H", "CAC": "H", "CAA": "Q", "CAG": "Q",
	"AAT": "N", "AAC": "N", "AAA": "K", "AAG": "K",
	"GAT": "D", "GAC": "D", "GAA": "E", "GAG": "E",
	"TGT": "C", "TGC": "C", "TGA": "*", "TGG": "W",
	"CGT": "R", "CGC": "R", "CGA": "R", "CGG": "R",
	"AGT": "S", "AGC": "S", "AGA": "R", "AGG": "R",
	"GGT": "G", "GGC": "G", "GGA": "G", "GGG": "G",
}

var (
	ErrStartCodonNotFound = errors.New("start codon not found")
	ErrUnknownCodon       = errors.New("unknown codon")
)

// ResyncFrame drops everything before the first start codon.
func ResyncFrame(dna string) (string, error) {
	dna = strings.ToUpper(dna)
	i := strings.Index(dna, StartCodon)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrStartCodonNotFound, StartCodon)
	}
	return dna[i:], nil
}

// DnaToProtein translates whole codons until the first stop codon; the stop
// symbol is not part of the result. A trailing partial codon is ignored and
// running out of codons without a stop returns everything translated so far.
func DnaToProtein(dna string) (string, error) {
	dna = strings.ToUpper(dna)

	var protein strings.Builder
	protein.Grow(len(dna) / 3)

	for i := 0; i+3 <= len(dna); i += 3 {
		codon := dna[i : i+3]
		aa, ok := CodonTable[codon]
		if !ok {
			return "", fmt.Errorf("%w: %q at %d", ErrUnknownCodon, codon, i)
		}
		if aa == StopSymbol {
			break
		}
		protein.WriteString(aa)
	}

	return protein.String(), nil
}

// Translate resynchronizes the reading frame and translates the coding DNA.
// The returned frame is the frame-corrected DNA that was read.
func Translate(coding string) (protein, frame string, err error) {
	frame, err = ResyncFrame(coding)
	if err != nil {
		return
	}
	protein, err = DnaToProtein(frame)
	return
}
