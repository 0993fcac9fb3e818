package report

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/liserjrqlxue/pichia/pkg/plasmid"
)

// WriteFASTA writes the mature proteins as FASTA, LineWidth residues per line.
// Record ids are the source; descriptions carry the input header and
// pathway.
func WriteFASTA(w io.Writer, records []*plasmid.Record) error {
	fw := fasta.NewWriter(w, LineWidth)
	for _, r := range records {
		s := linear.NewSeq(r.Source, alphabet.BytesToLetters([]byte(r.Mature)), alphabet.Protein)
		s.Desc = fmt.Sprintf("%s promoter=%s pathway=%s", r.Header, r.Promoter, r.Pathway)
		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("%s: %w", r.Source, err)
		}
	}
	return nil
}
