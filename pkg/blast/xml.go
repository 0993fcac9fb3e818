package blast

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/liserjrqlxue/pichia/pkg/plasmid"
)

// BlastOutput is the subset of NCBI BLAST XML needed for hit tables.
type BlastOutput struct {
	XMLName    xml.Name    `xml:"BlastOutput"`
	Program    string      `xml:"BlastOutput_program"`
	Database   string      `xml:"BlastOutput_db"`
	Iterations []Iteration `xml:"BlastOutput_iterations>Iteration"`
}

type Iteration struct {
	Hits    []Hit  `xml:"Iteration_hits>Hit"`
	Message string `xml:"Iteration_message"`
}

type Hit struct {
	Num       int    `xml:"Hit_num"`
	ID        string `xml:"Hit_id"`
	Def       string `xml:"Hit_def"`
	Accession string `xml:"Hit_accession"`
	Len       int    `xml:"Hit_len"`
	Hsps      []Hsp  `xml:"Hit_hsps>Hsp"`
}

type Hsp struct {
	BitScore float64 `xml:"Hsp_bit-score"`
	EValue   float64 `xml:"Hsp_evalue"`
	Identity int     `xml:"Hsp_identity"`
	AlignLen int     `xml:"Hsp_align-len"`
}

// ParseXML decodes BLAST XML into homologs in report order. The e-value is
// the best over the hit's HSPs; the organism is the last [bracketed] part of
// the definition line.
func ParseXML(r io.Reader) ([]plasmid.Homolog, error) {
	var out BlastOutput
	if err := xml.NewDecoder(r).Decode(&out); err != nil {
		return nil, err
	}
	var homologs []plasmid.Homolog
	for _, it := range out.Iterations {
		for _, h := range it.Hits {
			desc, organism := splitOrganism(h.Def)
			hom := plasmid.Homolog{
				ID:          h.ID,
				Accession:   h.Accession,
				Description: desc,
				Organism:    organism,
			}
			for i, hsp := range h.Hsps {
				if i == 0 || hsp.EValue < hom.EValue {
					hom.EValue = hsp.EValue
				}
			}
			homologs = append(homologs, hom)
		}
	}
	return homologs, nil
}

// "Insulin [Homo sapiens]" -> "Insulin", "Homo sapiens"
func splitOrganism(def string) (desc, organism string) {
	// multi-entry definitions are joined by ">"
	if i := strings.Index(def, ">"); i >= 0 {
		def = def[:i]
	}
	def = strings.TrimSpace(def)
	if !strings.HasSuffix(def, "]") {
		return def, ""
	}
	i := strings.LastIndex(def, "[")
	if i < 0 {
		return def, ""
	}
	return strings.TrimSpace(def[:i]), def[i+1 : len(def)-1]
}
