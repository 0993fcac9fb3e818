package commands

import (
	"bufio"
	"errors"
	"io"
	"path/filepath"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/spf13/cobra"

	"github.com/liserjrqlxue/pichia/pkg/fasta"
	"github.com/liserjrqlxue/pichia/pkg/plasmid"
	"github.com/liserjrqlxue/pichia/pkg/report"
	"github.com/liserjrqlxue/pichia/pkg/util"
)

func translateCmd() *cobra.Command {
	var (
		plain  bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "translate [flags] <file>...",
		Short: "Resync to the first ATG and translate coding sequences",
		Long: "Translate each record from its first start codon up to the first stop.\n" +
			"Input is FASTA, or plain sequence text with --plain.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sources []plasmid.Source
			for _, path := range args {
				if plain {
					name := filepath.Base(path)
					sources = append(sources, plasmid.Source{ID: name, Header: name, Seq: util.LoadInputSeq(path)})
					continue
				}
				s, err := fasta.ReadFile(path)
				if err != nil {
					return err
				}
				sources = append(sources, s...)
			}

			w := cmd.OutOrStdout()
			if output != "-" {
				out := osUtil.Create(output)
				defer simpleUtil.DeferClose(out)
				w = out
			}
			n, err := translateAll(w, sources)
			if err != nil {
				return err
			}
			if n < len(sources) {
				return errors.New("some records could not be translated")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "inputs are plain sequence files without header")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}

// translateAll writes one protein FASTA record per translatable source and
// returns how many were written.
func translateAll(w io.Writer, sources []plasmid.Source) (int, error) {
	bw := bufio.NewWriter(w)
	n := 0
	for _, src := range sources {
		protein, frame, err := util.Translate(util.NormalizeSequence(src.Seq))
		if err != nil {
			logger.Warn("skip record", "source", src.ID, "kind", plasmid.Kind(err), "err", err)
			continue
		}
		fmtUtil.Fprintf(bw, ">%s frame_length=%d gc=%.2f\n", src.Header, len(frame), util.GCContent(frame))
		for _, line := range report.Wrap(protein, report.LineWidth) {
			fmtUtil.Fprintln(bw, line)
		}
		n++
	}
	return n, bw.Flush()
}
