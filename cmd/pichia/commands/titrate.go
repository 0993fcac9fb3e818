package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/spf13/cobra"

	"github.com/liserjrqlxue/pichia/pkg/plasmid"
	"github.com/liserjrqlxue/pichia/pkg/protein"
	"github.com/liserjrqlxue/pichia/pkg/report"
)

func titrateCmd() *cobra.Command {
	var (
		points int
		plot   string
	)
	cmd := &cobra.Command{
		Use:   "titrate [flags] <protein>",
		Short: "Print mass, pI and the titration curve of a protein sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := strings.ToUpper(strings.Join(strings.Fields(args[0]), ""))
			props, err := protein.Analyze(seq)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			fmtUtil.Fprintln(w, props.String())
			fmtUtil.Fprintln(w, "pH\tcharge")
			for _, p := range protein.TitrationCurve(seq, points) {
				fmtUtil.Fprintf(w, "%.2f\t%.4f\n", p.PH, p.Charge)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if plot == "" {
				return nil
			}
			rec := &plasmid.Record{Source: "protein", Mature: seq, Properties: props}
			if err := report.PlotTitration(rec, plot); err != nil {
				return fmt.Errorf("plot: %w", err)
			}
			logger.Info("titration plot", "path", plot)
			return nil
		},
	}
	cmd.Flags().IntVarP(&points, "points", "n", 15, "pH values sampled over 0..14")
	cmd.Flags().StringVar(&plot, "plot", "", "save the curve as an image (png, svg or pdf)")
	return cmd
}
