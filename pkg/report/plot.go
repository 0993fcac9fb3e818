package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/liserjrqlxue/pichia/pkg/plasmid"
	"github.com/liserjrqlxue/pichia/pkg/protein"
)

// CurvePoints sampled per titration plot.
const CurvePoints = 141

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PlotTitration draws net charge against pH for r's mature chain and saves it
// to path; the extension picks the image format (png, svg, pdf).
func PlotTitration(r *plasmid.Record, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (pI %.2f)", r.Source, r.PI)
	p.X.Label.Text = "pH"
	p.Y.Label.Text = "net charge"
	p.X.Min, p.X.Max = protein.PHMin, protein.PHMax

	curve := protein.TitrationCurve(r.Mature, CurvePoints)
	xys := make(plotter.XYs, len(curve))
	for i, pt := range curve {
		xys[i].X, xys[i].Y = pt.PH, pt.Charge
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	pi, err := plotter.NewScatter(plotter.XYs{{X: r.PI, Y: 0}})
	if err != nil {
		return err
	}

	p.Add(plotter.NewGrid(), zero, line, pi)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// PlotAll writes one titration plot per record into dir and returns the
// written paths in record order.
func PlotAll(records []*plasmid.Record, dir, ext string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for _, r := range records {
		path := filepath.Join(dir, PlotName(r.Source)+".titration."+ext)
		if err := PlotTitration(r, path); err != nil {
			return paths, fmt.Errorf("%s: %w", r.Source, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// PlotName turns a source id into a file name.
func PlotName(source string) string {
	return unsafeName.ReplaceAllString(source, "_")
}
