package metrics

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kiteco/deepset/kite-golib/errors"
)

// LossSummary describes the distribution of per-batch losses
type LossSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}

// Summarize the losses, all zero if there are none
func Summarize(losses []float64) LossSummary {
	if len(losses) == 0 {
		return LossSummary{}
	}
	data := stats.Float64Data(losses)
	return LossSummary{
		Count:  len(losses),
		Mean:   orZero(stats.Mean(data)),
		StdDev: orZero(stats.StandardDeviation(data)),
		Median: orZero(stats.Median(data)),
		P90:    orZero(stats.PercentileNearestRank(data, 90)),
	}
}

func orZero(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	return v
}

// PlotLosses writes a PNG (or any format supported by plot.Save, following the extension)
// of the loss of every step
func PlotLosses(path, title string, losses []float64) error {
	if len(losses) == 0 {
		return errors.Errorf("no losses to plot")
	}
	p, err := plot.New()
	if err != nil {
		return errors.Wrapf(err, "error creating plot")
	}
	p.Title.Text = title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "loss"

	pts := make(plotter.XYs, len(losses))
	for i, l := range losses {
		pts[i].X = float64(i)
		pts[i].Y = l
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrapf(err, "error creating line")
	}
	p.Add(line, plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "error saving plot to %s", path)
	}
	return nil
}
