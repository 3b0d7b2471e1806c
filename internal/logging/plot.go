package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotHistory draws best and mean fitness per generation to a PNG at path.
func PlotHistory(best, mean []float64, title, path string) error {
	if len(best) == 0 {
		return fmt.Errorf("plot %s: empty fitness history", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	bestPts := make(plotter.XYs, len(best))
	for i, v := range best {
		bestPts[i].X = float64(i + 1)
		bestPts[i].Y = v
	}
	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return err
	}
	p.Add(bestLine)
	p.Legend.Add("best", bestLine)

	if len(mean) == len(best) {
		meanPts := make(plotter.XYs, len(mean))
		for i, v := range mean {
			meanPts[i].X = float64(i + 1)
			meanPts[i].Y = v
		}
		meanLine, err := plotter.NewLine(meanPts)
		if err != nil {
			return err
		}
		meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(meanLine)
		p.Legend.Add("mean", meanLine)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
