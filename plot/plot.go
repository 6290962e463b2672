// Package plot renders result series as error-bar plots with gonum/plot.
package plot

import (
	"github.com/pkg/errors"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rony4d/go-mpss-bench/result"
)

// Default width and height of a plot.
const (
	DefaultSizeInches = 4
	DefaultSize       = DefaultSizeInches * vg.Inch
)

// ErrorBarRenderer draws a series as a line through its points with
// symmetric y error bars. The image format follows the file extension.
type ErrorBarRenderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewErrorBarRenderer returns a square renderer of the given size in inches.
// A non-positive size selects DefaultSize.
func NewErrorBarRenderer(inches float64) *ErrorBarRenderer {
	size := vg.Length(inches) * vg.Inch
	if inches <= 0 {
		size = DefaultSize
	}
	return &ErrorBarRenderer{Width: size, Height: size}
}

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Render implements result.Renderer.
func (r *ErrorBarRenderer) Render(s result.Series, xLabel, yLabel, path string) error {
	if len(s.Points) == 0 {
		return errors.Errorf("series %s has no points", s.Name())
	}

	data := errorPoints{
		XYs:     make(plotter.XYs, len(s.Points)),
		YErrors: make(plotter.YErrors, len(s.Points)),
	}
	for i, pt := range s.Points {
		data.XYs[i].X = float64(pt.X)
		data.XYs[i].Y = pt.Y
		data.YErrors[i].Low = pt.YErr
		data.YErrors[i].High = pt.YErr
	}

	p := gonumplot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(data.XYs)
	if err != nil {
		return errors.Wrap(err, "line")
	}
	bars, err := plotter.NewYErrorBars(data)
	if err != nil {
		return errors.Wrap(err, "error bars")
	}
	p.Add(line, points, bars)

	w, h := r.Width, r.Height
	if w <= 0 {
		w = DefaultSize
	}
	if h <= 0 {
		h = DefaultSize
	}
	return errors.Wrapf(p.Save(w, h, path), "save %s", path)
}
