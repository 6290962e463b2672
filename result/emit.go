package result

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Renderer draws a series as an error-bar plot into path.
type Renderer interface {
	Render(series Series, xLabel, yLabel, path string) error
}

// Emitter writes a table and a plot per series into OutDir. A nil Renderer
// writes tables only.
type Emitter struct {
	OutDir   string
	Renderer Renderer
	Log      logrus.FieldLogger
}

// TablePath is where the table of s is written.
func (em *Emitter) TablePath(s Series) string {
	return filepath.Join(em.OutDir, s.Name()+".dat")
}

// PlotPath is where the plot of s is written.
func (em *Emitter) PlotPath(s Series) string {
	return filepath.Join(em.OutDir, s.Name()+".png")
}

// Emit writes <name>.dat and <name>.png for s.
func (em *Emitter) Emit(s Series) error {
	if err := os.MkdirAll(em.OutDir, 0o755); err != nil {
		return errors.Wrapf(err, "create output dir %s", em.OutDir)
	}
	if err := WriteTable(em.TablePath(s), s); err != nil {
		return err
	}
	if em.Renderer != nil {
		if err := em.Renderer.Render(s, XLabel, s.Metric.YLabel(), em.PlotPath(s)); err != nil {
			return errors.Wrapf(err, "render %s", s.Name())
		}
	}
	if em.Log != nil {
		em.Log.WithFields(logrus.Fields{"series": s.Name(), "points": len(s.Points), "dir": em.OutDir}).Info("emitted series")
	}
	return nil
}

// EmitAll emits every metric of r.
func (em *Emitter) EmitAll(r *Result) error {
	for _, m := range Metrics() {
		if err := em.Emit(r.Series(m)); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable writes s as tab-separated x, y, y_err rows under a header line.
func WriteTable(path string, s Series) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'
	records := make([][]string, 0, len(s.Points)+1)
	records = append(records, []string{"x", "y", "y_err"})
	for _, p := range s.Points {
		records = append(records, []string{
			strconv.Itoa(p.X),
			formatFloat(p.Y),
			formatFloat(p.YErr),
		})
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
