package sensitivity

import (
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// Chart defaults.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
	DefaultSteps  = 101
)

// Plot draws the curves as lines on one chart. All curves should share a
// feature; the x axis is labelled after the first one.
func Plot(curves ...Curve) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "sensitivity.Plot")
	}

	p := plot.New()
	p.Title.Text = "Score sensitivity to " + curves[0].Feature.String()
	p.X.Label.Text = curves[0].Feature.String()
	p.Y.Label.Text = "score"
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		if c.Len() == 0 {
			return nil, errors.NewValueError("sensitivity.Plot", "curve "+c.Label+" has no points")
		}
		line, err := plotter.NewLine(c)
		if err != nil {
			return nil, errors.Wrapf(err, "curve %s", c.Label)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(c.Label, line)
	}
	p.Legend.Top = true
	return p, nil
}

// Render plots the curves and saves them to path. The image format follows
// the file extension (.png or .svg).
func Render(path string, width, height vg.Length, curves ...Curve) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".svg":
	default:
		return errors.NewValidationError("path", "unsupported image format", ext)
	}

	p, err := Plot(curves...)
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}
