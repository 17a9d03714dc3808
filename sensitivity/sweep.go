// Package sensitivity traces how a document's score responds to one feature
// while the other feature slots stay fixed.
package sensitivity

import (
	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
	"github.com/YuminosukeSato/tenantscore/scoring"
)

// Curve is a one-feature sweep. It implements plotter.XYer.
type Curve struct {
	Label   string
	Feature model.Feature
	Values  []float64
	Scores  []float64
}

// Len returns the number of sampled points.
func (c Curve) Len() int { return len(c.Values) }

// XY returns the i-th feature value and score.
func (c Curve) XY(i int) (float64, float64) { return c.Values[i], c.Scores[i] }

// Sweep scores base with the given feature replaced by steps evenly spaced
// values from from to to, both ends included. base is not modified.
func Sweep(scorer *scoring.Scorer, base []float64, feature model.Feature, from, to float64, steps int) (Curve, error) {
	if len(base) != model.NumFeatures {
		return Curve{}, errors.NewInvalidInputError("Sweep", model.NumFeatures, len(base))
	}
	if feature < 0 || int(feature) >= model.NumFeatures {
		return Curve{}, errors.NewValidationError("feature", "unknown feature slot", int(feature))
	}
	if steps < 2 {
		return Curve{}, errors.NewValidationError("steps", "must be at least 2", steps)
	}
	if !errors.IsFinite(from) || !errors.IsFinite(to) {
		return Curve{}, errors.NewValidationError("range", "bounds must be finite", [2]float64{from, to})
	}

	x := make([]float64, len(base))
	copy(x, base)

	c := Curve{
		Label:   string(scorer.Document().Kind()),
		Feature: feature,
		Values:  make([]float64, steps),
		Scores:  make([]float64, steps),
	}
	step := (to - from) / float64(steps-1)
	for i := 0; i < steps; i++ {
		v := from + float64(i)*step
		if i == steps-1 {
			v = to
		}
		x[feature] = v
		s, err := scorer.Score(x)
		if err != nil {
			return Curve{}, err
		}
		c.Values[i] = v
		c.Scores[i] = s
	}
	return c, nil
}
