package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/core/tree"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
	"github.com/YuminosukeSato/tenantscore/scoring"
)

func gbmScorer(t *testing.T) *scoring.Scorer {
	t.Helper()
	doc := model.NewGBM(600, 0.1, []tree.Node{
		tree.NewSplit(int(model.Delay), 20.5, tree.NewLeaf(25), tree.NewLeaf(-80)),
	})
	s, err := scoring.NewScorer(doc)
	require.NoError(t, err)
	return s
}

func TestParity(t *testing.T) {
	X := mat.NewDense(3, model.NumFeatures, []float64{
		3, 5, 0.5, 1,
		10, 25, 0.2, 0,
		0, 20.5, 0.9, 1,
	})

	t.Run("matching reference", func(t *testing.T) {
		want := mat.NewVecDense(3, []float64{602.5, 592, 602.5})
		report, err := Parity(gbmScorer(t), X, want, DefaultTolerance)
		require.NoError(t, err)

		assert.Equal(t, 3, report.Samples)
		assert.InDelta(t, 0, report.MaxAbsError, 1e-9)
		assert.True(t, report.Within)
	})

	t.Run("drifted reference", func(t *testing.T) {
		want := mat.NewVecDense(3, []float64{602.5, 590, 602.5})
		report, err := Parity(gbmScorer(t), X, want, 0.5)
		require.NoError(t, err)

		assert.InDelta(t, 2, report.MaxAbsError, 1e-9)
		assert.Equal(t, 1, report.WorstRow)
		assert.InDelta(t, 4.0/3.0, report.MSE, 1e-9)
		assert.InDelta(t, 2.0/3.0, report.MAE, 1e-9)
		assert.False(t, report.Within)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := Parity(gbmScorer(t), X, mat.NewVecDense(2, nil), DefaultTolerance)
		assert.Error(t, err)
	})

	t.Run("nil arguments", func(t *testing.T) {
		var valueErr *errors.ValueError

		_, err := Parity(nil, X, mat.NewVecDense(3, nil), DefaultTolerance)
		assert.True(t, errors.As(err, &valueErr))

		_, err = Parity(gbmScorer(t), nil, mat.NewVecDense(3, nil), DefaultTolerance)
		assert.True(t, errors.As(err, &valueErr))

		_, err = Parity(gbmScorer(t), X, nil, DefaultTolerance)
		assert.True(t, errors.As(err, &valueErr))
	})

	t.Run("negative tolerance", func(t *testing.T) {
		_, err := Parity(gbmScorer(t), X, mat.NewVecDense(3, nil), -1)
		assert.Error(t, err)
	})
}
