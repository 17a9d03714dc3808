package scoring

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/core/tree"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

var probes = [][]float64{
	{0, 0, 0, 0},
	{12, -3, 0.85, 1},
	{36, 45, 0.2, 0},
	{-1, 1e6, -5, 7},
	{10, 10, 10, 10},
}

// sampleTree splits on delay, then on utility for on-time payers.
func sampleTree() tree.Node {
	return tree.NewSplit(int(model.Delay), 5,
		tree.NewSplit(int(model.Utility), 0.6, tree.NewLeaf(640), tree.NewLeaf(780)),
		tree.NewLeaf(420),
	)
}

func TestScore_SingleLeaf(t *testing.T) {
	for _, v := range []float64{0, -13.25, 712.5, 1e-12} {
		forest := model.NewForest([]tree.Node{tree.NewLeaf(v)})
		gbm := model.NewGBM(0, 1, []tree.Node{tree.NewLeaf(v)})
		for _, x := range probes {
			got, err := Score(forest, x)
			require.NoError(t, err)
			assert.Equal(t, v, got)

			got, err = Score(gbm, x)
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	}
}

func TestScore_LinearIsAffine(t *testing.T) {
	coef := []float64{9.8, -12.1, 101.3, 49.2}
	doc := model.NewLinear(498.7, coef)

	for i := range probes {
		for j := range probes {
			s1, err := Score(doc, probes[i])
			require.NoError(t, err)
			s2, err := Score(doc, probes[j])
			require.NoError(t, err)

			var want float64
			for k, c := range coef {
				want += c * (probes[i][k] - probes[j][k])
			}
			assert.InDelta(t, want, s1-s2, 1e-6*math.Max(1, math.Abs(want)))
		}
	}
}

func TestScore_LinearValue(t *testing.T) {
	doc := model.NewLinear(500, []float64{10, -2, 100, 50})
	got, err := Score(doc, model.NewFeatureVector(12, 3, 0.5, 1))
	require.NoError(t, err)
	assert.InDelta(t, 500+120-6+50+50, got, 1e-9)
}

func TestScore_IdenticalForestCollapses(t *testing.T) {
	for _, n := range []int{1, 2, 7, 50} {
		trees := make([]tree.Node, n)
		for i := range trees {
			trees[i] = sampleTree()
		}
		doc := model.NewForest(trees)

		for _, x := range probes {
			got, err := Score(doc, x)
			require.NoError(t, err)
			assert.InDelta(t, tree.Evaluate(sampleTree(), x), got, 1e-9)
		}
	}
}

func TestScore_ForestIsMean(t *testing.T) {
	doc := model.NewForest([]tree.Node{
		tree.NewLeaf(600),
		tree.NewSplit(int(model.LinkedIn), 0.5, tree.NewLeaf(500), tree.NewLeaf(700)),
		tree.NewLeaf(650),
	})

	got, err := Score(doc, model.NewFeatureVector(0, 0, 0, 1))
	require.NoError(t, err)
	assert.InDelta(t, (600.0+700+650)/3, got, 1e-9)
}

func TestScore_GBMZeroLearningRate(t *testing.T) {
	doc := model.NewGBM(612.3, 0, []tree.Node{sampleTree(), tree.NewLeaf(1e9)})
	for _, x := range probes {
		got, err := Score(doc, x)
		require.NoError(t, err)
		assert.Equal(t, 612.3, got)
	}
}

func TestScore_GBM(t *testing.T) {
	doc := model.NewGBM(600, 0.1, []tree.Node{
		tree.NewSplit(int(model.Delay), 20.5, tree.NewLeaf(25), tree.NewLeaf(-80)),
		tree.NewLeaf(10),
	})

	got, err := Score(doc, model.NewFeatureVector(3, 5, 0.5, 1))
	require.NoError(t, err)
	assert.InDelta(t, 600+0.1*(25+10), got, 1e-9)

	got, err = Score(doc, model.NewFeatureVector(3, 30, 0.5, 1))
	require.NoError(t, err)
	assert.InDelta(t, 600+0.1*(-80+10), got, 1e-9)
}

// Leaves of a forest are absolute predictions while gbm leaves are
// corrections added to init_score, so the same trees score differently.
func TestScore_LeafMeaningFollowsDocumentKind(t *testing.T) {
	trees := []tree.Node{tree.NewLeaf(40)}
	x := model.NewFeatureVector(1, 1, 1, 1)

	forest, err := Score(model.NewForest(trees), x)
	require.NoError(t, err)
	gbm, err := Score(model.NewGBM(600, 1, trees), x)
	require.NoError(t, err)

	assert.Equal(t, 40.0, forest)
	assert.Equal(t, 640.0, gbm)
}

func TestScore_ThresholdRoutesLeft(t *testing.T) {
	stump := tree.NewSplit(0, 10.0, tree.NewLeaf(100), tree.NewLeaf(200))
	doc := model.NewForest([]tree.Node{stump})

	tests := []struct {
		value float64
		want  float64
	}{
		{10.0, 100},
		{10.0001, 200},
		{9.9999, 100},
		{math.Nextafter(10, math.Inf(1)), 200},
	}
	for _, tt := range tests {
		got, err := Score(doc, []float64{tt.value, 0, 0, 0})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "feature value %v", tt.value)
	}
}

func TestScore_RoundTrip(t *testing.T) {
	docs := []model.Document{
		model.NewForest([]tree.Node{sampleTree(), tree.NewLeaf(555.5)}),
		model.NewGBM(601.25, 0.05, []tree.Node{sampleTree(), sampleTree()}),
		model.NewLinear(498.7, []float64{9.8, -12.1, 101.3, 49.2}),
	}

	for _, doc := range docs {
		data, err := model.Encode(doc)
		require.NoError(t, err)
		decoded, err := model.Decode(data)
		require.NoError(t, err)

		for _, x := range probes {
			want, err := Score(doc, x)
			require.NoError(t, err)
			got, err := Score(decoded, x)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s on %v", doc.Kind(), x)
		}
	}
}

func TestScore_MalformedModel(t *testing.T) {
	docs := map[string]model.Document{
		"nil document":       nil,
		"empty forest":       model.NewForest(nil),
		"empty gbm":          model.NewGBM(600, 0.1, []tree.Node{}),
		"short coefficients": model.NewLinear(1, []float64{1, 2, 3}),
		"feature out of range": model.NewForest([]tree.Node{
			tree.NewSplit(4, 1, tree.NewLeaf(1), tree.NewLeaf(2)),
		}),
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := Score(doc, probes[0])
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMalformedModel), "got %v", err)
		})
	}
}

func TestScore_EmptyForestFromJSON(t *testing.T) {
	_, err := model.Decode([]byte(`{"type":"forest","n_estimators":0,"trees":[]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedModel))
}

func TestScore_InvalidInput(t *testing.T) {
	doc := model.NewForest([]tree.Node{sampleTree()})

	for _, x := range [][]float64{nil, {1, 2, 3}, {1, 2, 3, 4, 5}} {
		_, err := Score(doc, x)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))

		var inputErr *errors.InvalidInputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, model.NumFeatures, inputErr.Expected)
		assert.Equal(t, len(x), inputErr.Got)
	}
}

func TestScore_ExtrapolatesWithoutRangeChecks(t *testing.T) {
	doc := model.NewLinear(0, []float64{1, 1, 1, 1})
	got, err := Score(doc, model.NewFeatureVector(-50, -1e9, 42, 3))
	require.NoError(t, err)
	assert.InDelta(t, -50-1e9+42+3, got, 1e-3)
}

func TestScorer_ScoreBatch(t *testing.T) {
	doc := model.NewGBM(600, 0.1, []tree.Node{sampleTree(), sampleTree()})

	for _, threshold := range []int{0, 1000} {
		scorer, err := NewScorer(doc, WithParallelThreshold(threshold))
		require.NoError(t, err)

		rows := 257
		X := mat.NewDense(rows, model.NumFeatures, nil)
		for i := 0; i < rows; i++ {
			X.SetRow(i, []float64{float64(i % 40), float64(i%30) - 5, float64(i%10) / 10, float64(i % 2)})
		}

		out, err := scorer.ScoreBatch(X)
		require.NoError(t, err)
		require.Equal(t, rows, out.Len())
		for i := 0; i < rows; i++ {
			want, err := scorer.Score(X.RawRowView(i))
			require.NoError(t, err)
			assert.Equal(t, want, out.AtVec(i))
		}
	}
}

func TestScorer_ScoreBatchErrors(t *testing.T) {
	scorer, err := NewScorer(model.NewForest([]tree.Node{sampleTree()}))
	require.NoError(t, err)

	_, err = scorer.ScoreBatch(mat.NewDense(2, 3, nil))
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestScorer_ConcurrentUse(t *testing.T) {
	scorer, err := NewScorer(model.NewForest([]tree.Node{sampleTree(), tree.NewLeaf(500)}))
	require.NoError(t, err)

	want := make([]float64, len(probes))
	for i, x := range probes {
		want[i], err = scorer.Score(x)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				for i, x := range probes {
					got, err := scorer.Score(x)
					assert.NoError(t, err)
					assert.Equal(t, want[i], got)
				}
			}
		}()
	}
	wg.Wait()
}

func TestScorer_Breakdown(t *testing.T) {
	x := model.NewFeatureVector(12, 2, 0.9, 1)

	t.Run("gbm", func(t *testing.T) {
		scorer, err := NewScorer(model.NewGBM(600, 0.5, []tree.Node{sampleTree(), tree.NewLeaf(-10)}))
		require.NoError(t, err)

		b, err := scorer.Breakdown(x)
		require.NoError(t, err)
		assert.Equal(t, model.KindGBM, b.Kind)
		assert.Equal(t, 600.0, b.Base)
		assert.Equal(t, []float64{780, -10}, b.Terms)
		assert.InDelta(t, 600+0.5*770, b.Score, 1e-9)
	})

	t.Run("linear", func(t *testing.T) {
		scorer, err := NewScorer(model.NewLinear(500, []float64{10, -2, 100, 50}))
		require.NoError(t, err)

		b, err := scorer.Breakdown(x)
		require.NoError(t, err)
		assert.Equal(t, 500.0, b.Base)
		assert.InDeltaSlice(t, []float64{120, -4, 90, 50}, b.Terms, 1e-9)

		sum := b.Base
		for _, term := range b.Terms {
			sum += term
		}
		assert.InDelta(t, b.Score, sum, 1e-9)
	})

	t.Run("invalid input", func(t *testing.T) {
		scorer, err := NewScorer(model.NewForest([]tree.Node{sampleTree()}))
		require.NoError(t, err)
		_, err = scorer.Breakdown([]float64{1})
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})
}
