// Package scoring reproduces the prediction of an exported model document.
//
// Scoring is a pure function of (document, feature vector):
//
//	linear: intercept + Σ coefficients[i]·x[i]
//	forest: mean of every tree's leaf value
//	gbm:    init_score + learning_rate · Σ tree correction
//
// At a split, x[feature_index] <= threshold goes left. A Scorer validates the
// document once and can then be shared across goroutines.
package scoring

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/core/parallel"
	"github.com/YuminosukeSato/tenantscore/core/tree"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// DefaultParallelThreshold is the row count above which ScoreBatch fans out.
const DefaultParallelThreshold = 1000

// Score validates doc and evaluates it on x.
func Score(doc model.Document, x []float64) (float64, error) {
	s, err := NewScorer(doc)
	if err != nil {
		return 0, err
	}
	return s.Score(x)
}

// Scorer evaluates one validated document. It never mutates the document
// and keeps no state between calls.
type Scorer struct {
	doc               model.Document
	parallelThreshold int
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithParallelThreshold sets the row count above which ScoreBatch uses all
// CPU cores.
func WithParallelThreshold(rows int) ScorerOption {
	return func(s *Scorer) {
		s.parallelThreshold = rows
	}
}

// NewScorer validates doc. A nil or invalid document is a MalformedModelError.
func NewScorer(doc model.Document, opts ...ScorerOption) (*Scorer, error) {
	if doc == nil {
		return nil, errors.NewMalformedModelError("NewScorer", "", "no model document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{doc: doc, parallelThreshold: DefaultParallelThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Document returns the document being scored.
func (s *Scorer) Document() model.Document { return s.doc }

// Score evaluates the document on one feature vector. x must have
// model.NumFeatures values in slot order; values are not range checked.
func (s *Scorer) Score(x []float64) (float64, error) {
	if len(x) != model.NumFeatures {
		return 0, errors.NewInvalidInputError("Scorer.Score", model.NumFeatures, len(x))
	}
	return evaluate(s.doc, x), nil
}

// evaluate assumes a validated document and a correctly sized vector.
func evaluate(doc model.Document, x []float64) float64 {
	switch d := doc.(type) {
	case *model.Linear:
		out := d.Intercept
		for i, c := range d.Coefficients {
			out += c * x[i]
		}
		return out
	case *model.Forest:
		var sum float64
		for _, t := range d.Trees {
			sum += tree.Evaluate(t, x)
		}
		return sum / float64(len(d.Trees))
	case *model.GBM:
		var sum float64
		for _, t := range d.Trees {
			sum += tree.Evaluate(t, x)
		}
		return d.InitScore + d.LearningRate*sum
	default:
		panic(fmt.Sprintf("scoring: unhandled document type %T", doc))
	}
}

// ScoreBatch scores every row of X, which must have model.NumFeatures
// columns. Rows are split across CPU cores when X is larger than the
// parallel threshold.
func (s *Scorer) ScoreBatch(X mat.Matrix) (out *mat.VecDense, err error) {
	defer errors.Recover(&err, "Scorer.ScoreBatch")

	rows, cols := X.Dims()
	if cols != model.NumFeatures {
		return nil, errors.NewInvalidInputError("Scorer.ScoreBatch", model.NumFeatures, cols)
	}
	if rows == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Scorer.ScoreBatch")
	}

	results := make([]float64, rows)
	err = parallel.ParallelizeWithThreshold(rows, s.parallelThreshold, func(start, end int) (err error) {
		defer errors.Recover(&err, "Scorer.ScoreBatch worker")
		x := make([]float64, cols)
		for i := start; i < end; i++ {
			mat.Row(x, i, X)
			results[i] = evaluate(s.doc, x)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(rows, results), nil
}

// Breakdown is the per-tree decomposition of one score.
type Breakdown struct {
	Kind model.Kind
	// Base is the intercept (linear), 0 (forest) or init_score (gbm).
	Base float64
	// Terms holds coefficient·feature products for linear documents and raw
	// leaf values, one per tree in document order, for ensembles.
	Terms []float64
	// Score equals the value Score returns for the same input.
	Score float64
}

// Breakdown decomposes the score of x into its additive parts.
func (s *Scorer) Breakdown(x []float64) (Breakdown, error) {
	if len(x) != model.NumFeatures {
		return Breakdown{}, errors.NewInvalidInputError("Scorer.Breakdown", model.NumFeatures, len(x))
	}

	b := Breakdown{Kind: s.doc.Kind(), Score: evaluate(s.doc, x)}
	switch d := s.doc.(type) {
	case *model.Linear:
		b.Base = d.Intercept
		b.Terms = make([]float64, len(d.Coefficients))
		for i, c := range d.Coefficients {
			b.Terms[i] = c * x[i]
		}
	case *model.Forest:
		b.Terms = EvaluateTrees(d.Trees, x)
	case *model.GBM:
		b.Base = d.InitScore
		b.Terms = EvaluateTrees(d.Trees, x)
	}
	return b, nil
}

// EvaluateTrees returns every tree's leaf value for x, in order.
func EvaluateTrees(trees []tree.Node, x []float64) []float64 {
	out := make([]float64, len(trees))
	for i, t := range trees {
		out[i] = tree.Evaluate(t, x)
	}
	return out
}
