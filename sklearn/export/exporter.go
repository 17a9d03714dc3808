// Package export turns fitted trainer output into portable model documents.
//
// Trees are rebuilt by recursive descent from the trainer's root: both
// children of a split are exported before the split itself is constructed.
// Every threshold, leaf value and coefficient is checked on the way; a NaN or
// infinite value aborts the export with a NonFiniteValueError because it
// means the trainer produced a broken model.
package export

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/core/tree"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
	"github.com/YuminosukeSato/tenantscore/pkg/log"
)

// Exporter builds model documents from trainer output. It holds no state
// between calls.
type Exporter struct {
	logger      log.Logger
	numFeatures int
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for export records.
func WithLogger(l log.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// WithNumFeatures overrides the number of feature slots split indices are
// checked against. Documents always use model.NumFeatures, so this only
// matters when exporting standalone trees.
func WithNumFeatures(n int) Option {
	return func(e *Exporter) {
		e.numFeatures = n
	}
}

// NewExporter creates an Exporter.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{numFeatures: model.NumFeatures}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.GetLoggerWithName("export")
	}
	return e
}

// Tree exports one fitted tree.
func (e *Exporter) Tree(src FittedTree) (root tree.Node, err error) {
	defer errors.Recover(&err, "Exporter.Tree")
	return e.exportTree(src, "tree")
}

func (e *Exporter) exportTree(src FittedTree, path string) (tree.Node, error) {
	if src == nil {
		return nil, errors.NewValidationError(path, "fitted tree is nil", nil)
	}
	if c, ok := src.(interface{ Check() error }); ok {
		if err := c.Check(); err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
	}
	n := src.NodeCount()
	if n <= 0 {
		return nil, errors.NewValidationError(path, "fitted tree has no nodes", n)
	}
	visited := make([]bool, n)
	return e.exportNode(src, 0, path, visited)
}

// exportNode builds the subtree rooted at id. visited guarantees every id is
// emitted at most once, so shared or cyclic trainer structures are rejected
// instead of being duplicated or looping forever.
func (e *Exporter) exportNode(src FittedTree, id int, path string, visited []bool) (tree.Node, error) {
	const op = "Exporter.Tree"
	if id < 0 || id >= len(visited) {
		return nil, errors.NewValidationError(path, fmt.Sprintf("child id out of range [0, %d)", len(visited)), id)
	}
	if visited[id] {
		return nil, errors.NewValidationError(path, "node reached twice, trainer tree is shared or cyclic", id)
	}
	visited[id] = true

	if !src.IsSplit(id) {
		v := src.LeafValue(id)
		if err := errors.CheckScalar(op, path+".value", v); err != nil {
			return nil, err
		}
		return tree.NewLeaf(v), nil
	}

	feature := src.SplitFeature(id)
	if feature < 0 || feature >= e.numFeatures {
		return nil, errors.NewValidationError(path+".feature_index",
			fmt.Sprintf("feature index out of range [0, %d)", e.numFeatures), feature)
	}
	threshold := src.SplitThreshold(id)
	if err := errors.CheckScalar(op, path+".threshold", threshold); err != nil {
		return nil, err
	}

	leftID, rightID := src.Children(id)
	left, err := e.exportNode(src, leftID, path+".left", visited)
	if err != nil {
		return nil, err
	}
	right, err := e.exportNode(src, rightID, path+".right", visited)
	if err != nil {
		return nil, err
	}
	return tree.NewSplit(feature, threshold, left, right), nil
}

func (e *Exporter) exportTrees(srcs []FittedTree) ([]tree.Node, error) {
	if len(srcs) == 0 {
		return nil, errors.NewValidationError("trees", "ensemble has no estimators", 0)
	}
	trees := make([]tree.Node, 0, len(srcs))
	for i, src := range srcs {
		t, err := e.exportTree(src, fmt.Sprintf("trees[%d]", i))
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// Linear exports an intercept and one coefficient per feature slot.
func (e *Exporter) Linear(intercept float64, coefficients []float64) (*model.Linear, error) {
	const op = "Exporter.Linear"
	if len(coefficients) != model.NumFeatures {
		return nil, errors.NewValidationError("coefficients",
			fmt.Sprintf("expected %d coefficients", model.NumFeatures), len(coefficients))
	}
	if err := errors.CheckScalar(op, "intercept", intercept); err != nil {
		return nil, err
	}
	if err := errors.CheckValues(op, "coefficients", coefficients); err != nil {
		return nil, err
	}

	doc := model.NewLinear(intercept, coefficients)
	e.logger.Info("Exported model", log.ModelKindKey, string(model.KindLinear), log.FeaturesKey, len(coefficients))
	return doc, nil
}

// Forest exports every estimator in order. Leaf values are the per-tree
// predictions that the scoring engine averages.
func (e *Exporter) Forest(estimators []FittedTree) (doc *model.Forest, err error) {
	defer errors.Recover(&err, "Exporter.Forest")

	trees, err := e.exportTrees(estimators)
	if err != nil {
		return nil, err
	}
	doc = model.NewForest(trees)
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	e.logEnsemble(doc)
	return doc, nil
}

// GBM exports a boosting ensemble. initScore is the baseline prediction
// before any tree correction and learningRate scales every tree's leaf
// output uniformly.
func (e *Exporter) GBM(initScore, learningRate float64, estimators []FittedTree) (doc *model.GBM, err error) {
	const op = "Exporter.GBM"
	defer errors.Recover(&err, op)

	if err := errors.CheckScalar(op, "init_score", initScore); err != nil {
		return nil, err
	}
	if err := errors.CheckScalar(op, "learning_rate", learningRate); err != nil {
		return nil, err
	}
	if learningRate < 0 {
		return nil, errors.NewValidationError("learning_rate", "must be non-negative", learningRate)
	}

	trees, err := e.exportTrees(estimators)
	if err != nil {
		return nil, err
	}
	doc = model.NewGBM(initScore, learningRate, trees)
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	e.logEnsemble(doc, log.InitScoreKey, initScore, log.LearningRateKey, learningRate)
	return doc, nil
}

func (e *Exporter) logEnsemble(doc model.Document, extra ...any) {
	s := model.Summarize(doc)
	fields := append([]any{
		log.ModelKindKey, string(s.Kind),
		log.TreesKey, s.Trees,
		log.TreeDepthKey, s.MaxDepth,
		log.TreeLeavesKey, s.Leaves,
	}, extra...)
	e.logger.Info("Exported model", fields...)
}

// InitScoreFromTargets returns the mean training target, the baseline the
// exporter scripts persist as init_score for gbm models.
func InitScoreFromTargets(y []float64) (float64, error) {
	const op = "InitScoreFromTargets"
	if len(y) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, op)
	}
	if err := errors.CheckValues(op, "targets", y); err != nil {
		return 0, err
	}
	return stat.Mean(y, nil), nil
}
