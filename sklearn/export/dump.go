package export

import (
	"encoding/json"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tenantscore/core/model"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// Dump is the JSON the training script hands over: the raw fitted state of
// one model plus, optionally, reference predictions made by the trainer
// itself for parity checks.
//
//	{"type": "gbm", "learning_rate": 0.1, "targets": [...],
//	 "estimators": [{"children_left": [...], "children_right": [...],
//	                 "feature": [...], "threshold": [...], "value": [...]}],
//	 "reference": {"features": [[...]], "predictions": [...]}}
type Dump struct {
	Type         model.Kind  `json:"type"`
	Intercept    *float64    `json:"intercept,omitempty"`
	Coefficients []float64   `json:"coefficients,omitempty"`
	Estimators   []ArrayTree `json:"estimators,omitempty"`
	InitScore    *float64    `json:"init_score,omitempty"`
	Targets      []float64   `json:"targets,omitempty"`
	LearningRate *float64    `json:"learning_rate,omitempty"`
	Reference    *Reference  `json:"reference,omitempty"`
}

// Reference holds feature rows and the trainer's own predictions for them.
type Reference struct {
	Features    [][]float64 `json:"features"`
	Predictions []float64   `json:"predictions"`
}

// ReadDump decodes a Dump from r.
func ReadDump(r io.Reader) (*Dump, error) {
	var d Dump
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode trainer dump")
	}
	return &d, nil
}

// LoadDump reads a Dump from a file.
func LoadDump(filename string) (*Dump, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer f.Close()

	d, err := ReadDump(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filename)
	}
	return d, nil
}

// Export converts the dump into a document with e. For gbm dumps init_score
// takes precedence; without it the mean of targets is used.
func (d *Dump) Export(e *Exporter) (model.Document, error) {
	switch d.Type {
	case model.KindLinear:
		if d.Intercept == nil {
			return nil, errors.NewValidationError("intercept", "linear dump has no intercept", nil)
		}
		doc, err := e.Linear(*d.Intercept, d.Coefficients)
		if err != nil {
			return nil, err
		}
		return doc, nil
	case model.KindForest:
		doc, err := e.Forest(d.fitted())
		if err != nil {
			return nil, err
		}
		return doc, nil
	case model.KindGBM:
		if d.LearningRate == nil {
			return nil, errors.NewValidationError("learning_rate", "gbm dump has no learning_rate", nil)
		}
		initScore, err := d.initScore()
		if err != nil {
			return nil, err
		}
		doc, err := e.GBM(initScore, *d.LearningRate, d.fitted())
		if err != nil {
			return nil, err
		}
		return doc, nil
	default:
		return nil, errors.NewValidationError("type", "unknown model type, expected linear, forest or gbm", string(d.Type))
	}
}

func (d *Dump) initScore() (float64, error) {
	if d.InitScore != nil {
		return *d.InitScore, nil
	}
	if len(d.Targets) == 0 {
		return 0, errors.NewValidationError("init_score", "gbm dump needs init_score or targets", nil)
	}
	return InitScoreFromTargets(d.Targets)
}

func (d *Dump) fitted() []FittedTree {
	trees := make([]FittedTree, len(d.Estimators))
	for i := range d.Estimators {
		trees[i] = &d.Estimators[i]
	}
	return trees
}

// Matrices returns the reference rows as an n×len(row) matrix and the
// predictions as a vector. Every row must have numFeatures values.
func (r *Reference) Matrices(numFeatures int) (*mat.Dense, *mat.VecDense, error) {
	n := len(r.Features)
	if n == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "reference has no feature rows")
	}
	if len(r.Predictions) != n {
		return nil, nil, errors.NewDimensionError("Reference.Matrices", n, len(r.Predictions), 0)
	}

	X := mat.NewDense(n, numFeatures, nil)
	for i, row := range r.Features {
		if len(row) != numFeatures {
			return nil, nil, errors.NewInvalidInputError("Reference.Matrices", numFeatures, len(row))
		}
		X.SetRow(i, row)
	}
	return X, mat.NewVecDense(n, append([]float64(nil), r.Predictions...)), nil
}
