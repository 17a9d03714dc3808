package model

import (
	"encoding/json"
	"fmt"

	"github.com/YuminosukeSato/tenantscore/core/tree"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// MarshalJSON は {"type":"linear","intercept":..,"coefficients":[..]} を出力する
func (d *Linear) MarshalJSON() ([]byte, error) {
	coef := d.Coefficients
	if coef == nil {
		coef = []float64{}
	}
	return json.Marshal(struct {
		Type         Kind      `json:"type"`
		Intercept    float64   `json:"intercept"`
		Coefficients []float64 `json:"coefficients"`
	}{KindLinear, d.Intercept, coef})
}

// MarshalJSON は {"type":"forest","n_estimators":..,"trees":[..]} を出力する
func (d *Forest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        Kind        `json:"type"`
		NEstimators int         `json:"n_estimators"`
		Trees       []tree.Node `json:"trees"`
	}{KindForest, d.NEstimators, nonNilTrees(d.Trees)})
}

// MarshalJSON は {"type":"gbm","init_score":..,"learning_rate":..,"trees":[..]} を出力する
func (d *GBM) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type         Kind        `json:"type"`
		InitScore    float64     `json:"init_score"`
		LearningRate float64     `json:"learning_rate"`
		Trees        []tree.Node `json:"trees"`
	}{KindGBM, d.InitScore, d.LearningRate, nonNilTrees(d.Trees)})
}

func nonNilTrees(trees []tree.Node) []tree.Node {
	if trees == nil {
		return []tree.Node{}
	}
	return trees
}

// Encode は文書を検証してから JSON にエンコードする
func Encode(doc Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.NewValueError("model.Encode", "nil document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encode model document")
	}
	return data, nil
}

// Decode は "type" タグに従って文書をデコードし、検証済みの Document を返す。
// 未知のタグ、必須フィールドの欠落、不変条件違反は MalformedModelError になる。
func Decode(data []byte) (Document, error) {
	const op = "model.Decode"

	var head struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.NewMalformedModelError(op, "", err.Error())
	}
	if head.Type == nil {
		return nil, errors.NewMalformedModelError(op, "type", "missing model type")
	}

	var (
		doc Document
		err error
	)
	switch Kind(*head.Type) {
	case KindLinear:
		doc, err = decodeLinear(data)
	case KindForest:
		doc, err = decodeForest(data)
	case KindGBM:
		doc, err = decodeGBM(data)
	default:
		return nil, errors.NewMalformedModelError(op, "type", fmt.Sprintf("unknown model type %q", *head.Type))
	}
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeLinear(data []byte) (*Linear, error) {
	const op = "model.Decode"
	var w struct {
		Intercept    *float64  `json:"intercept"`
		Coefficients []float64 `json:"coefficients"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.NewMalformedModelError(op, "", err.Error())
	}
	if w.Intercept == nil {
		return nil, errors.NewMalformedModelError(op, "intercept", "missing intercept")
	}
	if w.Coefficients == nil {
		return nil, errors.NewMalformedModelError(op, "coefficients", "missing coefficients")
	}
	return &Linear{Intercept: *w.Intercept, Coefficients: w.Coefficients}, nil
}

func decodeForest(data []byte) (*Forest, error) {
	const op = "model.Decode"
	var w struct {
		NEstimators *int              `json:"n_estimators"`
		Trees       []json.RawMessage `json:"trees"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.NewMalformedModelError(op, "", err.Error())
	}
	if w.NEstimators == nil {
		return nil, errors.NewMalformedModelError(op, "n_estimators", "missing n_estimators")
	}
	trees, err := decodeTrees(w.Trees)
	if err != nil {
		return nil, err
	}
	return &Forest{NEstimators: *w.NEstimators, Trees: trees}, nil
}

func decodeGBM(data []byte) (*GBM, error) {
	const op = "model.Decode"
	var w struct {
		InitScore    *float64          `json:"init_score"`
		LearningRate *float64          `json:"learning_rate"`
		Trees        []json.RawMessage `json:"trees"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.NewMalformedModelError(op, "", err.Error())
	}
	if w.InitScore == nil {
		return nil, errors.NewMalformedModelError(op, "init_score", "missing init_score")
	}
	if w.LearningRate == nil {
		return nil, errors.NewMalformedModelError(op, "learning_rate", "missing learning_rate")
	}
	trees, err := decodeTrees(w.Trees)
	if err != nil {
		return nil, err
	}
	return &GBM{InitScore: *w.InitScore, LearningRate: *w.LearningRate, Trees: trees}, nil
}

func decodeTrees(raw []json.RawMessage) ([]tree.Node, error) {
	trees := make([]tree.Node, 0, len(raw))
	for i, r := range raw {
		n, err := tree.Decode(r, fmt.Sprintf("trees[%d]", i))
		if err != nil {
			return nil, err
		}
		trees = append(trees, n)
	}
	return trees, nil
}
