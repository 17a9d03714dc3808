// Package model はエクスポートされたモデル文書（ModelDocument）を定義する。
//
// 文書は "type" フィールドで判別されるタグ付き共用体で、Linear・Forest・GBM の
// いずれか一つの形を取る。エクスポート時に一度だけ作成され、その後は読み取り専用。
package model

import (
	"fmt"

	"github.com/YuminosukeSato/tenantscore/core/tree"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// Kind は文書の "type" タグ
type Kind string

const (
	// KindLinear は線形回帰
	KindLinear Kind = "linear"
	// KindForest はランダムフォレスト
	KindForest Kind = "forest"
	// KindGBM は勾配ブースティング
	KindGBM Kind = "gbm"
)

// Document は Linear・Forest・GBM のいずれか。型スイッチで網羅的に扱うこと。
type Document interface {
	// Kind は "type" タグを返す
	Kind() Kind
	// Validate は構造上の不変条件を検証し、違反時は MalformedModelError を返す
	Validate() error

	isDocument()
}

// Linear は output = intercept + Σ coefficients[i] * x[i]
type Linear struct {
	Intercept    float64
	Coefficients []float64
}

// NewLinear は係数をコピーして Linear 文書を作成する
func NewLinear(intercept float64, coefficients []float64) *Linear {
	coef := make([]float64, len(coefficients))
	copy(coef, coefficients)
	return &Linear{Intercept: intercept, Coefficients: coef}
}

// Kind implements Document.
func (*Linear) Kind() Kind { return KindLinear }

func (*Linear) isDocument() {}

// Validate implements Document.
func (d *Linear) Validate() error {
	const op = "Linear.Validate"
	if len(d.Coefficients) != NumFeatures {
		return errors.NewMalformedModelError(op, "coefficients",
			fmt.Sprintf("expected %d coefficients, got %d", NumFeatures, len(d.Coefficients)))
	}
	if !errors.IsFinite(d.Intercept) {
		return errors.NewMalformedModelError(op, "intercept", fmt.Sprintf("non-finite value %v", d.Intercept))
	}
	for i, c := range d.Coefficients {
		if !errors.IsFinite(c) {
			return errors.NewMalformedModelError(op, fmt.Sprintf("coefficients[%d]", i), fmt.Sprintf("non-finite value %v", c))
		}
	}
	return nil
}

// Forest は各木の出力の算術平均を予測とする。
// 葉の値は各木の「絶対的な予測値」である（GBM の補正値とは意味が異なる）。
type Forest struct {
	NEstimators int
	Trees       []tree.Node
}

// NewForest は木の順序を保ったまま Forest 文書を作成する
func NewForest(trees []tree.Node) *Forest {
	ts := make([]tree.Node, len(trees))
	copy(ts, trees)
	return &Forest{NEstimators: len(ts), Trees: ts}
}

// Kind implements Document.
func (*Forest) Kind() Kind { return KindForest }

func (*Forest) isDocument() {}

// Validate implements Document.
func (d *Forest) Validate() error {
	const op = "Forest.Validate"
	if len(d.Trees) == 0 {
		return errors.NewMalformedModelError(op, "trees", "ensemble has no trees")
	}
	if d.NEstimators != len(d.Trees) {
		return errors.NewMalformedModelError(op, "n_estimators",
			fmt.Sprintf("n_estimators is %d but %d trees are present", d.NEstimators, len(d.Trees)))
	}
	return validateTrees(d.Trees)
}

// GBM は output = init_score + learning_rate * Σ tree(x)。
// 葉の値は現在のスコアに対する「残差補正値」であり、絶対的な予測値ではない。
type GBM struct {
	InitScore    float64
	LearningRate float64
	Trees        []tree.Node
}

// NewGBM は木の順序を保ったまま GBM 文書を作成する
func NewGBM(initScore, learningRate float64, trees []tree.Node) *GBM {
	ts := make([]tree.Node, len(trees))
	copy(ts, trees)
	return &GBM{InitScore: initScore, LearningRate: learningRate, Trees: ts}
}

// Kind implements Document.
func (*GBM) Kind() Kind { return KindGBM }

func (*GBM) isDocument() {}

// Validate implements Document.
func (d *GBM) Validate() error {
	const op = "GBM.Validate"
	if len(d.Trees) == 0 {
		return errors.NewMalformedModelError(op, "trees", "ensemble has no trees")
	}
	if !errors.IsFinite(d.InitScore) {
		return errors.NewMalformedModelError(op, "init_score", fmt.Sprintf("non-finite value %v", d.InitScore))
	}
	if !errors.IsFinite(d.LearningRate) || d.LearningRate < 0 {
		return errors.NewMalformedModelError(op, "learning_rate",
			fmt.Sprintf("learning rate must be finite and non-negative, got %v", d.LearningRate))
	}
	return validateTrees(d.Trees)
}

func validateTrees(trees []tree.Node) error {
	for i, t := range trees {
		if err := tree.Validate(t, NumFeatures, fmt.Sprintf("trees[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// Trees は文書に含まれる木を返す。Linear の場合は nil。
func Trees(doc Document) []tree.Node {
	switch d := doc.(type) {
	case *Forest:
		return d.Trees
	case *GBM:
		return d.Trees
	default:
		return nil
	}
}
