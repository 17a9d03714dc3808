package model

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/tenantscore/pkg/errors"
)

// Feature は特徴量スロットのインデックス。全モデル種別で共通の順序を持つ。
type Feature int

const (
	// Streak は連続支払い月数（非負の整数値だが実数として扱う）
	Streak Feature = iota
	// Delay は平均支払い遅延日数（負値は早期支払い）
	Delay
	// Utility は公共料金支払いの一貫性（通常 0〜1）
	Utility
	// LinkedIn は LinkedIn 認証済みフラグ（0 または 1）
	LinkedIn
)

// NumFeatures は特徴量スロット数
const NumFeatures = 4

var featureNames = [NumFeatures]string{"streak", "delay", "utility", "linkedin"}

func (f Feature) String() string {
	if f < 0 || int(f) >= NumFeatures {
		return fmt.Sprintf("feature(%d)", int(f))
	}
	return featureNames[f]
}

// FeatureNames はスロット順の特徴量名を返す
func FeatureNames() []string {
	names := make([]string, NumFeatures)
	copy(names, featureNames[:])
	return names
}

// ParseFeature は特徴量名（大文字小文字を区別しない）をスロットに変換する
func ParseFeature(name string) (Feature, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i, n := range featureNames {
		if n == needle {
			return Feature(i), nil
		}
	}
	return 0, errors.NewValidationError("feature", "unknown feature slot, expected one of "+strings.Join(featureNames[:], ", "), name)
}

// NewFeatureVector はスロット順に並んだ特徴量ベクトルを作成する
func NewFeatureVector(streak, delay, utility, linkedin float64) []float64 {
	return []float64{streak, delay, utility, linkedin}
}
