// Package errors はプロジェクト全体のエラーハンドリングを提供します。
// モデル文書の構造違反、入力ベクトルの不一致、エクスポート時の非有限値を
// 型付きエラーとして表現し、cockroachdb/errors でスタックトレースを付与します。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	センチネルエラー
//
// ===========================================================================

var (
	// ErrMalformedModel は永続化されたモデル文書の構造違反を示します。
	ErrMalformedModel = errors.New("malformed model")

	// ErrInvalidInput は呼び出し側が渡した特徴量ベクトルの不正を示します。
	ErrInvalidInput = errors.New("invalid input")

	// ErrNonFiniteValue はトレーナーが NaN または Inf を渡したことを示します。
	ErrNonFiniteValue = errors.New("non-finite value")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = errors.New("empty data")
)

// ===========================================================================
//
//	モデル文書・スコアリング用のエラー型
//
// ===========================================================================

// MalformedModelError はモデル文書がスキーマや不変条件に違反している場合のエラーです。
// Field は違反箇所のパス（例: "trees[2].left.feature_index"）です。
type MalformedModelError struct {
	Op     string
	Field  string
	Reason string
}

func (e *MalformedModelError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("tenantscore: %s: malformed model: %s: %s", e.Op, e.Field, e.Reason)
	}
	return fmt.Sprintf("tenantscore: %s: malformed model: %s", e.Op, e.Reason)
}

// Is reports ErrMalformedModel as a match.
func (e *MalformedModelError) Is(target error) bool {
	return target == ErrMalformedModel
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *MalformedModelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("field", e.Field).
		Str("reason", e.Reason).
		Str("type", "MalformedModel")
}

// NewMalformedModelError は新しいMalformedModelErrorを作成し、スタックトレースを付与します。
func NewMalformedModelError(op, field, reason string) error {
	return errors.WithStack(&MalformedModelError{Op: op, Field: field, Reason: reason})
}

// InvalidInputError は特徴量ベクトルの長さがスロット数と一致しない場合のエラーです。
type InvalidInputError struct {
	Op       string
	Expected int
	Got      int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("tenantscore: %s: invalid input: feature vector has %d values, expected %d", e.Op, e.Got, e.Expected)
}

// Is reports ErrInvalidInput as a match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "InvalidInput")
}

// NewInvalidInputError は新しいInvalidInputErrorを作成し、スタックトレースを付与します。
func NewInvalidInputError(op string, expected, got int) error {
	return errors.WithStack(&InvalidInputError{Op: op, Expected: expected, Got: got})
}

// NonFiniteValueError はエクスポート中に NaN / ±Inf を検出した場合のエラーです。
// トレーナー側の欠陥を示すため、回復はせずエクスポート全体を中断します。
type NonFiniteValueError struct {
	Op    string
	Path  string
	Value float64
}

func (e *NonFiniteValueError) Error() string {
	return fmt.Sprintf("tenantscore: %s: non-finite value %v at %s", e.Op, e.Value, e.Path)
}

// Is reports ErrNonFiniteValue as a match.
func (e *NonFiniteValueError) Is(target error) bool {
	return target == ErrNonFiniteValue
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NonFiniteValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("path", e.Path).
		Float64("value", e.Value).
		Str("type", "NonFiniteValue")
}

// NewNonFiniteValueError は新しいNonFiniteValueErrorを作成し、スタックトレースを付与します。
func NewNonFiniteValueError(op, path string, value float64) error {
	return errors.WithStack(&NonFiniteValueError{Op: op, Path: path, Value: value})
}

// ===========================================================================
//
//	汎用のエラー型
//
// ===========================================================================

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("tenantscore: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError は入力パラメータやトレーナーの出力の検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tenantscore: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は引数の値が不適切な場合のエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("tenantscore: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// StackTrace returns the first safe detail recorded by cockroachdb/errors,
// which holds the formatted stack of the innermost WithStack call.
func StackTrace(err error) string {
	if err == nil {
		return ""
	}
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) > 0 {
		return details[0]
	}
	return ""
}
