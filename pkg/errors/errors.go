// Package errors はpcart全体のエラーハンドリングを提供します。
// 構造化されたエラー型にはスタックトレースが付与され、zerologで構造化出力できます。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	探索エンジンのエラー型
//
// ===========================================================================

// ConstructionError は変数の設定が不正な場合のエラーです。
// ハンドルは生成されません。
type ConstructionError struct {
	Variable string
	Reason   string
	Value    interface{}
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("pcart: cannot construct variable '%s': %s (got: %v)", e.Variable, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConstructionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("variable", e.Variable).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConstructionError")
}

// NewConstructionError は新しいConstructionErrorを作成し、スタックトレースを付与します。
func NewConstructionError(variable, reason string, value interface{}) error {
	err := &ConstructionError{Variable: variable, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ConsistencyViolation は内部の不変条件が破られた場合のエラーです。
// 呼び出し側のバグを示すため、回復せずに処理を中断します。
type ConsistencyViolation struct {
	Op     string
	Detail string
}

func (e *ConsistencyViolation) Error() string {
	return fmt.Sprintf("pcart: %s: consistency violation: %s", e.Op, e.Detail)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConsistencyViolation) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("detail", e.Detail).
		Str("type", "ConsistencyViolation")
}

// NewConsistencyViolation は新しいConsistencyViolationを作成し、スタックトレースを付与します。
func NewConsistencyViolation(op, format string, args ...interface{}) error {
	err := &ConsistencyViolation{Op: op, Detail: fmt.Sprintf(format, args...)}
	return errors.WithStack(err)
}

// DataRoutingError は行のカテゴリ値がどちらの子のマスクにも属さない場合のエラーです。
// 行を黙って捨てることはしません。
type DataRoutingError struct {
	Op       string
	Variable string
	Row      int
	Value    float64
}

func (e *DataRoutingError) Error() string {
	return fmt.Sprintf("pcart: %s: row %d has value %v for variable '%s' that matches no category", e.Op, e.Row, e.Value, e.Variable)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DataRoutingError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("variable", e.Variable).
		Int("row", e.Row).
		Float64("value", e.Value).
		Str("type", "DataRoutingError")
}

// NewDataRoutingError は新しいDataRoutingErrorを作成し、スタックトレースを付与します。
func NewDataRoutingError(op, variable string, row int, value float64) error {
	err := &DataRoutingError{Op: op, Variable: variable, Row: row, Value: value}
	return errors.WithStack(err)
}

// DimensionError は変数の列がデータセットの範囲外にある場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("pcart: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータや設定の検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pcart: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
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
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
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

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrNonFiniteScore はスコアがNaNまたはInfになった場合のエラーです。
	ErrNonFiniteScore = New("non-finite score")
)
