package metrics

import (
	"math"

	"github.com/YuminosukeSato/pcart/pkg/errors"
)

// Accuracy は正解率を計算する
func Accuracy(yTrue, yPred []int) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValidationError("Accuracy", "empty labels", nil)
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("Accuracy", n, len(yPred), 0)
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// LogLoss は平均対数損失（交差エントロピー）を計算する。
// probs[i] は行 i の各カテゴリの予測確率。
func LogLoss(yTrue []int, probs [][]float64) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValidationError("LogLoss", "empty labels", nil)
	}
	if len(probs) != n {
		return 0, errors.NewDimensionError("LogLoss", n, len(probs), 0)
	}

	var sum float64
	for i, label := range yTrue {
		if label < 0 || label >= len(probs[i]) {
			return 0, errors.NewValidationError("LogLoss", "label out of range", label)
		}
		p := probs[i][label]
		if p <= 0 {
			return math.Inf(1), nil
		}
		sum -= math.Log(p)
	}
	return sum / float64(n), nil
}
