package errors

import (
	"math"
)

// CheckScore returns an error wrapping ErrNonFiniteScore if a log-score
// is NaN or +Inf. -Inf is a legal log-probability.
func CheckScore(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 1) {
		return Wrapf(ErrNonFiniteScore, "%s produced %v", operation, value)
	}
	return nil
}

// CheckFinite checks that every value is a finite number.
func CheckFinite(param string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValidationError(param, "must be finite", v)
		}
	}
	return nil
}
