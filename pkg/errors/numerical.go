package errors

import (
	"fmt"
	"math"
)

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckScalar returns a NonFiniteValueError when value is NaN or ±Inf.
// path names the offending field, e.g. "trees[0].left.threshold".
func CheckScalar(operation, path string, value float64) error {
	if !IsFinite(value) {
		return NewNonFiniteValueError(operation, path, value)
	}
	return nil
}

// CheckValues checks every element of values and reports the first
// non-finite one as path[i].
func CheckValues(operation, path string, values []float64) error {
	for i, v := range values {
		if !IsFinite(v) {
			return NewNonFiniteValueError(operation, fmt.Sprintf("%s[%d]", path, i), v)
		}
	}
	return nil
}
