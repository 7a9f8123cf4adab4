package slider

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the type of a slider's value.
type Number interface {
	constraints.Integer | constraints.Float
}

// Lerp interpolates linearly between start and end. Results for integer types are rounded to
// the nearest integer.
func Lerp[T Number](start, end T, t float64) T {
	switch t {
	case 0:
		return start
	case 1:
		return end
	}
	v := float64(start) + (float64(end)-float64(start))*t
	if half := 0.5; T(half) == 0 {
		v = math.Round(v)
	}
	return T(v)
}

// Unlerp is the inverse of Lerp. It returns 0 for an empty range.
func Unlerp[T Number](start, end, v T) float64 {
	if start == end {
		return 0
	}
	return (float64(v) - float64(start)) / (float64(end) - float64(start))
}
