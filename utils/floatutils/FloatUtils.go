// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// MaxSlice gets the maximum value and the indices of all values equal
// to it in a slice of float64. Ties use exact equality. MaxSlice panics
// on an empty slice.
func MaxSlice(values []float64) (max float64, indices []int) {
	max, indices = values[0], []int{0}

	for i := 1; i < len(values); i++ {
		value := values[i]
		if value > max {
			max = value
			indices = []int{i}
		} else if value == max {
			indices = append(indices, i)
		}
	}
	return
}
