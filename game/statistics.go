package game

import (
	"math"
	"slices"
)

// Sum ...
func Sum(data []float64) (result float64) {
	for _, v := range data {
		result += v
	}
	return result
}

// Mean ...
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return Sum(data) / float64(len(data))
}

// Peak returns the largest value in data, or 0 for an empty sample.
func Peak(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return slices.Max(data)
}

// StandardDeviation ...
func StandardDeviation(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := Mean(data)
	var variance float64
	for _, v := range data {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(data)))
}
