package scoring

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Midpoint is assigned to every fund when all scores in a batch are equal
const Midpoint = 50

// Normalize maps raw scores onto 0-100 by min-max scaling and rounds to the
// nearest integer. The best score maps to 100 and the worst to 0.
func Normalize(scores []float64) []int {
	values := NormalizeValues(scores)

	result := make([]int, len(values))
	for i, v := range values {
		result[i] = int(math.Round(v))
	}
	return result
}

// NormalizeValues is Normalize without rounding
func NormalizeValues(scores []float64) []float64 {
	result := make([]float64, len(scores))
	if len(scores) == 0 {
		return result
	}

	lo, hi := floats.Min(scores), floats.Max(scores)
	span := hi - lo

	for i, s := range scores {
		if span == 0 {
			result[i] = Midpoint
			continue
		}
		result[i] = (s - lo) / span * 100
	}
	return result
}
