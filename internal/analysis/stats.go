package analysis

import "math"

// populationStats returns the mean and population standard deviation
// (denominator N, not N-1) of the given values. The observed amounts are
// treated as the entire population of interest for their group.
func populationStats(values []float64) (mean, stdDev float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / n

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= n

	return mean, math.Sqrt(variance)
}
