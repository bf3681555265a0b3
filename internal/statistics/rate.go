// Package statistics summarizes attendance rates across a class.
package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// RateInterval is a bootstrap confidence interval around the mean of a set
// of per-student attendance rates.
type RateInterval struct {
	Mean      float64 `json:"mean"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
	Level     float64 `json:"level"`
	Students  int     `json:"students"`
	Resamples int     `json:"resamples"`
}

// DefaultResamples is the number of bootstrap resamples.
const DefaultResamples = 10000

// ClassRate computes the mean of rates and its percentile bootstrap interval
// at level, e.g. 0.95. Fewer than two rates give a degenerate interval at the
// mean. A negative seed uses a non-deterministic source.
func ClassRate(rates []float64, level float64, seed int64) RateInterval {
	n := len(rates)
	m := Mean(rates)
	ri := RateInterval{Mean: m, Lower: m, Upper: m, Level: level, Students: n}
	if n < 2 {
		return ri
	}

	if seed < 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	means := make([]float64, DefaultResamples)
	sample := make([]float64, n)
	for i := range means {
		for j := range sample {
			sample[j] = rates[rng.Intn(n)]
		}
		means[i] = Mean(sample)
	}
	sort.Float64s(means)

	alpha := 1.0 - level
	lo := int(math.Floor(alpha / 2.0 * DefaultResamples))
	hi := int(math.Floor((1.0 - alpha/2.0) * DefaultResamples))
	if hi >= DefaultResamples {
		hi = DefaultResamples - 1
	}

	ri.Lower = means[lo]
	ri.Upper = means[hi]
	ri.Resamples = DefaultResamples
	return ri
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
