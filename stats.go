package grasp

import (
	"fmt"
	"math"
)

// Stats accumulates running summary statistics (max, min, mean, variance)
// over a stream of values using Welford's online algorithm, so the full
// history never needs to be retained. Pool.CostStats uses it to summarize
// the elite pool's cost distribution after each admission or purge.
type Stats struct {
	max, min float64
	mean     float64
	sumsq    float64 // sum of squares of deviation from the mean
	len      float64
}

// Insert folds x into the running statistics and returns the updated Stats.
func (s Stats) Insert(x float64) Stats {
	if s.len == 0 {
		s.max = math.Inf(-1)
		s.min = math.Inf(+1)
	}

	delta := x - s.mean
	newlen := s.len + 1

	s.max = math.Max(s.max, x)
	s.min = math.Min(s.min, x)
	s.mean += delta / newlen
	s.sumsq += delta * delta * (s.len / newlen)
	s.len = newlen

	return s
}

// Merge combines s with t, as if every value inserted into either had been
// inserted into a single accumulator.
func (s Stats) Merge(t Stats) Stats {
	if s.len == 0 {
		s.max = math.Inf(-1)
		s.min = math.Inf(+1)
	}

	delta := t.mean - s.mean
	newlen := t.len + s.len

	s.max = math.Max(s.max, t.max)
	s.min = math.Min(s.min, t.min)
	s.mean += delta * (t.len / newlen)
	s.sumsq += t.sumsq
	s.sumsq += delta * delta * (t.len * s.len / newlen)
	s.len = newlen

	return s
}

// Max returns the maximum value seen.
func (s Stats) Max() float64 {
	return s.max
}

// Min returns the minimum value seen.
func (s Stats) Min() float64 {
	return s.min
}

// Range returns the difference between the maximum and minimum values seen.
func (s Stats) Range() float64 {
	return s.max - s.min
}

// Mean returns the running average.
func (s Stats) Mean() float64 {
	return s.mean
}

// Variance returns the population variance.
func (s Stats) Variance() float64 {
	return s.sumsq / s.len
}

// StdDeviation returns the population standard deviation.
func (s Stats) StdDeviation() float64 {
	return math.Sqrt(s.sumsq / s.len)
}

// RSD returns the relative standard deviation (the coefficient of
// variation): StdDeviation divided by Mean. It is near zero once the values
// have converged to a tight cluster, independent of their scale.
func (s Stats) RSD() float64 {
	return s.StdDeviation() / s.mean
}

// Len returns the number of values folded into s.
func (s Stats) Len() int {
	return int(s.len)
}

// String returns a one-line human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("Max: %f | Min: %f | SD: %f", s.Max(), s.Min(), s.StdDeviation())
}
