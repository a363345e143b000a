// Package permcheck validates that an integer slice is a permutation of
// {0,...,len(p)-1}. It exists mainly to give the test suites of the other
// packages in this module a shared, already-correct invariant check.
package permcheck

import "fmt"

// Validate returns an error if p is not a permutation of {0,...,len(p)-1}.
func Validate(p []int) error {
	n := len(p)
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n {
			return fmt.Errorf("permcheck: value %d out of range [0,%d)", v, n)
		}
		if seen[v] {
			return fmt.Errorf("permcheck: value %d repeated", v)
		}
		seen[v] = true
	}
	return nil
}
