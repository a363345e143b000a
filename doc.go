// Package grasp implements a GRASP-with-Path-Relinking solver for the
// Quadratic Assignment Problem (QAP).
//
// Given two n×n non-negative integer matrices, flow F and distance D, the
// solver searches for a permutation π of {0,...,n-1} minimizing
//
//	C(π) = sum_i sum_j D[i][j] * F[π(i)][π(j)]
//
// The search combines a greedy randomized adaptive constructor, a
// random-restart local search over 2-opt swaps, a bounded elite pool of
// diverse high-quality solutions, and path-relinking between pool members.
// The solver is deterministic given an instance, parameters, and seed; it
// performs no I/O, holds no package-level mutable state, and is safe to run
// concurrently across independent Solve calls.
package grasp
