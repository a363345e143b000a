package grasp

import (
	"time"

	"github.com/scarvalho/qapgrasp/rng"
)

// Engine holds the mutable state of one solver run: the instance being
// solved, the constructor's randomness source, the current working solution,
// and the best solution seen so far. A single Engine is reused across every
// constructor call, local search, and path-relink walk in a run; it owns no
// goroutines and touches no package-level state, so independent Engines (one
// per Solve call) never interfere with each other.
type Engine struct {
	Inst  *Instance
	Alpha float64
	Beta  float64
	RNG   *rng.PCG32

	S    *Solution
	Best *Solution

	done  []bool
	ldone []bool
}

// NewEngine builds an Engine for inst. S starts as the identity permutation;
// callers must set Best's cost (typically via Best.Objective(inst)) before
// the first updateBest call.
func NewEngine(inst *Instance, alpha, beta float64, r *rng.PCG32) *Engine {
	n := inst.N()
	return &Engine{
		Inst:  inst,
		Alpha: alpha,
		Beta:  beta,
		RNG:   r,
		S:     NewSolution(n),
		Best:  NewSolution(n),
		done:  make([]bool, n),
		ldone: make([]bool, n),
	}
}

// updateBest copies S into Best whenever S is strictly cheaper.
func (e *Engine) updateBest() {
	if e.S.Cost() < e.Best.Cost() {
		e.Best.CopyFrom(e.S)
	}
}

// Constructor builds a fresh candidate solution into e.S by greedy
// randomized adaptive selection: a two-value seed assignment (phase 1)
// followed by greedy completion (phase 2), then a full objective recompute.
func (e *Engine) Constructor() {
	posA, posB, valA, valB := e.constructPhase1()
	e.constructPhase2(posA, posB, valA, valB)
	e.S.Objective(e.Inst)
}

// constructPhase1 picks a seed pair of (position, value) assignments by
// sampling the restricted candidate list (RCL) of cheapest flow*distance
// cross-products, and assigns them into e.S. It resets done/ldone and
// returns the two chosen positions and values so constructPhase2 can test
// for sparsity without re-deriving them.
func (e *Engine) constructPhase1() (posA, posB, valA, valB int) {
	n := e.Inst.N()
	total := n*n - n

	d := make([]Pair, 0, total)
	f := make([]Pair, 0, total)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d = append(d, Pair{Cost: e.Inst.Dist(i, j), I: i, J: j})
			f = append(f, Pair{Cost: e.Inst.Flow(i, j), I: i, J: j})
		}
	}
	heapSortAscending(d)
	heapSortDescending(f)

	last := int(float64(total) * e.Beta)
	rclSize := int(float64(last) * e.Alpha)
	if rclSize < 1 {
		rclSize = 1
	}

	// Rank the positionally-aligned (f,d) cross-products ascending by
	// product and draw uniformly from the cheapest rclSize of them. See
	// SPEC_FULL.md's resolved Open Question on why this reaches the
	// "α-best β-fraction" RCL directly instead of via reverse-tail
	// indexing into a descending sort.
	heapSortPairedAscending(f, d)
	idx := e.RNG.Intn(rclSize)
	chosen := f[idx]
	guide := d[idx]

	for i := range e.done {
		e.done[i] = false
		e.ldone[i] = false
	}
	e.S = NewSolution(n)
	e.S.Assign(chosen.I, guide.I)
	e.S.Assign(chosen.J, guide.J)
	e.done[chosen.I] = true
	e.done[chosen.J] = true
	e.ldone[guide.I] = true
	e.ldone[guide.J] = true

	return chosen.I, chosen.J, guide.I, guide.J
}

// constructPhase2 completes the assignment started by constructPhase1. When
// the two seed positions imply a zero-cost interaction (F[posA][posB] *
// D[valA][valB] == 0), it first extends a zero-cost frontier as far as
// possible, then falls back to the generic greedy RCL loop for whatever
// positions remain unassigned.
func (e *Engine) constructPhase2(posA, posB, valA, valB int) {
	n := e.Inst.N()
	assignedCount := 2

	if e.Inst.Flow(posA, posB)*e.Inst.Dist(valA, valB) == 0 {
		assignedCount = e.constructSparsePhase2(assignedCount)
	}

	for assignedCount < n {
		cands := make([]Pair, 0, (n-assignedCount)*(n-assignedCount))
		for i := 0; i < n; i++ {
			if e.done[i] {
				continue
			}
			for j := 0; j < n; j++ {
				if e.ldone[j] {
					continue
				}
				cands = append(cands, Pair{Cost: e.partialCost(i, j), I: i, J: j})
			}
		}
		heapSortAscending(cands)

		p := int(float64(len(cands)) * e.Alpha)
		if p < 1 {
			p = 1
		}
		chosen := cands[e.RNG.Intn(p)]

		e.S.Assign(chosen.I, chosen.J)
		e.done[chosen.I] = true
		e.ldone[chosen.J] = true
		assignedCount++
	}
}

// constructSparsePhase2 iteratively assigns free (position, value) pairs
// whose partial cost against the already-fixed positions is exactly zero,
// extending the zero-cost frontier one assignment at a time until no
// zero-cost extension remains (at most n-3 further assignments, since two
// positions are already seeded and at least one is left for the generic
// greedy loop to finish in the common case). It returns the updated
// assigned count.
func (e *Engine) constructSparsePhase2(assignedCount int) int {
	n := e.Inst.N()
	for assignedCount < n-1 {
		var zeros []Pair
		for i := 0; i < n; i++ {
			if e.done[i] {
				continue
			}
			for j := 0; j < n; j++ {
				if e.ldone[j] {
					continue
				}
				if e.partialCost(i, j) == 0 {
					zeros = append(zeros, Pair{I: i, J: j})
				}
			}
		}
		if len(zeros) == 0 {
			break
		}
		pick := zeros[e.RNG.Intn(len(zeros))]
		e.S.Assign(pick.I, pick.J)
		e.done[pick.I] = true
		e.ldone[pick.J] = true
		assignedCount++
	}
	return assignedCount
}

// partialCost sums the flow*distance contribution of placing value j at
// free position i against every position already fixed.
func (e *Engine) partialCost(i, j int) int64 {
	var cost int64
	n := e.Inst.N()
	for a := 0; a < n; a++ {
		if !e.done[a] {
			continue
		}
		b := e.S.At(a)
		cost += e.Inst.Flow(a, i) * e.Inst.Dist(b, j)
	}
	return cost
}

// improvement returns the cost delta of swapping positions i and j in e.S.
// A positive delta means the swap would reduce cost by that amount. See
// delta (pool.go) for the same formula applied to an arbitrary solution.
func (e *Engine) improvement(i, j int) int64 {
	return e.delta(e.S, i, j)
}

// expired reports whether deadline is set and has passed. A zero deadline
// means "no deadline".
func expired(deadline time.Time) bool {
	return !deadline.IsZero() && !time.Now().Before(deadline)
}

// LocalSearchExhaustive runs first-improvement 2-opt local search to a fixed
// point: repeated full passes over all i<j, applying any positive-delta swap
// immediately, until a pass finds none. Not called by Solve's main loop (see
// SPEC_FULL.md's Open Questions) but kept as public, independently useful
// core search.
func (e *Engine) LocalSearchExhaustive(deadline time.Time) {
	n := e.Inst.N()
	for {
		changed := false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if expired(deadline) {
					return
				}
				if delta := e.improvement(i, j); delta > 0 {
					e.S.Swap(i, j)
					e.S.SetCost(e.S.Cost() - delta)
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// maxNoImprovement bounds LocalSearch: it stops after this many consecutive
// rounds find no improving swap.
const maxNoImprovement = 20

// LocalSearch repeatedly picks a random position i and applies the swap
// with the best-improving j, if any; it stops after maxNoImprovement
// consecutive rounds without an improving swap, or when deadline passes.
func (e *Engine) LocalSearch(deadline time.Time) {
	n := e.Inst.N()
	noChange := 0
	for noChange < maxNoImprovement {
		if expired(deadline) {
			return
		}
		i := e.RNG.Intn(n)
		bestJ := -1
		var bestDelta int64
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if d := e.improvement(i, j); bestJ == -1 || d > bestDelta {
				bestJ, bestDelta = j, d
			}
		}
		if bestDelta > 0 {
			e.S.Swap(i, bestJ)
			e.S.SetCost(e.S.Cost() - bestDelta)
			noChange = 0
		} else {
			noChange++
		}
	}
}

// Step applies a single unconditional swap between two distinct random
// positions, regardless of whether it improves cost. Used by ExtraLocalSearch
// as a perturbation between intensification rounds.
func (e *Engine) Step() {
	n := e.Inst.N()
	i := e.RNG.Intn(n)
	j := e.RNG.Intn(n - 1)
	if j >= i {
		j++
	}
	delta := e.improvement(i, j)
	e.S.Swap(i, j)
	e.S.SetCost(e.S.Cost() - delta)
}

// extraLocalSearchRounds is the number of (LocalSearch, updateBest, Step,
// Step) rounds ExtraLocalSearch runs.
const extraLocalSearchRounds = 10

// ExtraLocalSearch alternates intensification and perturbation:
// extraLocalSearchRounds rounds of LocalSearch, a best-tracking update, then
// two unconditional Step swaps.
func (e *Engine) ExtraLocalSearch(deadline time.Time) {
	for t := 0; t < extraLocalSearchRounds; t++ {
		e.LocalSearch(deadline)
		e.updateBest()
		e.Step()
		e.Step()
	}
}
