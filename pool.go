package grasp

import (
	"time"

	"github.com/scarvalho/qapgrasp/rng"
)

// minDiff is the minimum Similarity two solutions must have to be considered
// distinct for pool admission purposes.
const minDiff = 3

// maxIterNoImprov is the number of driver iterations the pool tolerates
// without a successful admission before purging its worst half.
const maxIterNoImprov = 20

// Pool is a bounded set of diverse, high-quality solutions. Solutions enter
// via insertSolution (while the pool is filling) or update (once full,
// displacing a similar but costlier member); a pool that goes too long
// without an improving admission purges its costliest half to make room for
// fresh diversity. It owns no goroutines and is only ever touched by the
// single Engine driving a Solve call.
type Pool struct {
	solutions      []*Solution
	curSize        int
	bestIdx        int
	worstIdx       int
	lastImprovIter int
}

// NewPool allocates a Pool with the given capacity, pre-allocating one
// length-n Solution per slot so admission never allocates on the hot path.
func NewPool(capacity, n int) *Pool {
	solutions := make([]*Solution, capacity)
	for i := range solutions {
		solutions[i] = NewSolution(n)
	}
	return &Pool{
		solutions: solutions,
		bestIdx:   -1,
		worstIdx:  -1,
	}
}

// Full reports whether the pool has reached capacity.
func (p *Pool) Full() bool { return p.curSize >= len(p.solutions) }

// Len returns the number of solutions currently held.
func (p *Pool) Len() int { return p.curSize }

// PoolView exposes the pool's current members for read-only inspection,
// mirroring the teacher's Max/Min view pattern but keyed on cost (lower is
// better) instead of fitness (higher is better).
type PoolView []*Solution

// Best returns the member with the lowest cost.
func (v PoolView) Best() *Solution {
	best := v[0]
	for _, s := range v[1:] {
		if s.Cost() < best.Cost() {
			best = s
		}
	}
	return best
}

// Worst returns the member with the highest cost.
func (v PoolView) Worst() *Solution {
	worst := v[0]
	for _, s := range v[1:] {
		if s.Cost() > worst.Cost() {
			worst = s
		}
	}
	return worst
}

// View returns the pool's filled slots as a PoolView.
func (p *Pool) View() PoolView { return PoolView(p.solutions[:p.curSize]) }

// CostStats summarizes the cost distribution of the pool's current members,
// for reporting through a Logger or Metrics after admission/purge events.
func (p *Pool) CostStats() Stats {
	var s Stats
	for i := 0; i < p.curSize; i++ {
		s = s.Insert(float64(p.solutions[i].Cost()))
	}
	return s
}

// coinFlip reports heads with probability 1/2, used to break exact ties when
// the pool's admission policy has more than one equally-good candidate to
// evict. Adapted from the teacher's sel.BinaryTournament coin-flip idea.
func coinFlip(r *rng.PCG32) bool {
	return r.Intn(2) == 0
}

// insertSolution places s at the next free slot, advancing curSize, and
// refreshes the best/worst indices. It must only be called while the pool is
// not yet full.
func (p *Pool) insertSolution(s *Solution) {
	idx := p.curSize
	p.solutions[idx].CopyFrom(s)
	if p.bestIdx == -1 || s.Cost() < p.solutions[p.bestIdx].Cost() {
		p.bestIdx = idx
	}
	if p.worstIdx == -1 || s.Cost() > p.solutions[p.worstIdx].Cost() {
		p.worstIdx = idx
	}
	p.curSize++
}

// refreshBestWorst recomputes bestIdx and worstIdx from scratch; used after
// admission replacement and after a purge reorders the filled slots.
func (p *Pool) refreshBestWorst() {
	p.bestIdx, p.worstIdx = -1, -1
	for i := 0; i < p.curSize; i++ {
		c := p.solutions[i].Cost()
		if p.bestIdx == -1 || c < p.solutions[p.bestIdx].Cost() {
			p.bestIdx = i
		}
		if p.worstIdx == -1 || c > p.solutions[p.worstIdx].Cost() {
			p.worstIdx = i
		}
	}
}

// alreadyPresent reports whether s is a near-duplicate of some existing pool
// member: identical cost, or a Similarity below minDiff.
func (p *Pool) alreadyPresent(s *Solution) bool {
	for i := 0; i < p.curSize; i++ {
		member := p.solutions[i]
		if s.Cost() == member.Cost() || s.Similarity(member) < minDiff {
			return true
		}
	}
	return false
}

// purgeHalf evicts the costlier half of the pool: it ranks members
// descending by cost, compacts the cheaper half into the filled prefix while
// pushing the evicted Solution objects to the tail as reusable scratch
// buffers for future insertSolution calls, recomputes best/worst, and resets
// the stagnation clock to currIter.
func (p *Pool) purgeHalf(currIter int) {
	ranked := make([]Pair, p.curSize)
	for i := 0; i < p.curSize; i++ {
		ranked[i] = Pair{Cost: p.solutions[i].Cost(), I: i}
	}
	heapSortDescending(ranked)

	cut := p.curSize / 2
	doomed := make([]bool, p.curSize)
	for i := 0; i < cut; i++ {
		doomed[ranked[i].I] = true
	}

	kept := make([]*Solution, 0, p.curSize-cut)
	spare := make([]*Solution, 0, cut)
	for i := 0; i < p.curSize; i++ {
		if doomed[i] {
			spare = append(spare, p.solutions[i])
		} else {
			kept = append(kept, p.solutions[i])
		}
	}
	copy(p.solutions, kept)
	copy(p.solutions[len(kept):], spare)

	p.curSize = len(kept)
	p.refreshBestWorst()
	p.lastImprovIter = currIter
}

// sampleGuide draws a pool index proportionally to how different each
// member is from current: members more unlike current are more likely to be
// picked, mixing exploration into the relink walk. If the pool is empty of
// diversity (every member identical to current), it returns a uniformly
// random index instead.
func (p *Pool) sampleGuide(current *Solution, e *Engine) int {
	n := p.curSize
	prefix := make([]int, n)
	total := 0
	for i := 0; i < n; i++ {
		total += current.Similarity(p.solutions[i])
		prefix[i] = total
	}
	if total == 0 {
		return e.RNG.Intn(n)
	}
	draw := e.RNG.Intn(total)
	for i := 0; i < n; i++ {
		if draw < prefix[i] {
			return i
		}
	}
	return n - 1
}

// delta returns the cost change of swapping positions i and j within s,
// using the same 2-opt formula as Engine.improvement but against an
// arbitrary solution rather than the engine's own working solution — needed
// because ExecutePathRelink walks a scratch copy, not e.S. Each other fixed
// position k contributes both the d[k][i]/d[k][j] term (k before the swapped
// pair) and the d[i][k]/d[j][k] term (k after the swapped pair); D and F need
// not be symmetric, so neither term can be dropped or merged with the other.
func (e *Engine) delta(s *Solution, i, j int) int64 {
	n := e.Inst.N()
	pi, pj := s.At(i), s.At(j)
	var d int64
	for k := 0; k < n; k++ {
		if k == i || k == j {
			continue
		}
		pk := s.At(k)
		d += (e.Inst.Dist(k, i) - e.Inst.Dist(k, j)) * (e.Inst.Flow(pk, pi) - e.Inst.Flow(pk, pj))
		d += (e.Inst.Dist(i, k) - e.Inst.Dist(j, k)) * (e.Inst.Flow(pi, pk) - e.Inst.Flow(pj, pk))
	}
	d += (e.Inst.Dist(i, j) - e.Inst.Dist(j, i)) * (e.Inst.Flow(pi, pj) - e.Inst.Flow(pj, pi))
	return d
}

// ExecutePathRelink walks a copy of start toward end, one differing
// position at a time, tracking the cheapest locally-optimized state reached
// along the way (best) and the cheapest intermediate local optimum visited
// (lopt: a state strictly cheaper than both its predecessor and successor on
// the walk). It returns best if best is cheaper than end, else lopt if one
// was found, else best.
func (e *Engine) ExecutePathRelink(start, end *Solution) *Solution {
	n := e.Inst.N()
	s := NewSolution(n)
	s.CopyFrom(start)

	best := NewSolution(n)
	best.CopyFrom(s)

	var lopt *Solution
	var prevCost, prevPrevCost int64
	prevSnapshot := NewSolution(n)
	prevSnapshot.CopyFrom(s)
	prevCost = s.Cost()
	appliedSteps := 0

	for i := 0; i < n; i++ {
		if s.At(i) == end.At(i) {
			continue
		}
		j := s.PositionOf(end.At(i))
		d := e.delta(s, i, j)
		s.Swap(i, j)
		s.SetCost(s.Cost() - d)

		if s.Cost() < best.Cost() {
			e.S.CopyFrom(s)
			e.LocalSearch(time.Time{})
			best.CopyFrom(e.S)
		}

		if appliedSteps >= 1 && prevCost < prevPrevCost && prevCost < s.Cost() {
			if lopt == nil || prevCost < lopt.Cost() {
				if lopt == nil {
					lopt = NewSolution(n)
				}
				lopt.CopyFrom(prevSnapshot)
			}
		}

		prevPrevCost = prevCost
		prevCost = s.Cost()
		prevSnapshot.CopyFrom(s)
		appliedSteps++
	}

	switch {
	case best.Cost() < end.Cost():
		return best
	case lopt != nil:
		return lopt
	default:
		return best
	}
}

// relinkForward runs the forward half of path-relinking against the pool.
// While the pool is filling, e.S is admitted directly as long as it is not a
// near-duplicate of an existing member; once the pool is full, e.S is
// relinked toward a sampled guide and replaced by the result.
func (e *Engine) relinkForward(p *Pool) {
	if !p.Full() {
		if !p.alreadyPresent(e.S) {
			p.insertSolution(e.S)
		}
		return
	}
	guide := p.solutions[p.sampleGuide(e.S, e)]
	result := e.ExecutePathRelink(e.S, guide)
	e.S.CopyFrom(result)
}

// relinkReverse runs the reverse half of path-relinking: once the pool is
// full, e.S is relinked *from* a sampled guide *toward* itself and replaced
// by the result. It is a no-op while the pool is still filling.
func (e *Engine) relinkReverse(p *Pool) {
	if !p.Full() {
		return
	}
	guide := p.solutions[p.sampleGuide(e.S, e)]
	result := e.ExecutePathRelink(guide, e.S)
	e.S.CopyFrom(result)
}

// UpdateOutcome reports what Engine.update did to the pool.
type UpdateOutcome int

const (
	// UpdateNone means the pool was left unchanged.
	UpdateNone UpdateOutcome = iota
	// UpdateAdmitted means e.S displaced an existing pool member.
	UpdateAdmitted
	// UpdatePurged means the pool's costlier half was evicted.
	UpdatePurged
)

// update applies the pool's admission and stagnation policy, called after
// both relink passes each driver iteration. A not-yet-full pool is left
// alone (relinkForward already handles insertion while filling). Once full,
// e.S displaces the pool's most similar member whose cost is no lower than
// e.S's own, provided e.S beats the pool's best, or beats its worst while not
// already present; ties in similarity break on a coin flip. Otherwise, once
// currIter has gone maxIterNoImprov driver iterations without an admission,
// the pool purges its costlier half.
func (e *Engine) update(p *Pool, currIter int) UpdateOutcome {
	if !p.Full() {
		return UpdateNone
	}
	cur := e.S
	best := p.solutions[p.bestIdx]
	worst := p.solutions[p.worstIdx]

	admit := cur.Cost() < best.Cost() || (cur.Cost() < worst.Cost() && !p.alreadyPresent(cur))
	if admit {
		candidate := -1
		var candidateSimilarity int
		for i := 0; i < p.curSize; i++ {
			member := p.solutions[i]
			if member.Cost() < cur.Cost() {
				continue
			}
			sim := cur.Similarity(member)
			switch {
			case candidate == -1, sim < candidateSimilarity:
				candidate, candidateSimilarity = i, sim
			case sim == candidateSimilarity && coinFlip(e.RNG):
				candidate = i
			}
		}
		if candidate != -1 {
			p.solutions[candidate].CopyFrom(cur)
			p.refreshBestWorst()
			p.lastImprovIter = currIter
			return UpdateAdmitted
		}
		return UpdateNone
	}

	if currIter-p.lastImprovIter >= maxIterNoImprov {
		p.purgeHalf(currIter)
		return UpdatePurged
	}
	return UpdateNone
}

// PostOptimization exhaustively relinks every ordered pair of pool members
// after the main driver loop ends: it repeatedly snapshots the pool,
// empties it, and relinks every (i,j) and (j,i) pair from the snapshot back
// in, admitting results via insertSolution/update and tracking the best
// solution seen. It stops once a full sweep fails to improve e.Best.
func (e *Engine) PostOptimization(p *Pool, currIter int) {
	for {
		improved := false
		bestBefore := e.Best.Cost()

		snapshot := make([]*Solution, p.curSize)
		for i, s := range p.solutions[:p.curSize] {
			cp := NewSolution(s.N())
			cp.CopyFrom(s)
			snapshot[i] = cp
		}
		snapSize := p.curSize
		p.curSize = 0
		p.bestIdx, p.worstIdx = -1, -1

		for i := 0; i < snapSize; i++ {
			for j := 0; j < snapSize; j++ {
				if i == j {
					continue
				}
				result := e.ExecutePathRelink(snapshot[i], snapshot[j])
				e.S.CopyFrom(result)
				if !p.Full() {
					p.insertSolution(e.S)
				} else {
					e.update(p, currIter)
				}
				e.updateBest()
			}
		}

		if e.Best.Cost() < bestBefore {
			improved = true
		}
		if !improved {
			return
		}
	}
}
