package grasp

import (
	"context"
	"time"

	"github.com/scarvalho/qapgrasp/rng"
)

// Params configures a Solve call. Solve applies WithDefaults, which fills in
// every field a caller left at its zero value (so Seed 0 runs with the
// default seed, and Look4 0 leaves the early-stop check disabled).
type Params struct {
	// Alpha is the RCL greediness parameter in (0,1]: smaller means greedier.
	Alpha float64
	// Beta narrows the phase-1 candidate window before Alpha is applied.
	Beta float64
	// MaxIter bounds the number of GRASP+path-relink iterations.
	MaxIter int
	// Look4 is a target cost at or below which Solve stops early. A negative
	// value (the default) disables the early-stop check; zero is treated as
	// unset and disables it as well.
	Look4 int64
	// EliteSize is the elite pool's capacity.
	EliteSize int
	// MaxTime bounds wall-clock run time. Zero disables the time budget.
	MaxTime time.Duration
	// Seed seeds the deterministic RNG driving every random choice in the run.
	Seed uint32

	// Logger receives diagnostic messages. Nil means no-op.
	Logger Logger
	// Metrics receives solver event counts. Nil means no-op.
	Metrics Metrics
}

// defaultParams mirrors the original reference parameters.
var defaultParams = Params{
	Alpha:     0.25,
	Beta:      0.5,
	MaxIter:   100,
	Look4:     -1,
	EliteSize: 10,
	MaxTime:   0,
	Seed:      270001,
}

// WithDefaults returns a copy of p with every zero-valued field replaced by
// the package default, and a non-nil Logger/Metrics.
func (p Params) WithDefaults() Params {
	out := p
	if out.Alpha == 0 {
		out.Alpha = defaultParams.Alpha
	}
	if out.Beta == 0 {
		out.Beta = defaultParams.Beta
	}
	if out.MaxIter == 0 {
		out.MaxIter = defaultParams.MaxIter
	}
	if out.Look4 == 0 {
		out.Look4 = defaultParams.Look4
	}
	if out.EliteSize == 0 {
		out.EliteSize = defaultParams.EliteSize
	}
	if out.Seed == 0 {
		out.Seed = defaultParams.Seed
	}
	if out.Logger == nil {
		out.Logger = nopLogger{}
	}
	if out.Metrics == nil {
		out.Metrics = nopMetrics{}
	}
	return out
}

// Result reports the outcome of a Solve call.
type Result struct {
	Cost       int64
	Perm       []int
	Iterations int
}

// Solve runs GRASP with path-relinking against inst until MaxIter iterations
// elapse, params.Look4 is reached, params.MaxTime elapses, or ctx is
// cancelled — whichever comes first. Each iteration constructs a fresh
// candidate, intensifies it with extra local search, relinks it against the
// elite pool in both directions, and offers it to the pool's admission
// policy. After the loop, the pool runs exhaustive post-optimization and the
// best solution found anywhere in the run is returned.
func Solve(ctx context.Context, inst *Instance, params Params) (Result, error) {
	p := params.WithDefaults()

	e := NewEngine(inst, p.Alpha, p.Beta, rng.New(p.Seed))
	e.Best.Objective(inst)

	pool := NewPool(p.EliteSize, inst.N())

	var deadline time.Time
	if p.MaxTime > 0 {
		deadline = time.Now().Add(p.MaxTime)
	}

	iter := 0
mainLoop:
	for ; iter < p.MaxIter; iter++ {
		if p.Look4 >= 0 && e.Best.Cost() <= p.Look4 {
			p.Logger.Infof("target cost %d reached at iteration %d", p.Look4, iter)
			break
		}
		if expired(deadline) {
			p.Logger.Infof("time budget exhausted at iteration %d", iter)
			break
		}
		select {
		case <-ctx.Done():
			p.Logger.Infof("context cancelled at iteration %d", iter)
			break mainLoop
		default:
		}

		p.Metrics.IterationStarted()

		e.Constructor()
		p.Metrics.ConstructorCalled()

		e.ExtraLocalSearch(deadline)
		p.Metrics.LocalSearchCalled()

		e.relinkForward(pool)
		p.Metrics.PathRelinkCalled("forward")

		e.relinkReverse(pool)
		p.Metrics.PathRelinkCalled("reverse")

		switch e.update(pool, iter) {
		case UpdateAdmitted:
			p.Metrics.PoolAdmitted()
			p.Logger.Debugf("pool admission at iteration %d: %s", iter, pool.CostStats())
		case UpdatePurged:
			p.Metrics.PoolPurged()
			p.Logger.Debugf("pool purged at iteration %d: %s", iter, pool.CostStats())
		}

		e.updateBest()
		p.Metrics.BestCostUpdated(e.Best.Cost())
		p.Logger.Debugf("iteration %d: best=%d", iter, e.Best.Cost())
	}

	if pool.Len() > 0 {
		e.PostOptimization(pool, iter)
		e.updateBest()
	}

	perm := make([]int, e.Best.N())
	copy(perm, e.Best.Perm())

	return Result{
		Cost:       e.Best.Cost(),
		Perm:       perm,
		Iterations: iter,
	}, nil
}
