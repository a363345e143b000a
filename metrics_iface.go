package grasp

// Metrics decouples the solver from any concrete metrics backend. Solve's
// main loop reports counts as events happen; post-optimization reports
// nothing. A nil Params.Metrics is replaced by nopMetrics, which discards
// everything, so a caller that never sets Params.Metrics pays no cost for
// instrumentation it doesn't want.
type Metrics interface {
	IterationStarted()
	ConstructorCalled()
	LocalSearchCalled()
	PathRelinkCalled(direction string)
	PoolAdmitted()
	PoolPurged()
	BestCostUpdated(cost int64)
}

// nopMetrics discards every observation. It is the default when
// Params.Metrics is nil.
type nopMetrics struct{}

func (nopMetrics) IterationStarted()          {}
func (nopMetrics) ConstructorCalled()         {}
func (nopMetrics) LocalSearchCalled()         {}
func (nopMetrics) PathRelinkCalled(string)    {}
func (nopMetrics) PoolAdmitted()              {}
func (nopMetrics) PoolPurged()                {}
func (nopMetrics) BestCostUpdated(cost int64) {}
