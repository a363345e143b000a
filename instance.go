package grasp

import "fmt"

// Instance holds a QAP problem: dimension n and the flow and distance
// matrices, stored row-major as flat length-n*n slices (cell (i,j) lives at
// index i*n+j). Instances are immutable after construction.
type Instance struct {
	n    int
	flow []int64
	dist []int64
}

// NewInstance builds an Instance from row-major flow and distance matrices.
// It returns ErrInvalidDimension if n < 2 or either matrix does not have
// exactly n*n entries.
func NewInstance(n int, flow, dist []int64) (*Instance, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidDimension, n)
	}
	if len(flow) != n*n {
		return nil, fmt.Errorf("%w: flow has %d entries, want %d", ErrInvalidDimension, len(flow), n*n)
	}
	if len(dist) != n*n {
		return nil, fmt.Errorf("%w: dist has %d entries, want %d", ErrInvalidDimension, len(dist), n*n)
	}
	f := make([]int64, len(flow))
	copy(f, flow)
	d := make([]int64, len(dist))
	copy(d, dist)
	return &Instance{n: n, flow: f, dist: d}, nil
}

// N returns the instance dimension.
func (inst *Instance) N() int { return inst.n }

// Flow returns F[i][j].
func (inst *Instance) Flow(i, j int) int64 { return inst.flow[i*inst.n+j] }

// Dist returns D[i][j].
func (inst *Instance) Dist(i, j int) int64 { return inst.dist[i*inst.n+j] }
