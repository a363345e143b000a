package grasp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scarvalho/qapgrasp/permcheck"
	"github.com/scarvalho/qapgrasp/rng"
)

func TestRandomizeProducesValidPermutation(t *testing.T) {
	s := NewSolution(6)
	s.Randomize(rng.New(42))

	require.NoError(t, permcheck.Validate(s.Perm()))
	for i := 0; i < s.N(); i++ {
		require.Equal(t, i, s.PositionOf(s.At(i)), "rev must invert p at position %d", i)
	}
}

func TestRandomizeIsDeterministicForFixedSeed(t *testing.T) {
	a := NewSolution(8)
	b := NewSolution(8)
	a.Randomize(rng.New(7))
	b.Randomize(rng.New(7))
	require.Equal(t, a.Perm(), b.Perm())
}

func TestRandomizeOverwritesExistingPermutation(t *testing.T) {
	s := NewSolution(5)
	s.Swap(0, 4)
	s.SetCost(123)
	s.Randomize(rng.New(1))

	require.NoError(t, permcheck.Validate(s.Perm()))
	for i := 0; i < s.N(); i++ {
		require.Equal(t, i, s.PositionOf(s.At(i)))
	}
}

func TestSwapKeepsRevConsistent(t *testing.T) {
	s := NewSolution(4)
	s.Swap(1, 3)
	require.Equal(t, []int{0, 3, 2, 1}, s.Perm())
	for i := 0; i < s.N(); i++ {
		require.Equal(t, i, s.PositionOf(s.At(i)))
	}
}

func TestAssignMovesValueToPosition(t *testing.T) {
	s := NewSolution(4)
	s.Assign(0, 3)
	require.Equal(t, 3, s.At(0))
	require.Equal(t, 0, s.PositionOf(3))
	require.NoError(t, permcheck.Validate(s.Perm()))
}
