package solve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveDiagonalSystem(t *testing.T) {
	sys := NewSystem(2)
	sys.Add(0, 0, 2)
	sys.Add(1, 1, 4)

	var s Solver
	x, err := s.Solve(sys, []float64{4, 8})
	require.NoError(t, err)
	require.InDelta(t, 2, x[0], 1e-9)
	require.InDelta(t, 2, x[1], 1e-9)
}

func TestLSQRMinimumNormForSingularSystem(t *testing.T) {
	sys := NewSystem(2)
	sys.Add(0, 0, 1)
	sys.Add(0, 1, -1)
	sys.Add(1, 0, -1)
	sys.Add(1, 1, 1)

	var s Solver
	x, err := s.LSQR(sys, []float64{0, 0})
	require.NoError(t, err)
	require.InDelta(t, x[0], x[1], 1e-6)
}
