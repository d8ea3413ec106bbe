package imesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLaplacianRowsSumToZero(t *testing.T) {
	m := buildGrid(t, 4, 4)
	im, err := New(m)
	require.NoError(t, err)
	im.Delaunay()

	l := im.LaplacianMatrix()
	n := len(im.V)
	rowSum := make([]float64, n)
	for k, w := range l.Entries() {
		rowSum[k[0]] += w
	}
	for _, s := range rowSum {
		require.InDelta(t, 0, s, 1e-8)
	}
}

func TestHeatDiffusionPinsSourceValue(t *testing.T) {
	m := buildGrid(t, 4, 4)
	im, err := New(m)
	require.NoError(t, err)
	im.Delaunay()

	sources := map[int]float64{0: 3}
	u, err := im.HeatDiffusion(sources, 0.01)
	require.NoError(t, err)
	require.InDelta(t, 3, u[0], 1e-9)
	for _, v := range u {
		require.False(t, math.IsNaN(v))
	}
}

func TestPoissonPinsFixedValue(t *testing.T) {
	m := buildGrid(t, 4, 4)
	im, err := New(m)
	require.NoError(t, err)
	im.Delaunay()

	rhs := make([]float64, len(im.V))
	fixed := map[int]float64{0: 2, 1: -1}
	u, err := im.Poisson(rhs, fixed)
	require.NoError(t, err)
	require.InDelta(t, 2, u[0], 1e-9)
	require.InDelta(t, -1, u[1], 1e-9)
}

func TestDataTransferReproducesConstantField(t *testing.T) {
	m := buildGrid(t, 4, 4)
	im, err := New(m)
	require.NoError(t, err)
	im.Delaunay()

	solution := make([]float64, len(im.V))
	for i := range solution {
		solution[i] = 2.5
	}
	out := im.DataTransfer(solution, 3, true)
	require.Len(t, out, len(im.HE.V))
	for _, v := range out {
		require.InDelta(t, 2.5, v, 1e-6)
	}
}
