package imesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTePointLocationAtConstructionIsIdentity(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m)
	require.NoError(t, err)

	for te := range im.HE.T {
		uvw := [3]float64{0.2, 0.3, 0.5}
		h, bary := im.TePointLocation(te, uvw)
		require.Equal(t, te, im.H[h][hTriangle])
		require.InDelta(t, uvw[0], bary[0], 1e-6)
		require.InDelta(t, uvw[1], bary[1], 1e-6)
		require.InDelta(t, uvw[2], bary[2], 1e-6)
	}
}

func TestTePointLocationTracksRefinement(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m)
	require.NoError(t, err)
	im.Delaunay()
	im.Chew93(math.Pi/6, 20)
	require.NoError(t, im.CheckConsistency())

	for te := range im.HE.T {
		h, bary := im.TePointLocation(te, [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3})
		require.GreaterOrEqual(t, h, 0)
		sum := bary[0] + bary[1] + bary[2]
		require.InDelta(t, 1, sum, 1e-6)
	}
}

func TestGenerateCommonSubdivisionCoversExtrinsicArea(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m)
	require.NoError(t, err)

	frags := im.GenerateCommonSubdivision()
	require.NotEmpty(t, frags)

	area := make(map[int]float64)
	for _, f := range frags {
		e0 := f.Corners[1].Sub(f.Corners[0])
		e1 := f.Corners[2].Sub(f.Corners[0])
		area[f.Extrinsic] += e0.Cross(e1).Norm() / 2
	}
	for te := range im.HE.T {
		require.InDelta(t, im.HE.TArea(te), area[te], 1e-6)
	}
}

func TestGenerateCommonSubdivisionAfterRefinement(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m)
	require.NoError(t, err)
	im.Delaunay()
	im.Chew93(math.Pi/6, 15)
	require.NoError(t, im.CheckConsistency())

	frags := im.GenerateCommonSubdivision()
	require.NotEmpty(t, frags)

	area := make(map[int]float64)
	for _, f := range frags {
		e0 := f.Corners[1].Sub(f.Corners[0])
		e1 := f.Corners[2].Sub(f.Corners[0])
		area[f.Extrinsic] += e0.Cross(e1).Norm() / 2
	}
	for te := range im.HE.T {
		require.InDelta(t, im.HE.TArea(te), area[te], 1e-4)
	}
}
