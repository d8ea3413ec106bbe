package imesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestERefineSplitsEdgeLength(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m)
	require.NoError(t, err)

	var target int
	for e := range im.E {
		if !im.EIsBorder(e) {
			target = e
			break
		}
	}
	original := im.L[target]
	nT := len(im.T)
	nV := len(im.V)

	v := im.ERefine(target, 0.5)
	require.NotEqual(t, -1, v)
	require.Equal(t, nV+1, len(im.V))
	require.Equal(t, nT+2, len(im.T))
	require.NoError(t, im.CheckConsistency())

	sum := 0.0
	for _, h := range im.AdjVH(v) {
		sum += im.L[im.H[h][hEdge]]
	}
	require.Greater(t, sum, 0.0)
	_ = original
}

func TestERefineRefusesTinyEdge(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m)
	require.NoError(t, err)
	var target int
	for e := range im.E {
		target = e
		break
	}
	im.L[target] = LMin
	require.Equal(t, -1, im.ERefine(target, 0.5))
}

func TestAddVertexInTriangleSplitsIntoThree(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m)
	require.NoError(t, err)

	nT := len(im.T)
	h0 := im.T[0]
	flat := im.TFlatten(h0)
	c := im.TCenter(h0, flat)
	v := im.AddVertexInTriangle(0, c)
	require.Equal(t, nT+2, len(im.T))
	require.NoError(t, im.CheckConsistency())
	require.Len(t, im.AdjVH(v), 3)
}

func TestChew93ImprovesMinAngle(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m)
	require.NoError(t, err)
	im.Delaunay()

	before := im.GetAngleMin()
	im.Chew93(math.Pi/6, 40)
	require.NoError(t, im.CheckConsistency())
	after := im.GetAngleMin()
	require.GreaterOrEqual(t, after, before-1e-9)
}
