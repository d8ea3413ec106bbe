package imesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wceles/intrinsic-triangulation/mesh"
)

func TestDelaunayAllLegalAfterFlip(t *testing.T) {
	m := buildGrid(t, 5, 5)
	im, err := New(m)
	require.NoError(t, err)
	im.Delaunay()
	for e := range im.E {
		require.True(t, im.ELegal(e))
	}
	require.NoError(t, im.CheckConsistency())
}

func TestSwapEdgePreservesEdgeCount(t *testing.T) {
	verts := [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}}
	he, err := mesh.NewMesh(toVec3s(verts), tris)
	require.NoError(t, err)
	im, err := New(he)
	require.NoError(t, err)

	nEdges := len(im.E)
	for e := range im.E {
		if !im.EIsBorder(e) {
			im.SwapEdge(e)
			break
		}
	}
	require.Equal(t, nEdges, len(im.E))
	require.NoError(t, im.CheckConsistency())
}

func TestConditionalSwapEdgeOnThinQuadKeepsConsistency(t *testing.T) {
	verts := [][3]float64{{0, 0, 0}, {10, 0, 0}, {5, 0.01, 0}, {5, -0.01, 0}}
	tris := [][3]int{{0, 1, 2}, {1, 0, 3}}
	he, err := mesh.NewMesh(toVec3s(verts), tris)
	require.NoError(t, err)
	im, err := New(he)
	require.NoError(t, err)
	for e := range im.E {
		if !im.EIsBorder(e) {
			im.ConditionalSwapEdge(e)
		}
	}
	require.NoError(t, im.CheckConsistency())
}
