package imesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wceles/intrinsic-triangulation/geom"
)

func TestVertexDisplacementRejectsExtrinsic(t *testing.T) {
	m := buildGrid(t, 4, 4)
	im, err := New(m)
	require.NoError(t, err)
	require.False(t, im.VertexDisplacement(0, nil))
}

func TestVertexDisplacementMovesSteinerVertex(t *testing.T) {
	m := buildGrid(t, 5, 5)
	im, err := New(m)
	require.NoError(t, err)

	tc := len(im.T) / 2
	h0 := im.T[tc]
	flat := im.TFlatten(h0)
	c := geom.Barycenter(flat[0], flat[1], flat[2])
	v := im.AddVertexInTriangle(tc, c)
	require.NoError(t, im.CheckConsistency())

	im.VertexDisplacement(v, nil)
	require.NoError(t, im.CheckConsistency())
}

func TestDisplaceAllKeepsConsistency(t *testing.T) {
	m := buildGrid(t, 4, 4)
	im, err := New(m)
	require.NoError(t, err)
	im.Delaunay()
	im.RefineMesh(0.5)
	im.DisplaceAll(2)
	require.NoError(t, im.CheckConsistency())
}
