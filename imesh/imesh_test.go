package imesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wceles/intrinsic-triangulation/geom"
	"github.com/wceles/intrinsic-triangulation/mesh"
)

func buildGrid(t *testing.T, nx, ny int) *mesh.Mesh {
	verts, tris := mesh.CreateGrid(nx, ny, 1, 1)
	m, err := mesh.NewMesh(toVec3s(verts), tris)
	require.NoError(t, err)
	return m
}

func toVec3s(verts [][3]float64) []geom.Vec3 {
	out := make([]geom.Vec3, len(verts))
	for i, v := range verts {
		out[i] = geom.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	return out
}

func TestNewConsistency(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m)
	require.NoError(t, err)
	require.NoError(t, im.CheckConsistency())
	require.Equal(t, len(m.V), len(im.V))
	for e, l := range im.L {
		require.Greater(t, l, 0.0)
		_ = e
	}
}

func TestNewLengthsMatchExtrinsicDistance(t *testing.T) {
	m := buildGrid(t, 2, 2)
	im, err := New(m)
	require.NoError(t, err)
	for e, pair := range im.E {
		h0 := pair[0]
		v0 := im.H[h0][hOrigin]
		v1 := im.H[im.Next(h0)][hOrigin]
		require.InDelta(t, m.Distance(v0, v1), im.L[e], 1e-9)
	}
}

func TestNarrowVertexMarking(t *testing.T) {
	m := buildGrid(t, 4, 4)
	im, err := New(m, WithNarrowAngle(0.01))
	require.NoError(t, err)
	for v := range im.V {
		require.False(t, im.narrow[v])
	}
}

func TestMollificationRestoresInequality(t *testing.T) {
	m := buildGrid(t, 3, 3)
	im, err := New(m, WithMollification(1e-6))
	require.NoError(t, err)
	require.NoError(t, im.CheckConsistency())
}

func TestIsExtrinsic(t *testing.T) {
	m := buildGrid(t, 2, 2)
	im, err := New(m)
	require.NoError(t, err)
	for v := 0; v < len(m.V); v++ {
		require.True(t, im.IsExtrinsic(v))
	}
}
