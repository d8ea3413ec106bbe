package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wceles/intrinsic-triangulation/geom"
)

func toVec3(v [3]float64) geom.Vec3 { return geom.Vec3{X: v[0], Y: v[1], Z: v[2]} }

func buildMesh(t *testing.T, verts [][3]float64, tris [][3]int) *Mesh {
	coords := make([]geom.Vec3, len(verts))
	for i, v := range verts {
		coords[i] = toVec3(v)
	}
	m, err := NewMesh(coords, tris)
	require.NoError(t, err)
	return m
}

func countBorderEdges(m *Mesh) int {
	n := 0
	for _, e := range m.E {
		if e[1] == -1 {
			n++
		}
	}
	return n
}

// S1: CreateGrid(2,2,1,1) -> 9 vertices, 8 triangles, a fully legal
// (already-Delaunay) triangulation.
func TestSeedS1Grid(t *testing.T) {
	verts, tris := CreateGrid(2, 2, 1, 1)
	m := buildMesh(t, verts, tris)
	require.Len(t, m.V, 9)
	require.Len(t, m.T, 8)
	require.Equal(t, 8, countBorderEdges(m))
	for e := range m.E {
		require.True(t, m.ELegal(e))
	}
}

// S2: 2-D point set, triangulate, then delaunay flips exactly one edge.
func TestSeedS2Triangulate(t *testing.T) {
	m := &Mesh{}
	X := []float64{0, 1, 0.5, 0.5}
	Y := []float64{0, 0, 1, 0.4}
	m.Triangulate(X, Y)
	require.Len(t, m.V, 4)
	require.Len(t, m.T, 3)

	flips := 0
	for e := range m.E {
		if !m.ELegal(e) {
			if m.SwapEdge(e) {
				flips++
			}
		}
	}
	require.Equal(t, 1, flips)
}

func TestHalfedgeInvariants(t *testing.T) {
	verts, tris := CreateGrid(3, 3, 1, 1)
	m := buildMesh(t, verts, tris)
	for h := range m.H {
		require.Equal(t, h, m.Next(m.Next(m.Next(h))))
	}
	for e, pair := range m.E {
		if pair[1] == -1 {
			continue
		}
		h0, h1 := pair[0], pair[1]
		require.Equal(t, e, m.H[h0][hEdge])
		require.Equal(t, e, m.H[h1][hEdge])
		require.NotEqual(t, m.H[h0][hOrigin], m.H[h1][hOrigin])
	}
	for v, h := range m.V {
		if h == -1 {
			continue
		}
		require.Equal(t, v, m.H[h][hOrigin])
	}
}

func eulerCharacteristic(m *Mesh) int {
	borders := 0
	seen := map[int]bool{}
	for v := range m.V {
		if seen[v] {
			continue
		}
		bh := m.BorderH(v)
		if bh == -1 {
			continue
		}
		borders++
		h := bh
		for {
			seen[m.H[h][hOrigin]] = true
			h = m.HNextBorder(h)
			if h == bh {
				break
			}
		}
	}
	return len(m.V) - len(m.E) + len(m.T) + borders
}

func TestEulerCharacteristicGrid(t *testing.T) {
	verts, tris := CreateGrid(4, 4, 1, 1)
	m := buildMesh(t, verts, tris)
	require.Equal(t, 2, eulerCharacteristic(m))
	m.Delaunay()
	require.Equal(t, 2, eulerCharacteristic(m))
}

func TestDelaunayIdempotentOnGrid(t *testing.T) {
	verts, tris := CreateGrid(5, 5, 1, 1)
	m := buildMesh(t, verts, tris)
	m.Delaunay()
	for e := range m.E {
		require.True(t, m.ELegal(e))
	}
}

func TestSphereAndTorusGenerators(t *testing.T) {
	verts, tris := CreateSphere(8, 8)
	m := buildMesh(t, verts, tris)
	require.True(t, len(m.T) > 0)

	verts, tris = CreateTorus(1, 0.3, 8, 8)
	m = buildMesh(t, verts, tris)
	require.True(t, len(m.T) > 0)
}

func TestDuplicateEdgeUseRejected(t *testing.T) {
	coords := []geom.Vec3{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}
	tris := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}}
	_, err := NewMesh(coords, tris)
	require.Error(t, err)
}
