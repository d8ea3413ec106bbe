// Package mesh implements the indexed halfedge representation of a
// 2-manifold triangle mesh with border: the extrinsic mesh that the
// imesh package's intrinsic triangulation stays tethered to.
//
// All entities (vertices, edges, triangles, halfedges) are addressed
// by nonnegative integer indices into dense, append-only arrays; -1
// means "none" (border or isolated). This mirrors the HE data
// structure of Celes (Tecgraf/PUC-Rio): a halfedge is four integers
// (origin vertex, edge, triangle, next), an edge is two halfedge
// indices, and there is no per-element heap allocation.
package mesh

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/wceles/intrinsic-triangulation/geom"
)

// Halfedge fields, kept as named constants rather than a struct so
// that imesh can deep-copy the same flat representation cheaply.
const (
	hOrigin = iota
	hEdge
	hTriangle
	hNext
)

// Mesh is the indexed halfedge mesh of a 2-manifold triangle surface
// with border.
type Mesh struct {
	C []geom.Vec3 // vertex coordinates
	V []int       // one outgoing halfedge per vertex, or -1
	E [][2]int    // the two halfedges of an edge; E[e][1] == -1 on border
	T []int       // one halfedge per triangle
	H [][4]int    // [origin, edge, triangle, next] per halfedge
}

// NewMesh builds a Mesh from vertex coordinates and triangle vertex
// indices. Construction fails if any edge is referenced by more than
// two triangles, if a triangle repeats a vertex, or if a coordinate is
// non-finite.
func NewMesh(coords []geom.Vec3, tris [][3]int) (*Mesh, error) {
	m := &Mesh{}
	for _, c := range coords {
		if err := checkFinite(c); err != nil {
			return nil, err
		}
		m.AddVertex(c.X, c.Y, c.Z)
	}
	if len(tris) > 0 {
		if err := m.sew(tris); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func checkFinite(c geom.Vec3) error {
	for _, x := range []float64{c.X, c.Y, c.Z} {
		if x != x || x > 1e300 || x < -1e300 {
			return errors.Errorf("non-finite coordinate: %v", c)
		}
	}
	return nil
}

// AddVertex appends an isolated vertex and returns its index.
func (m *Mesh) AddVertex(x, y, z float64) int {
	v := len(m.V)
	m.C = append(m.C, geom.Vec3{X: x, Y: y, Z: z})
	m.V = append(m.V, -1)
	return v
}

// AddVertexDedup appends a vertex unless a coordinate-quantized hash
// (factor 1e7) already maps to an existing one, in which case it
// returns the existing index. dedup must be a non-nil map shared
// across calls for a single input batch.
func (m *Mesh) AddVertexDedup(x, y, z float64, dedup map[string]int) int {
	const prec = 1e7
	key := fmt.Sprintf("%d|%d|%d", int64(prec*x), int64(prec*y), int64(prec*z))
	if v, ok := dedup[key]; ok {
		return v
	}
	v := m.AddVertex(x, y, z)
	dedup[key] = v
	return v
}

type edgeKey struct {
	v0, v1 int
	h      int
	t      int
}

// sew builds halfedges for all triangles at once and stitches edges by
// sorting directed-edge endpoints.
func (m *Mesh) sew(tris [][3]int) error {
	var edges []edgeKey
	for i, t := range tris {
		if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
			return errors.Errorf("triangle %d has a repeated vertex: %v", i, t)
		}
		h := len(m.H)
		m.H = append(m.H,
			[4]int{t[0], -1, i, h + 1},
			[4]int{t[1], -1, i, h + 2},
			[4]int{t[2], -1, i, h},
		)
		m.V[t[0]] = h
		m.V[t[1]] = h + 1
		m.V[t[2]] = h + 2
		m.T = append(m.T, h)
		edges = append(edges, appendEdge(t[0], t[1], h, i))
		edges = append(edges, appendEdge(t[1], t[2], h+1, i))
		edges = append(edges, appendEdge(t[2], t[0], h+2, i))
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].v0 != edges[j].v0 {
			return edges[i].v0 < edges[j].v0
		}
		return edges[i].v1 < edges[j].v1
	})
	for i := 0; i < len(edges); {
		if i+1 < len(edges) && edges[i].v0 == edges[i+1].v0 && edges[i].v1 == edges[i+1].v1 {
			if i+2 < len(edges) && edges[i].v0 == edges[i+2].v0 && edges[i].v1 == edges[i+2].v1 {
				return errors.New("more than two uses per edge")
			}
			e := len(m.E)
			m.E = append(m.E, [2]int{edges[i].h, edges[i+1].h})
			m.H[edges[i].h][hEdge] = e
			m.H[edges[i+1].h][hEdge] = e
			i += 2
		} else {
			e := len(m.E)
			m.E = append(m.E, [2]int{edges[i].h, -1})
			m.H[edges[i].h][hEdge] = e
			i++
		}
	}
	return nil
}

func appendEdge(v0, v1, h, t int) edgeKey {
	if v0 < v1 {
		return edgeKey{v0, v1, h, t}
	}
	return edgeKey{v1, v0, h, t}
}

// AddTriangle incrementally adds a triangle, preserving manifoldness.
// It assumes the input keeps the mesh manifold and does not defensively
// reject non-manifold input; callers building by incremental insertion
// (Triangulate) are responsible for that.
func (m *Mesh) AddTriangle(v0, v1, v2 int) int {
	t := len(m.T)
	inc := [3]int{v0, v1, v2}
	var mate [3]int
	for i := 0; i < 3; i++ {
		mate[i] = m.FindVV(inc[(i+1)%3], inc[i])
	}
	h0 := len(m.H)
	for i := 0; i < 3; i++ {
		h := len(m.H)
		var e int
		if mate[i] == -1 {
			e = len(m.E)
			m.E = append(m.E, [2]int{h, -1})
		} else {
			e = m.H[mate[i]][hEdge]
			m.E[e][1] = h
		}
		next := h + 1
		if i == 2 {
			next = h0
		}
		m.H = append(m.H, [4]int{inc[i], e, t, next})
		m.V[inc[i]] = h
	}
	m.T = append(m.T, h0)
	return t
}
