package mesh

import (
	"math"

	"github.com/wceles/intrinsic-triangulation/geom"
)

const flipTol = geom.FlipTol

func (m *Mesh) xy(v int) geom.Vec2 { return m.C[v].XY() }

// CCW reports whether v0,v1,v2 (their x,y coordinates) are
// counter-clockwise oriented.
func (m *Mesh) CCW(v0, v1, v2 int) bool {
	return geom.CCW(m.xy(v0), m.xy(v1), m.xy(v2))
}

// Orient returns the signed orientation of v0,v1,v2 in the x,y plane.
func (m *Mesh) Orient(v0, v1, v2 int) float64 {
	return geom.Orient(m.xy(v0), m.xy(v1), m.xy(v2))
}

// Incircle reports whether v lies strictly inside the circle through
// v0, v1, v2 (2-D, using the x,y coordinates of C).
func (m *Mesh) Incircle(v0, v1, v2, v int) bool {
	a, b, c, d := m.xy(v0), m.xy(v1), m.xy(v2), m.xy(v)
	// 4x4 determinant lifted to the paraboloid z = x^2+y^2.
	row := func(p geom.Vec2) [3]float64 { return [3]float64{p.X, p.Y, p.X*p.X + p.Y*p.Y} }
	ra, rb, rc, rd := row(a), row(b), row(c), row(d)
	det3 := func(m [3][3]float64) float64 {
		return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
			m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
			m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	}
	// Expand the 4x4 determinant (with a trailing column of ones) by
	// cofactors along that column.
	sub := func(skip int) float64 {
		rows := [4][3]float64{ra, rb, rc, rd}
		var pick [3][3]float64
		k := 0
		for i := 0; i < 4; i++ {
			if i == skip {
				continue
			}
			pick[k] = rows[i]
			k++
		}
		return det3(pick)
	}
	det := -sub(0) + sub(1) - sub(2) + sub(3)
	// Cocircular points give det == 0 only in exact arithmetic; a
	// roundoff residue below this bound (scaled by the largest entry of
	// each column) counts as on the circle, so both diagonals of a
	// cocircular quad stay legal.
	var cx, cy, cz float64
	for _, r := range [4][3]float64{ra, rb, rc, rd} {
		cx, cy, cz = math.Max(cx, math.Abs(r[0])), math.Max(cy, math.Abs(r[1])), math.Max(cz, r[2])
	}
	return det > 1e-10*cx*cy*cz
}

// ELegal reports whether edge e satisfies the Delaunay condition:
// border edges are always legal; an interior edge is legal iff neither
// opposite vertex lies strictly inside the circumcircle defined by the
// other triangle.
func (m *Mesh) ELegal(e int) bool {
	if m.EIsBorder(e) {
		return true
	}
	h0, h1 := m.E[e][0], m.E[e][1]
	n0, n1 := m.Next(h0), m.Next(h1)
	p0, p1 := m.Next(n0), m.Next(n1)
	v0, v1 := m.H[h0][hOrigin], m.H[h1][hOrigin]
	w0, w1 := m.H[p1][hOrigin], m.H[p0][hOrigin]
	return !m.Incircle(v0, v1, w1, w0) && !m.Incircle(v0, w0, v1, w1)
}

// SwapEdge flips interior edge e if the surrounding quadrilateral is
// strictly convex. Returns false (without modifying the mesh) if e is
// on the border or the quadrilateral is not convex.
func (m *Mesh) SwapEdge(e int) bool {
	if m.EIsBorder(e) {
		return false
	}
	h0, h1 := m.E[e][0], m.E[e][1]
	n0, n1 := m.Next(h0), m.Next(h1)
	p0, p1 := m.Next(n0), m.Next(n1)
	v0, v1 := m.H[h0][hOrigin], m.H[h1][hOrigin]
	w0, w1 := m.H[p1][hOrigin], m.H[p0][hOrigin]
	t0, t1 := m.H[h0][hTriangle], m.H[h1][hTriangle]

	l := m.xy(w0).Dist(m.xy(w1))
	d0 := geom.Orient(m.xy(w0), m.xy(w1), m.xy(v0)) / l / 2
	d1 := geom.Orient(m.xy(w0), m.xy(w1), m.xy(v1)) / l / 2
	if !((d0 > flipTol && d1 < -flipTol) || (d0 < -flipTol && d1 > flipTol)) {
		return false
	}

	m.H[h0] = [4]int{w0, e, t0, p0}
	m.H[h1] = [4]int{w1, e, t1, p1}
	m.H[n0] = [4]int{v1, m.H[n0][hEdge], t1, h1}
	m.H[n1] = [4]int{v0, m.H[n1][hEdge], t0, h0}
	m.H[p0] = [4]int{w1, m.H[p0][hEdge], t0, n1}
	m.H[p1] = [4]int{w0, m.H[p1][hEdge], t1, n0}
	m.V[v0] = n1
	m.V[v1] = n0
	m.V[w0] = h0
	m.V[w1] = h1
	m.T[t0] = h0
	m.T[t1] = h1
	return true
}

// Delaunay repeatedly scans all edges, swapping illegal ones, until a
// full scan performs no swaps.
func (m *Mesh) Delaunay() {
	done := false
	for !done {
		done = true
		for e := 0; e < len(m.E); e++ {
			if !m.ELegal(e) {
				if m.SwapEdge(e) {
					done = false
				}
			}
		}
	}
}

// HCCW reports whether the two vertices of h's edge form a
// counter-clockwise triangle with v.
func (m *Mesh) HCCW(h, v int) bool {
	return m.CCW(m.H[h][hOrigin], v, m.H[m.Next(h)][hOrigin])
}
