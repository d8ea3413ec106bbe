package mesh

import (
	"math"
	"sort"
)

// Triangulate builds a 2-D Delaunay-like triangulation of points
// (X,Y) by incremental insertion in x-sorted order. It appends the
// points as new vertices (z=0) and triangulates them in place.
func (m *Mesh) Triangulate(X, Y []float64) {
	base := len(m.V)
	for i := range X {
		m.AddVertex(X[i], Y[i], 0)
	}
	n := len(X)
	order := make([]int, n)
	for i := range order {
		order[i] = base + i
	}
	sort.Slice(order, func(i, j int) bool { return m.C[order[i]].X < m.C[order[j]].X })

	if m.CCW(order[0], order[1], order[2]) {
		m.AddTriangle(order[0], order[1], order[2])
	} else {
		m.AddTriangle(order[0], order[2], order[1])
	}
	bt := order[0]
	for _, i := range order[3:] {
		hbt := m.BorderH(bt)
		if m.HCCW(hbt, i) {
			he := m.HPrevBorder(hbt)
			for m.HCCW(he, i) {
				hbt = he
				he = m.HPrevBorder(he)
			}
		} else {
			hbt = m.HNextBorder(hbt)
			for !m.HCCW(hbt, i) {
				hbt = m.HNextBorder(hbt)
			}
		}
		bt = m.H[hbt][hOrigin]
		m.AddTriangle(m.H[hbt][hOrigin], i, m.H[m.Next(hbt)][hOrigin])
		he := m.HNextBorder(hbt)
		for m.HCCW(he, i) {
			m.AddTriangle(m.H[he][hOrigin], i, m.H[m.Next(he)][hOrigin])
			he = m.HNextBorder(he)
		}
	}
}

// CreateGrid returns vertex coordinates and triangle indices for an
// nx-by-ny regular grid of size lx-by-ly in the z=0 plane, split into
// two triangles per cell.
func CreateGrid(nx, ny int, lx, ly float64) ([][3]float64, [][3]int) {
	dx, dy := lx/float64(nx), ly/float64(ny)
	var verts [][3]float64
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			verts = append(verts, [3]float64{float64(i) * dx, float64(j) * dy, 0})
		}
	}
	var tris [][3]int
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			ii := j*(nx+1) + i
			ij := ii + 1
			ji := (j+1)*(nx+1) + i
			jj := ji + 1
			tris = append(tris, [3]int{ii, ij, ji})
			tris = append(tris, [3]int{ij, jj, ji})
		}
	}
	return verts, tris
}

// CreateSphere returns a sphere mesh obtained by mapping a nx-by-ny
// grid through spherical coordinates.
func CreateSphere(nx, ny int) ([][3]float64, [][3]int) {
	verts, tris := CreateGrid(nx, ny, 1, 1)
	for i, c := range verts {
		theta := c[0] * math.Pi
		phi := c[1] * 2 * math.Pi
		verts[i] = [3]float64{
			math.Sin(theta) * math.Cos(phi),
			math.Sin(theta) * math.Sin(phi),
			math.Cos(theta),
		}
	}
	return verts, tris
}

// CreateTorus returns a torus mesh (major radius R, minor radius r)
// obtained by mapping a nx-by-ny grid through toroidal coordinates.
func CreateTorus(R, r float64, nx, ny int) ([][3]float64, [][3]int) {
	verts, tris := CreateGrid(nx, ny, 1, 1)
	for i, c := range verts {
		theta := c[0] * 2 * math.Pi
		phi := c[1] * 2 * math.Pi
		verts[i] = [3]float64{
			(R + r*math.Cos(theta)) * math.Cos(phi),
			(R + r*math.Cos(theta)) * math.Sin(phi),
			r * math.Sin(theta),
		}
	}
	for i, f := range tris {
		tris[i] = [3]int{f[0], f[2], f[1]}
	}
	return verts, tris
}
