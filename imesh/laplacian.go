package imesh

import (
	"math"

	"github.com/wceles/intrinsic-triangulation/solve"
)

// CotWij returns the cotangent edge weight of edge e: half the sum of
// the cotangents of the two angles opposite it (or just the one angle
// on the border).
func (im *IMesh) CotWij(e int) float64 {
	h0 := im.E[e][0]
	cot := func(a float64) float64 { return math.Cos(a) / math.Sin(a) }
	if im.EIsBorder(e) {
		return 0.5 * cot(im.TOppositeAngle(h0))
	}
	h1 := im.E[e][1]
	return 0.5 * (cot(im.TOppositeAngle(h0)) + cot(im.TOppositeAngle(h1)))
}

// CotArea returns the barycentric (one-third rule) mixed Voronoi area
// assigned to vertex v, summed over its incident triangles.
func (im *IMesh) CotArea(v int) float64 {
	total := 0.0
	for _, h := range im.AdjVH(v) {
		total += im.HArea(im.T[im.H[h][hTriangle]]) / 3
	}
	return total
}

// LaplacianMatrix assembles the mass-normalized cotangent Laplacian L
// (n x n, n = number of vertices): for every edge (i, j), with w_ij
// the edge's full (unhalved) cotangent weight and w_i = 1/(2*CotArea
// (i)), row i accumulates L[i][j] += w_ij*w_i and L[i][i] -= w_ij*w_i.
// The diagonal is negative and each row is independently normalized by
// its own vertex's mixed Voronoi area, so L is not symmetric.
func (im *IMesh) LaplacianMatrix() *solve.System {
	n := len(im.V)
	sys := solve.NewSystem(n)
	for e, pair := range im.E {
		h0 := pair[0]
		h1 := im.Next(h0)
		i := im.H[h0][hOrigin]
		j := im.H[h1][hOrigin]
		wij := 2 * im.CotWij(e)
		wi := 1 / (2 * im.CotArea(i))
		wj := 1 / (2 * im.CotArea(j))
		sys.Add(i, j, wij*wi)
		sys.Add(i, i, -wij*wi)
		sys.Add(j, i, wij*wj)
		sys.Add(j, j, -wij*wj)
	}
	return sys
}

// MassMatrix assembles the diagonal lumped mass matrix M, with
// M[i][i] equal to vertex i's mixed Voronoi area.
func (im *IMesh) MassMatrix() *solve.System {
	n := len(im.V)
	sys := solve.NewSystem(n)
	for v := 0; v < n; v++ {
		sys.Add(v, v, im.CotArea(v))
	}
	return sys
}

// DiffusionMatrix assembles the implicit backward-Euler heat operator
// I - dt*L, used by HeatDiffusion.
func (im *IMesh) DiffusionMatrix(dt float64) *solve.System {
	n := len(im.V)
	sys := solve.NewSystem(n)
	for v := 0; v < n; v++ {
		sys.Add(v, v, 1)
	}
	l := im.LaplacianMatrix()
	for k, w := range l.Entries() {
		sys.Add(k[0], k[1], -dt*w)
	}
	return sys
}

// pinSystem eliminates the Dirichlet degrees of freedom named by fixed
// (vertex -> prescribed value) from sys/rhs. It first, using the
// unmodified system, subtracts every fixed column's contribution from
// each row's right-hand side; it then drops every entry touching a
// fixed row or column, sets that row's diagonal to 1, and sets its
// right-hand side to the prescribed value. HeatDiffusion and Poisson
// share this helper; she.py performs the equivalent elimination once
// in two phases (HeatDiffusion) and once per constraint sequentially
// (Poisson), with the same net effect on the remaining free rows.
func pinSystem(sys *solve.System, rhs []float64, fixed map[int]float64) (*solve.System, []float64) {
	n := sys.Rows
	b := make([]float64, n)
	copy(b, rhs)
	for k, w := range sys.Entries() {
		i, j := k[0], k[1]
		if v, ok := fixed[j]; ok {
			b[i] -= w * v
		}
	}

	out := solve.NewSystem(n)
	for k, w := range sys.Entries() {
		i, j := k[0], k[1]
		if _, ok := fixed[i]; ok {
			continue
		}
		if _, ok := fixed[j]; ok {
			continue
		}
		out.Add(i, j, w)
	}
	for v, val := range fixed {
		out.Add(v, v, 1)
		b[v] = val
	}
	return out, b
}

// HeatDiffusion solves (I - dt*L) u = 0 subject to u[v] = value for
// every (v, value) in sources, the short-time step of the heat method
// for computing geodesic distance from a set of source vertices.
func (im *IMesh) HeatDiffusion(sources map[int]float64, dt float64) ([]float64, error) {
	n := len(im.V)
	sys := im.DiffusionMatrix(dt)
	rhs := make([]float64, n)
	pinned, b := pinSystem(sys, rhs, sources)
	var s solve.Solver
	return s.Solve(pinned, b)
}

// Poisson solves Lu = rhs subject to u[v] = value for every (v, value)
// in fixed, using the negated (positive-diagonal) Laplacian so the
// resulting system is solved the same way as DiffusionMatrix's.
func (im *IMesh) Poisson(rhs []float64, fixed map[int]float64) ([]float64, error) {
	n := len(im.V)
	l := im.LaplacianMatrix()
	sys := solve.NewSystem(n)
	for k, w := range l.Entries() {
		sys.Add(k[0], k[1], -w)
	}
	b := make([]float64, n)
	for i, v := range rhs {
		b[i] = -v
	}
	pinned, bb := pinSystem(sys, b, fixed)
	var s solve.Solver
	return s.Solve(pinned, bb)
}

// DataTransfer fits a scalar field over the supporting extrinsic
// mesh's vertices that best reproduces an intrinsic field solution,
// by least squares over f*len(im.V) rows in total (raised to the pin
// count if that is larger). If useV, solution is indexed by intrinsic
// vertex; the extrinsic vertices that coincide one-to-one with the
// intrinsic mesh's original vertices (indices 0..numExtrinsicV) each
// take a direct pin row, and the remaining rows are random sample
// points that interpolate solution barycentrically at each sample's
// containing intrinsic triangle. If !useV, solution is indexed by
// intrinsic triangle and every row is a sample taking its value
// directly. Rows the sampler does not fill stay empty.
func (im *IMesh) DataTransfer(solution []float64, f float64, useV bool) []float64 {
	ne := len(im.HE.V)
	nv := len(im.V)
	n := int(math.Round(f * float64(nv)))

	pinRows := 0
	if useV {
		pinRows = im.numExtrinsicV
	}
	if n < pinRows {
		n = pinRows
	}

	sys := solve.NewRectSystem(n, ne)
	b := make([]float64, n)

	row := 0
	for v := 0; v < pinRows; v++ {
		sys.Add(row, v, 1)
		b[row] = solution[v]
		row++
	}

	for _, sample := range im.HE.GenerateRandomPoints(n - row) {
		if row >= n {
			break
		}
		inc := im.HE.TGetInc(sample.Triangle)
		for k := 0; k < 3; k++ {
			sys.Add(row, inc[k], sample.UVW[k])
		}
		h, bary := im.TePointLocation(sample.Triangle, sample.UVW)
		if useV {
			vi := im.TGetInc(im.H[h][hTriangle])
			b[row] = solution[vi[0]]*bary[0] + solution[vi[1]]*bary[1] + solution[vi[2]]*bary[2]
		} else {
			b[row] = solution[im.H[h][hTriangle]]
		}
		row++
	}

	var s solve.Solver
	out, err := s.LSQR(sys, b)
	if err != nil {
		return nil
	}
	return out
}
