package imesh

import (
	"math"

	"github.com/wceles/intrinsic-triangulation/geom"
)

// Mate returns the other halfedge of h's edge, or -1 on border.
func (im *IMesh) Mate(h int) int {
	e := im.H[h][hEdge]
	if im.E[e][0] == h {
		return im.E[e][1]
	}
	return im.E[e][0]
}

// Next returns the next halfedge around h's triangle.
func (im *IMesh) Next(h int) int { return im.H[h][hNext] }

// Previous returns the previous halfedge around h's triangle.
func (im *IMesh) Previous(h int) int { return im.H[im.H[h][hNext]][hNext] }

// HIsBorder reports whether h's edge is on the border.
func (im *IMesh) HIsBorder(h int) bool { return im.E[im.H[h][hEdge]][1] == -1 }

// EIsBorder reports whether edge e is on the border.
func (im *IMesh) EIsBorder(e int) bool { return im.E[e][1] == -1 }

// AdjVH collects the halfedges outgoing from v, in the same order as
// mesh.Mesh.AdjVH.
func (im *IMesh) AdjVH(v int) []int {
	var l []int
	h0 := im.V[v]
	he := h0
	if he == -1 {
		return l
	}
	for {
		l = append(l, he)
		he = im.Mate(he)
		if he == -1 {
			break
		}
		he = im.Next(he)
		if he == h0 {
			return l
		}
	}
	he = im.Mate(im.Previous(h0))
	for he != -1 {
		l = append([]int{he}, l...)
		he = im.Mate(im.Previous(he))
	}
	return l
}

// BorderH returns a border halfedge incident to v, or -1.
func (im *IMesh) BorderH(v int) int {
	h0 := im.V[v]
	he := h0
	if he == -1 {
		return -1
	}
	for !im.HIsBorder(he) {
		he = im.Next(im.Mate(he))
		if he == h0 {
			return -1
		}
	}
	return he
}

// HNextBorder returns the next halfedge on the border polygon.
func (im *IMesh) HNextBorder(h int) int {
	h = im.Next(h)
	for !im.HIsBorder(h) {
		h = im.Next(im.Mate(h))
	}
	return h
}

// HPrevBorder returns the previous halfedge on the border polygon.
func (im *IMesh) HPrevBorder(h int) int {
	h = im.Previous(h)
	for !im.HIsBorder(h) {
		h = im.Previous(im.Mate(h))
	}
	return h
}

// FindVV returns the halfedge from v to vi, or -1.
func (im *IMesh) FindVV(v, vi int) int {
	for _, he := range im.AdjVH(v) {
		if im.H[im.Next(he)][hOrigin] == vi {
			return he
		}
	}
	return -1
}

// TGetInc returns the three vertex indices of triangle t.
func (im *IMesh) TGetInc(t int) [3]int {
	h0 := im.T[t]
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	return [3]int{im.H[h0][hOrigin], im.H[h1][hOrigin], im.H[h2][hOrigin]}
}

// TOnBorder reports whether any vertex of the triangle owning h0 is a
// border vertex.
func (im *IMesh) TOnBorder(h0 int) bool {
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	return im.BorderH(im.H[h0][hOrigin]) != -1 ||
		im.BorderH(im.H[h1][hOrigin]) != -1 ||
		im.BorderH(im.H[h2][hOrigin]) != -1
}

// TGetEdges returns the three edge indices of triangle t.
func (im *IMesh) TGetEdges(t int) [3]int {
	h0 := im.T[t]
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	return [3]int{im.H[h0][hEdge], im.H[h1][hEdge], im.H[h2][hEdge]}
}

// TGetLens returns the three edge lengths of triangle t.
func (im *IMesh) TGetLens(t int) [3]float64 {
	e := im.TGetEdges(t)
	return [3]float64{im.L[e[0]], im.L[e[1]], im.L[e[2]]}
}

// THalfedges returns the three halfedges of triangle t in cycle order.
func (im *IMesh) THalfedges(t int) [3]int {
	h0 := im.T[t]
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	return [3]int{h0, h1, h2}
}

// HAngle returns the intrinsic interior angle at h0's origin, computed
// from edge lengths via the law of cosines.
func (im *IMesh) HAngle(h0 int) float64 {
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	l0 := im.L[im.H[h0][hEdge]]
	l1 := im.L[im.H[h1][hEdge]]
	l2 := im.L[im.H[h2][hEdge]]
	return geom.InteriorAngle(l0, l1, l2)
}

// TOppositeAngle returns the intrinsic angle opposite halfedge he
// within its triangle.
func (im *IMesh) TOppositeAngle(he int) float64 {
	h0 := he
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	l0 := im.L[im.H[h0][hEdge]]
	l1 := im.L[im.H[h1][hEdge]]
	l2 := im.L[im.H[h2][hEdge]]
	return geom.InteriorAngle(l1, l0, l2)
}

// TGetAngles returns the three interior angles of triangle t.
func (im *IMesh) TGetAngles(t int) [3]float64 {
	h0 := im.T[t]
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	return [3]float64{im.HAngle(h0), im.HAngle(h1), im.HAngle(h2)}
}

// GetAngleTable returns the interior angles of every triangle.
func (im *IMesh) GetAngleTable() [][3]float64 {
	out := make([][3]float64, len(im.T))
	for t := range im.T {
		out[t] = im.TGetAngles(t)
	}
	return out
}

// ELegal reports whether edge e satisfies the intrinsic Delaunay
// condition (sum of opposite angles <= pi, within tolerance).
func (im *IMesh) ELegal(e int) bool {
	if im.EIsBorder(e) {
		return true
	}
	h0, h1 := im.E[e][0], im.E[e][1]
	a := im.TOppositeAngle(h0)
	b := im.TOppositeAngle(h1)
	return a+b <= math.Pi+1e-5
}

// HEdgeLen returns the edge length associated with halfedge he.
func (im *IMesh) HEdgeLen(he int) float64 { return im.L[im.H[he][hEdge]] }

// HArea returns the area of the triangle owning halfedge h0, computed
// from its three edge lengths via Heron's formula.
func (im *IMesh) HArea(h0 int) float64 {
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	l0 := im.L[im.H[h0][hEdge]]
	l1 := im.L[im.H[h1][hEdge]]
	l2 := im.L[im.H[h2][hEdge]]
	s := (l0 + l1 + l2) / 2
	return sqrt(s * (s - l0) * (s - l1) * (s - l2))
}

// ComputeAngleMin returns, per vertex, the smallest angle among its
// incident triangle corners.
func (im *IMesh) ComputeAngleMin() []float64 {
	result := make([]float64, len(im.V))
	for i := range result {
		result[i] = 2 * math.Pi
	}
	for t := range im.T {
		h := im.T[t]
		for i := 0; i < 3; i++ {
			v := im.H[h][hOrigin]
			a := im.HAngle(h)
			if a < result[v] {
				result[v] = a
			}
			h = im.Next(h)
		}
	}
	return result
}

// VCurvatures returns the angle-deficit Gaussian curvature estimate at
// every vertex (2*pi minus the sum of incident angles).
func (im *IMesh) VCurvatures() []float64 {
	result := make([]float64, len(im.V))
	for i := range result {
		result[i] = 2 * math.Pi
	}
	for t := range im.T {
		h := im.T[t]
		for i := 0; i < 3; i++ {
			v := im.H[h][hOrigin]
			result[v] -= im.HAngle(h)
			h = im.Next(h)
		}
	}
	return result
}

// GetAngleMin returns the smallest interior angle over non-narrow
// triangles.
func (im *IMesh) GetAngleMin() float64 {
	amin := 2 * math.Pi
	for t := range im.T {
		if im.TNarrow(t) {
			continue
		}
		for _, a := range im.TGetAngles(t) {
			if a < amin {
				amin = a
			}
		}
	}
	return amin
}

// GetFreeAngleMin returns the smallest interior angle at any extrinsic
// (non-Steiner) vertex corner, ignoring the narrow-triangle exemption.
func (im *IMesh) GetFreeAngleMin() float64 {
	amin := 2 * math.Pi
	for _, h0 := range im.T {
		h1 := im.Next(h0)
		h2 := im.Next(h1)
		for _, h := range [3]int{h0, h1, h2} {
			if im.IsExtrinsic(im.H[h][hOrigin]) {
				if a := im.HAngle(h); a < amin {
					amin = a
				}
			}
		}
	}
	return amin
}

// GetAngleMax returns the largest interior angle over non-narrow
// triangles.
func (im *IMesh) GetAngleMax() float64 {
	amax := 0.0
	for t := range im.T {
		if im.TNarrow(t) {
			continue
		}
		for _, a := range im.TGetAngles(t) {
			if a > amax {
				amax = a
			}
		}
	}
	return amax
}

// VRing1HE returns, for vertex i, the halfedges that delimit its
// one-ring (the edge opposite i in each incident triangle's fan).
func (im *IMesh) VRing1HE(i int) []int {
	he := im.AdjVH(i)
	out := make([]int, len(he))
	for j, h := range he {
		out[j] = im.Next(h)
	}
	return out
}

func sqrt(x float64) float64 {
	if x < 0 {
		x = 0
	}
	return math.Sqrt(x)
}
