package imesh

import (
	"math"

	"github.com/wceles/intrinsic-triangulation/geom"
)

// teFlatten builds a 2-D isometric embedding of extrinsic triangle te
// in its own plane: its first vertex (in halfedge order) at the
// origin, via the Gram-Schmidt frame (tangent along the first edge,
// bitangent = normal x tangent) derived from the triangle's own
// plane.
func (im *IMesh) teFlatten(te int) [3]geom.Vec2 {
	h0 := im.HE.T[te]
	h1 := im.HE.Next(h0)
	h2 := im.HE.Next(h1)
	c0 := im.HE.C[im.HE.H[h0][hOrigin]]
	c1 := im.HE.C[im.HE.H[h1][hOrigin]]
	c2 := im.HE.C[im.HE.H[h2][hOrigin]]

	u := c1.Sub(c0)
	w := c2.Sub(c0)
	n := u.Cross(w).Normalize()
	t := u.Normalize()
	b := n.Cross(t)

	return [3]geom.Vec2{
		{},
		{X: t.Dot(u), Y: b.Dot(u)},
		{X: t.Dot(w), Y: b.Dot(w)},
	}
}

// extrinsicToWorld maps barycentric coordinates uvw, taken relative to
// extrinsic triangle te's three corners in halfedge order, to its true
// 3-D position on the supporting mesh.
func (im *IMesh) extrinsicToWorld(te int, uvw [3]float64) geom.Vec3 {
	h0 := im.HE.T[te]
	h1 := im.HE.Next(h0)
	h2 := im.HE.Next(h1)
	c0 := im.HE.C[im.HE.H[h0][hOrigin]]
	c1 := im.HE.C[im.HE.H[h1][hOrigin]]
	c2 := im.HE.C[im.HE.H[h2][hOrigin]]
	return c0.Scale(uvw[0]).Add(c1.Scale(uvw[1])).Add(c2.Scale(uvw[2]))
}

// pointLocation walks the intrinsic mesh looking for the triangle
// containing p, a point expressed in the absolute frame whose origin
// coincides with halfedge h0's origin and in which h0 points at angle
// phi0. At each step the current triangle is laid out in that frame
// from its intrinsic edge lengths (no stored flattening is reused
// across steps, unlike the old per-call TFlatten design), and the walk
// crosses whichever far edge p lies beyond, following the mate
// halfedge. The walk stops, returning p's (possibly out-of-range)
// barycentric coordinates in the current triangle, when p is found or
// the crossing would leave through the border.
func (im *IMesh) pointLocation(p geom.Vec2, h0 int, phi0 float64) (int, [3]float64) {
	l0 := im.L[im.H[h0][hEdge]]
	origin := geom.Vec2{}

	maxIter := 4*len(im.T) + 16
	for iter := 0; iter < maxIter; iter++ {
		h1 := im.Next(h0)
		h2 := im.Next(h1)
		l1 := im.L[im.H[h1][hEdge]]
		l2 := im.L[im.H[h2][hEdge]]

		alpha := geom.InteriorAngle(l0, l2, l1)
		phi1 := phi0 + math.Pi - alpha

		v0 := origin
		v1 := geom.Vec2{X: v0.X + l0*math.Cos(phi0), Y: v0.Y + l0*math.Sin(phi0)}
		v2 := geom.Vec2{X: v1.X + l1*math.Cos(phi1), Y: v1.Y + l1*math.Sin(phi1)}

		area := geom.Area(v0, v1, v2)
		if area == 0 {
			return h0, [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
		}
		u := geom.Area(p, v1, v2) / area
		v := geom.Area(p, v2, v0) / area
		w := 1 - u - v
		if u >= 0 && v >= 0 && w >= 0 {
			return h0, [3]float64{u, v, w}
		}

		beta := geom.InteriorAngle(l0, l1, l2)
		switch {
		case u < 0 && geom.Crossing(v1, v2, p, origin):
			if m := im.Mate(h1); m != -1 {
				h0, phi0, l0, origin = m, phi1+math.Pi, l1, v2
				continue
			}
		case v < 0 && geom.Crossing(v2, v0, p, origin):
			if m := im.Mate(h2); m != -1 {
				h0, phi0, l0 = m, phi0+beta, l2
				continue
			}
		case w < 0 && geom.Crossing(v0, v1, p, origin):
			if m := im.Mate(h0); m != -1 {
				h0, phi0, l0, origin = m, phi0+math.Pi, im.L[im.H[m][hEdge]], v1
				continue
			}
		}
		return h0, [3]float64{u, v, w}
	}
	return h0, [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
}

// TePointLocation locates the point of extrinsic triangle te given by
// barycentric coordinates uvw (in te's own halfedge order) within the
// intrinsic mesh. It roots the walk at te's support, S[te]/A[te], the
// coupling maintained incrementally by updateInsertion/updateRemoval
// as the intrinsic mesh is refined and flipped, and returns the
// containing intrinsic triangle's halfedge together with the point's
// barycentric coordinates in it.
func (im *IMesh) TePointLocation(te int, uvw [3]float64) (int, [3]float64) {
	v := im.teFlatten(te)
	p := geom.FromBarycentric(v[0], v[1], v[2], uvw)
	return im.pointLocation(p, im.S[te], im.A[te])
}

// SubdivisionFragment is one triangular piece of the common
// subdivision between the intrinsic mesh and its supporting extrinsic
// mesh: Extrinsic names the supporting triangle contributing the
// fragment's true geometry, Intrinsic the overlapping intrinsic
// triangle, and Corners the fragment's three vertices in 3-D.
type SubdivisionFragment struct {
	Extrinsic int
	Intrinsic int
	Corners   [3]geom.Vec3
}

// collectOverlappingTriangles walks the intrinsic mesh starting from
// extrinsic triangle te's support, laying out every visited intrinsic
// triangle in te's own local frame (the one ce was flattened into) by
// accumulating edge lengths and turning angles along the walk, mirrors
// she.py's search_overlapping_triangles/get_overlapping_triangles.
// Every visited triangle whose image clips against ce contributes the
// fan-triangulated intersection, its corners converted from
// barycentric-in-ce back to true 3-D positions on te.
func (im *IMesh) collectOverlappingTriangles(te int, ce [3]geom.Vec2) []SubdivisionFragment {
	var out []SubdivisionFragment
	visited := make(map[int]bool)

	var walk func(v0 geom.Vec2, h0 int, phi0 float64)
	walk = func(v0 geom.Vec2, h0 int, phi0 float64) {
		t := im.H[h0][hTriangle]
		if visited[t] {
			return
		}
		visited[t] = true

		h1 := im.Next(h0)
		h2 := im.Next(h1)
		e0 := im.H[h0][hEdge]
		e1 := im.H[h1][hEdge]
		phi1 := phi0 + math.Pi - im.HAngle(h1)
		v1 := geom.Vec2{X: v0.X + im.L[e0]*math.Cos(phi0), Y: v0.Y + im.L[e0]*math.Sin(phi0)}
		v2 := geom.Vec2{X: v1.X + im.L[e1]*math.Cos(phi1), Y: v1.Y + im.L[e1]*math.Sin(phi1)}

		clipped := geom.Clip(ce, []geom.Vec2{v0, v1, v2})
		if len(clipped) >= 3 {
			for i := 1; i+1 < len(clipped); i++ {
				uvw0 := geom.Barycentric(ce[0], ce[1], ce[2], clipped[0])
				uvw1 := geom.Barycentric(ce[0], ce[1], ce[2], clipped[i])
				uvw2 := geom.Barycentric(ce[0], ce[1], ce[2], clipped[i+1])
				out = append(out, SubdivisionFragment{
					Extrinsic: te,
					Intrinsic: t,
					Corners: [3]geom.Vec3{
						im.extrinsicToWorld(te, uvw0),
						im.extrinsicToWorld(te, uvw1),
						im.extrinsicToWorld(te, uvw2),
					},
				})
			}
		}
		if m1 := im.Mate(h1); m1 != -1 {
			walk(v2, m1, phi1+math.Pi)
		}
		if m2 := im.Mate(h2); m2 != -1 {
			beta := geom.InteriorAngle(im.L[e0], im.L[e1], im.L[im.H[h2][hEdge]])
			walk(v0, m2, phi0+beta)
		}
	}
	walk(geom.Vec2{}, im.S[te], im.A[te])
	return out
}

// GenerateCommonSubdivision overlays the intrinsic mesh onto its own
// supporting extrinsic mesh im.HE, producing the overlay triangulation
// whose faces are the pairwise intersections of extrinsic and
// intrinsic triangles. Every extrinsic triangle is flattened via
// teFlatten and its overlapping intrinsic triangles are found by
// walking outward from its support, S[te]/A[te].
func (im *IMesh) GenerateCommonSubdivision() []SubdivisionFragment {
	var out []SubdivisionFragment
	for te := range im.HE.T {
		ce := im.teFlatten(te)
		out = append(out, im.collectOverlappingTriangles(te, ce)...)
	}
	return out
}
