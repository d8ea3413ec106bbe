package imesh

import (
	"math"

	"github.com/wceles/intrinsic-triangulation/geom"
)

// TCenter returns the circumcenter of the (flattened) triangle
// bounded by h0 if it is interior, or the barycenter if it touches the
// border.
func (im *IMesh) TCenter(h0 int, v [3]geom.Vec2) geom.Vec2 {
	if im.TOnBorder(h0) {
		return geom.Barycenter(v[0], v[1], v[2])
	}
	return geom.Circumcenter(v[0], v[1], v[2])
}

// VertexDisplacement relocates Steiner vertex v to the area-weighted
// average of its incident triangles' centers (circumcenter for
// interior triangles, barycenter for border-touching ones). Only
// non-border Steiner vertices may move; extrinsic and border vertices
// return false unchanged. The move is rejected — leaving the mesh
// unmodified — if it would flip any incident triangle. If tset is
// non-nil, the modified triangles are marked in it.
func (im *IMesh) VertexDisplacement(v int, tset TriSet) bool {
	if im.IsExtrinsic(v) {
		return false
	}
	if im.BorderH(v) != -1 {
		return false
	}

	hlist := []int{im.V[v]}
	for {
		h := im.Mate(im.Previous(hlist[len(hlist)-1]))
		if h == hlist[0] {
			break
		}
		hlist = append(hlist, h)
	}

	plist := make([]geom.Vec2, len(hlist))
	phi := 0.0
	for i, h := range hlist {
		l := im.L[im.H[h][hEdge]]
		plist[i] = geom.Vec2{X: l * math.Cos(phi), Y: l * math.Sin(phi)}
		phi += im.HAngle(h)
	}

	n := len(plist)
	v0 := geom.Vec2{}
	atotal := 0.0
	for i := 0; i < n; i++ {
		tri := [3]geom.Vec2{{}, plist[i], plist[(i+1)%n]}
		c := im.TCenter(hlist[i], tri)
		a := geom.Area(tri[0], tri[1], tri[2])
		v0.X += c.X * a
		v0.Y += c.Y * a
		atotal += a
	}
	v0.X /= atotal
	v0.Y /= atotal

	flist := im.moveAllImages(v, hlist, v0, plist)

	for i := 0; i < n; i++ {
		d := geom.Orient(flist[i], flist[(i+1)%n], v0) / 2 / flist[i].Dist(flist[(i+1)%n])
		if d <= geom.FlipTol {
			return false
		}
	}

	for _, h0 := range hlist {
		im.updateRemoval(im.Mate(h0))
	}
	for i, h := range hlist {
		e := im.H[h][hEdge]
		im.L[e] = v0.Dist(flist[i])
	}
	for _, h := range hlist {
		im.updateInsertion(im.Mate(h))
	}
	if tset != nil {
		for _, h := range hlist {
			tset[im.H[h][hTriangle]] = true
		}
	}
	return true
}

// moveAllImages re-expresses the 1-ring positions plist (computed with
// v at the origin) in the frame where v has moved to v0: halfedges
// whose mate also originates at v (a non-manifold self-loop around a
// single logical vertex) get translated; all others keep their
// v-centered coordinates.
func (im *IMesh) moveAllImages(v int, hlist []int, v0 geom.Vec2, plist []geom.Vec2) []geom.Vec2 {
	flist := make([]geom.Vec2, len(hlist))
	for i, h := range hlist {
		w := im.H[im.Mate(h)][hOrigin]
		if w == v {
			flist[i] = plist[i].Add(v0)
		} else {
			flist[i] = plist[i]
		}
	}
	return flist
}

// DisplaceDelaunay relocates every Steiner vertex once and then
// re-enforces the Delaunay condition.
func (im *IMesh) DisplaceDelaunay() {
	for v := im.numExtrinsicV; v < len(im.V); v++ {
		im.VertexDisplacement(v, nil)
	}
	im.Delaunay()
}

// DisplaceAll relocates every Steiner vertex n times in succession.
func (im *IMesh) DisplaceAll(n int) {
	for i := 0; i < n; i++ {
		for v := im.numExtrinsicV; v < len(im.V); v++ {
			im.VertexDisplacement(v, nil)
		}
	}
}
