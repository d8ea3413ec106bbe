package imesh

import "math"

// EdgeSet is a working set of edge indices, used by Delaunay
// enforcement and refinement to track edges that still need
// legality checks.
type EdgeSet map[int]bool

// TriSet is a working set of triangle indices, used to collect the
// triangles touched by a batch of operations.
type TriSet map[int]bool

// updateRemoval maintains the supporting-halfedge invariant when
// halfedge h ceases to be incident to its origin vertex: every
// extrinsic triangle currently supported by h is re-pointed to the
// next halfedge around that vertex.
func (im *IMesh) updateRemoval(h int) {
	v := im.H[h][hOrigin]
	if !im.IsExtrinsic(v) {
		return
	}
	for _, he := range im.HE.AdjVH(v) {
		te := im.HE.H[he][2]
		if im.S[te] == h {
			ref := im.Next(im.Mate(h))
			im.S[te] = ref
			im.A[te] -= im.HAngle(ref)
		}
	}
}

// updateInsertion maintains the supporting-halfedge invariant when a
// new halfedge h anchored at its origin vertex appears: if it sits
// immediately before an extrinsic triangle's current support in CCW
// order and the cumulative angle stays within (-pi, 0], it is promoted
// to be the new support.
func (im *IMesh) updateInsertion(h int) {
	v := im.H[h][hOrigin]
	if !im.IsExtrinsic(v) {
		return
	}
	for _, he := range im.HE.AdjVH(v) {
		te := im.HE.H[he][2]
		ref := im.S[te]
		if im.Mate(im.Previous(ref)) == h {
			theta := im.HAngle(ref)
			if im.A[te]+theta <= 0 {
				im.S[te] = h
				im.A[te] += theta
			}
		}
	}
}

// ConditionalSwapEdge flips edge e only if it does not produce an
// overly thin quadrilateral (both pairs of adjacent angles at the
// diagonal must sum to less than 0.95*pi). Returns whether the flip
// was performed.
func (im *IMesh) ConditionalSwapEdge(e int) bool {
	if im.EIsBorder(e) {
		return false
	}
	h := im.E[e]
	a0 := im.HAngle(h[0])
	b0 := im.HAngle(im.Next(h[0]))
	b1 := im.HAngle(h[1])
	a1 := im.HAngle(im.Next(h[1]))
	if a0+a1 < 0.95*math.Pi && b0+b1 < 0.95*math.Pi {
		return im.SwapEdge(e)
	}
	return false
}

// SwapEdge flips intrinsic edge e, recomputing the new diagonal length
// from the law of cosines and maintaining the supporting-halfedge
// invariant via updateRemoval/updateInsertion around the flip.
func (im *IMesh) SwapEdge(e int) bool {
	h0, h1 := im.E[e][0], im.E[e][1]
	n0, n1 := im.Next(h0), im.Next(h1)
	p0, p1 := im.Next(n0), im.Next(n1)
	v0, v1 := im.H[h0][hOrigin], im.H[h1][hOrigin]
	w0, w1 := im.H[p1][hOrigin], im.H[p0][hOrigin]
	t0, t1 := im.H[h0][hTriangle], im.H[h1][hTriangle]

	im.updateRemoval(h0)
	im.updateRemoval(h1)

	a0 := im.TOppositeAngle(n0)
	a1 := im.TOppositeAngle(p1)
	l0 := im.L[im.H[p0][hEdge]]
	l1 := im.L[im.H[n1][hEdge]]
	im.L[e] = math.Sqrt(l0*l0 + l1*l1 - 2*l0*l1*math.Cos(a0+a1))

	im.H[h0] = [4]int{w0, e, t0, p0}
	im.H[h1] = [4]int{w1, e, t1, p1}
	im.H[n0] = [4]int{v1, im.H[n0][hEdge], t1, h1}
	im.H[n1] = [4]int{v0, im.H[n1][hEdge], t0, h0}
	im.H[p0] = [4]int{w1, im.H[p0][hEdge], t0, n1}
	im.H[p1] = [4]int{w0, im.H[p1][hEdge], t1, n0}
	im.V[v0] = n1
	im.V[v1] = n0
	im.V[w0] = h0
	im.V[w1] = h1
	im.T[t0] = h0
	im.T[t1] = h1

	im.updateInsertion(h0)
	im.updateInsertion(h1)
	return true
}

// Delaunay flips every illegal edge of the mesh until none remain,
// and returns the number of flips performed.
func (im *IMesh) Delaunay() int {
	eset := make(EdgeSet, len(im.E))
	for e := range im.E {
		eset[e] = true
	}
	return im.DelaunayFlip(eset, nil)
}

// DelaunayFlip repeatedly pops an edge from eset; if illegal, flips it
// and re-enqueues the four surrounding edges (and, if tset is
// provided, the two affected triangles). Returns the flip count.
func (im *IMesh) DelaunayFlip(eset EdgeSet, tset TriSet) int {
	n := 0
	for len(eset) > 0 {
		var e int
		for k := range eset {
			e = k
			break
		}
		delete(eset, e)
		if !im.ELegal(e) {
			im.SwapEdge(e)
			n++
			h0, h1 := im.E[e][0], im.E[e][1]
			if tset != nil {
				tset[im.H[h0][hTriangle]] = true
				tset[im.H[h1][hTriangle]] = true
			}
			eset[im.H[im.Next(h0)][hEdge]] = true
			eset[im.H[im.Previous(h0)][hEdge]] = true
			eset[im.H[im.Next(h1)][hEdge]] = true
			eset[im.H[im.Previous(h1)][hEdge]] = true
		}
	}
	return n
}
