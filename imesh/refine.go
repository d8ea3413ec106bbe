package imesh

import (
	"math"

	"github.com/wceles/intrinsic-triangulation/geom"
	"github.com/wceles/intrinsic-triangulation/theap"
)

// TFlatten returns the three vertices of the triangle owning h0,
// isometrically embedded in a local 2-D frame: the origin's vertex at
// (0,0), the next vertex along the positive X axis, and the third
// positioned so all three edge lengths match the intrinsic lengths.
func (im *IMesh) TFlatten(h0 int) [3]geom.Vec2 {
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	l0 := im.L[im.H[h0][hEdge]]
	l1 := im.L[im.H[h1][hEdge]]
	l2 := im.L[im.H[h2][hEdge]]
	ang := geom.InteriorAngle(l0, l1, l2)
	return [3]geom.Vec2{
		{},
		{X: l0},
		{X: l2 * math.Cos(ang), Y: l2 * math.Sin(ang)},
	}
}

// diametralEncroached reports whether point p lies within (or on) the
// diametral circle of segment a-b, i.e. the segment subtends an angle
// of at least pi/2 as seen from p.
func diametralEncroached(a, b, p geom.Vec2) bool {
	return a.Sub(p).Dot(b.Sub(p)) <= 0
}

// edgeParam returns the parameter t, clamped away from the endpoints,
// at which the projection of p onto segment a-b falls: a + t*(b-a) is
// the closest point on the line through a and b.
func edgeParam(a, b, p geom.Vec2) float64 {
	d := b.Sub(a)
	denom := d.Dot(d)
	if denom == 0 {
		return 0.5
	}
	t := p.Sub(a).Dot(d) / denom
	return geom.Clamp(t, 0.05, 0.95)
}

// TRefineIf decides how triangle t should be eliminated: if its Chew
// point (circumcenter, or barycenter when it touches the border) would
// land in the diametral circle of one of its own border edges, that
// border edge must be split instead of inserting the point directly,
// to avoid flattening the boundary. Returns the halfedge of the
// encroached border edge and the parameter along it (from the
// halfedge's origin) closest to the Chew point, or -1 if the Chew
// point can be inserted directly via AddVertexInTriangle.
func (im *IMesh) TRefineIf(t int) (int, float64) {
	h0 := im.T[t]
	v := im.TFlatten(h0)
	c := im.TCenter(h0, v)
	h := h0
	for i := 0; i < 3; i++ {
		if im.HIsBorder(h) && diametralEncroached(v[i], v[(i+1)%3], c) {
			return h, edgeParam(v[i], v[(i+1)%3], c)
		}
		h = im.Next(h)
	}
	return -1, 0
}

// AddVertexInTriangle inserts a new Steiner vertex at local point p
// (in the frame returned by TFlatten(T[t])) strictly inside triangle
// t, splitting it into three. Returns the new vertex index.
func (im *IMesh) AddVertexInTriangle(t int, p geom.Vec2) int {
	h0 := im.T[t]
	h1 := im.Next(h0)
	h2 := im.Next(h1)
	flat := im.TFlatten(h0)

	v := len(im.V)
	im.V = append(im.V, -1)
	im.narrow = append(im.narrow, false)

	d0 := flat[0].Dist(p)
	d1 := flat[1].Dist(p)
	d2 := flat[2].Dist(p)

	e0 := len(im.L)
	im.L = append(im.L, d0)
	e1 := len(im.L)
	im.L = append(im.L, d1)
	e2 := len(im.L)
	im.L = append(im.L, d2)

	tB := len(im.T)
	im.T = append(im.T, 0)
	tC := len(im.T)
	im.T = append(im.T, 0)

	hA := len(im.H) // v1 -> v
	hB := hA + 1     // v -> v0
	hC := hA + 2     // v2 -> v
	hD := hA + 3     // v -> v1
	hE := hA + 4     // v0 -> v
	hF := hA + 5     // v -> v2

	v0 := im.H[h0][hOrigin]
	v1 := im.H[h1][hOrigin]
	v2 := im.H[h2][hOrigin]

	im.H = append(im.H,
		[4]int{v1, e1, t, hB},  // hA: v1 -> v, triangle t
		[4]int{v, e0, t, h0},   // hB: v -> v0, triangle t
		[4]int{v2, e2, tB, hD}, // hC: v2 -> v, triangle tB
		[4]int{v, e1, tB, h1},  // hD: v -> v1, triangle tB
		[4]int{v0, e0, tC, hF}, // hE: v0 -> v, triangle tC
		[4]int{v, e2, tC, h2},  // hF: v -> v2, triangle tC
	)

	im.E = append(im.E, [2]int{hB, hE}, [2]int{hA, hD}, [2]int{hC, hF})

	im.H[h0] = [4]int{v0, im.H[h0][hEdge], t, hA}
	im.H[h1] = [4]int{v1, im.H[h1][hEdge], tB, hC}
	im.H[h2] = [4]int{v2, im.H[h2][hEdge], tC, hE}

	im.T[t] = h0
	im.T[tB] = h1
	im.T[tC] = h2
	im.V[v] = hB

	im.updateInsertion(hA)
	im.updateInsertion(hC)
	im.updateInsertion(hE)

	return v
}

// stellateSide splits the triangle owning halfedge h (origin U,
// destination W, full edge length lenFull before the split) by
// inserting a diagonal from new vertex v (a point lenNear from U along
// U-W) to the triangle's opposite apex. h is repurposed to run U->v on
// edge nearEdge (length lenNear); a new triangle and new halfedge
// farHalf (v->W) are created, with farHalf placed on edge farEdge
// (which the caller may have already created, or -1 to request a
// fresh one). Returns farHalf and the edge it ended up on.
func (im *IMesh) stellateSide(h, v, nearEdge, farEdge int, lenFull, lenNear float64) (farHalf, usedFarEdge int) {
	n := im.Next(h)
	p := im.Next(n)
	t := im.H[h][hTriangle]
	apex := im.H[p][hOrigin]
	w := im.H[n][hOrigin]

	lApex := im.L[im.H[p][hEdge]]
	lOpp := im.L[im.H[n][hEdge]]
	angAtOrigin := geom.InteriorAngle(lenFull, lOpp, lApex)
	lDiag := math.Sqrt(lenNear*lenNear + lApex*lApex - 2*lenNear*lApex*math.Cos(angAtOrigin))

	eDiag := len(im.L)
	im.L = append(im.L, lDiag)
	im.E = append(im.E, [2]int{-1, -1})
	im.L[nearEdge] = lenNear

	if farEdge == -1 {
		farEdge = len(im.L)
		im.L = append(im.L, lenFull-lenNear)
		im.E = append(im.E, [2]int{-1, -1})
	}

	tFar := len(im.T)
	im.T = append(im.T, 0)

	hDiag := len(im.H)     // v -> apex, triangle t
	hFar := hDiag + 1      // v -> w, triangle tFar
	hDiagMate := hDiag + 2 // apex -> v, triangle tFar

	im.H = append(im.H,
		[4]int{v, eDiag, t, p},
		[4]int{v, farEdge, tFar, n},
		[4]int{apex, eDiag, tFar, hFar},
	)
	im.E[eDiag] = [2]int{hDiag, hDiagMate}

	im.H[h] = [4]int{im.H[h][hOrigin], nearEdge, t, hDiag}
	im.H[n] = [4]int{w, im.H[n][hEdge], tFar, hDiagMate}

	im.T[t] = h
	im.T[tFar] = hFar

	im.updateInsertion(hDiagMate)

	return hFar, farEdge
}

// ERefine splits edge e at parameter s along it (from the origin of
// its canonical halfedge E[e][0]), stellating the one or two triangles
// incident to it. s is clamped away from the endpoints to avoid
// producing a degenerate sub-edge. Returns the new vertex index, or -1
// if the edge is no longer than LMin.
func (im *IMesh) ERefine(e int, s float64) int {
	if im.L[e] <= LMin {
		return -1
	}
	s = geom.Clamp(s, 0.05, 0.95)
	lenFull := im.L[e]
	lenNear := lenFull * s
	lenFar := lenFull - lenNear

	h0, h1 := im.E[e][0], im.E[e][1]

	v := len(im.V)
	im.V = append(im.V, -1)
	im.narrow = append(im.narrow, false)

	if h1 == -1 {
		hFar0, eR := im.stellateSide(h0, v, e, -1, lenFull, lenNear)
		im.E[e] = [2]int{h0, -1}
		im.E[eR] = [2]int{hFar0, -1}
		im.V[v] = hFar0
		return v
	}

	hFar0, eR := im.stellateSide(h0, v, e, -1, lenFull, lenNear)
	hFar1, _ := im.stellateSide(h1, v, eR, e, lenFull, lenFar)

	im.E[e] = [2]int{h0, hFar1}
	im.E[eR] = [2]int{hFar0, h1}
	im.V[v] = hFar0

	return v
}

// RefineResult summarizes one Chew93 step.
type RefineResult struct {
	Vertex       int
	NewTriangles []int
	Flips        int
}

// refineStep eliminates one low-quality triangle t: it inserts its
// Chew point directly when safe, or splits an encroached border edge
// instead, then restores the Delaunay condition around the change.
// The touched triangles (new and flip-adjusted) are returned for the
// caller to re-score and re-enqueue.
func (im *IMesh) refineStep(t int) RefineResult {
	tset := make(TriSet)
	eset := make(EdgeSet)

	if encH, s := im.TRefineIf(t); encH != -1 {
		e := im.H[encH][hEdge]
		v := im.ERefine(e, s)
		if v == -1 {
			return RefineResult{Vertex: -1}
		}
		for _, h := range im.AdjVH(v) {
			tset[im.H[h][hTriangle]] = true
			eset[im.H[im.Next(h)][hEdge]] = true
		}
		n := im.DelaunayFlip(eset, tset)
		out := make([]int, 0, len(tset))
		for tt := range tset {
			out = append(out, tt)
		}
		return RefineResult{Vertex: v, NewTriangles: out, Flips: n}
	}

	h0 := im.T[t]
	flat := im.TFlatten(h0)
	c := im.TCenter(h0, flat)
	v := im.AddVertexInTriangle(t, c)
	for _, h := range im.AdjVH(v) {
		tset[im.H[h][hTriangle]] = true
		eset[im.H[im.Next(h)][hEdge]] = true
	}
	n := im.DelaunayFlip(eset, tset)
	out := make([]int, 0, len(tset))
	for tt := range tset {
		out = append(out, tt)
	}
	return RefineResult{Vertex: v, NewTriangles: out, Flips: n}
}

// Chew93 refines the mesh so that every non-narrow triangle has
// minimum angle at least minAngle, using a lazily-invalidated priority
// queue of triangles (worst angle first, largest area breaking ties).
// It stops after maxSteps point insertions even if the target is not
// yet met, to guarantee termination. Returns the number of Steiner
// vertices inserted.
func (im *IMesh) Chew93(minAngle float64, maxSteps int) int {
	q := theap.New(len(im.T))
	push := func(t int) {
		if t >= len(im.T) || im.TNarrow(t) {
			return
		}
		angles := im.TGetAngles(t)
		amin := angles[0]
		for _, a := range angles[1:] {
			if a < amin {
				amin = a
			}
		}
		if amin < minAngle {
			q.Push(t, amin, im.HArea(im.T[t]))
		}
	}
	for t := range im.T {
		push(t)
	}

	inserted := 0
	for inserted < maxSteps {
		t, ok := q.Pop()
		if !ok {
			break
		}
		if t >= len(im.T) {
			continue
		}
		angles := im.TGetAngles(t)
		amin := angles[0]
		for _, a := range angles[1:] {
			if a < amin {
				amin = a
			}
		}
		if amin >= minAngle || im.TNarrow(t) {
			continue
		}
		res := im.refineStep(t)
		if res.Vertex == -1 {
			continue
		}
		inserted++
		for _, tt := range res.NewTriangles {
			push(tt)
		}
	}
	return inserted
}

// RefineMesh is a convenience driver that runs Chew93 with the given
// minimum angle target and a generous step budget proportional to the
// mesh size.
func (im *IMesh) RefineMesh(minAngle float64) int {
	return im.Chew93(minAngle, 50*(len(im.T)+1))
}
