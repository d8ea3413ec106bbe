// Package imesh implements the Supporting-Halfedge intrinsic
// triangulation: a length-based triangulation of the same surface as a
// mesh.Mesh, kept tethered to it via a per-extrinsic-triangle
// "supporting halfedge + angle offset" link. It supports Delaunay
// flipping, Chew-style angle refinement, vertex relocation, point
// location, common-subdivision tracing, and cotangent-Laplacian based
// diffusion/Poisson solves.
package imesh

import (
	"math"

	"github.com/pkg/errors"

	"github.com/wceles/intrinsic-triangulation/geom"
	"github.com/wceles/intrinsic-triangulation/mesh"
)

const (
	hOrigin = iota
	hEdge
	hTriangle
	hNext
)

// LMin is the minimum allowed intrinsic edge length; edge splits below
// this threshold are refused.
const LMin = geom.LMin

// DefaultNarrowAngle is the default threshold (60 degrees) below which
// an extrinsic vertex's total incident angle marks it, and the
// triangles touching it, as narrow: exempt from refinement targeting.
const DefaultNarrowAngle = math.Pi / 3

// IMesh is the intrinsic halfedge mesh layered on top of an extrinsic
// mesh.Mesh. It owns its own copies of the extrinsic topology; mutating
// an IMesh never touches the underlying Mesh.
type IMesh struct {
	HE *mesh.Mesh // supporting extrinsic mesh (read-only from here)

	V []int    // one outgoing halfedge per vertex, or -1
	E [][2]int // the two halfedges of an edge
	T []int    // one halfedge per triangle
	H [][4]int // [origin, edge, triangle, next] per halfedge

	L []float64 // edge length, indexed by edge
	S []int     // supporting intrinsic halfedge per extrinsic triangle
	A []float64 // angle offset in (-pi, 0] per extrinsic triangle

	narrow []bool // true when an (extrinsic) vertex's total angle is narrow

	lmin          float64
	narrowAngle   float64
	numExtrinsicV int
}

// Option configures an IMesh at construction time.
type Option func(*IMesh)

// WithMollification requests that every triangle violating the strict
// triangle inequality by less than delta be mollified: every edge
// length is increased by the smallest uniform epsilon that restores
// the inequality with margin delta everywhere.
func WithMollification(delta float64) Option {
	return func(im *IMesh) { im.mollify(delta) }
}

// WithNarrowAngle overrides the default narrow-vertex angle threshold
// (radians).
func WithNarrowAngle(limit float64) Option {
	return func(im *IMesh) { im.narrowAngle = limit }
}

// New builds an intrinsic triangulation as a deep copy of he's
// topology, with edge lengths equal to the 3-D distances between
// endpoints, and the identity supporting link (S[te] = HE.T[te],
// A[te] = 0).
func New(he *mesh.Mesh, opts ...Option) (*IMesh, error) {
	im := &IMesh{
		HE:            he,
		V:             append([]int(nil), he.V...),
		T:             append([]int(nil), he.T...),
		narrowAngle:   DefaultNarrowAngle,
		numExtrinsicV: len(he.V),
	}
	im.E = make([][2]int, len(he.E))
	copy(im.E, he.E)
	im.H = make([][4]int, len(he.H))
	for i, h := range he.H {
		im.H[i] = h
	}

	im.L = make([]float64, len(he.E))
	lmin := math.Inf(1)
	for e, pair := range he.E {
		h0 := pair[0]
		h1 := he.Next(h0)
		v0 := he.H[h0][0]
		v1 := he.H[h1][0]
		l := he.Distance(v0, v1)
		im.L[e] = l
		if l < lmin {
			lmin = l
		}
	}
	im.lmin = lmin

	im.S = append([]int(nil), he.T...)
	im.A = make([]float64, len(he.T))

	for _, opt := range opts {
		opt(im)
	}
	im.markNarrowVertices(im.narrowAngle)

	if err := im.CheckConsistency(); err != nil {
		return nil, err
	}
	return im, nil
}

// mollify increases every edge length by a uniform epsilon so that
// every triangle satisfies l_i < l_j + l_k + delta.
func (im *IMesh) mollify(delta float64) {
	epsilon := 0.0
	for t := range im.T {
		l := im.TGetLens(t)
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			k := (j + 1) % 3
			d := delta + l[i] - l[j] - l[k]
			if d > epsilon {
				epsilon = d
			}
		}
	}
	if epsilon == 0 {
		return
	}
	for e := range im.L {
		im.L[e] += epsilon
	}
}

// markNarrowVertices computes, for every extrinsic vertex, the total
// incident angle and marks it narrow if below limit.
func (im *IMesh) markNarrowVertices(limit float64) {
	im.narrow = make([]bool, len(im.V))
	for v := range im.V {
		if im.vAngle(v) < limit {
			im.narrow[v] = true
		}
	}
}

func (im *IMesh) vAngle(v int) float64 {
	h0 := im.V[v]
	h := h0
	a := 0.0
	for {
		a += im.HAngle(h)
		h = im.Mate(im.Previous(h))
		if h == -1 || h == h0 {
			break
		}
	}
	if h == -1 {
		m := im.Mate(h0)
		for m != -1 {
			h = im.Next(m)
			a += im.HAngle(h)
			m = im.Mate(h)
		}
	}
	return a
}

// TNarrow reports whether triangle t has a narrow extrinsic vertex.
func (im *IMesh) TNarrow(t int) bool {
	for _, v := range im.TGetInc(t) {
		if v < im.numExtrinsicV && im.narrow[v] {
			return true
		}
	}
	return false
}

// IsExtrinsic reports whether vertex v corresponds to an extrinsic
// mesh vertex (as opposed to a Steiner vertex introduced by
// refinement).
func (im *IMesh) IsExtrinsic(v int) bool { return v < im.numExtrinsicV }

// GetLMin returns the shortest intrinsic edge length.
func (im *IMesh) GetLMin() float64 {
	lmin := math.Inf(1)
	for _, l := range im.L {
		if l < lmin {
			lmin = l
		}
	}
	return lmin
}

// LAverage returns the mean intrinsic edge length.
func (im *IMesh) LAverage() float64 {
	sum := 0.0
	for _, l := range im.L {
		sum += l
	}
	return sum / float64(len(im.L))
}

// CheckConsistency verifies the intrinsic invariants: every triangle's
// edge lengths satisfy the strict triangle inequality, and every
// A[te] lies in (-pi, 0].
func (im *IMesh) CheckConsistency() error {
	for t, h0 := range im.T {
		h1 := im.Next(h0)
		h2 := im.Next(h1)
		if im.Next(h2) != h0 {
			return errors.Errorf("triangle %d halfedge cycle broken", t)
		}
		l0 := im.L[im.H[h0][hEdge]]
		l1 := im.L[im.H[h1][hEdge]]
		l2 := im.L[im.H[h2][hEdge]]
		if !(l0+l1 > l2 && l1+l2 > l0 && l2+l0 > l1) {
			return errors.Errorf("triangle %d violates the triangle inequality: %v %v %v", t, l0, l1, l2)
		}
	}
	for te, a := range im.A {
		if !(a <= 0 && a > -math.Pi) {
			return errors.Errorf("extrinsic triangle %d support angle out of range: %v", te, a)
		}
	}
	return nil
}

// MustCheckConsistency panics if CheckConsistency fails; intended for
// tests and driver code that wants fail-fast behavior.
func (im *IMesh) MustCheckConsistency() {
	if err := im.CheckConsistency(); err != nil {
		panic(err)
	}
}
