package mesh

import (
	"math"
	"math/rand"

	"github.com/wceles/intrinsic-triangulation/geom"
)

// Distance returns the 3-D Euclidean distance between vertices v0 and
// v1.
func (m *Mesh) Distance(v0, v1 int) float64 { return m.C[v0].Dist(m.C[v1]) }

// EdgeVector returns the 3-D vector along halfedge h0 (from its origin
// to the origin of its successor).
func (m *Mesh) EdgeVector(h0 int) geom.Vec3 {
	h1 := m.Next(h0)
	return m.C[m.H[h1][hOrigin]].Sub(m.C[m.H[h0][hOrigin]])
}

// TArea returns the 3-D area of triangle t.
func (m *Mesh) TArea(t int) float64 {
	h0 := m.T[t]
	h1 := m.Next(h0)
	return m.EdgeVector(h0).Cross(m.EdgeVector(h1)).Norm() / 2
}

// TNormal returns the unit normal of triangle t.
func (m *Mesh) TNormal(t int) geom.Vec3 {
	h0 := m.T[t]
	h1 := m.Next(h0)
	return m.EdgeVector(h0).Cross(m.EdgeVector(h1)).Normalize()
}

// HAngle returns the 3-D interior angle of h0's triangle at h0's
// origin vertex.
func (m *Mesh) HAngle(h0 int) float64 {
	h1 := m.Next(h0)
	h2 := m.Next(h1)
	v0, v1, v2 := m.H[h0][hOrigin], m.H[h1][hOrigin], m.H[h2][hOrigin]
	l0 := m.C[v0].Dist(m.C[v1])
	l1 := m.C[v1].Dist(m.C[v2])
	l2 := m.C[v2].Dist(m.C[v0])
	return geom.InteriorAngle(l0, l1, l2)
}

// TGetAngles returns the three interior angles of triangle t, in
// halfedge order.
func (m *Mesh) TGetAngles(t int) [3]float64 {
	h0 := m.T[t]
	h1 := m.Next(h0)
	h2 := m.Next(h1)
	return [3]float64{m.HAngle(h0), m.HAngle(h1), m.HAngle(h2)}
}

// GetLMin returns the shortest edge length in the mesh.
func (m *Mesh) GetLMin() float64 {
	lmin := math.Inf(1)
	for e := range m.E {
		h0 := m.E[e][0]
		h1 := m.Next(h0)
		l := m.Distance(m.H[h0][hOrigin], m.H[h1][hOrigin])
		if l < lmin {
			lmin = l
		}
	}
	return lmin
}

// GetAngleMin returns the smallest interior angle over all triangles.
func (m *Mesh) GetAngleMin() float64 {
	amin := 2 * math.Pi
	for t := range m.T {
		for _, a := range m.TGetAngles(t) {
			if a < amin {
				amin = a
			}
		}
	}
	return amin
}

// VSmoothNormal returns the angle-weighted smooth normal at vertex v,
// summing the triangle normal of every incident triangle weighted by
// its interior angle at v.
func (m *Mesh) VSmoothNormal(v int) geom.Vec3 {
	var s geom.Vec3
	h0 := m.V[v]
	h := h0
	for {
		a := m.HAngle(h)
		n := m.TNormal(m.H[h][hTriangle])
		s = s.Add(n.Scale(a))
		h = m.Mate(m.Previous(h))
		if h == -1 || h == h0 {
			break
		}
	}
	if h == -1 {
		mt := m.Mate(h0)
		for mt != -1 {
			h = m.Next(mt)
			a := m.HAngle(h)
			n := m.TNormal(m.H[h][hTriangle])
			s = s.Add(n.Scale(a))
			mt = m.Mate(h)
		}
	}
	return s.Normalize()
}

// TGetCoord returns the 3-D point at barycentric coordinates uvw
// inside triangle t.
func (m *Mesh) TGetCoord(t int, uvw [3]float64) geom.Vec3 {
	inc := m.TGetInc(t)
	c0, c1, c2 := m.C[inc[0]], m.C[inc[1]], m.C[inc[2]]
	return geom.Vec3{
		X: c0.X*uvw[0] + c1.X*uvw[1] + c2.X*uvw[2],
		Y: c0.Y*uvw[0] + c1.Y*uvw[1] + c2.Y*uvw[2],
		Z: c0.Z*uvw[0] + c1.Z*uvw[1] + c2.Z*uvw[2],
	}
}

// PointSample is a point expressed as a triangle id and barycentric
// coordinates within it.
type PointSample struct {
	Triangle int
	UVW      [3]float64
}

// GenerateBarycentricPoints returns one sample per triangle, at its
// centroid.
func (m *Mesh) GenerateBarycentricPoints(n int) []PointSample {
	points := make([]PointSample, len(m.T))
	for i := range m.T {
		points[i] = PointSample{Triangle: i, UVW: [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}}
	}
	return points
}

// GenerateRandomPoints samples about n points on the triangulation:
// each triangle gets round(n*area/total area) points, sampled
// uniformly within it, so the total can differ from n.
func (m *Mesh) GenerateRandomPoints(n int) []PointSample {
	var points []PointSample
	areas := make([]float64, len(m.T))
	total := 0.0
	for i := range m.T {
		areas[i] = m.TArea(i)
		total += areas[i]
	}
	for i := range m.T {
		ni := int(math.Round(areas[i] / total * float64(n)))
		for j := 0; j < ni; j++ {
			e1, e2 := rand.Float64(), rand.Float64()
			s1 := math.Sqrt(e1)
			u := 1 - s1
			v := e2 * s1
			points = append(points, PointSample{Triangle: i, UVW: [3]float64{u, v, 1 - u - v}})
		}
	}
	return points
}
