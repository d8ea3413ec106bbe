package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrientCCW(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{1, 0}
	c := Vec2{0, 1}
	require.True(t, CCW(a, b, c))
	require.False(t, CCW(c, b, a))
	require.InDelta(t, 0.5, Area(a, b, c), 1e-9)
}

func TestInTriangle(t *testing.T) {
	tri := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}
	require.True(t, InTriangle(tri, Vec2{0.2, 0.2}))
	require.False(t, InTriangle(tri, Vec2{1, 1}))
}

func TestCircumcenter(t *testing.T) {
	c := Circumcenter(Vec2{0, 0}, Vec2{2, 0}, Vec2{0, 2})
	require.InDelta(t, 1.0, c.X, 1e-9)
	require.InDelta(t, 1.0, c.Y, 1e-9)
}

func TestBarycentricRoundTrip(t *testing.T) {
	a, b, c := Vec2{0, 0}, Vec2{3, 0}, Vec2{0, 4}
	p := Vec2{1, 1}
	uvw := Barycentric(a, b, c, p)
	require.InDelta(t, 1.0, uvw[0]+uvw[1]+uvw[2], 1e-9)
	q := FromBarycentric(a, b, c, uvw)
	require.InDelta(t, p.X, q.X, 1e-9)
	require.InDelta(t, p.Y, q.Y, 1e-9)
}

func TestClipTriangleAgainstItself(t *testing.T) {
	tri := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}
	out := Clip(tri, []Vec2{{0, 0}, {1, 0}, {0, 1}})
	require.Len(t, out, 3)
}

func TestClipDisjoint(t *testing.T) {
	tri := [3]Vec2{{0, 0}, {1, 0}, {0, 1}}
	out := Clip(tri, []Vec2{{5, 5}, {6, 5}, {5, 6}})
	require.Nil(t, out)
}

func TestInteriorAngleClampsRoundoff(t *testing.T) {
	// Lengths that miss the triangle inequality by 1e-10, as roundoff
	// can leave them, push the cosine slightly below -1; the clamp
	// must keep acos from returning NaN.
	a := InteriorAngle(1, 2.0000000001, 1)
	require.False(t, math.IsNaN(a))
}

func TestClampAngle(t *testing.T) {
	require.InDelta(t, math.Pi, ClampAngle(-math.Pi), 1e-9)
	require.InDelta(t, 0.0, ClampAngle(2*math.Pi), 1e-9)
}
