package common

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

func assertFinite(t *testing.T, a AxisAngle) {
	t.Helper()
	for _, f := range []float32{a.Axis[0], a.Axis[1], a.Axis[2], a.Angle} {
		require.False(t, math32.IsNaN(f) || math32.IsInf(f, 0), "non-finite orientation %v", a)
	}
}

func TestOrientationFromLookIdentity(t *testing.T) {
	a := OrientationFromLook(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, Up)
	assertFinite(t, a)
	assert.InDelta(t, 0, a.Angle, tol)
}

func TestOrientationFromLookRoundTrip(t *testing.T) {
	tests := []struct {
		name                 string
		position, target, up mgl32.Vec3
	}{
		{"default", mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, Up},
		{"looking +X", mgl32.Vec3{}, mgl32.Vec3{5, 0, 0}, Up},
		{"looking +Z", mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, Up},
		{"diagonal", mgl32.Vec3{1, 2, 3}, mgl32.Vec3{-4, 0, 7}, Up},
		{"tilted up", mgl32.Vec3{}, mgl32.Vec3{1, 1, -1}, mgl32.Vec3{0, 1, 0.3}},
		{"looking down", mgl32.Vec3{0, 10, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}},
		{"upside down", mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
		{"rolled", mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{1, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := OrientationFromLook(tt.position, tt.target, tt.up)
			assertFinite(t, a)

			dir := tt.target.Sub(tt.position).Normalize()
			up := tt.up.Sub(dir.Mul(tt.up.Dot(dir))).Normalize()
			assertVecNear(t, dir, a.Rotate(Forward), 1e-4, "forward")
			assertVecNear(t, up, a.Rotate(Up), 1e-4, "up")
		})
	}
}

func TestOrientationFromLookUpParallelToDirection(t *testing.T) {
	a := OrientationFromLook(mgl32.Vec3{}, mgl32.Vec3{0, 5, 0}, Up)
	assertFinite(t, a)

	dir := mgl32.Vec3{0, 1, 0}
	assertVecNear(t, dir, a.Rotate(Forward), 1e-4)
	assert.InDelta(t, 0, a.Rotate(Up).Dot(dir), 1e-4)
	assert.InDelta(t, 1, a.Rotate(Up).Len(), 1e-4)
}

func TestOrthogonal(t *testing.T) {
	for _, v := range []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 2, 3}, {-4, 0.5, 0}} {
		o := Orthogonal(v)
		assert.InDelta(t, 0, o.Dot(v), tol, "vector %v", v)
		assert.InDelta(t, 1, o.Len(), tol, "vector %v", v)
	}
}

func TestAxisAngleFromQuat(t *testing.T) {
	q := mgl32.QuatRotate(math.Pi/3, mgl32.Vec3{0, 1, 0})
	a := AxisAngleFromQuat(q)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, a.Axis, tol)
	assert.InDelta(t, math.Pi/3, a.Angle, tol)

	assert.Equal(t, IdentityAxisAngle(), AxisAngleFromQuat(mgl32.QuatIdent()))
}

func TestAxisAngleZeroAxisIsIdentity(t *testing.T) {
	v := mgl32.Vec3{1, 2, 3}
	assert.Equal(t, v, AxisAngle{}.Rotate(v))
}

func TestSlerpAxisAngle(t *testing.T) {
	a := IdentityAxisAngle()
	b := AxisAngle{Axis: mgl32.Vec3{0, 1, 0}, Angle: math.Pi / 2}

	assertVecNear(t, Forward, SlerpAxisAngle(a, b, 0).Rotate(Forward), 1e-4)
	assertVecNear(t, b.Rotate(Forward), SlerpAxisAngle(a, b, 1).Rotate(Forward), 1e-4)

	mid := SlerpAxisAngle(a, b, 0.5)
	assert.InDelta(t, math.Pi/4, mid.Angle, 1e-4)
}

func TestAffine2DToMat4(t *testing.T) {
	m := mgl32.Translate2D(3, 4).Mul3(mgl32.Scale2D(2, 2))
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 1, 7}, Affine2DToMat4(m))
	assertVecNear(t, mgl32.Vec3{5, 6, 7}, got, tol)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(mgl32.Ident4()))
	m := mgl32.Ident4()
	m[5] = math32.NaN()
	assert.False(t, IsFinite(m))
	m[5] = math32.Inf(1)
	assert.False(t, IsFinite(m))
}
