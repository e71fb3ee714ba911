package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewBoxOrdersCorners(t *testing.T) {
	b := NewBox(mgl32.Vec3{3, -1, 2}, mgl32.Vec3{-3, 1, -2})
	assert.Equal(t, mgl32.Vec3{-3, -1, -2}, b.Min)
	assert.Equal(t, mgl32.Vec3{3, 1, 2}, b.Max)
}

func TestBoxVerticesOrder(t *testing.T) {
	b := NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 2, 3})
	v := b.Vertices()

	assert.Equal(t, b.Min, v[0])
	assert.Equal(t, b.Max, v[7])
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, v[4])
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, v[2])
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, v[1])
	for i := range 8 {
		assert.Equal(t, b.Min.Add(b.Max), v[i].Add(v[7-i]), "corner %d", i)
	}
}

func TestBoxCenterRadiusContains(t *testing.T) {
	b := NewBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	assert.Equal(t, mgl32.Vec3{}, b.Center())
	assert.InDelta(t, math.Sqrt(3), b.Radius(), tol)
	assert.True(t, b.Contains(mgl32.Vec3{1, 0, -1}))
	assert.False(t, b.Contains(mgl32.Vec3{1.01, 0, 0}))
}

func TestBoxTransform(t *testing.T) {
	b := NewBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})

	moved := b.Transform(mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 1, 1)))
	assertVecNear(t, mgl32.Vec3{8, -1, -1}, moved.Min, tol)
	assertVecNear(t, mgl32.Vec3{12, 1, 1}, moved.Max, tol)

	rotated := b.Transform(mgl32.HomogRotate3DY(math.Pi / 4))
	s := float32(math.Sqrt2)
	assertVecNear(t, mgl32.Vec3{-s, -1, -s}, rotated.Min, 1e-4)
	assertVecNear(t, mgl32.Vec3{s, 1, s}, rotated.Max, 1e-4)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, float32(2), Coalesce(float32(0), 2, 3))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestClampLerp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(5, -1, 1))
	assert.Equal(t, float32(-1), Clamp(-5, -1, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, -1, 1))
	assert.InDelta(t, 2.5, Lerp(0, 10, 0.25), tol)
	assertVecNear(t, mgl32.Vec3{1, 2, 3}, LerpVec3(mgl32.Vec3{}, mgl32.Vec3{2, 4, 6}, 0.5), tol)
}
