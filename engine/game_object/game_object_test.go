package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(WithID(7))

	assert.Equal(t, uint64(7), obj.ID())
	assert.True(t, obj.Enabled())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, obj.Scale())
	assert.Equal(t, common.NewBox(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}), obj.Bounds())
	assert.True(t, mgl32.Ident4().ApproxEqual(obj.Transform()))
}

func TestWorldBounds(t *testing.T) {
	obj := NewGameObject(
		WithPosition(10, 0, -5),
		WithScale(2, 1, 1),
		WithBounds(common.NewBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})),
	)
	b := obj.WorldBounds()
	assert.True(t, mgl32.Vec3{8, -1, -6}.ApproxEqualThreshold(b.Min, 1e-5), "min %v", b.Min)
	assert.True(t, mgl32.Vec3{12, 1, -4}.ApproxEqualThreshold(b.Max, 1e-5), "max %v", b.Max)

	obj.SetScale(mgl32.Vec3{1, 1, 1})
	obj.SetRotation(mgl32.Vec3{0, math.Pi / 4, 0})
	b = obj.WorldBounds()
	assert.InDelta(t, 10+math.Sqrt2, b.Max[0], 1e-4)
	assert.Equal(t, mgl32.Vec3{0, math.Pi / 4, 0}, obj.Rotation())
}

func TestSetters(t *testing.T) {
	obj := NewGameObject(WithEnabled(false), WithRotation(0, 0, 1))
	assert.False(t, obj.Enabled())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, obj.Rotation())

	obj.SetEnabled(true)
	obj.SetID(3)
	obj.SetPosition(mgl32.Vec3{1, 2, 3})
	obj.SetRotation(mgl32.Vec3{})
	obj.SetBounds(common.NewBox(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}))

	assert.True(t, obj.Enabled())
	assert.Equal(t, uint64(3), obj.ID())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, obj.Position())
	assert.Equal(t, mgl32.Vec3{2, 3, 4}, obj.WorldBounds().Max)
}
