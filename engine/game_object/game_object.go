package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu      *sync.Mutex
	id      uint64
	enabled atomic.Bool

	position mgl32.Vec3
	rotation mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	scale    mgl32.Vec3
	bounds   common.Box // model-space bounds
}

// GameObject is a scene entity with a transform and model-space bounds. The
// culler classifies its world-space bounds against a camera.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object takes part in culling.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Position returns the world-space position.
	Position() mgl32.Vec3

	// Rotation returns the Euler rotation in radians.
	Rotation() mgl32.Vec3

	// Scale returns the per-axis scale.
	Scale() mgl32.Vec3

	// Bounds returns the model-space bounding box.
	Bounds() common.Box

	// Transform returns the model matrix: translate * rotate(Z*Y*X) * scale.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	Transform() mgl32.Mat4

	// WorldBounds returns the axis-aligned box enclosing the transformed bounds.
	//
	// Returns:
	//   - common.Box: the world-space bounds
	WorldBounds() common.Box

	// SetID sets the object's unique identifier.
	SetID(id uint64)

	// SetEnabled sets whether the object takes part in culling.
	SetEnabled(enabled bool)

	// SetPosition sets the world-space position.
	SetPosition(position mgl32.Vec3)

	// SetRotation sets the Euler rotation in radians.
	SetRotation(rotation mgl32.Vec3)

	// SetScale sets the per-axis scale.
	SetScale(scale mgl32.Vec3)

	// SetBounds sets the model-space bounding box.
	SetBounds(bounds common.Box)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the provided options.
// Objects start enabled with unit scale and unit-cube bounds centered on the origin.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:     &sync.Mutex{},
		scale:  mgl32.Vec3{1, 1, 1},
		bounds: common.Box{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) Bounds() common.Box {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bounds
}

func (g *gameObject) Transform() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.transform()
}

func (g *gameObject) WorldBounds() common.Box {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bounds.Transform(g.transform())
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(position mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = position
}

func (g *gameObject) SetRotation(rotation mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = rotation
}

func (g *gameObject) SetScale(scale mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = scale
}

func (g *gameObject) SetBounds(bounds common.Box) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bounds = bounds
}

// transform builds the model matrix.
// Caller must hold the mutex.
func (g *gameObject) transform() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DZ(g.rotation[2]).
		Mul4(mgl32.HomogRotate3DY(g.rotation[1])).
		Mul4(mgl32.HomogRotate3DX(g.rotation[0]))
	return mgl32.Translate3D(g.position[0], g.position[1], g.position[2]).
		Mul4(rot).
		Mul4(mgl32.Scale3D(g.scale[0], g.scale[1], g.scale[2]))
}
