package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects the projection used by a camera.
type Mode int

const (
	// Mode3D renders through a perspective projection driven by position/target/up.
	Mode3D Mode = iota
	// Mode2D renders through an orthographic projection sized to the viewport.
	Mode2D
)

// NavigationMode is the navigation style requested by the scene. The camera only
// stores it; the Navigator and external input handling interpret it.
type NavigationMode int

const (
	NavigateNone NavigationMode = iota
	NavigateWalk
	NavigateFly
	NavigateExamine
)

const (
	// DefaultFieldOfView is the vertical field of view of an unbound viewpoint (radians).
	DefaultFieldOfView = float32(math.Pi / 4)
	// DefaultNear is the default near clipping plane distance.
	DefaultNear = float32(0.1)
	// DefaultFar is the default far clipping plane distance.
	DefaultFar = float32(100.0)
	// DefaultViewpointDistance is how far in front of the position SetPose places the target.
	DefaultViewpointDistance = float32(1.0)

	// NearPlane2D and FarPlane2D bound the orthographic depth range in 2D mode.
	NearPlane2D = float32(-512)
	FarPlane2D  = float32(512)
)

// DefaultAvatarSize is the collision radius, eye height and step height of the
// default avatar, in that order.
var DefaultAvatarSize = mgl32.Vec3{0.25, 1.6, 0.75}

// Pose is a snapshot of where a camera is and how it looks.
type Pose struct {
	Position    mgl32.Vec3
	Orientation common.AxisAngle
	FieldOfView float32
}

// PoseSource supplies viewpoint parameters to a camera. Scene-graph viewpoint
// nodes, configuration entries and tests all bind through this contract.
type PoseSource interface {
	// Position returns the viewpoint position.
	Position() mgl32.Vec3
	// Orientation returns the viewpoint orientation as axis + angle.
	Orientation() common.AxisAngle
	// FieldOfView returns the viewpoint vertical field of view in radians.
	FieldOfView() float32
}

type cameraImpl struct {
	mu *sync.Mutex

	mode   Mode
	width  float32
	height float32

	fov  float32
	near float32
	far  float32

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3
	lastPos  mgl32.Vec3

	viewportTransform *mgl32.Mat4

	dirty bool

	viewMatrix                  mgl32.Mat4
	projectionMatrix            mgl32.Mat4
	viewProjectionMatrix        mgl32.Mat4
	inverseViewProjectionMatrix mgl32.Mat4
	frustum                     common.Frustum
	center                      mgl32.Vec3
	radius                      float32

	anim animation

	vp           Pose
	hasViewpoint bool
	storeVP      bool

	navigationMode NavigationMode
	avatarSize     mgl32.Vec3
	speed          float32
	vpDist         float32
	examineCenter  mgl32.Vec3

	clock Clock
}

// Camera defines the interface for the camera system.
// The camera owns projection and view transforms for one view, derives the
// frustum used for culling and animates between viewpoints. Derived state is
// recomputed lazily: mutations mark the camera dirty and Refresh rebuilds the
// matrices once. Readers of derived state must call Refresh first.
type Camera interface {
	// Mode returns whether the camera renders in 3D (perspective) or 2D (orthographic).
	//
	// Returns:
	//   - Mode: the projection mode
	Mode() Mode

	// SetMode switches between perspective and orthographic rendering.
	//
	// Parameters:
	//   - mode: the projection mode
	SetMode(mode Mode)

	// Viewport returns the viewport extents in scene units.
	//
	// Returns:
	//   - width, height: viewport size
	Viewport() (width, height float32)

	// SetViewport sets the viewport extents. Both values must be positive
	// before Refresh is called.
	//
	// Parameters:
	//   - width, height: viewport size in scene units
	SetViewport(width, height float32)

	// SetViewportTransform sets an extra transform appended to the 2D view matrix.
	// Pass nil to clear it.
	//
	// Parameters:
	//   - m: the transform or nil
	SetViewportTransform(m *mgl32.Mat4)

	// FieldOfView returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	FieldOfView() float32

	// SetFieldOfView sets the vertical field of view in radians.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFieldOfView(fov float32)

	// Near returns the near clipping plane distance. In 2D mode it is
	// NearPlane2D; the 3D value is kept for the next switch back.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// SetNear sets the near clipping plane distance.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// Far returns the far clipping plane distance, FarPlane2D in 2D mode.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFar sets the far clipping plane distance.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// Target returns the look-at point.
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	Up() mgl32.Vec3

	// LastPosition returns the position held before the most recent SetPose.
	LastPosition() mgl32.Vec3

	// SetLookAt sets position, target and up directly.
	//
	// Parameters:
	//   - position: camera position
	//   - target: look-at point
	//   - up: up vector
	SetLookAt(position, target, up mgl32.Vec3)

	// SetPose places the camera from a viewpoint description: target and up are
	// derived by rotating the canonical forward and up axes by orientation.
	//
	// Parameters:
	//   - position: camera position
	//   - orientation: rotation from the canonical -Z look direction
	//   - fov: field of view in radians
	SetPose(position mgl32.Vec3, orientation common.AxisAngle, fov float32)

	// Orientation solves the current rotation from position, target and up.
	//
	// Returns:
	//   - common.AxisAngle: the current orientation
	Orientation() common.AxisAngle

	// PositionDir returns the unit vector from the target back to the position.
	PositionDir() mgl32.Vec3

	// TargetDir returns the unit look direction.
	TargetDir() mgl32.Vec3

	// RightDir returns the unit vector pointing to the right of the view.
	RightDir() mgl32.Vec3

	// Speed returns the navigation speed multiplier.
	Speed() float32

	// SetSpeed sets the navigation speed multiplier.
	//
	// Parameters:
	//   - speed: multiplier applied to forward translation
	SetSpeed(speed float32)

	// AvatarSize returns collision radius, eye height and step height.
	AvatarSize() mgl32.Vec3

	// SetAvatarSize sets collision radius, eye height and step height. The eye
	// height scales the jump bob.
	//
	// Parameters:
	//   - size: avatar dimensions
	SetAvatarSize(size mgl32.Vec3)

	// NavigationMode returns the navigation style requested by the scene.
	NavigationMode() NavigationMode

	// SetNavigationMode stores the navigation style requested by the scene.
	//
	// Parameters:
	//   - mode: the navigation style
	SetNavigationMode(mode NavigationMode)

	// ViewpointDistance returns the distance SetPose places the target at.
	ViewpointDistance() float32

	// SetViewpointDistance sets the distance SetPose places the target at.
	//
	// Parameters:
	//   - dist: distance in scene units (must be positive)
	SetViewpointDistance(dist float32)

	// ExamineCenter returns the pivot used by examine navigation.
	ExamineCenter() mgl32.Vec3

	// SetExamineCenter sets the pivot used by examine navigation.
	//
	// Parameters:
	//   - center: world-space pivot
	SetExamineCenter(center mgl32.Vec3)

	// Dirty reports whether derived state is stale.
	//
	// Returns:
	//   - bool: true if Refresh must run before reading matrices
	Dirty() bool

	// Invalidate marks the camera dirty and forgets the bound viewpoint, so the
	// next ResetToDefault snaps instead of animating.
	Invalidate()

	// Refresh rebuilds projection, view, frustum and bounding sphere if the
	// camera is dirty. It is a no-op otherwise.
	//
	// Parameters:
	//   - userTransform: optional 2D affine transform applied in 2D mode
	//   - centerCoords: true when the renderer's origin is the viewport center;
	//     false appends a Y flip and a translation to the top-left corner
	Refresh(userTransform *mgl32.Mat3, centerCoords bool)

	// ViewMatrix returns the view matrix computed by the last Refresh.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the projection matrix computed by the last Refresh.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view from the last Refresh.
	ViewProjectionMatrix() mgl32.Mat4

	// InverseViewProjectionMatrix returns the inverse of the view-projection
	// matrix, used to unproject screen positions.
	InverseViewProjectionMatrix() mgl32.Mat4

	// Frustum returns the normalized frustum planes and their p-vertex indices.
	Frustum() common.Frustum

	// BoundingSphere returns the sphere enclosing the visible volume.
	//
	// Returns:
	//   - center: sphere center in world space
	//   - radius: sphere radius
	BoundingSphere() (center mgl32.Vec3, radius float32)

	// CullBox classifies a world-space box against the visible volume.
	//
	// Parameters:
	//   - box: world-space axis-aligned box
	//
	// Returns:
	//   - common.CullResult: outside, intersects or inside
	CullBox(box common.Box) common.CullResult

	// CullVolume snapshots the state CullBox classifies against, so a batch can
	// be classified without taking the camera lock per box.
	//
	// Returns:
	//   - CullVolume: frustum, bounding sphere, position and mode
	CullVolume() CullVolume

	// Unproject maps a normalized device coordinate back to world space.
	//
	// Parameters:
	//   - ndc: x and y in [-1, 1], z in the projection's depth range
	//
	// Returns:
	//   - mgl32.Vec3: the world-space point
	Unproject(ndc mgl32.Vec3) mgl32.Vec3

	// Uniform packs the current view-projection and position for GPU upload.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform data
	Uniform() GPUCameraUniform

	// BindViewpoint caches src as the default viewpoint and resets to it.
	//
	// Parameters:
	//   - src: the viewpoint to bind
	//   - animate: animate from the current pose when a viewpoint was bound before
	BindViewpoint(src PoseSource, animate bool)

	// Viewpoint returns the cached default viewpoint.
	//
	// Returns:
	//   - Pose: the cached pose
	//   - bool: false if no viewpoint has been bound since creation or Invalidate
	Viewpoint() (Pose, bool)

	// StoreViewpointOnFinish requests that the pose reached at the end of the
	// running transition becomes the cached default viewpoint.
	StoreViewpointOnFinish()

	// ResetToDefault returns to the cached default viewpoint.
	//
	// Parameters:
	//   - animate: transition over one second instead of snapping
	ResetToDefault(animate bool)

	// MoveTo starts (or re-targets) a short transition to a new pose.
	//
	// Parameters:
	//   - position: destination position
	//   - target: destination look-at point
	//   - up: destination up vector
	MoveTo(position, target, up mgl32.Vec3)

	// Jump starts the landing bob. Ignored while a jump is running.
	Jump()

	// Jumping reports whether the landing bob is running.
	Jumping() bool

	// StopAnimation cancels any running transition or jump, leaving the pose as is.
	StopAnimation()

	// AnimationState returns the state of the viewpoint animation.
	AnimationState() AnimationState

	// Tick advances the running animation from the clock. Call once per frame.
	//
	// Returns:
	//   - bool: true if the camera changed this frame
	Tick() bool
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin looking down -Z with +Y up.
// The camera starts dirty with speed 1; the viewport must be set (WithViewport
// or SetViewport) before the first Refresh.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:               &sync.Mutex{},
		mode:             Mode3D,
		fov:              DefaultFieldOfView,
		near:             DefaultNear,
		far:              DefaultFar,
		up:               common.Up,
		dirty:            true,
		viewMatrix:       mgl32.Ident4(),
		projectionMatrix: mgl32.Ident4(),
		vp: Pose{
			Orientation: common.IdentityAxisAngle(),
			FieldOfView: DefaultFieldOfView,
		},
		avatarSize: DefaultAvatarSize,
		speed:      1,
		vpDist:     DefaultViewpointDistance,
		clock:      NewSystemClock(),
	}
	c.setPose(mgl32.Vec3{}, common.IdentityAxisAngle(), c.fov)
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *cameraImpl) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.dirty = true
}

func (c *cameraImpl) Viewport() (width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) SetViewport(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
	c.dirty = true
}

func (c *cameraImpl) SetViewportTransform(m *mgl32.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m == nil {
		c.viewportTransform = nil
	} else {
		mc := *m
		c.viewportTransform = &mc
	}
	c.dirty = true
}

func (c *cameraImpl) FieldOfView() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFieldOfView(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.dirty = true
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	near, _ := c.clipPlanes()
	return near
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.dirty = true
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, far := c.clipPlanes()
	return far
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.dirty = true
}

func (c *cameraImpl) Speed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *cameraImpl) SetSpeed(speed float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
}

func (c *cameraImpl) AvatarSize() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.avatarSize
}

func (c *cameraImpl) SetAvatarSize(size mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.avatarSize = size
}

func (c *cameraImpl) NavigationMode() NavigationMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigationMode
}

func (c *cameraImpl) SetNavigationMode(mode NavigationMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigationMode = mode
}

func (c *cameraImpl) ViewpointDistance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vpDist
}

func (c *cameraImpl) SetViewpointDistance(dist float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vpDist = dist
}

func (c *cameraImpl) ExamineCenter() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.examineCenter
}

func (c *cameraImpl) SetExamineCenter(center mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.examineCenter = center
}

func (c *cameraImpl) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

func (c *cameraImpl) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
	c.hasViewpoint = false
}
