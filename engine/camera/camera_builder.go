package camera

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithMode sets the projection mode.
//
// Parameters:
//   - mode: Mode3D or Mode2D
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's mode
func WithMode(mode Mode) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.mode = mode
		c.dirty = true
	}
}

// WithViewport sets the viewport extents in scene units.
//
// Parameters:
//   - width, height: viewport size (must be positive)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport
func WithViewport(width, height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.width, c.height = width, height
		c.dirty = true
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
		c.dirty = true
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.dirty = true
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
		c.dirty = true
	}
}

// WithLookAt places the camera from explicit position, target and up vectors.
//
// Parameters:
//   - position: camera position
//   - target: look-at point
//   - up: up vector
//
// Returns:
//   - CameraBuilderOption: functional option to set the pose vectors
func WithLookAt(position, target, up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.setLookAt(position, target, up)
	}
}

// WithPose places the camera from a viewpoint description.
//
// Parameters:
//   - position: camera position
//   - orientation: rotation from the canonical -Z look direction
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: functional option to set the pose
func WithPose(position mgl32.Vec3, orientation common.AxisAngle, fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.setPose(position, orientation, fov)
	}
}

// WithAvatarSize sets collision radius, eye height and step height.
//
// Parameters:
//   - size: avatar dimensions
//
// Returns:
//   - CameraBuilderOption: functional option to set the avatar size
func WithAvatarSize(size mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.avatarSize = size
	}
}

// WithSpeed sets the navigation speed multiplier.
//
// Parameters:
//   - speed: multiplier applied to forward translation
//
// Returns:
//   - CameraBuilderOption: functional option to set the speed
func WithSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.speed = speed
	}
}

// WithNavigationMode sets the navigation style requested by the scene.
//
// Parameters:
//   - mode: the navigation style
//
// Returns:
//   - CameraBuilderOption: functional option to set the navigation mode
func WithNavigationMode(mode NavigationMode) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.navigationMode = mode
	}
}

// WithViewpointDistance sets how far in front of the position SetPose places the target.
//
// Parameters:
//   - dist: distance in scene units
//
// Returns:
//   - CameraBuilderOption: functional option to set the viewpoint distance
func WithViewpointDistance(dist float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.vpDist = dist
	}
}

// WithClock replaces the wall clock driving animations. Tests use it to step
// time deterministically.
//
// Parameters:
//   - clock: the millisecond clock
//
// Returns:
//   - CameraBuilderOption: functional option to set the clock
func WithClock(clock Clock) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.clock = clock
	}
}
