package camera

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) LastPosition() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPos
}

func (c *cameraImpl) SetLookAt(position, target, up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLookAt(position, target, up)
}

func (c *cameraImpl) SetPose(position mgl32.Vec3, orientation common.AxisAngle, fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setPose(position, orientation, fov)
}

func (c *cameraImpl) Orientation() common.AxisAngle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.OrientationFromLook(c.position, c.target, c.up)
}

func (c *cameraImpl) PositionDir() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position.Sub(c.target).Normalize()
}

func (c *cameraImpl) TargetDir() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targetDir()
}

func (c *cameraImpl) RightDir() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targetDir().Cross(c.up).Normalize()
}

// --- internal helpers ---

// setPose derives target and up from an axis-angle orientation: the canonical
// forward axis is rotated and pushed vpDist ahead of position, the canonical up
// axis is rotated and normalized. This is the only path from an orientation to
// the vectors the builder consumes.
// Caller must hold the mutex.
func (c *cameraImpl) setPose(position mgl32.Vec3, orientation common.AxisAngle, fov float32) {
	q := orientation.Quat()
	c.fov = fov
	c.lastPos = c.position
	c.position = position
	c.target = position.Add(q.Rotate(common.Forward).Normalize().Mul(c.vpDist))
	c.up = q.Rotate(common.Up).Normalize()
	c.dirty = true
}

// setLookAt stores explicit pose vectors.
// Caller must hold the mutex.
func (c *cameraImpl) setLookAt(position, target, up mgl32.Vec3) {
	c.lastPos = c.position
	c.position = position
	c.target = target
	c.up = up
	c.dirty = true
}

// currentPose snapshots the pose, solving the orientation from the vectors.
// Caller must hold the mutex.
func (c *cameraImpl) currentPose() Pose {
	return Pose{
		Position:    c.position,
		Orientation: common.OrientationFromLook(c.position, c.target, c.up),
		FieldOfView: c.fov,
	}
}

// targetDir returns the unit look direction.
// Caller must hold the mutex.
func (c *cameraImpl) targetDir() mgl32.Vec3 {
	return c.target.Sub(c.position).Normalize()
}
