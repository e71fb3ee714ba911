package camera

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// JumpScaleFactor multiplies translations performed while the jump bob runs.
const JumpScaleFactor = 4

// Navigator defines the navigation primitives external input handling drives.
// Translations move position and target together; orbit and examine swing the
// position around a pivot; pan and roll turn the view in place. Every primitive
// goes through the Camera's public API and leaves it dirty.
type Navigator interface {
	// Camera returns the camera the navigator moves.
	//
	// Returns:
	//   - Camera: the driven camera
	Camera() Camera

	// TranslateX moves sideways along the camera's right axis.
	//
	// Parameters:
	//   - dx: distance, positive to the right
	TranslateX(dx float32)

	// TranslateY moves along the camera's up vector.
	//
	// Parameters:
	//   - dy: distance, positive upward
	TranslateY(dy float32)

	// TranslateZ moves along the look direction, scaled by the camera speed.
	//
	// Parameters:
	//   - dz: distance, positive forward
	TranslateZ(dz float32)

	// Orbit swings the position around the target. dx turns about the up
	// vector, dy about the right axis.
	//
	// Parameters:
	//   - dx, dy: angles in radians, scaled by OrbitSpeed
	Orbit(dx, dy float32)

	// Examine swings position and target around the camera's examine center.
	//
	// Parameters:
	//   - dx, dy: angles in radians, scaled by OrbitSpeed
	Examine(dx, dy float32)

	// Pan turns the target around the position.
	//
	// Parameters:
	//   - dx, dy: angles in radians, scaled by PanSpeed
	Pan(dx, dy float32)

	// Roll turns the up vector around the look axis.
	//
	// Parameters:
	//   - d: angle in radians
	Roll(d float32)

	// Zoom narrows or widens the field of view relative to the bound
	// viewpoint's field of view. Steps outside [-1, 1] are ignored.
	//
	// Parameters:
	//   - z: zoom step, positive zooms in
	Zoom(z float32)

	// FitSphere animates the camera back along its view axis until the sphere
	// fills the view, and stores the result as the default viewpoint.
	//
	// Parameters:
	//   - center: sphere center
	//   - radius: sphere radius (must be positive)
	FitSphere(center mgl32.Vec3, radius float32)

	// OrbitSpeed returns the multiplier applied to orbit and examine angles.
	OrbitSpeed() float32

	// PanSpeed returns the multiplier applied to translations and pan angles.
	PanSpeed() float32

	// ZoomSpeed returns the multiplier applied to zoom steps.
	ZoomSpeed() float32
}

type navigatorImpl struct {
	cam Camera

	orbitSpeed float32
	panSpeed   float32
	zoomSpeed  float32
}

var _ Navigator = &navigatorImpl{}

// NewNavigator creates a Navigator driving cam.
//
// Parameters:
//   - cam: the camera to move
//   - options: functional options to configure the navigator
//
// Returns:
//   - Navigator: the newly created navigator
func NewNavigator(cam Camera, options ...NavigatorOption) Navigator {
	n := &navigatorImpl{
		cam:        cam,
		orbitSpeed: 1,
		panSpeed:   1,
		zoomSpeed:  1,
	}
	for _, option := range options {
		option(n)
	}
	return n
}

func (n *navigatorImpl) Camera() Camera {
	return n.cam
}

func (n *navigatorImpl) OrbitSpeed() float32 {
	return n.orbitSpeed
}

func (n *navigatorImpl) PanSpeed() float32 {
	return n.panSpeed
}

func (n *navigatorImpl) ZoomSpeed() float32 {
	return n.zoomSpeed
}

func (n *navigatorImpl) TranslateX(dx float32) {
	if dx == 0 {
		return
	}
	n.translate(n.cam.RightDir().Mul(n.jumpScaled(dx) * n.panSpeed))
}

func (n *navigatorImpl) TranslateY(dy float32) {
	if dy == 0 {
		return
	}
	n.translate(n.cam.Up().Mul(n.jumpScaled(dy) * n.panSpeed))
}

func (n *navigatorImpl) TranslateZ(dz float32) {
	if dz == 0 {
		return
	}
	n.translate(n.cam.TargetDir().Mul(n.jumpScaled(dz) * n.cam.Speed() * n.panSpeed))
}

func (n *navigatorImpl) Orbit(dx, dy float32) {
	n.swing(n.cam.Target(), dx*n.orbitSpeed, dy*n.orbitSpeed, false)
}

func (n *navigatorImpl) Examine(dx, dy float32) {
	n.swing(n.cam.ExamineCenter(), dx*n.orbitSpeed, dy*n.orbitSpeed, true)
}

func (n *navigatorImpl) Pan(dx, dy float32) {
	pos, target, up := n.cam.Position(), n.cam.Target(), n.cam.Up()
	if dx != 0 {
		target = rotateAround(target, pos, up, dx*n.panSpeed)
	}
	if dy != 0 {
		axis := target.Sub(pos).Normalize().Cross(up).Normalize()
		target = rotateAround(target, pos, axis, dy*n.panSpeed)
		up = pos.Sub(target).Normalize().Cross(axis).Normalize()
	}
	if dx != 0 || dy != 0 {
		n.cam.SetLookAt(pos, target, up)
	}
}

func (n *navigatorImpl) Roll(d float32) {
	if d == 0 {
		return
	}
	pos, target, up := n.cam.Position(), n.cam.Target(), n.cam.Up()
	tip := rotateAround(target.Add(up), target, n.cam.PositionDir(), d)
	n.cam.SetLookAt(pos, target, tip.Sub(target).Normalize())
}

func (n *navigatorImpl) Zoom(z float32) {
	z *= n.zoomSpeed
	if z > 1 || z < -1 {
		return
	}
	vp, _ := n.cam.Viewpoint()
	fov := n.cam.FieldOfView()
	if fov == 0 {
		return
	}
	oz := vp.FieldOfView / fov
	if oz < 1 {
		z /= 4
	}
	oz += z
	if oz <= 0 {
		return
	}
	n.cam.SetFieldOfView(min(vp.FieldOfView/oz, math.Pi))
}

func (n *navigatorImpl) FitSphere(center mgl32.Vec3, radius float32) {
	fov := n.cam.FieldOfView()
	dist := radius / math32.Sin(fov/2)
	pos := center.Add(n.cam.PositionDir().Mul(dist))

	n.cam.SetExamineCenter(center)
	if n.cam.Far() < dist {
		n.cam.SetFar(10 * dist)
	}
	n.cam.MoveTo(pos, center, n.cam.Up())
	n.cam.StoreViewpointOnFinish()
}

// --- internal helpers ---

func (n *navigatorImpl) jumpScaled(d float32) float32 {
	if n.cam.Jumping() {
		return d * JumpScaleFactor
	}
	return d
}

func (n *navigatorImpl) translate(v mgl32.Vec3) {
	n.cam.SetLookAt(n.cam.Position().Add(v), n.cam.Target().Add(v), n.cam.Up())
}

// swing rotates the position (and the target when moveTarget is set) around
// pivot: dx about the up vector, dy about the right axis. The up vector is
// rebuilt after a vertical swing so it stays orthogonal to the view.
func (n *navigatorImpl) swing(pivot mgl32.Vec3, dx, dy float32, moveTarget bool) {
	pos, target, up := n.cam.Position(), n.cam.Target(), n.cam.Up()
	if dx != 0 {
		pos = rotateAround(pos, pivot, up, dx)
		if moveTarget {
			target = rotateAround(target, pivot, up, dx)
		}
	}
	if dy != 0 {
		axis := target.Sub(pos).Normalize().Cross(up).Normalize()
		pos = rotateAround(pos, pivot, axis, dy)
		if moveTarget {
			target = rotateAround(target, pivot, axis, dy)
		}
		up = pos.Sub(target).Normalize().Cross(axis).Normalize()
	}
	if dx != 0 || dy != 0 {
		n.cam.SetLookAt(pos, target, up)
	}
}

// rotateAround rotates p by angle radians about the line through pivot along axis.
func rotateAround(p, pivot, axis mgl32.Vec3, angle float32) mgl32.Vec3 {
	m := mgl32.Translate3D(pivot[0], pivot[1], pivot[2]).
		Mul4(mgl32.HomogRotate3D(angle, axis.Normalize())).
		Mul4(mgl32.Translate3D(-pivot[0], -pivot[1], -pivot[2]))
	return mgl32.TransformCoordinate(p, m)
}
