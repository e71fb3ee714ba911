package viewpoint

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewpoint is a named camera placement loaded from configuration. It binds to
// a camera through camera.PoseSource.
//
// The orientation is given either as a VRML-style axis + angle
// (`orientation: [x, y, z, angle]`) or, when `look_at` is set, solved from the
// position, the look-at point and `up` (default +Y).
type Viewpoint struct {
	Name     string      `yaml:"name"`
	Desc     string      `yaml:"description"`
	Location [3]float32  `yaml:"position"`
	Rotation [4]float32  `yaml:"orientation"`
	LookAt   *[3]float32 `yaml:"look_at,omitempty"`
	UpVector *[3]float32 `yaml:"up,omitempty"`
	Fov      float32     `yaml:"fov"`
}

var _ camera.PoseSource = &Viewpoint{}

// NewViewpoint creates a Viewpoint from an explicit pose.
//
// Parameters:
//   - name: lookup key
//   - position: viewpoint position
//   - orientation: rotation from the canonical -Z look direction
//   - fov: vertical field of view in radians (0 selects camera.DefaultFieldOfView)
//
// Returns:
//   - *Viewpoint: the new viewpoint
func NewViewpoint(name string, position mgl32.Vec3, orientation common.AxisAngle, fov float32) *Viewpoint {
	return &Viewpoint{
		Name:     name,
		Location: position,
		Rotation: [4]float32{orientation.Axis[0], orientation.Axis[1], orientation.Axis[2], orientation.Angle},
		Fov:      fov,
	}
}

// Description returns the human readable description of the viewpoint.
func (v *Viewpoint) Description() string {
	return v.Desc
}

// Position returns the viewpoint position.
func (v *Viewpoint) Position() mgl32.Vec3 {
	return mgl32.Vec3(v.Location)
}

// Orientation returns the viewpoint orientation. A look-at point takes
// precedence over the axis-angle rotation; an all-zero rotation is the identity.
func (v *Viewpoint) Orientation() common.AxisAngle {
	if v.LookAt != nil {
		up := common.Up
		if v.UpVector != nil {
			up = mgl32.Vec3(*v.UpVector)
		}
		return common.OrientationFromLook(v.Position(), mgl32.Vec3(*v.LookAt), up)
	}
	if v.Rotation == ([4]float32{}) {
		return common.IdentityAxisAngle()
	}
	return common.AxisAngle{
		Axis:  mgl32.Vec3{v.Rotation[0], v.Rotation[1], v.Rotation[2]},
		Angle: v.Rotation[3],
	}
}

// FieldOfView returns the vertical field of view, falling back to
// camera.DefaultFieldOfView when unset.
func (v *Viewpoint) FieldOfView() float32 {
	return common.Coalesce(v.Fov, camera.DefaultFieldOfView)
}
