package common

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// machineEpsilon is the float32 unit roundoff (2^-23).
const machineEpsilon = 1.1920929e-07

// Real-number constants used by the camera core. All camera math runs on float32.
const (
	// Epsilon gates the degenerate branches of the orientation solver and the
	// zero-length checks on rotation axes.
	Epsilon float32 = 16 * machineEpsilon
	// MinReal is the smallest positive normal float32.
	MinReal float32 = 1.17549435e-38
	// MaxReal is the largest finite float32.
	MaxReal float32 = math.MaxFloat32
)

var (
	// Forward is the canonical look direction of an unrotated camera.
	Forward = mgl32.Vec3{0, 0, -1}
	// Up is the canonical up direction of an unrotated camera.
	Up = mgl32.Vec3{0, 1, 0}
)

// AxisAngle is a rotation of Angle radians around Axis, the way viewpoints
// describe their orientation. The zero value is treated as no rotation.
type AxisAngle struct {
	Axis  mgl32.Vec3
	Angle float32
}

// IdentityAxisAngle returns the default viewpoint orientation (0 0 1 0).
func IdentityAxisAngle() AxisAngle {
	return AxisAngle{Axis: mgl32.Vec3{0, 0, 1}, Angle: 0}
}

// Quat converts the rotation to a unit quaternion. A zero-length axis yields
// the identity.
//
// Returns:
//   - mgl32.Quat: the equivalent unit quaternion
func (a AxisAngle) Quat() mgl32.Quat {
	if a.Axis.Dot(a.Axis) < Epsilon {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(a.Angle, a.Axis.Normalize())
}

// Rotate applies the rotation to v.
//
// Parameters:
//   - v: the vector to rotate
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func (a AxisAngle) Rotate(v mgl32.Vec3) mgl32.Vec3 {
	return a.Quat().Rotate(v)
}

// AxisAngleFromQuat converts a quaternion to axis-angle form. Rotations too
// small to carry a stable axis collapse to the identity orientation.
//
// Parameters:
//   - q: the rotation (normalized internally)
//
// Returns:
//   - AxisAngle: the same rotation as axis + angle
func AxisAngleFromQuat(q mgl32.Quat) AxisAngle {
	q = q.Normalize()
	w := Clamp(q.W, -1, 1)
	s := math32.Sqrt(1 - w*w)
	if s < Epsilon {
		return IdentityAxisAngle()
	}
	return AxisAngle{
		Axis:  q.V.Mul(1 / s),
		Angle: 2 * math32.Acos(w),
	}
}

// OrientationFromLook solves the rotation that turns an unrotated camera
// (looking down -Z with +Y up) into one at position looking at target with the
// given up vector. up does not need to be orthogonal to the look direction.
// target must differ from position.
//
// The solve is closed form: q1 swings the forward axis onto the look direction,
// q2 then rolls about the look direction so the swung up axis meets the
// projected up vector. The axis-degenerate check on q1 always runs before the
// cross-product check on q2.
//
// Parameters:
//   - position: camera position
//   - target: point the camera looks at
//   - up: desired up direction
//
// Returns:
//   - AxisAngle: the orientation, q2 applied after q1
func OrientationFromLook(position, target, up mgl32.Vec3) AxisAngle {
	dir := target.Sub(position).Normalize()

	v := up.Sub(dir.Mul(up.Dot(dir)))
	if v.Dot(v) < Epsilon {
		// up is parallel to the look direction, any perpendicular will do
		v = Orthogonal(dir)
	}
	v = v.Normalize()

	var q1 mgl32.Quat
	axis := mgl32.Vec3{dir.Y(), -dir.X(), 0}
	if axis.Dot(axis) < Epsilon {
		if dir.Z() > 0 {
			q1 = mgl32.QuatRotate(math.Pi, Up)
		} else {
			q1 = mgl32.QuatIdent()
		}
	} else {
		q1 = mgl32.QuatRotate(math32.Acos(Clamp(-dir.Z(), -1, 1)), axis.Normalize())
	}

	newUp := q1.Rotate(Up)
	cosA := Clamp(newUp.Dot(v), -1, 1)
	tmp := newUp.Cross(v)

	var q2 mgl32.Quat
	if tmp.Dot(tmp) < Epsilon {
		if cosA > 0 {
			q2 = mgl32.QuatIdent()
		} else {
			// half turn about the look axis
			q2 = mgl32.QuatRotate(math.Pi, dir)
		}
	} else {
		q2 = mgl32.QuatRotate(math32.Acos(cosA), tmp.Normalize())
	}

	return AxisAngleFromQuat(q2.Mul(q1))
}

// Orthogonal returns a unit vector perpendicular to v. It tries (0, -v.z, v.y)
// first and falls back to (v.z, 0, -v.x) when v lies on the X axis.
//
// Parameters:
//   - v: a non-zero vector
//
// Returns:
//   - mgl32.Vec3: a unit vector orthogonal to v
func Orthogonal(v mgl32.Vec3) mgl32.Vec3 {
	o := mgl32.Vec3{0, -v.Z(), v.Y()}
	if o.Dot(o) < Epsilon {
		o = mgl32.Vec3{v.Z(), 0, -v.X()}
	}
	return o.Normalize()
}

// SlerpAxisAngle spherically interpolates between two orientations along the
// shortest arc.
//
// Parameters:
//   - a, b: start and end orientations
//   - t: interpolation fraction in [0, 1]
//
// Returns:
//   - AxisAngle: the interpolated orientation
func SlerpAxisAngle(a, b AxisAngle, t float32) AxisAngle {
	qa, qb := a.Quat(), b.Quat()
	if qa.Dot(qb) < 0 {
		qb = qb.Scale(-1)
	}
	return AxisAngleFromQuat(mgl32.QuatSlerp(qa, qb, t))
}

// Affine2DToMat4 lifts a 2D affine transform (3x3, column-major, translation in
// the third column) into a 4x4 transform acting on the XY plane.
//
// Parameters:
//   - m: the 2D affine transform
//
// Returns:
//   - mgl32.Mat4: the equivalent 3D transform leaving Z untouched
func Affine2DToMat4(m mgl32.Mat3) mgl32.Mat4 {
	return mgl32.Mat4{
		m[0], m[1], 0, 0,
		m[3], m[4], 0, 0,
		0, 0, 1, 0,
		m[6], m[7], 0, 1,
	}
}

// IsFinite reports whether every entry of m is a finite number.
func IsFinite(m mgl32.Mat4) bool {
	for _, f := range m {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return false
		}
	}
	return true
}
