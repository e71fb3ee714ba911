package camera

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CullVolume is a copy of the state a refreshed camera culls against. It is a
// plain value and safe to share between goroutines.
type CullVolume struct {
	Frustum  common.Frustum
	Center   mgl32.Vec3 // bounding sphere center
	Radius   float32    // bounding sphere radius
	Position mgl32.Vec3
	Mode     Mode
}

// Classify classifies a world-space box against the volume.
//
// Parameters:
//   - box: world-space axis-aligned box
//
// Returns:
//   - common.CullResult: outside, intersects or inside
func (v CullVolume) Classify(box common.Box) common.CullResult {
	// a camera inside the box always sees part of it
	if box.Contains(v.Position) {
		return common.CullIntersects
	}
	if v.Mode == Mode3D {
		// box sphere vs visible-volume sphere
		if box.Center().Sub(v.Center).Len() > box.Radius()+v.Radius {
			return common.CullOutside
		}
	}
	return v.Frustum.ClassifyBox(box, v.Mode == Mode2D)
}
