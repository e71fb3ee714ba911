package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
// Points with a positive distance lie on the inner side.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// DistanceTo returns the signed distance from point to the plane.
//
// Parameters:
//   - point: the point to test
//
// Returns:
//   - float32: positive inside, negative outside
func (p Plane) DistanceTo(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
// PVertices holds, per plane, the Box corner index furthest along the
// negative normal (see Box.Vertices for the corner order).
type Frustum struct {
	Planes    [6]Plane // Left, Right, Bottom, Top, Near, Far
	PVertices [6]int
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// CullResult is the outcome of a frustum visibility test.
type CullResult int

const (
	// CullOutside means the volume is entirely outside at least one plane.
	CullOutside CullResult = iota
	// CullIntersects means the volume straddles at least one plane.
	CullIntersects
	// CullInside means the volume is on the inner side of every tested plane.
	CullInside
)

// String returns a readable name for the result.
func (r CullResult) String() string {
	switch r {
	case CullOutside:
		return "outside"
	case CullIntersects:
		return "intersects"
	case CullInside:
		return "inside"
	default:
		return "unknown"
	}
}

// ExtractFrustum extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix.
// Uses the Gribb/Hartmann method for plane extraction: each plane is the sum
// or difference of the fourth row with one of the first three.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes and p-vertex indices
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	var f Frustum

	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)

	f.Planes[FrustumLeft] = planeFromRow(r3.Add(r0))
	f.Planes[FrustumRight] = planeFromRow(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeFromRow(r3.Add(r1))
	f.Planes[FrustumTop] = planeFromRow(r3.Sub(r1))
	f.Planes[FrustumNear] = planeFromRow(r3.Add(r2))
	f.Planes[FrustumFar] = planeFromRow(r3.Sub(r2))

	for i := range f.Planes {
		f.Planes[i] = NormalizePlane(f.Planes[i])
		f.PVertices[i] = PVertexIndex(f.Planes[i].Normal)
	}

	return f
}

func planeFromRow(r mgl32.Vec4) Plane {
	return Plane{Normal: mgl32.Vec3{r[0], r[1], r[2]}, Distance: r[3]}
}

// NormalizePlane scales a plane so that its normal has unit length.
// The length and division are carried out in float64: rounding noise at this
// step moves planes enough to flip culling decisions on distant geometry.
// A zero normal is returned unchanged.
//
// Parameters:
//   - p: the plane to normalize
//
// Returns:
//   - Plane: the normalized plane
func NormalizePlane(p Plane) Plane {
	nx, ny, nz := float64(p.Normal[0]), float64(p.Normal[1]), float64(p.Normal[2])
	length := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if length == 0 {
		return p
	}
	invLen := 1.0 / length
	return Plane{
		Normal:   mgl32.Vec3{float32(nx * invLen), float32(ny * invLen), float32(nz * invLen)},
		Distance: float32(float64(p.Distance) * invLen),
	}
}

// PVertexIndex returns the index of the box corner furthest in the negative
// direction of normal: bit 2 selects max X, bit 1 max Y, bit 0 max Z, and a
// bit is set only when the matching normal component is negative.
//
// Parameters:
//   - normal: the plane normal
//
// Returns:
//   - int: corner index in [0, 7]
func PVertexIndex(normal mgl32.Vec3) int {
	idx := 0
	if normal[0] < 0 {
		idx |= 4
	}
	if normal[1] < 0 {
		idx |= 2
	}
	if normal[2] < 0 {
		idx |= 1
	}
	return idx
}

// planeCount returns how many planes a test visits. Near and far are the last
// two planes, so skipping depth just shortens the loop.
func planeCount(skipDepth bool) int {
	if skipDepth {
		return FrustumNear
	}
	return len(Frustum{}.Planes)
}

// ClassifyBox tests an axis-aligned box against the frustum planes.
// For each plane only two corners are checked: the corner opposite the
// p-vertex (furthest inside) decides outside, the p-vertex itself decides
// whether the box crosses the plane.
//
// Parameters:
//   - box: the world-space box
//   - skipDepth: ignore the near and far planes (orthographic 2D views)
//
// Returns:
//   - CullResult: outside, intersects or inside
func (f *Frustum) ClassifyBox(box Box, skipDepth bool) CullResult {
	vertices := box.Vertices()
	result := CullInside
	for i := range planeCount(skipDepth) {
		p := f.PVertices[i]
		if f.Planes[i].DistanceTo(vertices[7-p]) < 0 {
			return CullOutside
		}
		if f.Planes[i].DistanceTo(vertices[p]) < 0 {
			result = CullIntersects
		}
	}
	return result
}

// ClassifySphere tests a sphere against the frustum planes.
//
// Parameters:
//   - center: sphere center
//   - radius: sphere radius
//   - skipDepth: ignore the near and far planes
//
// Returns:
//   - CullResult: outside, intersects or inside
func (f *Frustum) ClassifySphere(center mgl32.Vec3, radius float32, skipDepth bool) CullResult {
	result := CullInside
	for i := range planeCount(skipDepth) {
		d := f.Planes[i].DistanceTo(center)
		if d < -radius {
			return CullOutside
		}
		if d < radius {
			result = CullIntersects
		}
	}
	return result
}
