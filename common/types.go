// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box in world space.
type Box struct {
	// Min is the corner with the smallest coordinates on every axis.
	Min mgl32.Vec3
	// Max is the corner with the largest coordinates on every axis.
	Max mgl32.Vec3
}

// NewBox returns the box spanning the two corners in any order.
//
// Parameters:
//   - a, b: opposite corners
//
// Returns:
//   - Box: the normalized box
func NewBox(a, b mgl32.Vec3) Box {
	var box Box
	for i := range 3 {
		box.Min[i] = min(a[i], b[i])
		box.Max[i] = max(a[i], b[i])
	}
	return box
}

// Vertices returns the eight corners. Corner i takes Max on X when bit 2 of i
// is set, Max on Y for bit 1 and Max on Z for bit 0, so corner 7-i is always
// the one diagonally opposite corner i.
//
// Returns:
//   - [8]mgl32.Vec3: the corners in index order
func (b Box) Vertices() [8]mgl32.Vec3 {
	var v [8]mgl32.Vec3
	for i := range 8 {
		v[i] = mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&4 != 0 {
			v[i][0] = b.Max[0]
		}
		if i&2 != 0 {
			v[i][1] = b.Max[1]
		}
		if i&1 != 0 {
			v[i][2] = b.Max[2]
		}
	}
	return v
}

// Center returns the midpoint of the box.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the radius of the sphere circumscribing the box.
func (b Box) Radius() float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// Contains reports whether p lies inside or on the box.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - bool: true if p is within the bounds on every axis
func (b Box) Contains(p mgl32.Vec3) bool {
	for i := range 3 {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Transform returns the axis-aligned box enclosing b after applying m.
//
// Parameters:
//   - m: the model transform
//
// Returns:
//   - Box: the world-space enclosing box
func (b Box) Transform(m mgl32.Mat4) Box {
	vertices := b.Vertices()
	first := mgl32.TransformCoordinate(vertices[0], m)
	out := Box{Min: first, Max: first}
	for _, v := range vertices[1:] {
		p := mgl32.TransformCoordinate(v, m)
		for i := range 3 {
			out.Min[i] = min(out.Min[i], p[i])
			out.Max[i] = max(out.Max[i], p[i])
		}
	}
	return out
}
