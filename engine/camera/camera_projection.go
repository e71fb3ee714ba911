package camera

import (
	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func (c *cameraImpl) Refresh(userTransform *mgl32.Mat3, centerCoords bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return
	}
	c.updateMatrices(userTransform, centerCoords)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frustum
}

func (c *cameraImpl) BoundingSphere() (center mgl32.Vec3, radius float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.center, c.radius
}

func (c *cameraImpl) CullBox(box common.Box) common.CullResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cullVolume().Classify(box)
}

func (c *cameraImpl) CullVolume() CullVolume {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cullVolume()
}

func (c *cameraImpl) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.inverseViewProjectionMatrix.Mul4x1(ndc.Vec4(1))
	if p.W() == 0 {
		return p.Vec3()
	}
	return p.Vec3().Mul(1 / p.W())
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.position,
	}
}

// cullVolume snapshots the culling state.
// Caller must hold the mutex.
func (c *cameraImpl) cullVolume() CullVolume {
	return CullVolume{
		Frustum:  c.frustum,
		Center:   c.center,
		Radius:   c.radius,
		Position: c.position,
		Mode:     c.mode,
	}
}

// updateMatrices recalculates the projection, view, view-projection and inverse
// view-projection matrices, the frustum planes and the bounding sphere, then
// clears the dirty flag.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices(userTransform *mgl32.Mat3, centerCoords bool) {
	aspect := c.width / c.height

	// renderers with a top-left origin get a Y flip and a shift to the center
	post := mgl32.Ident4()
	if !centerCoords {
		post = mgl32.Scale3D(1, -1, 1).Mul4(mgl32.Translate3D(-c.width/2, -c.height/2, 0))
	}

	if c.mode == Mode3D {
		c.projectionMatrix = mgl32.Perspective(c.fov, aspect, c.near, c.far)
		c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up).Mul4(post)

		// sphere around the frustum slice at mid depth, solved from the view
		// parameters rather than the planes
		vlen := c.far - c.near
		h := vlen * math32.Tan(c.fov/2)
		w := h * aspect
		mid := c.near + vlen/2
		c.radius = mgl32.Vec3{w, h, vlen - mid}.Len()
		c.center = c.position.Add(c.targetDir().Mul(mid))
	} else {
		hw, hh := c.width/2, c.height/2
		near, far := c.clipPlanes()
		c.projectionMatrix = mgl32.Ortho(-hw, hw, -hh, hh, near, far)

		view := post
		if userTransform != nil {
			view = view.Mul4(common.Affine2DToMat4(*userTransform))
		}
		if c.viewportTransform != nil {
			view = view.Mul4(*c.viewportTransform)
		}
		c.viewMatrix = view

		mid := (near + far) / 2
		box := common.Box{Min: mgl32.Vec3{-hw, -hh, mid}, Max: mgl32.Vec3{hw, hh, mid}}
		c.center = box.Center()
		c.radius = box.Radius()
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.frustum = common.ExtractFrustum(c.viewProjectionMatrix)
	c.inverseViewProjectionMatrix = c.viewProjectionMatrix.Inv()
	c.dirty = false
}

// clipPlanes returns the clip distances for the current mode. The configured
// near and far only apply in 3D.
// Caller must hold the mutex.
func (c *cameraImpl) clipPlanes() (near, far float32) {
	if c.mode == Mode2D {
		return NearPlane2D, FarPlane2D
	}
	return c.near, c.far
}
