package camera

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/go-gl/mathgl/mgl32"
)

// AnimationState is the state of the viewpoint animation.
type AnimationState int

const (
	// AnimationIdle means no transition or jump is running.
	AnimationIdle AnimationState = iota
	// AnimationTransitioning interpolates between a start and an end pose.
	AnimationTransitioning
	// AnimationJumping runs the vertical landing bob.
	AnimationJumping
)

// String returns a readable name for the state.
func (s AnimationState) String() string {
	switch s {
	case AnimationIdle:
		return "idle"
	case AnimationTransitioning:
		return "transitioning"
	case AnimationJumping:
		return "jumping"
	default:
		return "unknown"
	}
}

// Animation durations in milliseconds.
const (
	ResetDuration int64 = 1000
	MoveDuration  int64 = 100
	JumpDuration  int64 = 1000
)

// animation is the transition/jump sub-state of a camera. A zero duration
// means idle; a transition is never entered with a zero duration.
type animation struct {
	start Pose
	end   Pose

	startTime int64
	latched   bool // startTime has been read from the clock
	duration  int64

	jumping bool
	dheight float32 // vertical offset currently applied by the bob
}

func (c *cameraImpl) BindViewpoint(src PoseSource, animate bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vp = Pose{
		Position:    src.Position(),
		Orientation: src.Orientation(),
		FieldOfView: src.FieldOfView(),
	}
	slog.Info("[Camera] viewpoint bound", "position", c.vp.Position, "fov", c.vp.FieldOfView, "animate", animate && c.hasViewpoint)
	c.resetToDefault(animate)
	c.hasViewpoint = true
}

func (c *cameraImpl) Viewpoint() (Pose, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp, c.hasViewpoint
}

func (c *cameraImpl) StoreViewpointOnFinish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeVP = true
}

func (c *cameraImpl) ResetToDefault(animate bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetToDefault(animate)
}

func (c *cameraImpl) MoveTo(position, target, up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.anim.jumping {
		c.cancelJump()
		c.anim.duration = 0
	}
	if c.anim.duration == 0 {
		c.anim.start = c.currentPose()
		c.anim.latched = false
	} else if c.anim.latched {
		// a running transition keeps its start pose and its progress
		c.anim.startTime = c.rebaseStart(MoveDuration)
	}
	c.anim.end = Pose{
		Position:    position,
		Orientation: common.OrientationFromLook(position, target, up),
		FieldOfView: c.fov,
	}
	c.anim.duration = MoveDuration
	c.dirty = true
}

func (c *cameraImpl) Jump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	// no double jump
	if c.anim.jumping {
		return
	}
	c.anim.jumping = true
	c.anim.dheight = 0
	c.anim.latched = false
	c.anim.duration = JumpDuration
	c.dirty = true
	slog.Debug("[Camera] jump started", "height", c.avatarSize[1])
}

func (c *cameraImpl) Jumping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anim.jumping
}

func (c *cameraImpl) StopAnimation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anim.duration = 0
	c.anim.latched = false
	c.anim.jumping = false
	c.anim.dheight = 0
}

func (c *cameraImpl) AnimationState() AnimationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.anim.duration == 0:
		return AnimationIdle
	case c.anim.jumping:
		return AnimationJumping
	default:
		return AnimationTransitioning
	}
}

func (c *cameraImpl) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.anim.duration == 0 {
		return false
	}

	now := c.clock.Milliseconds()
	// the first frame only latches the clock, absorbing scheduling jitter
	if !c.anim.latched {
		c.anim.startTime = now
		c.anim.latched = true
		return true
	}

	elapsed := now - c.anim.startTime
	if elapsed > c.anim.duration {
		c.finishAnimation()
		return true
	}
	frac := float32(elapsed) / float32(c.anim.duration)

	if c.anim.jumping {
		if frac > 0.5 {
			frac = 1 - frac
		}
		delta := frac * c.avatarSize[1]
		c.position[1] += delta - c.anim.dheight
		c.target[1] += delta - c.anim.dheight
		c.anim.dheight = delta
		c.dirty = true
		return true
	}

	// 2D viewpoints do not animate, they land on the end pose when the time is up
	if c.mode != Mode3D {
		return false
	}
	c.setPose(
		common.LerpVec3(c.anim.start.Position, c.anim.end.Position, frac),
		common.SlerpAxisAngle(c.anim.start.Orientation, c.anim.end.Orientation, frac),
		common.Lerp(c.anim.start.FieldOfView, c.anim.end.FieldOfView, frac),
	)
	return true
}

// --- internal helpers ---

// resetToDefault snaps or animates to the cached viewpoint.
// Caller must hold the mutex.
func (c *cameraImpl) resetToDefault(animate bool) {
	if !animate || !c.hasViewpoint {
		c.anim = animation{}
		c.setPose(c.vp.Position, c.vp.Orientation, c.vp.FieldOfView)
		return
	}
	if c.anim.jumping {
		c.cancelJump()
	}
	c.anim.start = c.currentPose()
	c.anim.end = c.vp
	c.anim.latched = false
	c.anim.duration = ResetDuration
	c.dirty = true
	slog.Debug("[Camera] transition to default viewpoint", "from", c.anim.start.Position, "to", c.anim.end.Position)
}

// finishAnimation lands a transition on its end pose or ends the jump with the
// bob fully removed.
// Caller must hold the mutex.
func (c *cameraImpl) finishAnimation() {
	c.anim.duration = 0
	c.anim.latched = false

	if c.anim.jumping {
		c.cancelJump()
		slog.Debug("[Camera] jump finished", "y", c.position[1])
		return
	}

	c.setPose(c.anim.end.Position, c.anim.end.Orientation, c.anim.end.FieldOfView)
	if c.storeVP {
		c.storeVP = false
		c.vp = c.currentPose()
		slog.Debug("[Camera] stored viewpoint", "position", c.vp.Position)
	}
	slog.Debug("[Camera] transition finished", "position", c.position)
}

// rebaseStart returns the start time that keeps the running transition at its
// current fraction once its duration becomes duration.
// Caller must hold the mutex.
func (c *cameraImpl) rebaseStart(duration int64) int64 {
	now := c.clock.Milliseconds()
	frac := min(float64(now-c.anim.startTime)/float64(c.anim.duration), 1)
	return now - int64(frac*float64(duration))
}

// cancelJump removes the bob offset still applied and clears the jump flag.
// Caller must hold the mutex.
func (c *cameraImpl) cancelJump() {
	c.position[1] -= c.anim.dheight
	c.target[1] -= c.anim.dheight
	c.anim.dheight = 0
	c.anim.jumping = false
	c.dirty = true
}
