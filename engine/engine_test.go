package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-camera/common"
	"github.com/Carmen-Shannon/oxy-camera/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView() *View {
	return &View{
		Camera: camera.NewCamera(
			camera.WithViewport(800, 600),
			camera.WithLookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, common.Up),
		),
		CenterCoords: true,
	}
}

func TestViewRegistry(t *testing.T) {
	v := newView()
	e := NewEngine(WithView(1, v))

	assert.Same(t, v, e.View(1))
	assert.Nil(t, e.View(2))

	e.AddView(2, newView())
	assert.NotNil(t, e.View(2))
	e.RemoveView(1)
	assert.Nil(t, e.View(1))
}

func TestResize(t *testing.T) {
	v := newView()
	e := NewEngine(WithView(0, v))

	e.Resize(1024, 768)
	w, h := v.Camera.Viewport()
	assert.Equal(t, float32(1024), w)
	assert.Equal(t, float32(768), h)
	assert.True(t, v.Camera.Dirty())
}

func TestRunTicksAndRefreshes(t *testing.T) {
	v := newView()
	e := NewEngine(WithView(0, v), WithTickRate(500), WithFrameLimit(500))

	v.Camera.MoveTo(mgl32.Vec3{5, 0, 10}, mgl32.Vec3{5, 0, 0}, common.Up)

	var ticks, frames atomic.Int32
	var refreshed atomic.Bool
	e.SetTickCallback(func(float32) {
		ticks.Add(1)
	})
	e.SetFrameCallback(func(float32) {
		frames.Add(1)
		if !v.Camera.Dirty() {
			refreshed.Store(true)
		}
		if v.Camera.AnimationState() == camera.AnimationIdle && ticks.Load() > 5 {
			e.Quit()
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		e.Quit()
		t.Fatal("engine did not stop")
	}

	assert.Greater(t, ticks.Load(), int32(0))
	assert.Greater(t, frames.Load(), int32(0))
	assert.True(t, refreshed.Load())
	assert.InDelta(t, 5, v.Camera.Position()[0], 1e-4)
}

func TestFrameCallbackNeverSeesDirtyCamera(t *testing.T) {
	v := newView()
	e := NewEngine(WithView(0, v), WithTickRate(2000), WithFrameLimit(1000))

	var ticks atomic.Int32
	e.SetTickCallback(func(float32) {
		x := float32(ticks.Add(1))
		v.Camera.SetLookAt(mgl32.Vec3{x, 0, 10}, mgl32.Vec3{x, 0, 0}, common.Up)
	})

	var frames, dirty atomic.Int32
	e.SetFrameCallback(func(float32) {
		if v.Camera.Dirty() {
			dirty.Add(1)
		}
		if frames.Add(1) >= 100 {
			e.Quit()
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		e.Quit()
		t.Fatal("engine did not stop")
	}

	assert.GreaterOrEqual(t, frames.Load(), int32(100))
	assert.Greater(t, ticks.Load(), int32(0))
	assert.Zero(t, dirty.Load())
}

func TestResizeWhileRunning(t *testing.T) {
	v := newView()
	e := NewEngine(WithView(0, v), WithTickRate(1000), WithFrameLimit(1000))

	var resized atomic.Bool
	e.SetTickCallback(func(float32) {
		if !resized.Swap(true) {
			e.Resize(1024, 768)
		}
	})

	var width atomic.Value
	e.SetFrameCallback(func(float32) {
		if !resized.Load() {
			return
		}
		w, _ := v.Camera.Viewport()
		if w == 1024 {
			width.Store(w)
			e.Quit()
		}
		assert.False(t, v.Camera.Dirty())
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		e.Quit()
		t.Fatal("engine did not stop")
	}

	assert.Equal(t, float32(1024), width.Load())
	_, h := v.Camera.Viewport()
	assert.Equal(t, float32(768), h)
}

func TestQuitBeforeRun(t *testing.T) {
	e := NewEngine()
	e.Quit()
	e.Quit()

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestSetTickRateWhileRunning(t *testing.T) {
	e := NewEngine(WithTickRate(1000), WithFrameLimit(100))
	var ticks atomic.Int32
	e.SetTickCallback(func(float32) {
		if ticks.Add(1) == 3 {
			e.SetTickRate(2000)
		}
		if ticks.Load() >= 10 {
			e.Quit()
		}
	})
	e.EnableProfiler()
	e.DisableProfiler()

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		e.Quit()
		t.Fatal("engine did not stop")
	}
	require.GreaterOrEqual(t, ticks.Load(), int32(10))
}
