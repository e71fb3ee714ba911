package engine

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-camera/engine/camera"
	"github.com/Carmen-Shannon/oxy-camera/engine/profiler"
	"github.com/go-gl/mathgl/mgl32"
)

// View is one camera driven by the engine. UserTransform and CenterCoords are
// passed to Camera.Refresh every frame.
type View struct {
	Camera        camera.Camera
	UserTransform *mgl32.Mat3
	CenterCoords  bool
}

// engine implements the Engine interface.
// Coordinates the tick and frame goroutines.
type engine struct {
	mu *sync.Mutex

	// stepMu serializes a tick step against a frame step, so a frame callback
	// never sees a camera dirtied after its Refresh.
	stepMu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	frameCallback  func(deltaTime float32)

	views map[int]*View

	frameLimit time.Duration // minimum frame duration; 0 = uncapped

	pendingSize *mgl32.Vec2 // viewport applied at the start of the next frame
}

// Engine drives camera animation and refresh for a set of views.
// The tick goroutine advances every camera's animation at the tick rate; the
// frame goroutine refreshes every dirty camera before invoking the frame
// callback. A tick step (Tick then tick callback) and a frame step (Refresh
// then frame callback) never overlap, so the frame callback reads up to date
// matrices and frustums. Cameras should only be mutated from the tick callback.
type Engine interface {
	// EnableProfiler enables frame statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// SetTickRate sets the tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called after the cameras ticked.
	// Use this for input handling and navigation.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetFrameCallback registers the function called after the cameras refreshed.
	// Use this for culling and uploading camera uniforms.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetFrameLimit sets a frame rate cap in frames per second.
	// Pass 0 to uncap the frame loop.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// AddView registers a view at the given key. Views are ticked and refreshed
	// in ascending key order.
	//
	// Parameters:
	//   - key: ordering key
	//   - v: the view to register
	AddView(key int, v *View)

	// RemoveView removes the view at the given key.
	//
	// Parameters:
	//   - key: the key of the view to remove
	RemoveView(key int)

	// View retrieves the view registered at key, or nil.
	//
	// Parameters:
	//   - key: the key of the view
	//
	// Returns:
	//   - *View: the view, or nil if not found
	View(key int) *View

	// Resize sets the viewport of every registered camera. While the engine is
	// running the new size is applied at the start of the next frame step.
	//
	// Parameters:
	//   - width, height: the new viewport size
	Resize(width, height float32)

	// Run starts the tick and frame goroutines and blocks until Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// The tick rate defaults to 60Hz and the frame loop to 60fps.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		stepMu:          &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		views:           make(map[int]*View),
		profiler:        profiler.NewProfiler(time.Second),
		engineTickRate:  time.Second / 60,
		frameLimit:      time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.wg.Add(2)
	go e.handleTick()
	go e.handleFrame()
	e.wg.Wait()
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handleTick runs the fixed-rate tick loop. Every camera's animation advances
// before the tick callback runs. Listens for rate changes on tickRateChannel.
func (e *engine) handleTick() {
	defer e.wg.Done()

	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.tickStep(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

// handleFrame runs the (optionally frame-limited) refresh loop.
// Recovers from panics in the frame callback and signals quit on recovery.
func (e *engine) handleFrame() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Engine] frame goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastFrame := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastFrame).Seconds())
			lastFrame = now
			e.frameStep(dt)

			e.mu.Lock()
			profiling := e.profilingEnabled
			limit := e.frameLimit
			e.mu.Unlock()
			if profiling && e.profiler != nil {
				e.profiler.Tick()
			}

			if limit > 0 {
				if remaining := limit - time.Since(now); remaining > 0 {
					select {
					case <-e.quitChannel:
						return
					case <-time.After(remaining):
					}
				}
			}
		}
	}
}

// tickStep advances every camera's animation, then runs the tick callback.
func (e *engine) tickStep(dt float32) {
	e.stepMu.Lock()
	defer e.stepMu.Unlock()

	for _, v := range e.sortedViews() {
		v.Camera.Tick()
	}

	e.mu.Lock()
	cb := e.tickCallback
	e.mu.Unlock()
	if cb != nil {
		cb(dt)
	}
}

// frameStep applies a pending resize, refreshes every camera, then runs the
// frame callback.
func (e *engine) frameStep(dt float32) {
	e.stepMu.Lock()
	defer e.stepMu.Unlock()

	e.mu.Lock()
	size := e.pendingSize
	e.pendingSize = nil
	cb := e.frameCallback
	e.mu.Unlock()

	for _, v := range e.sortedViews() {
		if size != nil {
			v.Camera.SetViewport(size[0], size[1])
		}
		v.Camera.Refresh(v.UserTransform, v.CenterCoords)
	}
	if cb != nil {
		cb(dt)
	}
}

// sortedViews snapshots the registered views in ascending key order.
func (e *engine) sortedViews() []*View {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]int, 0, len(e.views))
	for k := range e.views {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	views := make([]*View, 0, len(keys))
	for _, k := range keys {
		views = append(views, e.views[k])
	}
	return views
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()
	if !running {
		return
	}

	// replace any pending update that has not been consumed yet
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) SetFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fps <= 0 {
		e.frameLimit = 0
		return
	}
	e.frameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddView(key int, v *View) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.views[key] = v
}

func (e *engine) RemoveView(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.views, key)
}

func (e *engine) View(key int) *View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.views[key]
}

func (e *engine) Resize(width, height float32) {
	e.mu.Lock()
	if e.running {
		e.pendingSize = &mgl32.Vec2{width, height}
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	for _, v := range e.sortedViews() {
		v.Camera.SetViewport(width, height)
	}
}
