package engine

import (
	"log"
	"maps"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/config"
	"github.com/Carmen-Shannon/oxy-viz/engine/interaction"
	"github.com/Carmen-Shannon/oxy-viz/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viz/engine/window"
)

// engine implements the Engine interface.
// Every interaction context is ticked on the window thread from the message loop.
type engine struct {
	mu *sync.Mutex

	quitChannel chan struct{}
	quitOnce    sync.Once

	window  window.Window
	watcher *config.Watcher

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate       time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	contexts map[int]interaction.Context
}

// Engine is the main entry point. It owns the host window and the interaction context of
// every scene, and advances them once per frame in ascending z-index order.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the frame rate the message loop steps the engine at.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each frame after the contexts tick.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each frame after the tick callback.
	// The external renderer draws here using Visibility from each context.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// AddContext registers an interaction context at the given z-index key. With a window,
	// the context is attached to its canvas and global surfaces and its camera viewport is
	// sized to the framebuffer. A context already at key is disposed.
	//
	// Parameters:
	//   - key: the z-index determining tick order (lower ticks first)
	//   - c: the context to register
	AddContext(key int, c interaction.Context)

	// RemoveContext disposes and removes the context at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the context to remove
	RemoveContext(key int)

	// Context retrieves the context registered at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the context to retrieve
	//
	// Returns:
	//   - interaction.Context: the context at the key, or nil if not found
	Context(key int) interaction.Context

	// Contexts returns a copy of all registered contexts keyed by z-index.
	//
	// Returns:
	//   - map[int]interaction.Context: a copy of the contexts map
	Contexts() map[int]interaction.Context

	// Step advances one frame: reloaded tuning is forwarded to every context, each context
	// ticks in ascending key order, then the tick and render callbacks run.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Step(dt float32)

	// Run drives Step from the window message loop and blocks until the window closes.
	// Panics without a window.
	Run()

	// Quit stops the message loop. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		quitChannel: make(chan struct{}),
		contexts:    make(map[int]interaction.Context),
		profiler:    profiler.NewProfiler(time.Second),
		tickRate:    time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		for _, c := range e.contexts {
			c.Attach(e.window.Surface(), e.window.Global())
			c.Camera().SetViewport(float32(e.window.Width()), float32(e.window.Height()))
		}
		e.window.SetResizeCallback(func(width, height int) {
			for _, c := range e.Contexts() {
				c.Camera().SetViewport(float32(width), float32(height))
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run requires a window")
	}

	last := time.Now()
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			e.window.RequestClose()
			return
		default:
		}

		now := time.Now()
		if now.Sub(last) < e.currentTickRate() {
			return
		}
		dt := float32(now.Sub(last).Seconds())
		last = now
		e.safeStep(dt)
	})
	e.window.ProcessMessages()

	e.signalQuit()
	for _, key := range common.SortedKeys(e.Contexts()) {
		e.RemoveContext(key)
	}
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			log.Printf("[Engine] close config watcher: %v", err)
		}
	}
	if err := e.window.Close(); err != nil {
		log.Printf("[Engine] close window: %v", err)
	}
}

// safeStep recovers a panicking frame and stops the loop instead of crashing the process.
func (e *engine) safeStep(dt float32) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.signalQuit()
		}
	}()
	e.Step(dt)
}

func (e *engine) Step(dt float32) {
	e.forwardTuning()

	contexts := e.Contexts()
	var sample profiler.Sample
	for _, key := range common.SortedKeys(contexts) {
		c := contexts[key]
		c.Tick(dt)

		st := c.Stats()
		sample.Contexts++
		sample.Visible += st.Visible
		sample.Hidden += st.Hidden
		if st.Animating {
			sample.Animating++
		}
	}

	e.mu.Lock()
	tick, render := e.tickCallback, e.renderCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if tick != nil {
		tick(dt)
	}
	if render != nil {
		render(dt)
	}
	if profiling && e.profiler != nil {
		e.profiler.Tick(sample)
	}
}

// forwardTuning hands the latest reloaded tuning to every context and logs reload errors.
func (e *engine) forwardTuning() {
	if e.watcher == nil {
		return
	}
	select {
	case err, ok := <-e.watcher.Errors:
		if ok {
			log.Printf("[Engine] tuning reload failed, keeping previous: %v", err)
		}
	default:
	}
	select {
	case s, ok := <-e.watcher.Updates:
		if !ok {
			return
		}
		for _, c := range e.Contexts() {
			c.ApplySettings(s)
		}
	default:
	}
}

func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
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

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickRate = time.Duration(float64(time.Second) / fps)
}

func (e *engine) currentTickRate() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickRate
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

func (e *engine) AddContext(key int, c interaction.Context) {
	if c == nil {
		return
	}
	e.mu.Lock()
	prev := e.contexts[key]
	e.contexts[key] = c
	e.mu.Unlock()

	if prev != nil && prev != c {
		prev.Dispose()
	}
	if e.window != nil {
		c.Attach(e.window.Surface(), e.window.Global())
		c.Camera().SetViewport(float32(e.window.Width()), float32(e.window.Height()))
	}
}

func (e *engine) RemoveContext(key int) {
	e.mu.Lock()
	c, ok := e.contexts[key]
	delete(e.contexts, key)
	e.mu.Unlock()
	if ok {
		c.Dispose()
	}
}

func (e *engine) Context(key int) interaction.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.contexts[key]
}

func (e *engine) Contexts() map[int]interaction.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.contexts)
}
