package engine

import (
	"log"
	"sync"
	"time"

	"github.com/unmute-ai/signplay/engine/profiler"
	"github.com/unmute-ai/signplay/engine/renderer"
	"github.com/unmute-ai/signplay/engine/skeleton"
	"github.com/unmute-ai/signplay/engine/window"
	"github.com/unmute-ai/signplay/playback"
	"github.com/unmute-ai/signplay/sign"
)

// engine implements the Engine interface.
// Coordinates the window message loop, the redraw goroutine, and playback.
type engine struct {
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window    window.Window
	renderer  renderer.Renderer
	skeleton  skeleton.Skeleton
	scheduler playback.Scheduler

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the playback host.
// It orchestrates the redraw loop, window management, and the playback
// scheduler.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Skeleton returns the skeleton the engine draws each frame.
	//
	// Returns:
	//   - skeleton.Skeleton: the skeleton instance
	Skeleton() skeleton.Skeleton

	// Start begins playing a render plan, superseding any running session.
	//
	// Parameters:
	//   - plan: the ordered render plan
	Start(plan sign.Plan)

	// Stop ends the running playback session and clears the playback state.
	Stop()

	// Resize updates the render surface dimensions. Windowed hosts get this
	// wired to resize events automatically; headless hosts call it directly.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// PlaybackState returns the scheduler's current UI-facing snapshot.
	//
	// Returns:
	//   - playback.State: the current playback state
	PlaybackState() playback.State

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames
	// per second. Pass 0 to uncap the redraw loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the redraw goroutine and blocks until the window closes or
	// Quit is called. With no window, Run blocks until Quit.
	Run()

	// Quit signals all engine goroutines to stop and ends playback.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Dispose stops the engine if it is still running and releases the GPU
	// and window resources. The engine must not be used after Dispose.
	Dispose()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine over the given collaborators.
// Options are applied directly to the engine struct via the option-builder
// pattern.
//
// Parameters:
//   - skel: the skeleton drawn each frame
//   - rend: the renderer hosting the draw calls
//   - sched: the playback scheduler Start/Stop delegate to
//   - options: functional options for engine configuration (window, profiling, frame cap)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(skel skeleton.Skeleton, rend renderer.Renderer, sched playback.Scheduler, options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		skeleton:    skel,
		renderer:    rend,
		scheduler:   sched,
		profiler:    profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.renderer.Resize(width, height)
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Skeleton() skeleton.Skeleton {
	return e.skeleton
}

func (e *engine) Start(plan sign.Plan) {
	e.scheduler.Start(plan)
}

func (e *engine) Stop() {
	e.scheduler.Stop()
}

func (e *engine) Resize(width, height int) {
	e.renderer.Resize(width, height)
}

func (e *engine) PlaybackState() playback.State {
	return e.scheduler.State()
}

func (e *engine) Run() {
	e.running = true
	e.handle()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and ends playback.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Dispose() {
	e.signalQuit()
	e.wg.Wait()
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("engine: close window: %v", err)
		}
	}
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		e.scheduler.Stop()
		close(e.quitChannel)
	})
}

// handle launches the render and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleRender()
	go e.handleQuit()
}

// handleRender runs the continuous redraw loop in its own goroutine.
// Each iteration snapshots the skeleton's vertices and draws them: bones as
// line segments, joints as points. The playback scheduler mutates the rigs
// concurrently; drawing the latest snapshot every frame keeps the display
// live without any frame hand-off between the two.
// Recovers from panics to avoid crashing the process and signals quit on
// recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			frameStart := time.Now()

			if !e.renderer.Ready() {
				time.Sleep(10 * time.Millisecond)
				continue
			}

			if err := e.renderer.BeginFrame(); err == nil {
				e.renderer.DrawLines(e.skeleton.LineVertices())
				e.renderer.DrawPoints(e.skeleton.PointVertices())
				e.renderer.EndFrame()
				e.renderer.Present()
			} else {
				// Transient surface loss (resize, minimize); skip the frame.
				time.Sleep(10 * time.Millisecond)
				continue
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the redraw loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}
