package renderer

import (
	"sync"

	"github.com/unmute-ai/signplay/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	clearColor           [4]float64
	lineColor            [4]float32
	pointColor           [4]float32
}

// Renderer defines the interface for the rendering system.
//
// The renderer draws exactly two kinds of geometry per frame: line segments
// (skeleton bones) and points (skeleton joints). Vertex data is re-uploaded
// every frame from the caller's snapshot; the renderer owns all GPU resources
// and implements a backend split so multiple backend implementations can
// exist (a WebGPU backend for display and a headless backend for tests and
// environments without a render target).
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface
	// size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames
	// are delivered to the display. A call to Resize is required after
	// changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Ready reports whether the backend has a configured render target.
	// Drawing calls made while not ready are ignored rather than failing.
	//
	// Returns:
	//   - bool: true if the backend can accept frames
	Ready() bool

	// BeginFrame acquires the render target and begins the frame's render
	// pass. Must be paired with EndFrame after all draw invocations within a
	// single frame.
	//
	// Returns:
	//   - error: an error if the render target could not be acquired
	BeginFrame() error

	// DrawLines encodes a line-list draw of the given vertices within the
	// current frame, two xyz vertices per segment.
	//
	// Parameters:
	//   - vertices: flat xyz vertex data, 6 floats per segment
	DrawLines(vertices []float32)

	// DrawPoints encodes a point-list draw of the given vertices within the
	// current frame, one xyz vertex per point.
	//
	// Parameters:
	//   - vertices: flat xyz vertex data, 3 floats per point
	DrawPoints(vertices []float32)

	// EndFrame ends the current render pass and submits the frame's command
	// buffer. Does not present the surface — call Present() after EndFrame to
	// display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the frame's
	// render target. Must be called once per frame after EndFrame.
	Present()

	// Release frees all GPU resources held by the renderer. The renderer must
	// not be used after Release.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type.
// The window supplies the platform surface for GPU-backed backends and is
// ignored by the headless backend.
//
// Parameters:
//   - backendType: the type of rendering backend to use (WGPU or Headless)
//   - win: the window providing the render surface (nil for headless)
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  [4]float64{0.07, 0.07, 0.09, 1.0},
		lineColor:   [4]float32{0.85, 0.89, 0.95, 1.0},
		pointColor:  [4]float32{0.35, 0.78, 1.0, 1.0},
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeHeadless:
		r.backend = newHeadlessRendererBackend()
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.clearColor, r.lineColor, r.pointColor)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if win != nil {
		r.backend.ConfigureSurface(win.Width(), win.Height())
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Ready() bool {
	return r.backend.Ready()
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawLines(vertices []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.DrawLines(vertices)
}

func (r *renderer) DrawPoints(vertices []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.DrawPoints(vertices)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.backend.Release()
}
