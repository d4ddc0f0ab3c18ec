package renderer

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless selects a backend that accepts the full frame
	// lifecycle without touching a GPU. Used by tests and when no render
	// target is available.
	BackendTypeHeadless
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// RendererBackend is the backend interface for the Renderer. Each backend
// owns its render target and frame lifecycle; the Renderer front delegates
// after applying construction-time configuration.
type RendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when the
	// surface size changes, such as when the window is resized. Also rebuilds
	// the projection so the skeleton keeps its aspect ratio.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames
	// are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Ready reports whether the backend has a configured render target.
	Ready() bool

	// BeginFrame acquires the render target, creates a command encoder, and
	// begins the frame's render pass. Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the render target could not be acquired
	BeginFrame() error

	// DrawLines encodes a line-list draw within the current render pass.
	//
	// Parameters:
	//   - vertices: flat xyz vertex data, 6 floats per segment
	DrawLines(vertices []float32)

	// DrawPoints encodes a point-list draw within the current render pass.
	//
	// Parameters:
	//   - vertices: flat xyz vertex data, 3 floats per point
	DrawPoints(vertices []float32)

	// EndFrame ends the current render pass and submits the command buffer.
	// Does not present — call Present() after EndFrame.
	EndFrame()

	// Present presents the surface to the display and releases the frame's
	// render target. Must be called once per frame after EndFrame.
	Present()

	// Release frees all resources held by the backend.
	Release()
}
