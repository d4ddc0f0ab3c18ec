package renderer

import (
	"fmt"
	"sync"
)

// headlessRendererBackendImpl accepts the full frame lifecycle without
// touching a GPU. It records what was drawn so tests can assert on it, and
// it is the fallback when no render target exists.
type headlessRendererBackendImpl struct {
	mu *sync.Mutex

	configured bool
	width      int
	height     int

	inFrame         bool
	framesBegun     int
	framesPresented int
	lineDraws       int
	pointDraws      int
	lastLineCount   int
	lastPointCount  int
}

var _ RendererBackend = &headlessRendererBackendImpl{}

func newHeadlessRendererBackend() RendererBackend {
	return &headlessRendererBackendImpl{
		mu: &sync.Mutex{},
	}
}

func (b *headlessRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	b.width = width
	b.height = height
	b.configured = true
}

func (b *headlessRendererBackendImpl) SetPresentMode(mode PresentMode) {}

func (b *headlessRendererBackendImpl) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.configured
}

func (b *headlessRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return fmt.Errorf("surface not configured")
	}
	if b.inFrame {
		return fmt.Errorf("previous frame surface not yet presented")
	}
	b.inFrame = true
	b.framesBegun++
	return nil
}

func (b *headlessRendererBackendImpl) DrawLines(vertices []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inFrame || len(vertices) < 6 {
		return
	}
	b.lineDraws++
	b.lastLineCount = len(vertices) / 3
}

func (b *headlessRendererBackendImpl) DrawPoints(vertices []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inFrame || len(vertices) < 3 {
		return
	}
	b.pointDraws++
	b.lastPointCount = len(vertices) / 3
}

func (b *headlessRendererBackendImpl) EndFrame() {}

func (b *headlessRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inFrame {
		return
	}
	b.inFrame = false
	b.framesPresented++
}

func (b *headlessRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.configured = false
}
