package renderer

import "testing"

func newTestRenderer(t *testing.T) (Renderer, *headlessRendererBackendImpl) {
	t.Helper()
	r := NewRenderer(BackendTypeHeadless, nil)
	r.Resize(640, 480)
	return r, r.(*renderer).backend.(*headlessRendererBackendImpl)
}

func TestBeginFrameRequiresConfiguredSurface(t *testing.T) {
	t.Parallel()

	r := NewRenderer(BackendTypeHeadless, nil)
	if r.Ready() {
		t.Fatal("renderer must not be ready before Resize")
	}
	if err := r.BeginFrame(); err == nil {
		t.Fatal("BeginFrame must fail without a configured surface")
	}

	r.Resize(640, 480)
	if !r.Ready() {
		t.Fatal("renderer must be ready after Resize")
	}
	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() = %v", err)
	}
}

func TestOverlappingFramesRejected(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t)
	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() = %v", err)
	}
	if err := r.BeginFrame(); err == nil {
		t.Fatal("second BeginFrame before Present must fail")
	}

	r.EndFrame()
	r.Present()
	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame after Present = %v", err)
	}
}

func TestDrawsRecordedWithinFrame(t *testing.T) {
	t.Parallel()

	r, backend := newTestRenderer(t)

	// Draws outside a frame are dropped.
	r.DrawLines([]float32{0, 0, 0, 1, 1, 1})
	if backend.lineDraws != 0 {
		t.Fatal("draw outside a frame must be ignored")
	}

	if err := r.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() = %v", err)
	}
	r.DrawLines([]float32{0, 0, 0, 1, 1, 1, 1, 1, 1, 2, 2, 2})
	r.DrawPoints([]float32{0, 0, 0, 1, 1, 1, 2, 2, 2})
	r.DrawLines(nil) // empty vertex sets are skipped
	r.EndFrame()
	r.Present()

	if backend.lineDraws != 1 || backend.lastLineCount != 4 {
		t.Fatalf("line draws = %d (last %d vertices), want 1 draw of 4", backend.lineDraws, backend.lastLineCount)
	}
	if backend.pointDraws != 1 || backend.lastPointCount != 3 {
		t.Fatalf("point draws = %d (last %d vertices), want 1 draw of 3", backend.pointDraws, backend.lastPointCount)
	}
	if backend.framesPresented != 1 {
		t.Fatalf("frames presented = %d, want 1", backend.framesPresented)
	}
}

func TestReleaseMakesRendererUnready(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t)
	r.Release()
	if r.Ready() {
		t.Fatal("renderer must not be ready after Release")
	}
	if err := r.BeginFrame(); err == nil {
		t.Fatal("BeginFrame after Release must fail")
	}
}
