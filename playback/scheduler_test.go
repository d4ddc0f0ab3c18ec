package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/unmute-ai/signplay/sign"
)

// fakeSkeleton records played sequences and completes instantly.
type fakeSkeleton struct {
	mu        sync.Mutex
	sequences [][]sign.Frame
	fpsSeen   []float64
}

func (f *fakeSkeleton) UpdateFrame(frame *sign.Frame) bool { return frame.AnyPresent() }

func (f *fakeSkeleton) PlaySequence(ctx context.Context, frames []sign.Frame, fps float64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sequences = append(f.sequences, frames)
	f.fpsSeen = append(f.fpsSeen, fps)
	return true
}

func (f *fakeSkeleton) LineVertices() []float32  { return nil }
func (f *fakeSkeleton) PointVertices() []float32 { return nil }
func (f *fakeSkeleton) Clear()                   {}

func (f *fakeSkeleton) playCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sequences)
}

// fakeSource serves fixed sequences and can block until released.
type fakeSource struct {
	mu     sync.Mutex
	calls  []string
	frames map[string][]sign.Frame
	err    error
	block  chan struct{}
}

func (f *fakeSource) Frames(ctx context.Context, signName string) ([]sign.Frame, error) {
	f.mu.Lock()
	f.calls = append(f.calls, signName)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-block:
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.frames[signName], nil
}

func (f *fakeSource) setBlock(block chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.block = block
}

func (f *fakeSource) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func signItem(name string) sign.PlanItem {
	return sign.PlanItem{Kind: sign.KindSign, Token: name, SignName: name}
}

func textItem(token string) sign.PlanItem {
	return sign.PlanItem{Kind: sign.KindText, Token: token}
}

func sequenceOf(n int) []sign.Frame {
	frames := make([]sign.Frame, n)
	for i := range frames {
		pose := make([]sign.Landmark, sign.PoseLandmarkCount)
		pose[0] = sign.Landmark{X: 0.5, Y: 0.4, Z: 0}
		frames[i] = sign.Frame{Pose: pose}
	}
	return frames
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func fastTiming() []SchedulerBuilderOption {
	return []SchedulerBuilderOption{
		WithDwell(10 * time.Millisecond),
		WithInterItemPause(2 * time.Millisecond),
		WithTextPause(2 * time.Millisecond),
		WithLoopPause(2 * time.Millisecond),
	}
}

func TestSequentialCollapsesDuplicates(t *testing.T) {
	t.Parallel()

	src := &fakeSource{frames: map[string][]sign.Frame{}}
	s := NewScheduler(&fakeSkeleton{}, src, fastTiming()...)

	s.Start(sign.Plan{signItem("I"), signItem("WANT"), signItem("WANT"), signItem("APPLE")})
	waitFor(t, 2*time.Second, func() bool { return !s.State().IsPlaying })

	want := []string{"I", "WANT", "APPLE"}
	got := src.callList()
	if len(got) != len(want) {
		t.Fatalf("fetched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fetched %v, want %v", got, want)
		}
	}
}

func TestLoopSingleLoopsUntilStopped(t *testing.T) {
	t.Parallel()

	src := &fakeSource{frames: map[string][]sign.Frame{"HELLO": sequenceOf(3)}}
	s := NewScheduler(&fakeSkeleton{}, src, fastTiming()...)

	s.Start(sign.Plan{signItem("HELLO")})
	waitFor(t, 2*time.Second, func() bool { return src.callCount() >= 3 })

	if !s.State().IsPlaying {
		t.Fatal("loop-single session must keep playing until stopped")
	}

	s.Stop()
	if s.State() != (State{}) {
		t.Fatalf("state after Stop = %+v, want zero", s.State())
	}

	// The loop observes the stale token at its next suspension point; at
	// most one in-flight fetch may still land.
	atStop := src.callCount()
	time.Sleep(50 * time.Millisecond)
	if grown := src.callCount() - atStop; grown > 1 {
		t.Fatalf("loop kept fetching after Stop: %d extra fetches", grown)
	}
}

func TestReferenceAssetSetBeforeFetchReturns(t *testing.T) {
	t.Parallel()

	src := &fakeSource{block: make(chan struct{})}
	s := NewScheduler(&fakeSkeleton{}, src, fastTiming()...)

	item := signItem("HELLO")
	item.Assets.Gif = "https://assets.example.com/hello.gif"
	s.Start(sign.Plan{item, textItem("!")})

	// The fetch is still blocked; the clip and token must already be up.
	waitFor(t, 2*time.Second, func() bool {
		st := s.State()
		return st.CurrentToken == "HELLO" && st.CurrentReferenceAssetURL == item.Assets.Gif
	})

	close(src.block)
	waitFor(t, 2*time.Second, func() bool { return !s.State().IsPlaying })
}

func TestSupersededSessionLeavesNoTrace(t *testing.T) {
	t.Parallel()

	skel := &fakeSkeleton{}
	src := &fakeSource{
		frames: map[string][]sign.Frame{"SLOW": sequenceOf(9), "FAST": sequenceOf(4)},
		block:  make(chan struct{}),
	}
	s := NewScheduler(skel, src, fastTiming()...)

	s.Start(sign.Plan{signItem("SLOW"), textItem(".")})
	waitFor(t, 2*time.Second, func() bool { return src.callCount() == 1 })

	// Supersede while the first session is stuck in its fetch.
	src.setBlock(nil)
	s.Start(sign.Plan{signItem("FAST"), textItem(".")})
	waitFor(t, 2*time.Second, func() bool { return !s.State().IsPlaying })

	// Let the superseded fetch complete; its result must be discarded.
	time.Sleep(20 * time.Millisecond)

	skel.mu.Lock()
	defer skel.mu.Unlock()
	for _, seq := range skel.sequences {
		if len(seq) == 9 {
			t.Fatal("superseded session animated its frames")
		}
	}
	if len(skel.sequences) != 1 {
		t.Fatalf("played %d sequences, want 1", len(skel.sequences))
	}
}

func TestSequentialTiming(t *testing.T) {
	t.Parallel()

	src := &fakeSource{frames: map[string][]sign.Frame{}}
	s := NewScheduler(&fakeSkeleton{}, src,
		WithDwell(80*time.Millisecond),
		WithInterItemPause(20*time.Millisecond),
	)

	start := time.Now()
	s.Start(sign.Plan{signItem("I"), signItem("WANT")})
	waitFor(t, 2*time.Second, func() bool { return !s.State().IsPlaying })
	elapsed := time.Since(start)

	// 2 dwells + 1 inter-item pause, fetch-independent.
	if elapsed < 180*time.Millisecond {
		t.Fatalf("sequence finished in %v, dwell budget not honored", elapsed)
	}
	if elapsed > 500*time.Millisecond {
		t.Fatalf("sequence took %v, expected about 180ms", elapsed)
	}
}

func TestTargetFpsFillsDwellBudget(t *testing.T) {
	t.Parallel()

	skel := &fakeSkeleton{}
	src := &fakeSource{frames: map[string][]sign.Frame{"HELLO": sequenceOf(30)}}
	s := NewScheduler(skel, src,
		WithDwell(100*time.Millisecond),
		WithInterItemPause(2*time.Millisecond),
		WithTextPause(2*time.Millisecond),
	)

	s.Start(sign.Plan{signItem("HELLO"), textItem(".")})
	waitFor(t, 2*time.Second, func() bool { return !s.State().IsPlaying })

	skel.mu.Lock()
	defer skel.mu.Unlock()
	if len(skel.fpsSeen) != 1 {
		t.Fatalf("played %d sequences, want 1", len(skel.fpsSeen))
	}
	// 30 frames over a 0.1s dwell: 300 fps.
	if got := skel.fpsSeen[0]; got < 299 || got > 301 {
		t.Fatalf("target fps = %v, want 300", got)
	}
}

func TestTargetFpsFloor(t *testing.T) {
	t.Parallel()

	skel := &fakeSkeleton{}
	src := &fakeSource{frames: map[string][]sign.Frame{"HI": sequenceOf(1)}}
	s := NewScheduler(skel, src,
		WithDwell(100*time.Millisecond),
		WithTextPause(2*time.Millisecond),
		WithInterItemPause(2*time.Millisecond),
		WithMinFps(30),
	)

	s.Start(sign.Plan{signItem("HI"), textItem(".")})
	waitFor(t, 2*time.Second, func() bool { return !s.State().IsPlaying })

	skel.mu.Lock()
	defer skel.mu.Unlock()
	if len(skel.fpsSeen) != 1 || skel.fpsSeen[0] != 30 {
		t.Fatalf("fps = %v, want the 30 fps floor", skel.fpsSeen)
	}
}

func TestFetchFailureKeepsReferenceClipForDwell(t *testing.T) {
	t.Parallel()

	src := &fakeSource{err: errors.New("upstream down")}
	s := NewScheduler(&fakeSkeleton{}, src,
		WithDwell(300*time.Millisecond),
		WithInterItemPause(2*time.Millisecond),
		WithTextPause(2*time.Millisecond),
	)

	item := signItem("HELLO")
	item.Assets.Gif = "https://assets.example.com/hello.gif"
	s.Start(sign.Plan{item, textItem(".")})

	waitFor(t, 2*time.Second, func() bool {
		return s.State().CurrentReferenceAssetURL == item.Assets.Gif
	})

	// Mid-dwell the animation step has already been skipped; the clip alone
	// carries the item and must still be up.
	time.Sleep(100 * time.Millisecond)
	if got := s.State().CurrentReferenceAssetURL; got != item.Assets.Gif {
		t.Fatalf("mid-dwell reference clip = %q, want %q", got, item.Assets.Gif)
	}

	waitFor(t, 2*time.Second, func() bool { return !s.State().IsPlaying })
	if got := s.State().CurrentReferenceAssetURL; got != "" {
		t.Fatalf("reference clip after the sequence = %q, want cleared", got)
	}
}

func TestConcurrentStartsKeepNewestSessionAlive(t *testing.T) {
	t.Parallel()

	src := &fakeSource{frames: map[string][]sign.Frame{"HELLO": sequenceOf(2)}}
	s := NewScheduler(&fakeSkeleton{}, src, fastTiming()...)

	// Loop-single plans never end on their own, so whichever Start wins must
	// leave a running session behind. A racing older Start must not be able
	// to cancel it.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Start(sign.Plan{signItem("HELLO")})
		}()
	}
	wg.Wait()

	waitFor(t, 2*time.Second, func() bool { return s.State().IsPlaying })
	time.Sleep(50 * time.Millisecond)
	if !s.State().IsPlaying {
		t.Fatal("racing Start calls cancelled the winning session")
	}
	s.Stop()
}

func TestFetchFailureDegradesToReferenceOnly(t *testing.T) {
	t.Parallel()

	skel := &fakeSkeleton{}
	src := &fakeSource{err: errors.New("upstream down")}
	s := NewScheduler(skel, src, fastTiming()...)

	s.Start(sign.Plan{signItem("I"), signItem("WANT")})
	waitFor(t, 2*time.Second, func() bool { return !s.State().IsPlaying })

	if skel.playCount() != 0 {
		t.Fatal("failed fetches must skip animation, not play empty sequences")
	}
	if got := src.callList(); len(got) != 2 {
		t.Fatalf("fetched %v, want both items attempted", got)
	}
}
