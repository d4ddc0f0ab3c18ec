package live

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/unmute-ai/signplay/engine/skeleton"
	"github.com/unmute-ai/signplay/playback"
	"github.com/unmute-ai/signplay/sign"
)

// stopCountingScheduler records Stop calls.
type stopCountingScheduler struct {
	mu    sync.Mutex
	stops int
}

func (s *stopCountingScheduler) Start(plan sign.Plan) {}

func (s *stopCountingScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
}

func (s *stopCountingScheduler) State() playback.State { return playback.State{} }

func (s *stopCountingScheduler) stopCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

func dialFeed(t *testing.T, f Feed) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(f.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func poseFrameJSON(t *testing.T) []byte {
	t.Helper()
	pose := make([]sign.Landmark, sign.PoseLandmarkCount)
	for i := range pose {
		pose[i] = sign.Landmark{X: 0.5, Y: 0.5, Z: 0.1}
	}
	data, err := json.Marshal(sign.Frame{Pose: pose})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func waitForVertices(t *testing.T, skel skeleton.Skeleton, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(skel.PointVertices()) == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("point vertices = %d, want %d", len(skel.PointVertices()), want)
}

func TestFeedDrivesSkeleton(t *testing.T) {
	t.Parallel()

	skel := skeleton.NewSkeleton()
	ws := dialFeed(t, NewFeed(skel))

	if err := ws.WriteMessage(websocket.TextMessage, poseFrameJSON(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForVertices(t, skel, sign.PoseLandmarkCount*3)
}

func TestFeedSuspendsScheduledPlayback(t *testing.T) {
	t.Parallel()

	sched := &stopCountingScheduler{}
	skel := skeleton.NewSkeleton()
	ws := dialFeed(t, NewFeed(skel, WithScheduler(sched)))

	if err := ws.WriteMessage(websocket.TextMessage, poseFrameJSON(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForVertices(t, skel, sign.PoseLandmarkCount*3)

	if sched.stopCount() != 1 {
		t.Fatalf("scheduler stops = %d, want 1", sched.stopCount())
	}
}

func TestFeedSkipsMalformedMessages(t *testing.T) {
	t.Parallel()

	skel := skeleton.NewSkeleton()
	ws := dialFeed(t, NewFeed(skel))

	if err := ws.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	// A later valid frame still lands.
	if err := ws.WriteMessage(websocket.TextMessage, poseFrameJSON(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForVertices(t, skel, sign.PoseLandmarkCount*3)
}

func TestFeedClearsSkeletonOnDisconnect(t *testing.T) {
	t.Parallel()

	skel := skeleton.NewSkeleton()
	ws := dialFeed(t, NewFeed(skel))

	if err := ws.WriteMessage(websocket.TextMessage, poseFrameJSON(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForVertices(t, skel, sign.PoseLandmarkCount*3)

	ws.Close()
	waitForVertices(t, skel, 0)
}
