package landmarks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unmute-ai/signplay/sign"
)

func landmarkService(t *testing.T, known map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, payload := range known {
			if r.URL.Path == "/sign/"+name+"/landmarks" {
				fmt.Fprint(w, payload)
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSourceFrames(t *testing.T) {
	t.Parallel()

	payload := `{"pose_frames":[{"pose":` + landmarkListJSON(sign.PoseLandmarkCount) + `}]}`
	srv := landmarkService(t, map[string]string{"HELLO": payload})

	src := NewHTTPSource(srv.URL)
	frames, err := src.Frames(context.Background(), "HELLO")
	if err != nil {
		t.Fatalf("Frames() = %v", err)
	}
	if len(frames) != 1 || len(frames[0].Pose) != sign.PoseLandmarkCount {
		t.Fatalf("unexpected frames: %+v", frames)
	}
}

func TestHTTPSourceNotFound(t *testing.T) {
	t.Parallel()

	srv := landmarkService(t, nil)
	src := NewHTTPSource(srv.URL)

	if _, err := src.Frames(context.Background(), "MISSING"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Frames() = %v, want ErrNotFound", err)
	}
}

func TestHTTPSourceServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	src := NewHTTPSource(srv.URL)
	if _, err := src.Frames(context.Background(), "HELLO"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("Frames() = %v, want a transport error", err)
	}
}

func TestHTTPSourceContextCancelled(t *testing.T) {
	t.Parallel()

	srv := landmarkService(t, nil)
	src := NewHTTPSource(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Frames(ctx, "HELLO"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
