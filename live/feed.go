// Package live accepts motion frames over a WebSocket and drives the
// skeleton directly, bypassing scheduled playback. A capture tool (webcam
// landmark extractor, replay script) connects and streams one JSON frame per
// message.
package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/unmute-ai/signplay/engine/skeleton"
	"github.com/unmute-ai/signplay/playback"
	"github.com/unmute-ai/signplay/sign"
)

// Feed is a WebSocket ingest endpoint for live motion frames.
type Feed interface {
	// Handler returns the HTTP handler accepting WebSocket upgrades.
	//
	// Returns:
	//   - http.Handler: the upgrade handler
	Handler() http.Handler

	// ListenAndServe serves the feed on the given address, blocking until
	// the server stops.
	//
	// Parameters:
	//   - addr: the listen address (host:port)
	//
	// Returns:
	//   - error: the server's terminal error
	ListenAndServe(addr string) error

	// Shutdown gracefully stops a server started with ListenAndServe.
	//
	// Parameters:
	//   - ctx: bounds the graceful shutdown
	//
	// Returns:
	//   - error: an error if shutdown fails or the deadline passes
	Shutdown(ctx context.Context) error
}

type feed struct {
	skel      skeleton.Skeleton
	scheduler playback.Scheduler

	upgrader websocket.Upgrader
	server   *http.Server
}

var _ Feed = &feed{}

// NewFeed creates a live frame feed driving the given skeleton.
//
// Parameters:
//   - skel: the skeleton incoming frames are applied to
//   - options: functional options (scheduler suspension)
//
// Returns:
//   - Feed: the configured feed
func NewFeed(skel skeleton.Skeleton, options ...FeedBuilderOption) Feed {
	f := &feed{
		skel: skel,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func (f *feed) Handler() http.Handler {
	return http.HandlerFunc(f.handleWS)
}

func (f *feed) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", f.handleWS)
	f.server = &http.Server{Addr: addr, Handler: mux}
	return f.server.ListenAndServe()
}

func (f *feed) Shutdown(ctx context.Context) error {
	if f.server == nil {
		return nil
	}
	return f.server.Shutdown(ctx)
}

// handleWS upgrades the connection and pumps frames into the skeleton until
// the peer disconnects. A live connection supersedes any scheduled playback
// session so the two never fight over the rigs.
func (f *feed) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	id := uuid.NewString()
	log.Printf("live: connection %s from %s", id, r.RemoteAddr)

	if f.scheduler != nil {
		f.scheduler.Stop()
	}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("live: connection %s read: %v", id, err)
			}
			break
		}

		var frame sign.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Printf("live: connection %s dropped malformed frame: %v", id, err)
			continue
		}
		f.skel.UpdateFrame(&frame)
	}

	// Leave a clean stage behind rather than freezing the last pose.
	f.skel.Clear()
	log.Printf("live: connection %s closed", id)
}
