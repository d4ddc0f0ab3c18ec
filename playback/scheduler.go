// Package playback sequences a render plan into timed per-sign playback,
// fetching landmark frames, pacing each item against a fixed dwell budget,
// and driving the skeleton.
//
// Cancellation is cooperative: every Start call mints a new session token
// from an atomic generation counter and carries a per-session context. A
// session compares its token to the live counter after every suspension
// point (fetch, animation, pause) and abandons silently on a mismatch, so
// the most recent Start always wins and stale sessions never touch the rigs
// or the observable state.
package playback

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/unmute-ai/signplay/engine/skeleton"
	"github.com/unmute-ai/signplay/landmarks"
	"github.com/unmute-ai/signplay/sign"
)

// State is the UI-facing snapshot of the scheduler.
type State struct {
	// IsPlaying is true while a session is running.
	IsPlaying bool

	// CurrentToken is the plan item token currently on display, or "".
	CurrentToken string

	// CurrentReferenceAssetURL is the reference clip shown alongside the
	// skeleton for the current item, or "".
	CurrentReferenceAssetURL string
}

// Scheduler converts render plans into timed playback sessions.
type Scheduler interface {
	// Start begins playing the plan asynchronously, superseding any running
	// session. A collapsed plan holding exactly one sign item loops that sign
	// until superseded or stopped; any other plan plays once in order.
	//
	// Parameters:
	//   - plan: the ordered render plan
	Start(plan sign.Plan)

	// Stop supersedes the running session without starting a new one and
	// clears the observable state synchronously.
	Stop()

	// State returns the current UI-facing snapshot.
	State() State
}

type scheduler struct {
	skel     skeleton.Skeleton
	source   landmarks.Source
	prefetch landmarks.Prefetcher

	dwell          time.Duration
	interItemPause time.Duration
	textPause      time.Duration
	loopPause      time.Duration
	minFps         float64

	generation atomic.Uint64

	mu     sync.RWMutex
	state  State
	cancel context.CancelFunc
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a scheduler over the given skeleton and landmark
// source.
//
// Parameters:
//   - skel: the skeleton the sessions animate
//   - source: the landmark lookup collaborator
//   - options: functional options for timing constants and prefetching
//
// Returns:
//   - Scheduler: the configured scheduler, idle
func NewScheduler(skel skeleton.Skeleton, source landmarks.Source, options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{
		skel:           skel,
		source:         source,
		dwell:          3000 * time.Millisecond,
		interItemPause: 300 * time.Millisecond,
		textPause:      500 * time.Millisecond,
		loopPause:      300 * time.Millisecond,
		minFps:         10,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scheduler) Start(plan sign.Plan) {
	ctx, cancel := context.WithCancel(context.Background())

	// Minting the token and swapping the cancel under one lock keeps two
	// concurrent Start calls ordered: the call holding the newest token is
	// also the one whose cancel survives, so an older call can never cancel
	// the session that superseded it.
	s.mu.Lock()
	token := s.generation.Add(1)
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.state = State{IsPlaying: true}
	s.mu.Unlock()

	go s.run(ctx, token, sign.Collapse(plan))
}

func (s *scheduler) Stop() {
	s.mu.Lock()
	s.generation.Add(1)
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = State{}
	s.mu.Unlock()
}

func (s *scheduler) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// run is the session body, one cooperative goroutine per Start call.
func (s *scheduler) run(ctx context.Context, token uint64, plan sign.Plan) {
	defer s.finish(token)

	if s.prefetch != nil {
		s.prefetch.Warm(ctx, plan.SignNames())
	}

	// A lone sign is the plan shape produced by a single word spoken before
	// the rest of the translation arrives; it loops until superseded.
	if len(plan) == 1 && plan[0].IsSign() {
		for s.alive(ctx, token) {
			s.playOneItem(ctx, token, plan[0])
			if !s.pause(ctx, token, s.loopPause) {
				return
			}
		}
		return
	}

	for i, item := range plan {
		if !s.alive(ctx, token) {
			return
		}
		if item.IsSign() {
			s.playOneItem(ctx, token, item)
		} else {
			s.mutateState(token, func(st *State) {
				st.CurrentToken = item.Token
				st.CurrentReferenceAssetURL = ""
			})
			s.pause(ctx, token, s.textPause)
		}
		if i < len(plan)-1 {
			if !s.pause(ctx, token, s.interItemPause) {
				return
			}
		}
	}
}

// playOneItem displays one sign for the full dwell budget: reference clip
// immediately, skeleton animation when frames arrive, and a trailing sleep
// absorbing whatever the fetch and animation left over, so sequence timing
// stays independent of network latency.
//
// Returns:
//   - bool: true if any valid motion was shown
func (s *scheduler) playOneItem(ctx context.Context, token uint64, item sign.PlanItem) bool {
	start := time.Now()

	// The reference clip must appear before the fetch suspends, so it shows
	// promptly even when motion data is slow or absent.
	s.mutateState(token, func(st *State) {
		st.CurrentToken = item.Token
		st.CurrentReferenceAssetURL = item.Assets.Gif
	})

	frames, err := s.source.Frames(ctx, item.SignName)
	if err != nil {
		// A missing or failed sign degrades to reference-clip-only; the
		// sequence keeps its timing.
		if !errors.Is(err, landmarks.ErrNotFound) && !errors.Is(err, context.Canceled) {
			log.Printf("playback: fetch %q: %v", item.SignName, err)
		}
		frames = nil
	}
	if !s.alive(ctx, token) {
		return false
	}

	shown := false
	if len(frames) > 0 {
		// Stretch or compress the recording to fill the dwell budget.
		fps := math.Max(s.minFps, float64(len(frames))/s.dwell.Seconds())
		shown = s.skel.PlaySequence(ctx, frames, fps)

		// The clip's display window ends with the animation; clearing here
		// keeps a stale clip from bleeding into the next item while the dwell
		// wait absorbs leftover time.
		s.mutateState(token, func(st *State) {
			st.CurrentReferenceAssetURL = ""
		})
	}

	if remaining := s.dwell - time.Since(start); remaining > 0 {
		s.pause(ctx, token, remaining)
	}
	if len(frames) == 0 {
		// With no motion data the clip alone carries the item, so it stays up
		// for the whole dwell and comes down only when the item ends.
		s.mutateState(token, func(st *State) {
			st.CurrentReferenceAssetURL = ""
		})
	}
	return shown
}

// finish clears the observable state exactly once, and only if this session
// still owns it. A superseded session must not clear state on behalf of the
// session that replaced it.
func (s *scheduler) finish(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation.Load() != token {
		return
	}
	s.state = State{}
}

// alive reports whether the session may keep mutating shared state.
func (s *scheduler) alive(ctx context.Context, token uint64) bool {
	return ctx.Err() == nil && s.generation.Load() == token
}

// mutateState applies a state change if the session still owns the state.
func (s *scheduler) mutateState(token uint64, mutate func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation.Load() != token {
		return
	}
	mutate(&s.state)
}

// pause sleeps for d, waking early on cancellation.
//
// Returns:
//   - bool: true if the session is still live after the pause
func (s *scheduler) pause(ctx context.Context, token uint64, d time.Duration) bool {
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	return s.alive(ctx, token)
}
