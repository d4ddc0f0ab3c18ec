package playback

import (
	"time"

	"github.com/unmute-ai/signplay/landmarks"
)

// SchedulerBuilderOption is a functional option for configuring a Scheduler.
// Use the With* functions to create options that are applied directly to the
// scheduler instance.
type SchedulerBuilderOption func(*scheduler)

// WithDwell overrides the minimum time one sign stays on screen regardless
// of fetch latency or recording length.
//
// Parameters:
//   - d: the dwell budget
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithDwell(d time.Duration) SchedulerBuilderOption {
	return func(s *scheduler) {
		if d > 0 {
			s.dwell = d
		}
	}
}

// WithInterItemPause overrides the pause inserted between plan items in
// sequential mode.
//
// Parameters:
//   - d: the pause duration
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithInterItemPause(d time.Duration) SchedulerBuilderOption {
	return func(s *scheduler) {
		if d >= 0 {
			s.interItemPause = d
		}
	}
}

// WithTextPause overrides how long a non-sign item holds its token on screen.
//
// Parameters:
//   - d: the pause duration
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithTextPause(d time.Duration) SchedulerBuilderOption {
	return func(s *scheduler) {
		if d >= 0 {
			s.textPause = d
		}
	}
}

// WithLoopPause overrides the pause between iterations in loop-single mode.
//
// Parameters:
//   - d: the pause duration
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithLoopPause(d time.Duration) SchedulerBuilderOption {
	return func(s *scheduler) {
		if d >= 0 {
			s.loopPause = d
		}
	}
}

// WithMinFps overrides the floor on the computed playback rate. Very short
// recordings play at least this fast instead of being stretched into a
// slideshow.
//
// Parameters:
//   - fps: the minimum frame advance rate
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithMinFps(fps float64) SchedulerBuilderOption {
	return func(s *scheduler) {
		if fps > 0 {
			s.minFps = fps
		}
	}
}

// WithPrefetcher installs a prefetcher warmed with the plan's sign names at
// session start.
//
// Parameters:
//   - p: the prefetcher
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithPrefetcher(p landmarks.Prefetcher) SchedulerBuilderOption {
	return func(s *scheduler) {
		s.prefetch = p
	}
}
