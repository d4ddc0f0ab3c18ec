package live

import "github.com/unmute-ai/signplay/playback"

// FeedBuilderOption is a functional option for configuring a Feed.
// Use the With* functions to create options that are applied directly to the
// feed instance.
type FeedBuilderOption func(*feed)

// WithScheduler sets the playback scheduler a live connection suspends on
// arrival.
//
// Parameters:
//   - s: the scheduler to stop when a feed connects
//
// Returns:
//   - FeedBuilderOption: option function to apply
func WithScheduler(s playback.Scheduler) FeedBuilderOption {
	return func(f *feed) {
		f.scheduler = s
	}
}
