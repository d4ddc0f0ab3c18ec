package skeleton

// SkeletonBuilderOption is a functional option for configuring a Skeleton.
// Use the With* functions to create options that are applied directly to the
// skeleton instance.
type SkeletonBuilderOption func(*skeleton)

// WithHandOffset overrides the horizontal separation applied to each hand
// when both hands are visible in the same frame. The left hand is shifted by
// -offset and the right hand by +offset.
//
// Parameters:
//   - offset: render-space half-separation between the hands
//
// Returns:
//   - SkeletonBuilderOption: option function to apply
func WithHandOffset(offset float32) SkeletonBuilderOption {
	return func(s *skeleton) {
		if offset >= 0 {
			s.handOffset = offset
		}
	}
}

// WithEarlyBlankSamples overrides how many leading frames of a sequence are
// inspected before playback; if all of them are blank the sequence is skipped.
//
// Parameters:
//   - n: the number of leading frames to sample
//
// Returns:
//   - SkeletonBuilderOption: option function to apply
func WithEarlyBlankSamples(n int) SkeletonBuilderOption {
	return func(s *skeleton) {
		if n > 0 {
			s.earlyBlankSamples = n
		}
	}
}

// WithBlankStreakLimit overrides how many consecutive blank frames end a
// sequence early once any valid frame has been shown.
//
// Parameters:
//   - n: the consecutive blank frame cutoff
//
// Returns:
//   - SkeletonBuilderOption: option function to apply
func WithBlankStreakLimit(n int) SkeletonBuilderOption {
	return func(s *skeleton) {
		if n > 0 {
			s.blankStreakLimit = n
		}
	}
}
