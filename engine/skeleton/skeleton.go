// Package skeleton renders one motion frame at a time onto a persistent set
// of joint/bone rigs and drives timed playback of full frame sequences.
//
// The skeleton owns three rigs (full-body pose plus left and right hand)
// that live for the engine's lifetime. Frame updates come from a single
// cooperative playback task; vertex snapshots are read by an independent
// redraw goroutine, so rig access is serialized with a read/write mutex.
package skeleton

import (
	"context"
	"sync"
	"time"

	"github.com/unmute-ai/signplay/engine/rig"
	"github.com/unmute-ai/signplay/sign"
)

// Skeleton consumes motion frames and exposes drawable vertex snapshots.
type Skeleton interface {
	// UpdateFrame applies one frame to the rigs. A nil, wrong-shaped, or
	// all-absent frame hides every joint and bone. Otherwise each present
	// landmark positions its joint and each sentinel landmark hides its
	// joint only. When both hands are visible in the same frame they are
	// pushed apart horizontally so they do not overlap.
	//
	// Parameters:
	//   - frame: the frame to display, or nil to blank the rigs
	//
	// Returns:
	//   - bool: true if at least one landmark in the frame was present
	UpdateFrame(frame *sign.Frame) bool

	// PlaySequence steps through frames at the given rate, applying each via
	// UpdateFrame. An empty sequence returns false immediately. If the
	// leading frames of the sequence are all blank, frame 0 is rendered once
	// to clear any stale pose and playback is skipped. Once any valid frame
	// has been shown, a long enough run of consecutive blank frames ends
	// playback early.
	//
	// Parameters:
	//   - ctx: cancels playback between frame steps
	//   - frames: the ordered frame sequence to play
	//   - fps: frame advance rate; each step lasts 1/fps seconds
	//
	// Returns:
	//   - bool: true if any valid frame was shown
	PlaySequence(ctx context.Context, frames []sign.Frame, fps float64) bool

	// LineVertices returns a snapshot of the bone segment vertices across
	// all rigs, two xyz vertices per drawable bone.
	LineVertices() []float32

	// PointVertices returns a snapshot of the visible joint vertices across
	// all rigs, one xyz vertex per joint.
	PointVertices() []float32

	// Clear hides every joint and bone of every rig.
	Clear()
}

type skeleton struct {
	mu    sync.RWMutex
	pose  rig.Rig
	left  rig.Rig
	right rig.Rig

	handOffset        float32
	earlyBlankSamples int
	blankStreakLimit  int
}

var _ Skeleton = &skeleton{}

// NewSkeleton creates a skeleton with its three rigs fully hidden.
//
// Parameters:
//   - options: functional options to override offsets and blank heuristics
//
// Returns:
//   - Skeleton: the newly created skeleton
func NewSkeleton(options ...SkeletonBuilderOption) Skeleton {
	s := &skeleton{
		pose:              rig.NewRig(rig.KindPose),
		left:              rig.NewRig(rig.KindLeftHand),
		right:             rig.NewRig(rig.KindRightHand),
		handOffset:        0.5,
		earlyBlankSamples: 5,
		blankStreakLimit:  10,
	}

	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *skeleton) UpdateFrame(frame *sign.Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if frame == nil || !frame.WellFormed() {
		s.hideAllLocked()
		return false
	}

	shown := false
	if frame.Pose != nil {
		shown = s.pose.SetLandmarks(frame.Pose, 0) || shown
	} else {
		s.pose.HideAll()
	}

	var leftOffset, rightOffset float32
	if frame.LeftHand != nil && frame.RightHand != nil {
		leftOffset, rightOffset = -s.handOffset, s.handOffset
	}
	if frame.LeftHand != nil {
		shown = s.left.SetLandmarks(frame.LeftHand, leftOffset) || shown
	} else {
		s.left.HideAll()
	}
	if frame.RightHand != nil {
		shown = s.right.SetLandmarks(frame.RightHand, rightOffset) || shown
	} else {
		s.right.HideAll()
	}
	return shown
}

func (s *skeleton) PlaySequence(ctx context.Context, frames []sign.Frame, fps float64) bool {
	if len(frames) == 0 {
		return false
	}

	sample := s.earlyBlankSamples
	if sample > len(frames) {
		sample = len(frames)
	}
	blankLead := true
	for i := 0; i < sample; i++ {
		if frames[i].AnyPresent() {
			blankLead = false
			break
		}
	}
	if blankLead {
		// Render frame 0 once so a stale pose from the previous sequence
		// does not linger on screen.
		s.UpdateFrame(&frames[0])
		return false
	}

	if fps <= 0 {
		fps = 1
	}
	step := time.Duration(float64(time.Second) / fps)
	timer := time.NewTimer(step)
	defer timer.Stop()

	hasShownValid := false
	invalidStreak := 0
	for i := range frames {
		if s.UpdateFrame(&frames[i]) {
			hasShownValid = true
			invalidStreak = 0
		} else {
			invalidStreak++
			// Trailing blank frames mean the sign finished.
			if hasShownValid && invalidStreak >= s.blankStreakLimit {
				break
			}
		}
		if i == len(frames)-1 {
			break
		}

		select {
		case <-ctx.Done():
			return hasShownValid
		case <-timer.C:
		}
		timer.Reset(step)
	}
	return hasShownValid
}

func (s *skeleton) LineVertices() []float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dst := make([]float32, 0, 256)
	dst = s.pose.AppendLineVertices(dst)
	dst = s.left.AppendLineVertices(dst)
	dst = s.right.AppendLineVertices(dst)
	return dst
}

func (s *skeleton) PointVertices() []float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dst := make([]float32, 0, 256)
	dst = s.pose.AppendPointVertices(dst)
	dst = s.left.AppendPointVertices(dst)
	dst = s.right.AppendPointVertices(dst)
	return dst
}

func (s *skeleton) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideAllLocked()
}

func (s *skeleton) hideAllLocked() {
	s.pose.HideAll()
	s.left.HideAll()
	s.right.HideAll()
}
