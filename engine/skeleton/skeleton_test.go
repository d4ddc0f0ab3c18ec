package skeleton

import (
	"context"
	"testing"
	"time"

	"github.com/unmute-ai/signplay/sign"
)

func validPoseFrame() sign.Frame {
	pose := make([]sign.Landmark, sign.PoseLandmarkCount)
	for i := range pose {
		pose[i] = sign.Landmark{X: 0.5, Y: 0.3, Z: 0.1}
	}
	return sign.Frame{Pose: pose}
}

func singleHand() []sign.Landmark {
	lms := make([]sign.Landmark, sign.HandLandmarkCount)
	lms[0] = sign.Landmark{X: 0.5, Y: 0.5, Z: 0.1}
	return lms
}

func TestUpdateFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		frame     *sign.Frame
		wantValid bool
	}{
		{
			name:      "nil frame",
			frame:     nil,
			wantValid: false,
		},
		{
			name:      "empty frame",
			frame:     &sign.Frame{},
			wantValid: false,
		},
		{
			name: "all sentinel pose",
			frame: &sign.Frame{
				Pose: make([]sign.Landmark, sign.PoseLandmarkCount),
			},
			wantValid: false,
		},
		{
			name: "malformed pose length",
			frame: &sign.Frame{
				Pose: []sign.Landmark{{X: 0.5, Y: 0.5}},
			},
			wantValid: false,
		},
		{
			name: "valid pose",
			frame: func() *sign.Frame {
				f := validPoseFrame()
				return &f
			}(),
			wantValid: true,
		},
		{
			name:      "single hand",
			frame:     &sign.Frame{LeftHand: singleHand()},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSkeleton()
			// Show something first so blanking is observable.
			f := validPoseFrame()
			s.UpdateFrame(&f)

			if got := s.UpdateFrame(tt.frame); got != tt.wantValid {
				t.Fatalf("UpdateFrame() = %v, want %v", got, tt.wantValid)
			}
			hasVerts := len(s.PointVertices()) > 0
			if hasVerts != tt.wantValid {
				t.Fatalf("visible vertices = %v, want %v", hasVerts, tt.wantValid)
			}
		})
	}
}

func TestUpdateFrameSeparatesBothHands(t *testing.T) {
	t.Parallel()

	s := NewSkeleton(WithHandOffset(0.5))
	s.UpdateFrame(&sign.Frame{LeftHand: singleHand(), RightHand: singleHand()})

	pts := s.PointVertices()
	if len(pts) != 2*3 {
		t.Fatalf("point vertex floats = %d, want 6", len(pts))
	}
	// Both wrists sit at the domain center; only the offsets separate them.
	if pts[0] >= pts[3] {
		t.Fatalf("left hand x %v not left of right hand x %v", pts[0], pts[3])
	}
	if pts[3]-pts[0] < 0.9 {
		t.Fatalf("hand separation %v, want about 1.0", pts[3]-pts[0])
	}
}

func TestUpdateFrameSingleHandNotOffset(t *testing.T) {
	t.Parallel()

	s := NewSkeleton(WithHandOffset(0.5))
	s.UpdateFrame(&sign.Frame{RightHand: singleHand()})

	pts := s.PointVertices()
	if len(pts) != 3 {
		t.Fatalf("point vertex floats = %d, want 3", len(pts))
	}
	if pts[0] != 0 {
		t.Fatalf("lone hand x = %v, want 0", pts[0])
	}
}

func TestPlaySequenceEmpty(t *testing.T) {
	t.Parallel()

	s := NewSkeleton()
	if s.PlaySequence(context.Background(), nil, 30) {
		t.Fatal("empty sequence must report no valid motion")
	}
}

func TestPlaySequenceEarlyBlankSkips(t *testing.T) {
	t.Parallel()

	frames := make([]sign.Frame, 8)
	for i := 5; i < 8; i++ {
		frames[i] = validPoseFrame()
	}

	s := NewSkeleton()
	start := time.Now()
	// At 2 fps each step is 500ms; skipping must not pace any steps.
	got := s.PlaySequence(context.Background(), frames, 2)
	if got {
		t.Fatal("blank-leading sequence must report no valid motion")
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("early-blank skip took %v, expected immediate return", elapsed)
	}
	if len(s.PointVertices()) != 0 {
		t.Fatal("rigs must be blanked after an early-blank skip")
	}
}

func TestPlaySequenceBlankStreakCutoff(t *testing.T) {
	t.Parallel()

	// 10 valid, 10 blank, then 5 more valid frames. The blank streak must end
	// playback before the trailing valid frames are ever shown.
	frames := make([]sign.Frame, 25)
	for i := 0; i < 10; i++ {
		frames[i] = validPoseFrame()
	}
	for i := 20; i < 25; i++ {
		frames[i] = validPoseFrame()
	}

	s := NewSkeleton(WithBlankStreakLimit(10))
	if !s.PlaySequence(context.Background(), frames, 1000) {
		t.Fatal("sequence with valid frames must report valid motion")
	}
	if len(s.PointVertices()) != 0 {
		t.Fatal("playback ran past the blank streak into the trailing frames")
	}
}

func TestPlaySequenceCancellation(t *testing.T) {
	t.Parallel()

	frames := make([]sign.Frame, 10)
	for i := range frames {
		frames[i] = validPoseFrame()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSkeleton()
	start := time.Now()
	// At 1 fps an uncancelled run would take ~9s.
	got := s.PlaySequence(ctx, frames, 1)
	if !got {
		t.Fatal("frame 0 was valid, expected true on cancellation")
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("cancelled playback took %v, expected immediate return", elapsed)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := NewSkeleton()
	f := validPoseFrame()
	s.UpdateFrame(&f)
	if len(s.LineVertices()) == 0 {
		t.Fatal("expected visible bones before Clear")
	}
	s.Clear()
	if len(s.LineVertices()) != 0 || len(s.PointVertices()) != 0 {
		t.Fatal("Clear must hide every joint and bone")
	}
}
