package rig

import (
	"math"
	"testing"

	"github.com/unmute-ai/signplay/sign"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func handLandmarks() []sign.Landmark {
	lms := make([]sign.Landmark, sign.HandLandmarkCount)
	for i := range lms {
		lms[i] = sign.Landmark{X: 0.5, Y: 0.5, Z: 0}
	}
	// Keep the wrist distinct so positions are checkable.
	lms[0] = sign.Landmark{X: 0.25, Y: 0.75, Z: 0.1}
	return lms
}

func TestSetLandmarksNormalization(t *testing.T) {
	t.Parallel()

	r := NewRig(KindLeftHand, WithScale(2.0))
	lms := handLandmarks()
	if !r.SetLandmarks(lms, 0) {
		t.Fatal("expected at least one visible joint")
	}

	// Wrist at (0.25, 0.75, 0.1) with center (0.5, 0.5, 0) and scale 2:
	// x = (0.25-0.5)*2 = -0.5, y = -((0.75-0.5)*2) = -0.5, z = 0.2.
	p := r.JointPosition(0)
	if !approx(p[0], -0.5) || !approx(p[1], -0.5) || !approx(p[2], 0.2) {
		t.Fatalf("wrist position = %v, want (-0.5, -0.5, 0.2)", p)
	}
}

func TestSetLandmarksHorizontalOffset(t *testing.T) {
	t.Parallel()

	r := NewRig(KindRightHand, WithScale(2.0))
	r.SetLandmarks(handLandmarks(), 0.5)
	p := r.JointPosition(0)
	if !approx(p[0], 0) { // -0.5 + 0.5
		t.Fatalf("offset wrist x = %v, want 0", p[0])
	}
}

func TestSentinelHidesJointOnly(t *testing.T) {
	t.Parallel()

	r := NewRig(KindLeftHand)
	lms := handLandmarks()
	lms[4] = sign.Landmark{} // thumb tip not detected
	if !r.SetLandmarks(lms, 0) {
		t.Fatal("expected remaining joints visible")
	}
	if r.JointVisible(4) {
		t.Fatal("sentinel joint must be hidden")
	}
	if !r.JointVisible(3) {
		t.Fatal("neighboring joint must stay visible")
	}
}

func TestWrongLengthHidesAll(t *testing.T) {
	t.Parallel()

	r := NewRig(KindPose)
	r.SetLandmarks(make([]sign.Landmark, sign.PoseLandmarkCount), 0) // all sentinel
	if shown := r.SetLandmarks(make([]sign.Landmark, 5), 0); shown {
		t.Fatal("wrong-length landmark list must show nothing")
	}
	for i := 0; i < r.JointCount(); i++ {
		if r.JointVisible(i) {
			t.Fatalf("joint %d visible after wrong-length update", i)
		}
	}
}

func TestBoneNeedsBothEndpoints(t *testing.T) {
	t.Parallel()

	r := NewRig(KindLeftHand)
	lms := handLandmarks()
	lms[1] = sign.Landmark{} // thumb_cmc hidden: bones 0-1 and 1-2 must vanish
	r.SetLandmarks(lms, 0)

	lines := r.AppendLineVertices(nil)
	// 21 bones total, 2 touch joint 1, so 19 drawable bones at 6 floats each.
	if got, want := len(lines), 19*6; got != want {
		t.Fatalf("line vertex floats = %d, want %d", got, want)
	}
}

func TestBoneVisibilityRecomputedEveryUpdate(t *testing.T) {
	t.Parallel()

	r := NewRig(KindLeftHand)
	r.SetLandmarks(handLandmarks(), 0)
	full := len(r.AppendLineVertices(nil))

	lms := handLandmarks()
	lms[0] = sign.Landmark{}
	r.SetLandmarks(lms, 0)
	partial := len(r.AppendLineVertices(nil))
	if partial >= full {
		t.Fatalf("hiding the wrist must drop bones: %d >= %d", partial, full)
	}

	r.SetLandmarks(handLandmarks(), 0)
	if got := len(r.AppendLineVertices(nil)); got != full {
		t.Fatalf("bones did not come back after joint reappeared: %d != %d", got, full)
	}
}

func TestPointVerticesCountVisibleJoints(t *testing.T) {
	t.Parallel()

	r := NewRig(KindPose)
	lms := make([]sign.Landmark, sign.PoseLandmarkCount)
	lms[11] = sign.Landmark{X: 0.4, Y: 0.4, Z: 0}
	lms[12] = sign.Landmark{X: 0.6, Y: 0.4, Z: 0}
	r.SetLandmarks(lms, 0)

	pts := r.AppendPointVertices(nil)
	if got, want := len(pts), 2*3; got != want {
		t.Fatalf("point vertex floats = %d, want %d", got, want)
	}
}

func TestTopologyShape(t *testing.T) {
	t.Parallel()

	pose := NewRig(KindPose)
	if pose.JointCount() != sign.PoseLandmarkCount {
		t.Fatalf("pose rig has %d joints, want %d", pose.JointCount(), sign.PoseLandmarkCount)
	}
	if pose.JointName(0) != "nose" || pose.JointName(16) != "right_wrist" {
		t.Fatalf("unexpected pose joint names: %q, %q", pose.JointName(0), pose.JointName(16))
	}

	hand := NewRig(KindRightHand)
	if hand.JointCount() != sign.HandLandmarkCount {
		t.Fatalf("hand rig has %d joints, want %d", hand.JointCount(), sign.HandLandmarkCount)
	}
	if hand.JointName(0) != "wrist" || hand.JointName(20) != "pinky_tip" {
		t.Fatalf("unexpected hand joint names: %q, %q", hand.JointName(0), hand.JointName(20))
	}
}
