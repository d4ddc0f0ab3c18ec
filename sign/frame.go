// Package sign holds the data contracts shared between the translation
// collaborator, the landmark lookup sources, and the playback engine. They are
// plain structs, not interface-wrapped — variance in wire formats is handled
// at the boundary (see the landmarks package), so everything downstream of it
// sees exactly one canonical shape.
package sign

// PoseLandmarkCount is the number of landmarks in a full-body pose frame.
const PoseLandmarkCount = 33

// HandLandmarkCount is the number of landmarks in a single-hand frame.
const HandLandmarkCount = 21

// Landmark is one 3-component tracking coordinate. The source convention is a
// normalized image domain: x and y in [0, 1] with the origin at the top-left
// of the image, z roughly in [-1, 1] relative to the subject.
//
// (0, 0, 0) is the sentinel for "not detected". A joint legitimately at the
// exact origin is indistinguishable from an absent one; by convention it is
// treated as absent.
type Landmark struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// Absent reports whether the landmark carries the absence sentinel.
func (l Landmark) Absent() bool {
	return l.X == 0 && l.Y == 0 && l.Z == 0
}

// Frame is one timestep of motion data: either a full-body pose (exactly 33
// landmarks) or up to two hands (exactly 21 landmarks each). A frame may carry
// both hands, one hand, or a pose; a sequence for a single sign always carries
// the same shape throughout.
type Frame struct {
	Pose      []Landmark `json:"pose,omitempty" msgpack:"pose,omitempty"`
	LeftHand  []Landmark `json:"left_hand,omitempty" msgpack:"left_hand,omitempty"`
	RightHand []Landmark `json:"right_hand,omitempty" msgpack:"right_hand,omitempty"`
}

// WellFormed reports whether every landmark list the frame carries has the
// exact expected length. A frame with no landmark lists at all is well-formed
// (it is simply blank); a frame with a 30-point "pose" is not.
func (f *Frame) WellFormed() bool {
	if f == nil {
		return false
	}
	if f.Pose != nil && len(f.Pose) != PoseLandmarkCount {
		return false
	}
	if f.LeftHand != nil && len(f.LeftHand) != HandLandmarkCount {
		return false
	}
	if f.RightHand != nil && len(f.RightHand) != HandLandmarkCount {
		return false
	}
	return true
}

// AnyPresent reports whether at least one landmark in the frame is not the
// absence sentinel. Malformed frames carry no usable information and report
// false regardless of their contents.
func (f *Frame) AnyPresent() bool {
	if f == nil || !f.WellFormed() {
		return false
	}
	for _, set := range [][]Landmark{f.Pose, f.LeftHand, f.RightHand} {
		for _, l := range set {
			if !l.Absent() {
				return true
			}
		}
	}
	return false
}

// Blank returns an all-absent frame. Malformed wire data is normalized to a
// blank frame so it participates in blank-streak accounting instead of being
// silently dropped (dropping would distort sequence timing).
func Blank() Frame {
	return Frame{}
}
